// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"fmt"
	"sort"
	"strings"
)

// Message keys accepted by Messages.Apply.
const (
	KeyFirstBlood  = "first_blood"
	KeyWelcomeBack = "welcome_back"
	KeyHeroKill    = "hero_kill"
	KeyTowerKill   = "tower_kill"
)

// Messages are the canned chat event responses. WelcomeBack is a format
// string receiving the event value.
type Messages struct {
	FirstBlood  string
	WelcomeBack string
	HeroKill    string
	TowerKill   string
}

// DefaultMessages returns the stock responses.
func DefaultMessages() Messages {
	return Messages{
		FirstBlood:  "Nice firstblood Kappa.",
		WelcomeBack: "Welcome back %d.",
		HeroKill:    "Wow, that guy is totally feeding.",
		TowerKill:   "Boom! The tower went down.",
	}
}

// Apply overrides messages with the non-empty entries of overrides.
func (m Messages) Apply(overrides map[string]string) Messages {
	set := func(dst *string, key string) {
		if v := overrides[key]; v != "" {
			*dst = v
		}
	}
	set(&m.FirstBlood, KeyFirstBlood)
	set(&m.WelcomeBack, KeyWelcomeBack)
	set(&m.HeroKill, KeyHeroKill)
	set(&m.TowerKill, KeyTowerKill)
	return m
}

// ValidateOverrides rejects override keys Apply does not know and a
// welcome_back text that is not a format string with exactly one %d.
func ValidateOverrides(overrides map[string]string) error {
	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch key {
		case KeyFirstBlood, KeyHeroKill, KeyTowerKill:
		case KeyWelcomeBack:
			if v := overrides[key]; v != "" && !singleIntVerb(v) {
				return fmt.Errorf("response %q must contain exactly one %%d", key)
			}
		default:
			return fmt.Errorf("unknown response %q", key)
		}
	}
	return nil
}

func singleIntVerb(format string) bool {
	rest := strings.ReplaceAll(format, "%%", "")
	return strings.Count(rest, "%") == 1 && strings.Count(rest, "%d") == 1
}
