// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-lobby-bot/pkg/profile"
)

// InitProfile loads the lobby profile, falling back to the built-in profile
// when the file does not exist.
//
// ============================================================
// DEVELOPER: Lobby profile
// ============================================================
// The profile (config/profile.yaml) holds the persona name, the
// greeting, the lobby settings and the chat responses. Values may
// reference environment variables as ${VAR} or ${VAR:default}.
// ============================================================
func InitProfile(path string) (*profile.Profile, error) {
	p, err := profile.LoadOrDefault(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load lobby profile from %s: %w", path, err)
	}

	logrus.Infof("loaded lobby profile %q for persona %s", p.Lobby.GameName, p.PersonaName)
	return p, nil
}
