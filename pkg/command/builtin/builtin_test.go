// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"testing"

	"github.com/AccelByte/extend-lobby-bot/pkg/command"
	"github.com/AccelByte/extend-lobby-bot/pkg/game"
)

type recorder struct {
	said      []string
	submitted []string
}

func (r *recorder) env(rules game.GameRules) *command.Env {
	return &command.Env{
		Rules:  rules,
		Say:    func(text string) { r.said = append(r.said, text) },
		Submit: func(cmd string) { r.submitted = append(r.submitted, cmd) },
	}
}

func newTestRegistry(t *testing.T) *command.Registry {
	t.Helper()
	registry, err := NewRegistry(DefaultMessages())
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	return registry
}

func TestPauseCommand(t *testing.T) {
	tests := []struct {
		name          string
		pauseTeam     game.ServerTeam
		expectedSay   string
		expectedPause bool
	}{
		{
			name:          "not paused",
			pauseTeam:     game.TeamUnassigned,
			expectedSay:   "Pausing the game by request from Alice!",
			expectedPause: true,
		},
		{
			name:        "paused by radiant",
			pauseTeam:   game.TeamRadiant,
			expectedSay: "The game is already paused by radiant.",
		},
		{
			name:        "paused by dire",
			pauseTeam:   game.TeamDire,
			expectedSay: "The game is already paused by dire.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{}
			PauseCommand{}.Handle(r.env(game.GameRules{PauseTeam: tt.pauseTeam}), game.ChatMessage{Prefix: "Alice", Text: "!pause"})

			if len(r.said) != 1 || r.said[0] != tt.expectedSay {
				t.Errorf("Handle() said %v, expected %q", r.said, tt.expectedSay)
			}
			paused := len(r.submitted) == 1 && r.submitted[0] == PauseCommandName
			if paused != tt.expectedPause {
				t.Errorf("Handle() submitted %v, expected pause = %v", r.submitted, tt.expectedPause)
			}
		})
	}
}

func TestBuiltinCommands_Responses(t *testing.T) {
	registry := newTestRegistry(t)
	rules := game.GameRules{GameTime: 125.5, GameStartTime: 90, NetTimeOfDay: 4200}

	tests := []struct {
		text     string
		expected string
	}{
		{text: "!whoami", expected: "You are Bob!"},
		{text: "!time", expected: "Current game time is 125.5, game started at 90."},
		{text: "!timeofday", expected: "Time of day is: 4200"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			cmd, ok := registry.Match(tt.text)
			if !ok {
				t.Fatalf("Match(%q) found nothing", tt.text)
			}
			r := &recorder{}
			cmd.Handle(r.env(rules), game.ChatMessage{Prefix: "Bob", Text: tt.text})
			if len(r.said) != 1 || r.said[0] != tt.expected {
				t.Errorf("Handle() said %v, expected %q", r.said, tt.expected)
			}
		})
	}
}

func TestBuiltinEvents_Responses(t *testing.T) {
	registry := newTestRegistry(t)

	tests := []struct {
		kind     game.ChatEventKind
		value    int
		expected string
	}{
		{kind: game.ChatEventFirstBlood, expected: "Nice firstblood Kappa."},
		{kind: game.ChatEventConnect, value: 7, expected: "Welcome back 7."},
		{kind: game.ChatEventReconnect, value: 3, expected: "Welcome back 3."},
		{kind: game.ChatEventHeroKill, expected: "Wow, that guy is totally feeding."},
		{kind: game.ChatEventTowerKill, expected: "Boom! The tower went down."},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			responder, ok := registry.Event(tt.kind)
			if !ok {
				t.Fatalf("Event(%s) found nothing", tt.kind)
			}
			r := &recorder{}
			responder.Respond(r.env(game.GameRules{}), game.ChatEvent{Kind: tt.kind, Value: tt.value})
			if len(r.said) != 1 || r.said[0] != tt.expected {
				t.Errorf("Respond() said %v, expected %q", r.said, tt.expected)
			}
		})
	}

	if _, ok := registry.Event(game.ChatEventDisconnect); ok {
		t.Error("Expected no responder for disconnect events")
	}
}

func TestMessages_Apply(t *testing.T) {
	messages := DefaultMessages().Apply(map[string]string{
		KeyTowerKill: "Tower down.",
		KeyHeroKill:  "",
	})

	if messages.TowerKill != "Tower down." {
		t.Errorf("TowerKill = %q, expected override", messages.TowerKill)
	}
	if messages.HeroKill != DefaultMessages().HeroKill {
		t.Errorf("HeroKill = %q, expected default kept for empty override", messages.HeroKill)
	}
}

func TestValidateOverrides(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]string
		wantErr   bool
	}{
		{name: "none"},
		{name: "every key", overrides: map[string]string{
			KeyFirstBlood:  "fb",
			KeyWelcomeBack: "back %d",
			KeyHeroKill:    "kill",
			KeyTowerKill:   "tower",
		}},
		{name: "empty welcome back keeps default", overrides: map[string]string{KeyWelcomeBack: ""}},
		{name: "escaped percent", overrides: map[string]string{KeyWelcomeBack: "%d at 100%%"}},
		{name: "unknown key", overrides: map[string]string{"first_bloood": "fb"}, wantErr: true},
		{name: "no verb", overrides: map[string]string{KeyWelcomeBack: "back"}, wantErr: true},
		{name: "wrong verb", overrides: map[string]string{KeyWelcomeBack: "back %s"}, wantErr: true},
		{name: "two verbs", overrides: map[string]string{KeyWelcomeBack: "%d back %d"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOverrides(tt.overrides)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOverrides() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
