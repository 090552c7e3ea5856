// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package profile loads the lobby profile: what lobby the bot hosts and how it
// behaves inside it.
package profile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AccelByte/extend-lobby-bot/pkg/command/builtin"
	"github.com/AccelByte/extend-lobby-bot/pkg/provider"
)

// Profile is the complete lobby profile.
type Profile struct {
	PersonaName string       `yaml:"persona_name"`
	Greeting    string       `yaml:"greeting"`
	Lobby       LobbyProfile `yaml:"lobby"`
	Behavior    Behavior     `yaml:"behavior"`
	// Responses overrides canned chat event responses by key.
	Responses map[string]string `yaml:"responses,omitempty"`
}

// LobbyProfile describes the lobby the bot creates.
type LobbyProfile struct {
	PassKey         string `yaml:"pass_key"`
	GameName        string `yaml:"game_name"`
	GameMode        uint32 `yaml:"game_mode"`
	ServerRegion    uint32 `yaml:"server_region"`
	AllChat         bool   `yaml:"all_chat"`
	AllowCheats     bool   `yaml:"allow_cheats"`
	AllowSpectating bool   `yaml:"allow_spectating"`
	FillWithBots    bool   `yaml:"fill_with_bots"`
}

// Behavior toggles optional lobby behaviors.
type Behavior struct {
	CreateLobbyOnMenu    bool `yaml:"create_lobby_on_menu"`
	JoinBroadcastChannel bool `yaml:"join_broadcast_channel"`
	ShutdownOnPostgame   bool `yaml:"shutdown_on_postgame"`
}

// Default returns the built-in test lobby profile.
func Default() *Profile {
	return &Profile{
		PersonaName: "WebLeagueBot",
		Greeting:    "Hello, welcome to DOTA!",
		Lobby: LobbyProfile{
			PassKey:         "wltest",
			GameName:        "Test Lobby",
			GameMode:        1,
			ServerRegion:    2,
			AllowSpectating: true,
		},
		Behavior: Behavior{
			CreateLobbyOnMenu:    true,
			JoinBroadcastChannel: true,
			ShutdownOnPostgame:   true,
		},
	}
}

// LobbyDetails converts the lobby profile to provider lobby settings.
func (l LobbyProfile) LobbyDetails() provider.LobbyDetails {
	return provider.LobbyDetails{
		GameName:        l.GameName,
		GameMode:        l.GameMode,
		ServerRegion:    l.ServerRegion,
		AllChat:         l.AllChat,
		AllowCheats:     l.AllowCheats,
		AllowSpectating: l.AllowSpectating,
		FillWithBots:    l.FillWithBots,
	}
}

// Load loads a profile from a YAML file. Missing keys keep their Default
// values. Supports environment variable expansion in the form ${VAR_NAME} or
// ${VAR_NAME:default}.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}

	return Parse(data)
}

// LoadOrDefault is Load, falling back to Default when path does not exist.
func LoadOrDefault(path string) (*Profile, error) {
	p, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return p, err
}

// Parse parses and validates a YAML profile.
func Parse(data []byte) (*Profile, error) {
	expanded := expandEnvVars(string(data))

	p := Default()
	if err := yaml.Unmarshal([]byte(expanded), p); err != nil {
		return nil, fmt.Errorf("failed to parse YAML profile: %w", err)
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	return p, nil
}

// Validate validates the profile for common errors.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.PersonaName) == "" {
		return fmt.Errorf("persona_name is required")
	}
	if p.Lobby.PassKey == "" {
		return fmt.Errorf("lobby.pass_key is required")
	}
	if p.Lobby.GameName == "" {
		return fmt.Errorf("lobby.game_name is required")
	}
	if err := builtin.ValidateOverrides(p.Responses); err != nil {
		return fmt.Errorf("responses: %w", err)
	}
	return nil
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}.
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		parts := strings.SplitN(key, ":", 2)
		varName := parts[0]
		defaultValue := ""
		if len(parts) == 2 {
			defaultValue = parts[1]
		}

		value := os.Getenv(varName)
		if value == "" {
			return defaultValue
		}
		return value
	})
}
