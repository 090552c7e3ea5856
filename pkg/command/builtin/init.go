// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package builtin provides the stock chat commands and event responses.
package builtin

import (
	"fmt"

	"github.com/AccelByte/extend-lobby-bot/pkg/command"
	"github.com/AccelByte/extend-lobby-bot/pkg/game"
)

// RegisterBuiltinCommands registers every built-in command and event
// responder with registry.
func RegisterBuiltinCommands(registry *command.Registry, messages Messages) error {
	commands := []command.Command{
		PauseCommand{},
		WhoAmICommand{},
		TimeCommand{},
		TimeOfDayCommand{},
	}
	for _, cmd := range commands {
		if err := registry.Register(cmd); err != nil {
			return fmt.Errorf("failed to register command %s: %w", cmd.Token(), err)
		}
	}

	responders := []command.EventResponder{
		CannedResponder{ResponderName: KeyFirstBlood, EventKinds: []game.ChatEventKind{game.ChatEventFirstBlood}, Text: messages.FirstBlood},
		WelcomeResponder{Format: messages.WelcomeBack},
		CannedResponder{ResponderName: KeyHeroKill, EventKinds: []game.ChatEventKind{game.ChatEventHeroKill}, Text: messages.HeroKill},
		CannedResponder{ResponderName: KeyTowerKill, EventKinds: []game.ChatEventKind{game.ChatEventTowerKill}, Text: messages.TowerKill},
	}
	for _, r := range responders {
		if err := registry.RegisterEvent(r); err != nil {
			return fmt.Errorf("failed to register chat event responder %s: %w", r.Name(), err)
		}
	}

	return nil
}

// NewRegistry returns a registry holding the built-in rules.
func NewRegistry(messages Messages) (*command.Registry, error) {
	registry := command.NewRegistry()
	if err := RegisterBuiltinCommands(registry, messages); err != nil {
		return nil, err
	}
	return registry, nil
}
