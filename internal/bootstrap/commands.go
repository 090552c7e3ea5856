// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-lobby-bot/pkg/command"
	"github.com/AccelByte/extend-lobby-bot/pkg/command/builtin"
	"github.com/AccelByte/extend-lobby-bot/pkg/profile"
)

// InitCommands creates the chat command registry used in matches.
//
// ============================================================
// DEVELOPER: Register custom chat commands here.
// ============================================================
// Chat commands answer all-chat lines containing their token;
// event responders answer server chat events (kills, reconnects).
//
// Steps to add a new command:
//  1. Create your command in pkg/command/builtin/ (see commands.go)
//  2. Implement the command.Command interface
//  3. Register it in pkg/command/builtin/init.go, or below for
//     commands that only this deployment needs
//
// Canned response texts are overridden by the `responses` map of
// the lobby profile.
// ============================================================
func InitCommands(p *profile.Profile) (*command.Registry, error) {
	messages := builtin.DefaultMessages().Apply(p.Responses)

	registry, err := builtin.NewRegistry(messages)
	if err != nil {
		return nil, fmt.Errorf("failed to register chat commands: %w", err)
	}

	// ============================================================
	// DEVELOPER: Register custom commands below
	// ============================================================
	// Example:
	// if err := registry.Register(mycommands.Roll{}); err != nil {
	//     return nil, err
	// }
	// ============================================================

	logrus.Infof("registered %d chat commands: %v", registry.Count(), registry.Tokens())
	return registry, nil
}
