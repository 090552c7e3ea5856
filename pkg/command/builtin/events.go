// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"fmt"

	"github.com/AccelByte/extend-lobby-bot/pkg/command"
	"github.com/AccelByte/extend-lobby-bot/pkg/game"
)

// CannedResponder says a fixed line for its event kinds.
type CannedResponder struct {
	ResponderName string
	EventKinds    []game.ChatEventKind
	Text          string
}

func (c CannedResponder) Name() string                               { return c.ResponderName }
func (c CannedResponder) Kinds() []game.ChatEventKind                { return c.EventKinds }
func (c CannedResponder) Respond(env *command.Env, _ game.ChatEvent) { env.Say(c.Text) }

// WelcomeResponder greets a player connecting or reconnecting.
type WelcomeResponder struct {
	Format string
}

func (WelcomeResponder) Name() string { return "welcome_back" }

func (WelcomeResponder) Kinds() []game.ChatEventKind {
	return []game.ChatEventKind{game.ChatEventConnect, game.ChatEventReconnect}
}

func (w WelcomeResponder) Respond(env *command.Env, ev game.ChatEvent) {
	env.Say(fmt.Sprintf(w.Format, ev.Value))
}
