// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package command holds the chat rules a game controller applies to all-chat
// lines and server chat events.
package command

import "github.com/AccelByte/extend-lobby-bot/pkg/game"

// Env is what a rule may read and do while handling one chat line or event.
type Env struct {
	// Rules is the game rules entity as of the current tick.
	Rules game.GameRules

	// Say sends a line to all-chat.
	Say func(text string)

	// Submit sends a raw console command to the game server.
	Submit func(command string)
}

// Command responds to all-chat lines containing its token.
type Command interface {
	// Token is the text a chat line must contain, e.g. "!pause".
	Token() string

	// Handle responds to msg.
	Handle(env *Env, msg game.ChatMessage)
}

// EventResponder responds to server chat events.
type EventResponder interface {
	// Name identifies the responder in logs and metrics.
	Name() string

	// Kinds returns the event kinds handled by the responder.
	Kinds() []game.ChatEventKind

	// Respond responds to ev.
	Respond(env *Env, ev game.ChatEvent)
}
