// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"fmt"

	"github.com/AccelByte/extend-lobby-bot/pkg/command"
	"github.com/AccelByte/extend-lobby-bot/pkg/game"
)

// Tokens of the built-in commands.
const (
	PauseToken     = "!pause"
	WhoAmIToken    = "!whoami"
	TimeToken      = "!time"
	TimeOfDayToken = "!timeofday"
)

// PauseCommandName is the console command that pauses the game.
const PauseCommandName = "dota_pause"

// PauseCommand pauses the game unless a team already has.
type PauseCommand struct{}

func (PauseCommand) Token() string { return PauseToken }

func (PauseCommand) Handle(env *command.Env, msg game.ChatMessage) {
	if env.Rules.PauseTeam.IsPlaying() {
		env.Say(fmt.Sprintf("The game is already paused by %s.", env.Rules.PauseTeam))
		return
	}
	env.Say(fmt.Sprintf("Pausing the game by request from %s!", msg.Prefix))
	env.Submit(PauseCommandName)
}

// WhoAmICommand echoes the sender's name.
type WhoAmICommand struct{}

func (WhoAmICommand) Token() string { return WhoAmIToken }

func (WhoAmICommand) Handle(env *command.Env, msg game.ChatMessage) {
	env.Say(fmt.Sprintf("You are %s!", msg.Prefix))
}

// TimeCommand reports the game clock.
type TimeCommand struct{}

func (TimeCommand) Token() string { return TimeToken }

func (TimeCommand) Handle(env *command.Env, _ game.ChatMessage) {
	env.Say(fmt.Sprintf("Current game time is %g, game started at %g.", env.Rules.GameTime, env.Rules.GameStartTime))
}

// TimeOfDayCommand reports the in-game time of day.
type TimeOfDayCommand struct{}

func (TimeOfDayCommand) Token() string { return TimeOfDayToken }

func (TimeOfDayCommand) Handle(env *command.Env, _ game.ChatMessage) {
	env.Say(fmt.Sprintf("Time of day is: %d", env.Rules.NetTimeOfDay))
}
