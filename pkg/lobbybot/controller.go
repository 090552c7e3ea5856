// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package lobbybot

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-lobby-bot/pkg/command"
	"github.com/AccelByte/extend-lobby-bot/pkg/game"
	"github.com/AccelByte/extend-lobby-bot/pkg/metrics"
)

// gameController answers all-chat while the bot is in a match. It is driven
// by the game client's tick loop and must never block.
type gameController struct {
	log      *logrus.Entry
	greeting string
	commands *command.Registry

	mu           sync.Mutex
	steamID      uint64
	state        *game.State
	commander    game.Commander
	hasSentHello bool
	lastPhase    game.GameState
}

func newGameController(log *logrus.Entry, greeting string, commands *command.Registry) *gameController {
	return &gameController{
		log:       log,
		greeting:  greeting,
		commands:  commands,
		lastPhase: game.GameStateInit,
	}
}

// Initialize binds the controller to a connecting game client.
func (c *gameController) Initialize(steamID uint64, state *game.State, commander game.Commander) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.steamID = steamID
	c.state = state
	c.commander = commander
}

// Tick runs once per engine tick.
func (c *gameController) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == nil || c.commander == nil {
		return
	}
	rules, ok := c.state.Entities.GameRules()
	if !ok {
		return
	}

	if rules.GameState != c.lastPhase {
		c.log.Debugf("game state %s => %s", c.lastPhase, rules.GameState)
		c.lastPhase = rules.GameState
	}

	if rules.GameState >= game.GameStateHeroSelection && !c.hasSentHello {
		c.hasSentHello = true
		c.say(c.greeting)
		c.log.Debugf("sent greeting to all chat")
	}

	env := &command.Env{
		Rules:  rules,
		Say:    c.say,
		Submit: c.commander.Submit,
	}

	for _, msg := range c.state.ChatMessages.Drain() {
		c.log.Debugf("[ALLCHAT] %s: %s", msg.Prefix, msg.Text)
		if cmd, ok := c.commands.Match(msg.Text); ok {
			metrics.RecordChatCommand(cmd.Token())
			cmd.Handle(env, msg)
		}
	}

	for _, ev := range c.state.ChatEvents.Drain() {
		c.log.Debugf("[CHATEVENT] %s: %d", ev.Kind, ev.Value)
		if responder, ok := c.commands.Event(ev.Kind); ok {
			metrics.RecordChatCommand(responder.Name())
			responder.Respond(env, ev)
		}
	}

	c.state.GameEvents.Drain()
}

func (c *gameController) say(text string) {
	c.commander.Submit(fmt.Sprintf("say \"%s\"", text))
}
