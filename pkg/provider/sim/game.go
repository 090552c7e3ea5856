// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package sim

import (
	"strings"
	"sync"
	"time"

	"github.com/AccelByte/extend-lobby-bot/pkg/game"
	"github.com/AccelByte/extend-lobby-bot/pkg/provider"
)

const botSteamID = 76561198000000001

// Phase is one step of a scripted match. Chat and events are queued on the
// first tick of the phase.
type Phase struct {
	State  game.GameState
	Chat   []game.ChatMessage
	Events []game.ChatEvent
}

// DefaultScript plays a short match that exercises every built-in command.
func DefaultScript() []Phase {
	return []Phase{
		{State: game.GameStateWaitForPlayersToLoad},
		{State: game.GameStateHeroSelection, Chat: []game.ChatMessage{
			{Prefix: simPlayer, Text: "glhf"},
			{Prefix: simPlayer, Text: "!whoami"},
		}},
		{State: game.GameStateStrategyTime},
		{State: game.GameStatePreGame, Chat: []game.ChatMessage{
			{Prefix: simPlayer, Text: "!time"},
		}},
		{State: game.GameStateInProgress,
			Chat: []game.ChatMessage{
				{Prefix: simPlayer, Text: "!pause"},
				{Prefix: simPlayer, Text: "!timeofday"},
			},
			Events: []game.ChatEvent{
				{Kind: game.ChatEventFirstBlood},
				{Kind: game.ChatEventReconnect, Value: 3},
				{Kind: game.ChatEventTowerKill},
			},
		},
		{State: game.GameStatePostGame},
	}
}

// gameClient plays the script against the registered controller, ticking
// it from its own engine loop.
type gameClient struct {
	coordinator *coordinator
	opts        Options

	mu         sync.Mutex
	controller provider.Controller
	state      *game.State
	session    provider.SessionState
	stop       chan struct{}
	wg         sync.WaitGroup

	commandsMu sync.Mutex
	commands   []string
}

func (g *gameClient) RegisterController(controller provider.Controller) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.controller = controller
}

func (g *gameClient) Connect() error {
	g.mu.Lock()
	if g.stop != nil {
		g.mu.Unlock()
		return nil
	}
	g.state = game.NewState()
	g.stop = make(chan struct{})
	stop := g.stop
	state := g.state
	controller := g.controller
	g.mu.Unlock()

	if controller != nil {
		controller.Initialize(botSteamID, state, g)
	}
	for _, next := range []provider.SessionState{provider.SessionConnecting, provider.SessionConnected, provider.SessionLoading, provider.SessionPlay} {
		g.setSession(next)
	}

	g.wg.Add(1)
	go g.run(stop, state, controller)
	return nil
}

// Disconnect stops the engine loop. It emits no session events.
func (g *gameClient) Disconnect() {
	g.mu.Lock()
	stop := g.stop
	g.stop = nil
	g.session = provider.SessionDisconnected
	g.mu.Unlock()

	if stop != nil {
		close(stop)
	}
	g.wg.Wait()
}

func (g *gameClient) Close() error {
	g.Disconnect()
	g.mu.Lock()
	defer g.mu.Unlock()
	g.controller = nil
	return nil
}

func (g *gameClient) setSession(next provider.SessionState) {
	g.mu.Lock()
	old := g.session
	g.session = next
	g.mu.Unlock()
	g.coordinator.emit(provider.SessionStateTransition{Old: old, New: next})
}

// Submit runs a console command on the simulated server.
func (g *gameClient) Submit(command string) {
	g.commandsMu.Lock()
	g.commands = append(g.commands, command)
	g.commandsMu.Unlock()

	switch {
	case command == "dota_pause":
		g.mu.Lock()
		state := g.state
		g.mu.Unlock()
		if state != nil {
			state.Entities.UpdateGameRules(func(r *game.GameRules) {
				r.PauseTeam = game.TeamRadiant
			})
		}
	case strings.HasPrefix(command, "say "):
		g.coordinator.emit(provider.LogMessage{Message: command})
	}
}

// Commands returns every console command submitted so far.
func (g *gameClient) Commands() []string {
	g.commandsMu.Lock()
	defer g.commandsMu.Unlock()
	return append([]string(nil), g.commands...)
}

func (g *gameClient) run(stop <-chan struct{}, state *game.State, controller provider.Controller) {
	defer g.wg.Done()

	ticker := time.NewTicker(g.opts.TickInterval)
	defer ticker.Stop()

	m := newMatch(g.opts, state)
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		if phase, changed := m.advance(); changed {
			g.coordinator.log.Debugf("match phase %s", phase)
			g.coordinator.onPhase(phase)
		}
		if controller != nil {
			controller.Tick()
		}
	}
}

// match advances the replicated game rules through the script.
type match struct {
	script        []Phase
	ticksPerPhase int
	tickSeconds   float32
	state         *game.State

	tick  int
	index int
}

func newMatch(opts Options, state *game.State) *match {
	state.Entities.SetGameRules(game.GameRules{GameState: game.GameStateInit})
	return &match{
		script:        opts.Script,
		ticksPerPhase: opts.TicksPerPhase,
		tickSeconds:   float32(opts.TickInterval.Seconds()),
		state:         state,
		index:         -1,
	}
}

// advance runs one tick and reports the phase the match entered, if any.
func (m *match) advance() (game.GameState, bool) {
	m.tick++
	m.state.Entities.UpdateGameRules(func(r *game.GameRules) {
		r.GameTime += m.tickSeconds
		r.NetTimeOfDay = (r.NetTimeOfDay + 16) % 65536
	})

	last := len(m.script) - 1
	if m.index == last || (m.index >= 0 && m.tick < m.ticksPerPhase) {
		return 0, false
	}

	m.tick = 0
	m.index++
	phase := m.script[m.index]
	m.state.Entities.UpdateGameRules(func(r *game.GameRules) {
		r.GameState = phase.State
		if phase.State == game.GameStateInProgress {
			r.GameStartTime = r.GameTime
		}
	})
	m.state.ChatMessages.Append(phase.Chat...)
	m.state.ChatEvents.Append(phase.Events...)
	return phase.State, true
}

var (
	_ provider.GameClient = (*gameClient)(nil)
	_ game.Commander      = (*gameClient)(nil)
)
