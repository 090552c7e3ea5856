// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package lobbybot runs a lobby bot: a client that keeps a transport session,
// a game coordinator session and a match session open against the platform,
// hosts a practice lobby and chats in the match.
//
// The lifecycle is a hierarchical state machine. Entry and exit actions open
// and release the nested sessions; provider events are turned into triggers
// by a dispatcher goroutine bound to the current transport.
package lobbybot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-lobby-bot/pkg/command"
	"github.com/AccelByte/extend-lobby-bot/pkg/command/builtin"
	"github.com/AccelByte/extend-lobby-bot/pkg/fsm"
	"github.com/AccelByte/extend-lobby-bot/pkg/metrics"
	"github.com/AccelByte/extend-lobby-bot/pkg/profile"
	"github.com/AccelByte/extend-lobby-bot/pkg/provider"
	"github.com/AccelByte/extend-lobby-bot/pkg/status"
)

const (
	// DefaultReconnectDelay is the delay between transport reconnect attempts.
	DefaultReconnectDelay = 3000 * time.Millisecond

	// DefaultMatchConnectDelay is how long DotaPlay waits before connecting
	// to the game server.
	DefaultMatchConnectDelay = 500 * time.Millisecond

	// MaxMatchAttempts bounds match session connects per DotaPlay visit.
	MaxMatchAttempts = 3
)

// StatusPublisher receives a status snapshot after every transition.
type StatusPublisher interface {
	Publish(status status.BotStatus)
}

// TransitionFunc observes lifecycle transitions.
type TransitionFunc func(source, destination State, trigger Trigger)

// Option configures a Bot.
type Option func(*Bot)

// WithReconnectDelay sets the transport reconnect delay. A negative delay
// disables automatic reconnects: a lost transport signs the bot off.
func WithReconnectDelay(delay time.Duration) Option {
	return func(b *Bot) {
		if delay < 0 {
			b.shouldReconnect = false
			return
		}
		b.shouldReconnect = true
		b.reconnectDelay = delay
	}
}

// WithMatchConnectDelay sets the delay before connecting to a game server.
func WithMatchConnectDelay(delay time.Duration) Option {
	return func(b *Bot) {
		b.matchConnectDelay = delay
	}
}

// WithProfile sets the lobby profile.
func WithProfile(p *profile.Profile) Option {
	return func(b *Bot) {
		b.profile = p
	}
}

// WithCommands sets the chat rules used by the game controller.
func WithCommands(registry *command.Registry) Option {
	return func(b *Bot) {
		b.commands = registry
	}
}

// WithStatusPublisher publishes a status snapshot after every transition.
func WithStatusPublisher(publisher StatusPublisher) Option {
	return func(b *Bot) {
		b.publisher = publisher
	}
}

// WithLogger sets the bot's logger.
func WithLogger(logger *logrus.Entry) Option {
	return func(b *Bot) {
		b.log = logger
	}
}

// Bot is one lobby bot instance.
type Bot struct {
	log       *logrus.Entry
	details   provider.LogOnDetails
	factory   provider.Factory
	profile   *profile.Profile
	commands  *command.Registry
	publisher StatusPublisher

	machine           *fsm.Machine[State, Trigger]
	shouldReconnect   bool
	reconnectDelay    time.Duration
	reconnect         *reconnectTimer
	matchConnectDelay time.Duration

	sessions sessions
	attempts attemptCounter
	tracker  lobbyTracker

	playMu     sync.Mutex
	playCancel context.CancelFunc

	hooksMu sync.RWMutex
	hooks   []TransitionFunc

	// wg tracks every goroutine the bot starts.
	wg sync.WaitGroup
}

// New creates a bot signed off and ready to Start.
func New(details provider.LogOnDetails, factory provider.Factory, opts ...Option) (*Bot, error) {
	if details.Username == "" {
		return nil, ErrMissingUsername
	}
	if factory == nil {
		return nil, ErrMissingFactory
	}

	b := &Bot{
		details:           details,
		factory:           factory,
		shouldReconnect:   true,
		reconnectDelay:    DefaultReconnectDelay,
		matchConnectDelay: DefaultMatchConnectDelay,
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.log == nil {
		b.log = logrus.WithField("bot", details.Username)
	}
	if b.profile == nil {
		b.profile = profile.Default()
	}
	if b.commands == nil {
		registry, err := builtin.NewRegistry(builtin.DefaultMessages().Apply(b.profile.Responses))
		if err != nil {
			return nil, fmt.Errorf("failed to build chat commands: %w", err)
		}
		b.commands = registry
	}

	b.reconnect = newReconnectTimer(b.reconnectDelay, func() { b.fire(TriggerConnectRequested) }, &b.wg)
	b.machine = fsm.New[State, Trigger](StateSignedOff)
	b.configure()
	if err := b.machine.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLifecycle, err)
	}

	b.log.Debugf("initialized lobby bot for %s", details.Username)
	return b, nil
}

func (b *Bot) configure() {
	m := b.machine
	m.OnTransitioned(b.onTransitioned)
	m.OnUnhandledTrigger(b.onUnhandledTrigger)

	m.Configure(StateConceived).
		Permit(TriggerShutdownRequested, StateSignedOff)

	m.Configure(StateSignedOff).
		SubstateOf(StateConceived).
		Permit(TriggerConnectRequested, StateSteam)

	m.Configure(StateRetryConnection).
		SubstateOf(StateSignedOff).
		OnEntry(b.reconnect.Start).
		OnExit(b.reconnect.Stop).
		Permit(TriggerConnectRequested, StateSteam)

	m.Configure(StateSteam).
		SubstateOf(StateConceived).
		OnEntry(b.openTransport).
		OnExit(b.releaseTransport).
		Permit(TriggerSteamConnected, StateDota).
		PermitDynamic(TriggerSteamDisconnected, b.disconnectedDestination).
		Permit(TriggerSteamInvalidCreds, StateSignedOff)

	m.Configure(StateDota).
		SubstateOf(StateSteam).
		OnEntryFrom(TriggerSteamConnected, b.openCoordinator).
		Permit(TriggerDotaConnected, StateDotaMenu).
		PermitReentry(TriggerDotaDisconnected).
		Permit(TriggerDotaEnteredLobbyUI, StateDotaLobby).
		Permit(TriggerDotaEnteredLobbyPlay, StateDotaPlay)

	// The coordinator repeats its welcome and session status. The leaves ignore
	// DotaConnected on purpose, shadowing Dota's Permit to DotaMenu, so a repeat
	// never drops the lobby or match.
	m.Configure(StateDotaMenu).
		SubstateOf(StateDota).
		OnEntry(b.createLobby).
		Ignore(TriggerDotaConnected).
		Ignore(TriggerDotaNoLobby)

	m.Configure(StateDotaLobby).
		SubstateOf(StateDota).
		OnEntry(b.joinBroadcastChannel).
		OnEntry(b.joinLobbyChat).
		OnExit(b.leaveLobbyChat).
		Ignore(TriggerDotaConnected).
		Ignore(TriggerDotaEnteredLobbyUI).
		Permit(TriggerDotaEnteredLobbyPlay, StateDotaPlay).
		Permit(TriggerDotaNoLobby, StateDotaMenu)

	m.Configure(StateDotaPlay).
		SubstateOf(StateDota).
		OnEntry(b.attempts.reset).
		OnEntry(b.scheduleMatchConnect).
		OnExit(b.cancelMatchConnect).
		OnExit(b.releaseMatch).
		Ignore(TriggerDotaConnected).
		Ignore(TriggerDotaEnteredLobbyPlay).
		Permit(TriggerDotaEnteredLobbyUI, StateDotaLobby).
		Permit(TriggerDotaNoLobby, StateDotaMenu)
}

func (b *Bot) disconnectedDestination() State {
	if b.shouldReconnect {
		return StateRetryConnection
	}
	return StateSignedOff
}

// Start connects the bot.
func (b *Bot) Start() {
	b.fire(TriggerConnectRequested)
}

// Stop releases every session and signs the bot off.
func (b *Bot) Stop() {
	b.fire(TriggerShutdownRequested)
}

// Wait blocks until every goroutine started by the bot has returned. Call it
// after the bot has reached SignedOff.
func (b *Bot) Wait() {
	b.wg.Wait()
}

// State returns the current lifecycle state.
func (b *Bot) State() State {
	return b.machine.State()
}

// IsInState reports whether the bot is in state or one of its substates.
func (b *Bot) IsInState(state State) bool {
	return b.machine.IsInState(state)
}

// Username returns the account the bot signs in with.
func (b *Bot) Username() string {
	return b.details.Username
}

// Lobby returns the last lobby snapshot seen, or nil.
func (b *Bot) Lobby() *provider.Lobby {
	return b.tracker.previous().Clone()
}

// MatchAttempts returns the match connect attempts of the current DotaPlay visit.
func (b *Bot) MatchAttempts() int {
	return b.attempts.value()
}

// OnTransition registers fn to observe every transition.
func (b *Bot) OnTransition(fn TransitionFunc) {
	b.hooksMu.Lock()
	defer b.hooksMu.Unlock()
	b.hooks = append(b.hooks, fn)
}

func (b *Bot) fire(trigger Trigger) {
	b.machine.Fire(trigger)
}

func (b *Bot) onTransitioned(t fsm.Transition[State, Trigger]) {
	b.log.Debugf("%s => %s (%s)", t.Source, t.Destination, t.Trigger)
	metrics.RecordTransition(b.details.Username, t.Source.String(), t.Destination.String(), t.Trigger.String())
	b.publishStatus(t)

	b.hooksMu.RLock()
	hooks := append([]TransitionFunc(nil), b.hooks...)
	b.hooksMu.RUnlock()
	for _, fn := range hooks {
		fn(t.Source, t.Destination, t.Trigger)
	}
}

func (b *Bot) onUnhandledTrigger(state State, trigger Trigger) {
	b.log.Debugf("ignoring %s in %s", trigger, state)
	metrics.RecordUnhandledTrigger(state.String(), trigger.String())
}

func (b *Bot) publishStatus(t fsm.Transition[State, Trigger]) {
	if b.publisher == nil {
		return
	}
	s := status.BotStatus{
		Username:      b.details.Username,
		State:         t.Destination.String(),
		PreviousState: t.Source.String(),
		Trigger:       t.Trigger.String(),
		MatchAttempts: b.attempts.value(),
		UpdatedAt:     time.Now().UTC(),
	}
	if lobby := b.tracker.previous(); lobby != nil {
		s.LobbyID = lobby.ID
		s.LobbyState = lobby.State.String()
	}
	b.publisher.Publish(s)
}

// attemptCounter counts match connect attempts.
type attemptCounter struct {
	mu sync.Mutex
	n  int
}

func (c *attemptCounter) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n = 0
}

func (c *attemptCounter) increment() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return c.n
}

func (c *attemptCounter) value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}
