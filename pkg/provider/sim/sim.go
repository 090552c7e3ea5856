// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package sim is an in-process game platform. It answers the bot the way the
// real platform would: it signs in, welcomes the coordinator session, hosts
// the lobby, launches a match and plays it through to postgame.
package sim

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-lobby-bot/pkg/game"
	"github.com/AccelByte/extend-lobby-bot/pkg/provider"
)

const (
	DefaultTickInterval  = 33 * time.Millisecond
	DefaultTicksPerPhase = 30
	DefaultServerAddress = "127.0.0.1:27015"
)

// Options tunes the simulated platform.
type Options struct {
	// TickInterval is the engine tick period of simulated matches.
	TickInterval time.Duration
	// TicksPerPhase is how many ticks each game phase lasts.
	TicksPerPhase int
	// Latency delays every event the platform pushes.
	Latency time.Duration
	// AutoStart makes a lobby member ask the bot to launch once it joins
	// the lobby chat.
	AutoStart bool
	// Script is the match played on every game client. Empty uses DefaultScript.
	Script []Phase
	Logger *logrus.Entry
}

func (o Options) withDefaults() Options {
	if o.TickInterval <= 0 {
		o.TickInterval = DefaultTickInterval
	}
	if o.TicksPerPhase <= 0 {
		o.TicksPerPhase = DefaultTicksPerPhase
	}
	if len(o.Script) == 0 {
		o.Script = DefaultScript()
	}
	if o.Logger == nil {
		o.Logger = logrus.WithField("provider", "sim")
	}
	return o
}

// Factory creates simulated transports.
type Factory struct {
	opts    Options
	lobbyID atomic.Uint64
}

// NewFactory creates a simulated platform.
func NewFactory(opts Options) *Factory {
	f := &Factory{opts: opts.withDefaults()}
	f.lobbyID.Store(1000)
	return f
}

func (f *Factory) NewTransport(events chan<- provider.Event) (provider.Transport, error) {
	t := &transport{
		factory:     f,
		log:         f.opts.Logger,
		emitter:     newEmitter(events, f.opts.Latency),
		personaName: "unnamed",
	}
	t.coordinator = &coordinator{transport: t, log: f.opts.Logger}
	return t, nil
}

type transport struct {
	factory     *Factory
	log         *logrus.Entry
	emitter     *emitter
	coordinator *coordinator

	mu           sync.Mutex
	personaName  string
	personaState provider.PersonaState
	username     string
}

func (t *transport) Connect() error {
	t.emitter.start()
	t.emitter.emit(provider.Connected{})
	return nil
}

func (t *transport) Disconnect() {
	t.coordinator.Stop()
	t.emitter.stop()
}

func (t *transport) LogOn(details provider.LogOnDetails) error {
	if details.Password == "" {
		t.emitter.emit(provider.LoggedOn{Result: provider.ResultInvalidPassword})
		return nil
	}

	t.mu.Lock()
	t.username = details.Username
	name := t.personaName
	t.mu.Unlock()

	t.emitter.emit(provider.LoggedOn{Result: provider.ResultOK})
	t.emitter.emit(provider.AccountInfo{PersonaName: name})
	return nil
}

func (t *transport) LogOff() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.username = ""
}

func (t *transport) PersonaName() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.personaName
}

func (t *transport) SetPersonaName(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.personaName = name
}

func (t *transport) SetPersonaState(state provider.PersonaState) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.personaState = state
}

func (t *transport) Coordinator() provider.Coordinator {
	return t.coordinator
}

// emitter delivers events in order from its own goroutine so that platform
// calls made from inside the bot's dispatcher never block on the event channel.
type emitter struct {
	events  chan<- provider.Event
	latency time.Duration
	queue   *game.Queue[provider.Event]

	wake chan struct{}
	done chan struct{}

	startOnce sync.Once
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

func newEmitter(events chan<- provider.Event, latency time.Duration) *emitter {
	return &emitter{
		events:  events,
		latency: latency,
		queue:   game.NewQueue[provider.Event](),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

func (e *emitter) start() {
	e.startOnce.Do(func() {
		e.wg.Add(1)
		go e.run()
	})
}

// stop drops undelivered events and waits for the goroutine to exit.
func (e *emitter) stop() {
	e.stopOnce.Do(func() {
		close(e.done)
	})
	e.wg.Wait()
}

func (e *emitter) emit(ev provider.Event) {
	select {
	case <-e.done:
		return
	default:
	}
	e.queue.Append(ev)
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

func (e *emitter) run() {
	defer e.wg.Done()

	for {
		select {
		case <-e.done:
			return
		case <-e.wake:
		}

		for _, ev := range e.queue.Drain() {
			if !e.deliver(ev) {
				return
			}
		}
	}
}

func (e *emitter) deliver(ev provider.Event) bool {
	if e.latency > 0 {
		timer := time.NewTimer(e.latency)
		select {
		case <-e.done:
			timer.Stop()
			return false
		case <-timer.C:
		}
	}

	select {
	case <-e.done:
		return false
	case e.events <- ev:
		return true
	}
}

var (
	_ provider.Factory   = (*Factory)(nil)
	_ provider.Transport = (*transport)(nil)
)
