// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package fsm implements a small hierarchical state machine.
//
// States form a tree through SubstateOf. Firing a trigger looks up a rule on
// the current state and then on each ancestor in turn. A transition runs the
// exit actions from the current state up to (not including) the lowest common
// ancestor of source and destination, then the entry actions from just below
// that ancestor down to the destination. Triggers with no rule anywhere in the
// chain are ignored.
//
// Fire is safe for concurrent use. Triggers are processed one at a time in
// arrival order; a trigger fired while another is being processed, including
// one fired from inside an entry or exit action, is queued and handled by the
// goroutine already processing. State may be read at any time and reflects the
// last committed state.
package fsm

import (
	"errors"
	"sync"
)

// Machine is a hierarchical state machine over states S and triggers T.
type Machine[S comparable, T comparable] struct {
	configMu sync.RWMutex
	configs  map[S]*StateConfig[S, T]
	err      error

	stateMu sync.RWMutex
	state   S

	fireMu sync.Mutex
	queue  []T
	firing bool

	hooksMu        sync.RWMutex
	onTransitioned []func(Transition[S, T])
	onUnhandled    []func(state S, trigger T)
}

// New creates a machine starting in initial. Entry actions of the initial
// state are not run.
func New[S comparable, T comparable](initial S) *Machine[S, T] {
	m := &Machine[S, T]{
		configs: make(map[S]*StateConfig[S, T]),
		state:   initial,
	}
	m.configure(initial)
	return m
}

// Configure returns the configuration of state, creating it on first use.
func (m *Machine[S, T]) Configure(state S) *StateConfig[S, T] {
	return m.configure(state)
}

func (m *Machine[S, T]) configure(state S) *StateConfig[S, T] {
	m.configMu.Lock()
	defer m.configMu.Unlock()

	if c, ok := m.configs[state]; ok {
		return c
	}
	c := &StateConfig[S, T]{
		machine: m,
		state:   state,
		rules:   make(map[T]rule[S]),
	}
	m.configs[state] = c
	return c
}

// Err returns every configuration error recorded so far.
func (m *Machine[S, T]) Err() error {
	m.configMu.RLock()
	defer m.configMu.RUnlock()
	return m.err
}

func (m *Machine[S, T]) recordErr(err error) {
	m.configMu.Lock()
	defer m.configMu.Unlock()
	m.err = errors.Join(m.err, err)
}

// OnTransitioned registers a hook called after the state is committed and
// before entry actions run. Re-entries are reported with Reentry set.
func (m *Machine[S, T]) OnTransitioned(fn func(Transition[S, T])) {
	m.hooksMu.Lock()
	defer m.hooksMu.Unlock()
	m.onTransitioned = append(m.onTransitioned, fn)
}

// OnUnhandledTrigger registers a hook called when a trigger has no rule in
// the current state or any of its ancestors.
func (m *Machine[S, T]) OnUnhandledTrigger(fn func(state S, trigger T)) {
	m.hooksMu.Lock()
	defer m.hooksMu.Unlock()
	m.onUnhandled = append(m.onUnhandled, fn)
}

// State returns the current state.
func (m *Machine[S, T]) State() S {
	m.stateMu.RLock()
	defer m.stateMu.RUnlock()
	return m.state
}

// IsInState reports whether the current state is state or one of its substates.
func (m *Machine[S, T]) IsInState(state S) bool {
	current := m.State()
	if current == state {
		return true
	}
	return m.isAncestor(state, current)
}

// CanFire reports whether trigger has a rule in the current state chain.
func (m *Machine[S, T]) CanFire(trigger T) bool {
	_, _, ok := m.findRule(m.State(), trigger)
	return ok
}

// Fire processes trigger, or queues it when another trigger is in flight.
func (m *Machine[S, T]) Fire(trigger T) {
	m.fireMu.Lock()
	m.queue = append(m.queue, trigger)
	if m.firing {
		m.fireMu.Unlock()
		return
	}
	m.firing = true
	m.fireMu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			m.fireMu.Lock()
			m.firing = false
			m.queue = nil
			m.fireMu.Unlock()
			panic(r)
		}
	}()

	for {
		m.fireMu.Lock()
		if len(m.queue) == 0 {
			m.firing = false
			m.fireMu.Unlock()
			return
		}
		next := m.queue[0]
		m.queue = m.queue[1:]
		m.fireMu.Unlock()

		m.fireOne(next)
	}
}

func (m *Machine[S, T]) fireOne(trigger T) {
	current := m.State()
	r, owner, ok := m.findRule(current, trigger)
	if !ok {
		m.notifyUnhandled(current, trigger)
		return
	}

	switch r.kind {
	case ruleIgnore:
		return
	case ruleReentry:
		m.reenter(current, owner, trigger)
	default:
		destination := r.destination()
		if destination == current {
			m.reenter(current, current, trigger)
			return
		}
		m.transition(current, destination, trigger)
	}
}

// reenter exits from current up to and including target, then enters target.
func (m *Machine[S, T]) reenter(current, target S, trigger T) {
	t := Transition[S, T]{Source: current, Destination: target, Trigger: trigger, Reentry: true}

	for _, s := range m.pathUp(current, target) {
		m.config(s).runExit(t)
	}
	m.config(target).runExit(t)

	m.setState(target)
	m.notifyTransitioned(t)
	m.config(target).runEntry(t)
}

func (m *Machine[S, T]) transition(source, destination S, trigger T) {
	t := Transition[S, T]{Source: source, Destination: destination, Trigger: trigger}
	lca, hasLCA := m.lowestCommonAncestor(source, destination)

	var exits, entries []S
	if hasLCA {
		exits = m.pathUp(source, lca)
		entries = m.pathUp(destination, lca)
	} else {
		exits = m.ancestry(source)
		entries = m.ancestry(destination)
	}

	for _, s := range exits {
		m.config(s).runExit(t)
	}

	m.setState(destination)
	m.notifyTransitioned(t)

	for i := len(entries) - 1; i >= 0; i-- {
		m.config(entries[i]).runEntry(t)
	}
}

func (m *Machine[S, T]) setState(state S) {
	m.stateMu.Lock()
	m.state = state
	m.stateMu.Unlock()
}

func (m *Machine[S, T]) notifyTransitioned(t Transition[S, T]) {
	m.hooksMu.RLock()
	hooks := append([]func(Transition[S, T]){}, m.onTransitioned...)
	m.hooksMu.RUnlock()
	for _, fn := range hooks {
		fn(t)
	}
}

func (m *Machine[S, T]) notifyUnhandled(state S, trigger T) {
	m.hooksMu.RLock()
	hooks := append([]func(S, T){}, m.onUnhandled...)
	m.hooksMu.RUnlock()
	for _, fn := range hooks {
		fn(state, trigger)
	}
}
