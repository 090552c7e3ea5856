// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package fsm

import (
	"errors"
	"reflect"
	"sync"
	"testing"
)

type testState string

type testTrigger string

const (
	root   testState = "root"
	off    testState = "off"
	retry  testState = "retry"
	on     testState = "on"
	inner  testState = "inner"
	leafA  testState = "leafA"
	leafB  testState = "leafB"
	orphan testState = "orphan"

	goOn     testTrigger = "goOn"
	goOff    testTrigger = "goOff"
	toInner  testTrigger = "toInner"
	toA      testTrigger = "toA"
	toB      testTrigger = "toB"
	bounce   testTrigger = "bounce"
	noop     testTrigger = "noop"
	dynamic  testTrigger = "dynamic"
	unknown  testTrigger = "unknown"
	chained  testTrigger = "chained"
	toOrphan testTrigger = "toOrphan"
)

// recorder collects entry/exit actions in the order they ran.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(s string) func() {
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.calls = append(r.calls, s)
	}
}

func (r *recorder) take() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.calls
	r.calls = nil
	return out
}

func newTestMachine(t *testing.T, rec *recorder, toRetry *bool) *Machine[testState, testTrigger] {
	t.Helper()

	m := New[testState, testTrigger](off)

	m.Configure(root).
		Permit(goOff, off)

	m.Configure(off).
		SubstateOf(root).
		Permit(goOn, on)

	m.Configure(retry).
		SubstateOf(off).
		OnEntry(rec.add("enter retry")).
		OnExit(rec.add("exit retry")).
		Permit(goOn, on)

	m.Configure(on).
		SubstateOf(root).
		Permit(toInner, inner).
		PermitDynamic(dynamic, func() testState {
			if *toRetry {
				return retry
			}
			return off
		}).
		OnEntry(rec.add("enter on")).
		OnExit(rec.add("exit on"))

	m.Configure(inner).
		SubstateOf(on).
		Permit(toA, leafA).
		Permit(toB, leafB).
		PermitReentry(bounce).
		OnEntryFrom(toInner, rec.add("enter inner from toInner")).
		OnEntry(rec.add("enter inner")).
		OnExit(rec.add("exit inner"))

	m.Configure(leafA).
		SubstateOf(inner).
		Ignore(toA).
		Permit(toB, leafB).
		OnEntry(rec.add("enter leafA")).
		OnExit(rec.add("exit leafA"))

	m.Configure(leafB).
		SubstateOf(inner).
		Ignore(toB).
		Permit(toA, leafA).
		OnEntry(rec.add("enter leafB")).
		OnExit(rec.add("exit leafB"))

	if err := m.Err(); err != nil {
		t.Fatalf("unexpected configuration error: %v", err)
	}
	return m
}

func TestMachine_TransitionOrdering(t *testing.T) {
	rec := &recorder{}
	toRetry := false
	m := newTestMachine(t, rec, &toRetry)

	tests := []struct {
		name     string
		trigger  testTrigger
		expected testState
		calls    []string
	}{
		{
			name:     "sibling of ancestor",
			trigger:  goOn,
			expected: on,
			calls:    []string{"enter on"},
		},
		{
			name:     "into substate only runs child entry",
			trigger:  toInner,
			expected: inner,
			calls:    []string{"enter inner from toInner", "enter inner"},
		},
		{
			name:     "into leaf",
			trigger:  toA,
			expected: leafA,
			calls:    []string{"enter leafA"},
		},
		{
			name:     "between siblings",
			trigger:  toB,
			expected: leafB,
			calls:    []string{"exit leafA", "enter leafB"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.Fire(tt.trigger)
			if got := m.State(); got != tt.expected {
				t.Errorf("State() = %v, expected %v", got, tt.expected)
			}
			if got := rec.take(); !reflect.DeepEqual(got, tt.calls) {
				t.Errorf("actions = %v, expected %v", got, tt.calls)
			}
		})
	}

	t.Run("rule inherited from root unwinds every level", func(t *testing.T) {
		m.Fire(goOff)
		if got := m.State(); got != off {
			t.Errorf("State() = %v, expected %v", got, off)
		}
		expected := []string{"exit leafB", "exit inner", "exit on"}
		if got := rec.take(); !reflect.DeepEqual(got, expected) {
			t.Errorf("actions = %v, expected %v", got, expected)
		}
	})
}

func TestMachine_UnknownTriggerIsNoop(t *testing.T) {
	rec := &recorder{}
	toRetry := false
	m := newTestMachine(t, rec, &toRetry)

	var unhandled []testTrigger
	m.OnUnhandledTrigger(func(state testState, trigger testTrigger) {
		unhandled = append(unhandled, trigger)
	})

	for _, state := range []testState{off, on, inner, leafA, leafB} {
		m.setState(state)
		for _, trigger := range []testTrigger{unknown, noop, chained} {
			m.Fire(trigger)
			if got := m.State(); got != state {
				t.Errorf("Fire(%v) in %v moved to %v", trigger, state, got)
			}
		}
	}

	if got := rec.take(); len(got) != 0 {
		t.Errorf("unexpected actions for unknown triggers: %v", got)
	}
	if len(unhandled) != 15 {
		t.Errorf("unhandled hook called %d times, expected 15", len(unhandled))
	}
}

func TestMachine_Ignore(t *testing.T) {
	rec := &recorder{}
	toRetry := false
	m := newTestMachine(t, rec, &toRetry)
	m.setState(leafA)

	m.Fire(toA)

	if got := m.State(); got != leafA {
		t.Errorf("State() = %v, expected %v", got, leafA)
	}
	if got := rec.take(); len(got) != 0 {
		t.Errorf("ignored trigger ran actions: %v", got)
	}
}

func TestMachine_ReentryFromSubstate(t *testing.T) {
	rec := &recorder{}
	toRetry := false
	m := newTestMachine(t, rec, &toRetry)
	m.setState(leafB)

	var transitions []Transition[testState, testTrigger]
	m.OnTransitioned(func(tr Transition[testState, testTrigger]) {
		transitions = append(transitions, tr)
	})

	m.Fire(bounce)

	if got := m.State(); got != inner {
		t.Errorf("State() = %v, expected %v", got, inner)
	}
	expected := []string{"exit leafB", "exit inner", "enter inner"}
	if got := rec.take(); !reflect.DeepEqual(got, expected) {
		t.Errorf("actions = %v, expected %v", got, expected)
	}
	if len(transitions) != 1 || !transitions[0].Reentry || transitions[0].Source != leafB {
		t.Errorf("unexpected transitions: %+v", transitions)
	}
}

func TestMachine_PermitDynamic(t *testing.T) {
	tests := []struct {
		name     string
		toRetry  bool
		expected testState
		calls    []string
	}{
		{
			name:     "selector picks retry",
			toRetry:  true,
			expected: retry,
			calls:    []string{"exit leafA", "exit inner", "exit on", "enter retry"},
		},
		{
			name:     "selector picks off",
			toRetry:  false,
			expected: off,
			calls:    []string{"exit leafA", "exit inner", "exit on"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			toRetry := tt.toRetry
			m := newTestMachine(t, rec, &toRetry)
			m.setState(leafA)

			m.Fire(dynamic)

			if got := m.State(); got != tt.expected {
				t.Errorf("State() = %v, expected %v", got, tt.expected)
			}
			if got := rec.take(); !reflect.DeepEqual(got, tt.calls) {
				t.Errorf("actions = %v, expected %v", got, tt.calls)
			}
		})
	}
}

func TestMachine_TransitionToAncestorDoesNotReenter(t *testing.T) {
	rec := &recorder{}
	toRetry := false
	m := newTestMachine(t, rec, &toRetry)
	m.setState(retry)

	m.Fire(goOff)

	if got := m.State(); got != off {
		t.Errorf("State() = %v, expected %v", got, off)
	}
	expected := []string{"exit retry"}
	if got := rec.take(); !reflect.DeepEqual(got, expected) {
		t.Errorf("actions = %v, expected %v", got, expected)
	}
}

func TestMachine_FireFromActionIsQueued(t *testing.T) {
	rec := &recorder{}
	m := New[testState, testTrigger](off)
	m.Configure(off).Permit(goOn, on)
	m.Configure(on).
		Permit(toInner, inner).
		OnEntry(func() {
			rec.add("enter on")()
			m.Fire(toInner)
			rec.add("after nested fire")()
		})
	m.Configure(inner).
		SubstateOf(on).
		OnEntry(rec.add("enter inner"))

	m.Fire(goOn)

	if got := m.State(); got != inner {
		t.Errorf("State() = %v, expected %v", got, inner)
	}
	expected := []string{"enter on", "after nested fire", "enter inner"}
	if got := rec.take(); !reflect.DeepEqual(got, expected) {
		t.Errorf("actions = %v, expected %v", got, expected)
	}
}

func TestMachine_StateCommittedBeforeEntry(t *testing.T) {
	m := New[testState, testTrigger](off)
	var seen testState
	m.Configure(off).Permit(goOn, on)
	m.Configure(on).OnEntry(func() { seen = m.State() })

	m.Fire(goOn)

	if seen != on {
		t.Errorf("State() during entry = %v, expected %v", seen, on)
	}
}

func TestMachine_IsInStateAndCanFire(t *testing.T) {
	rec := &recorder{}
	toRetry := false
	m := newTestMachine(t, rec, &toRetry)
	m.setState(leafA)

	for _, s := range []testState{leafA, inner, on, root} {
		if !m.IsInState(s) {
			t.Errorf("IsInState(%v) = false, expected true", s)
		}
	}
	if m.IsInState(off) {
		t.Error("IsInState(off) = true, expected false")
	}
	if !m.CanFire(goOff) {
		t.Error("CanFire(goOff) = false, expected inherited rule")
	}
	if m.CanFire(unknown) {
		t.Error("CanFire(unknown) = true, expected false")
	}
}

func TestMachine_ConfigurationErrors(t *testing.T) {
	m := New[testState, testTrigger](off)
	m.Configure(on).SubstateOf(root)
	m.Configure(root).SubstateOf(on)
	m.Configure(off).Permit(goOn, on).Permit(goOn, orphan)

	err := m.Err()
	if !errors.Is(err, ErrCyclicHierarchy) {
		t.Errorf("Err() = %v, expected ErrCyclicHierarchy", err)
	}
	if !errors.Is(err, ErrInvalidRule) {
		t.Errorf("Err() = %v, expected ErrInvalidRule", err)
	}
}

func TestMachine_ConcurrentFireAndRead(t *testing.T) {
	rec := &recorder{}
	toRetry := true
	m := newTestMachine(t, rec, &toRetry)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Fire(goOn)
				m.Fire(toInner)
				m.Fire(toA)
				m.Fire(goOff)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = m.State()
				_ = m.IsInState(on)
			}
		}()
	}
	wg.Wait()

	m.Fire(goOff)
	if got := m.State(); got != off {
		t.Errorf("State() = %v, expected %v", got, off)
	}
}
