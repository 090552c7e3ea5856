// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package fsm

import "fmt"

// StateConfig configures one state of a Machine. Methods return the receiver
// so a state can be described in a single chained expression.
type StateConfig[S comparable, T comparable] struct {
	machine   *Machine[S, T]
	state     S
	parent    S
	hasParent bool
	rules     map[T]rule[S]
	entry     []entryAction[S, T]
	exit      []func(Transition[S, T])
}

// SubstateOf makes the state a child of parent.
func (c *StateConfig[S, T]) SubstateOf(parent S) *StateConfig[S, T] {
	if parent == c.state || c.machine.isAncestor(c.state, parent) {
		c.machine.recordErr(fmt.Errorf("%w: %v cannot be a substate of %v", ErrCyclicHierarchy, c.state, parent))
		return c
	}
	c.machine.configure(parent)
	c.parent = parent
	c.hasParent = true
	return c
}

// Permit transitions to destination when trigger fires.
func (c *StateConfig[S, T]) Permit(trigger T, destination S) *StateConfig[S, T] {
	c.machine.configure(destination)
	return c.addRule(trigger, rule[S]{kind: ruleTarget, target: destination})
}

// PermitDynamic transitions to whatever selector returns at fire time.
func (c *StateConfig[S, T]) PermitDynamic(trigger T, selector func() S) *StateConfig[S, T] {
	if selector == nil {
		c.machine.recordErr(fmt.Errorf("%w: nil selector for %v on %v", ErrInvalidRule, trigger, c.state))
		return c
	}
	return c.addRule(trigger, rule[S]{kind: ruleDynamic, selector: selector})
}

// PermitReentry exits and re-enters this state when trigger fires.
func (c *StateConfig[S, T]) PermitReentry(trigger T) *StateConfig[S, T] {
	return c.addRule(trigger, rule[S]{kind: ruleReentry, target: c.state})
}

// Ignore accepts trigger without any transition or action.
func (c *StateConfig[S, T]) Ignore(trigger T) *StateConfig[S, T] {
	return c.addRule(trigger, rule[S]{kind: ruleIgnore})
}

// OnEntry registers an action run whenever the state is entered.
func (c *StateConfig[S, T]) OnEntry(fn func()) *StateConfig[S, T] {
	return c.OnEntryWith(func(Transition[S, T]) { fn() })
}

// OnEntryWith is OnEntry with access to the transition being taken.
func (c *StateConfig[S, T]) OnEntryWith(fn func(Transition[S, T])) *StateConfig[S, T] {
	c.entry = append(c.entry, entryAction[S, T]{fn: fn})
	return c
}

// OnEntryFrom registers an action run only when the state is entered by trigger.
func (c *StateConfig[S, T]) OnEntryFrom(trigger T, fn func()) *StateConfig[S, T] {
	c.entry = append(c.entry, entryAction[S, T]{
		fn:      func(Transition[S, T]) { fn() },
		from:    trigger,
		hasFrom: true,
	})
	return c
}

// OnExit registers an action run whenever the state is left.
func (c *StateConfig[S, T]) OnExit(fn func()) *StateConfig[S, T] {
	c.exit = append(c.exit, func(Transition[S, T]) { fn() })
	return c
}

func (c *StateConfig[S, T]) addRule(trigger T, r rule[S]) *StateConfig[S, T] {
	if existing, ok := c.rules[trigger]; ok {
		c.machine.recordErr(fmt.Errorf("%w: %v already has a %s rule for %v", ErrInvalidRule, c.state, existing.kind, trigger))
		return c
	}
	c.rules[trigger] = r
	return c
}

func (c *StateConfig[S, T]) runEntry(t Transition[S, T]) {
	for _, a := range c.entry {
		if a.appliesTo(t) {
			a.fn(t)
		}
	}
}

func (c *StateConfig[S, T]) runExit(t Transition[S, T]) {
	for _, fn := range c.exit {
		fn(t)
	}
}
