// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package fsm

type ruleKind int

const (
	ruleTarget ruleKind = iota
	ruleDynamic
	ruleIgnore
	ruleReentry
)

func (k ruleKind) String() string {
	switch k {
	case ruleTarget:
		return "target"
	case ruleDynamic:
		return "dynamic"
	case ruleIgnore:
		return "ignore"
	case ruleReentry:
		return "reentry"
	default:
		return "unknown"
	}
}

// rule is the behaviour configured for one (state, trigger) pair.
type rule[S comparable] struct {
	kind     ruleKind
	target   S
	selector func() S
}

// destination resolves the state a target or dynamic rule leads to.
func (r rule[S]) destination() S {
	if r.kind == ruleDynamic {
		return r.selector()
	}
	return r.target
}

// Transition describes a state change, or a re-entry when Reentry is set.
type Transition[S comparable, T comparable] struct {
	Source      S
	Destination S
	Trigger     T
	Reentry     bool
}

type entryAction[S comparable, T comparable] struct {
	fn      func(Transition[S, T])
	from    T
	hasFrom bool
}

func (a entryAction[S, T]) appliesTo(t Transition[S, T]) bool {
	return !a.hasFrom || a.from == t.Trigger
}
