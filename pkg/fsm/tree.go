// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package fsm

func (m *Machine[S, T]) config(state S) *StateConfig[S, T] {
	m.configMu.RLock()
	c, ok := m.configs[state]
	m.configMu.RUnlock()
	if ok {
		return c
	}
	return m.configure(state)
}

func (m *Machine[S, T]) parentOf(state S) (S, bool) {
	m.configMu.RLock()
	defer m.configMu.RUnlock()

	c, ok := m.configs[state]
	if !ok || !c.hasParent {
		var zero S
		return zero, false
	}
	return c.parent, true
}

// ancestry returns state followed by each of its ancestors up to the root.
func (m *Machine[S, T]) ancestry(state S) []S {
	chain := []S{state}
	for {
		parent, ok := m.parentOf(state)
		if !ok {
			return chain
		}
		chain = append(chain, parent)
		state = parent
	}
}

// isAncestor reports whether ancestor is a strict ancestor of state.
func (m *Machine[S, T]) isAncestor(ancestor, state S) bool {
	for _, s := range m.ancestry(state)[1:] {
		if s == ancestor {
			return true
		}
	}
	return false
}

// pathUp returns state and its ancestors, stopping before stop.
func (m *Machine[S, T]) pathUp(state, stop S) []S {
	var path []S
	for _, s := range m.ancestry(state) {
		if s == stop {
			break
		}
		path = append(path, s)
	}
	return path
}

func (m *Machine[S, T]) lowestCommonAncestor(a, b S) (S, bool) {
	seen := make(map[S]struct{})
	for _, s := range m.ancestry(a) {
		seen[s] = struct{}{}
	}
	for _, s := range m.ancestry(b) {
		if _, ok := seen[s]; ok {
			return s, true
		}
	}
	var zero S
	return zero, false
}

// findRule walks from state towards the root and returns the first rule
// configured for trigger along with the state that owns it.
func (m *Machine[S, T]) findRule(state S, trigger T) (rule[S], S, bool) {
	for _, s := range m.ancestry(state) {
		m.configMu.RLock()
		c, ok := m.configs[s]
		var r rule[S]
		var found bool
		if ok {
			r, found = c.rules[trigger]
		}
		m.configMu.RUnlock()
		if found {
			return r, s, true
		}
	}
	var zero S
	return rule[S]{}, zero, false
}

// PermittedTriggers lists the triggers with a rule in the current state chain.
func (m *Machine[S, T]) PermittedTriggers() []T {
	var triggers []T
	seen := make(map[T]struct{})
	for _, s := range m.ancestry(m.State()) {
		m.configMu.RLock()
		if c, ok := m.configs[s]; ok {
			for t, r := range c.rules {
				if _, dup := seen[t]; dup {
					continue
				}
				seen[t] = struct{}{}
				if r.kind != ruleIgnore {
					triggers = append(triggers, t)
				}
			}
		}
		m.configMu.RUnlock()
	}
	return triggers
}
