// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package command

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/AccelByte/extend-lobby-bot/pkg/game"
)

// Registry manages chat commands and event responders.
// It provides thread-safe registration and lookup.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
	// tokens is kept sorted longest first so Match prefers the most specific
	// token when one is a prefix of another ("!timeofday" over "!time").
	tokens []string
	events map[game.ChatEventKind]EventResponder
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
		events:   make(map[game.ChatEventKind]EventResponder),
	}
}

// Register adds a command.
// Returns an error if a command with the same token already exists.
func (r *Registry) Register(cmd Command) error {
	token := cmd.Token()
	if token == "" {
		return fmt.Errorf("command %T has an empty token", cmd)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[token]; exists {
		return fmt.Errorf("command %s already registered", token)
	}

	r.commands[token] = cmd
	r.tokens = append(r.tokens, token)
	sort.SliceStable(r.tokens, func(i, j int) bool {
		if len(r.tokens[i]) != len(r.tokens[j]) {
			return len(r.tokens[i]) > len(r.tokens[j])
		}
		return r.tokens[i] < r.tokens[j]
	})
	return nil
}

// RegisterEvent adds an event responder for each of its kinds.
// Returns an error if any kind already has a responder.
func (r *Registry) RegisterEvent(responder EventResponder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, kind := range responder.Kinds() {
		if existing, exists := r.events[kind]; exists {
			return fmt.Errorf("chat event %s already handled by %s", kind, existing.Name())
		}
	}
	for _, kind := range responder.Kinds() {
		r.events[kind] = responder
	}
	return nil
}

// Match returns the command whose token appears in text. When several do,
// the longest token wins.
func (r *Registry) Match(text string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, token := range r.tokens {
		if strings.Contains(text, token) {
			return r.commands[token], true
		}
	}
	return nil, false
}

// Event returns the responder for kind.
func (r *Registry) Event(kind game.ChatEventKind) (EventResponder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	responder, ok := r.events[kind]
	return responder, ok
}

// Tokens returns the registered command tokens, longest first.
func (r *Registry) Tokens() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.tokens...)
}

// Count returns the number of registered commands.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.commands)
}
