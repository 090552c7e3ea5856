// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package game holds the replicated match state a game client exposes to its
// controller: the entity pool and the inbound chat and event queues.
package game

import "sync"

// ChatMessage is a line of all-chat.
type ChatMessage struct {
	Prefix string
	Text   string
}

// ChatEventKind is the kind of a server-generated chat event.
type ChatEventKind int

const (
	ChatEventUnknown ChatEventKind = iota
	ChatEventFirstBlood
	ChatEventConnect
	ChatEventReconnect
	ChatEventDisconnect
	ChatEventHeroKill
	ChatEventTowerKill
)

func (k ChatEventKind) String() string {
	switch k {
	case ChatEventFirstBlood:
		return "FirstBlood"
	case ChatEventConnect:
		return "Connect"
	case ChatEventReconnect:
		return "Reconnect"
	case ChatEventDisconnect:
		return "Disconnect"
	case ChatEventHeroKill:
		return "HeroKill"
	case ChatEventTowerKill:
		return "TowerKill"
	default:
		return "Unknown"
	}
}

// ChatEvent is a server chat event such as a kill announcement.
type ChatEvent struct {
	Kind  ChatEventKind
	Value int
}

// GameEvent is a raw engine game event.
type GameEvent struct {
	ID   int
	Name string
}

// EntityPool holds replicated singleton entities.
type EntityPool struct {
	mu    sync.RWMutex
	rules *GameRules
}

// SetGameRules replaces the replicated game rules entity.
func (p *EntityPool) SetGameRules(rules GameRules) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rules = &rules
}

// UpdateGameRules mutates the game rules entity in place. It is a no-op when
// the entity has not been replicated yet.
func (p *EntityPool) UpdateGameRules(fn func(*GameRules)) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.rules == nil {
		return false
	}
	fn(p.rules)
	return true
}

// GameRules returns a copy of the game rules entity if it has been replicated.
func (p *EntityPool) GameRules() (GameRules, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.rules == nil {
		return GameRules{}, false
	}
	return *p.rules, true
}

// Reset forgets every replicated entity.
func (p *EntityPool) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rules = nil
}

// State is the emulated client state handed to a controller.
type State struct {
	Entities     *EntityPool
	ChatMessages *Queue[ChatMessage]
	ChatEvents   *Queue[ChatEvent]
	GameEvents   *Queue[GameEvent]
}

// NewState creates an empty client state.
func NewState() *State {
	return &State{
		Entities:     &EntityPool{},
		ChatMessages: NewQueue[ChatMessage](),
		ChatEvents:   NewQueue[ChatEvent](),
		GameEvents:   NewQueue[GameEvent](),
	}
}

// Commander submits console commands to the game server.
type Commander interface {
	Submit(command string)
}
