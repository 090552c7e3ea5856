// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package mock provides an in-memory provider that records every call made
// against it, for tests.
package mock

import "sync"

// Call names recorded by the mock sessions.
const (
	CallNewTransport         = "factory.new_transport"
	CallConnect              = "transport.connect"
	CallDisconnect           = "transport.disconnect"
	CallLogOn                = "transport.log_on"
	CallLogOff               = "transport.log_off"
	CallSetPersonaName       = "transport.set_persona_name"
	CallSetPersonaState      = "transport.set_persona_state"
	CallCoordinatorStart     = "coordinator.start"
	CallCoordinatorStop      = "coordinator.stop"
	CallCreateLobby          = "coordinator.create_lobby"
	CallLeaveLobby           = "coordinator.leave_lobby"
	CallLaunchLobby          = "coordinator.launch_lobby"
	CallJoinChatChannel      = "coordinator.join_chat_channel"
	CallLeaveChatChannel     = "coordinator.leave_chat_channel"
	CallJoinBroadcastChannel = "coordinator.join_broadcast_channel"
	CallNewGameClient        = "coordinator.new_game_client"
	CallRegisterController   = "game.register_controller"
	CallGameConnect          = "game.connect"
	CallGameDisconnect       = "game.disconnect"
	CallGameClose            = "game.close"
	CallSubmit               = "game.submit"
)

// Call is one recorded invocation.
type Call struct {
	Name string
	Args []any
}

// Recorder is a concurrency-safe, ordered call log shared by every mock
// session created from the same factory.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
}

func (r *Recorder) record(name string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Name: name, Args: args})
}

// Calls returns a copy of every recorded call in order.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Names returns the names of every recorded call in order.
func (r *Recorder) Names() []string {
	calls := r.Calls()
	names := make([]string, len(calls))
	for i, c := range calls {
		names[i] = c.Name
	}
	return names
}

// Count returns how many times name was called.
func (r *Recorder) Count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Last returns the most recent call named name.
func (r *Recorder) Last(name string) (Call, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.calls) - 1; i >= 0; i-- {
		if r.calls[i].Name == name {
			return r.calls[i], true
		}
	}
	return Call{}, false
}

// Index returns the position of the first call named name, or -1.
func (r *Recorder) Index(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.calls {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Reset forgets every recorded call.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}
