// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package provider

// Event is a decoded event pushed by the provider.
type Event interface {
	EventName() string
}

// Transport events.
type (
	Connected    struct{}
	Disconnected struct{}
	LoggedOn     struct {
		Result Result
	}
	AccountInfo struct {
		PersonaName string
		Flags       uint32
	}
)

// Coordinator events.
type (
	GCWelcome                 struct{}
	GCConnectionStatusChanged struct {
		Status GCConnectionStatus
	}
	GCPopup struct {
		ID int
	}
	LobbySnapshot struct {
		Lobby *Lobby
	}
	LobbyUpdate struct {
		Lobby *Lobby
	}
	LobbyLeave              struct{}
	JoinChatChannelResponse struct {
		ChannelID   uint64
		ChannelName string
	}
	ChatMessage struct {
		ChannelID   uint64
		PersonaName string
		Text        string
	}
)

// Game client events.
type (
	HandshakeRejected struct {
		Reason string
	}
	SessionStateTransition struct {
		Old SessionState
		New SessionState
	}
	LogMessage struct {
		Message string
	}
)

func (Connected) EventName() string                 { return "connected" }
func (Disconnected) EventName() string              { return "disconnected" }
func (LoggedOn) EventName() string                  { return "logged_on" }
func (AccountInfo) EventName() string               { return "account_info" }
func (GCWelcome) EventName() string                 { return "gc_welcome" }
func (GCConnectionStatusChanged) EventName() string { return "gc_connection_status" }
func (GCPopup) EventName() string                   { return "gc_popup" }
func (LobbySnapshot) EventName() string             { return "lobby_snapshot" }
func (LobbyUpdate) EventName() string               { return "lobby_update" }
func (LobbyLeave) EventName() string                { return "lobby_leave" }
func (JoinChatChannelResponse) EventName() string   { return "join_chat_channel_response" }
func (ChatMessage) EventName() string               { return "chat_message" }
func (HandshakeRejected) EventName() string         { return "handshake_rejected" }
func (SessionStateTransition) EventName() string    { return "session_state_transition" }
func (LogMessage) EventName() string                { return "log_message" }
