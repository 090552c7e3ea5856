// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package provider defines the contract of the external session provider: the
// transport, coordinator and match sessions a lobby bot drives, and the typed
// events they push back.
package provider

import "github.com/AccelByte/extend-lobby-bot/pkg/game"

// LogOnDetails are the credentials used to sign in on the transport.
type LogOnDetails struct {
	Username string
	Password string
}

// Factory creates transport sessions. Every event produced by the transport,
// its coordinator and its game client is sent to events.
type Factory interface {
	NewTransport(events chan<- Event) (Transport, error)
}

// Transport is the low-level authenticated connection to the platform.
type Transport interface {
	Connect() error
	Disconnect()
	LogOn(details LogOnDetails) error
	LogOff()
	PersonaName() string
	SetPersonaName(name string)
	SetPersonaState(state PersonaState)
	Coordinator() Coordinator
}

// Coordinator is the game coordinator session layered on a transport.
type Coordinator interface {
	Start() error
	Stop()
	// Lobby returns the coordinator's current view of the lobby, or nil.
	Lobby() *Lobby
	CreateLobby(passKey string, details LobbyDetails) error
	LeaveLobby()
	LaunchLobby()
	JoinChatChannel(name string, channelType ChannelType)
	LeaveChatChannel(channelID uint64)
	JoinBroadcastChannel()
	NewGameClient() (GameClient, error)
}

// GameClient is the match session connecting to a game server.
type GameClient interface {
	RegisterController(controller Controller)
	Connect() error
	Disconnect()
	Close() error
}

// Controller is driven by a game client once per engine tick.
type Controller interface {
	Initialize(steamID uint64, state *game.State, commander game.Commander)
	// Tick must return promptly.
	Tick()
}
