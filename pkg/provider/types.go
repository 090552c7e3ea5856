// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package provider

import (
	"fmt"

	"github.com/AccelByte/extend-lobby-bot/pkg/game"
)

// Result is a platform operation result code.
type Result int

const (
	ResultInvalid Result = iota
	ResultOK
	ResultFail
	ResultNoConnection
	ResultInvalidPassword
	ResultLoggedInElsewhere
	ResultBusy
	ResultServiceUnavailable
	ResultServiceReadOnly
	ResultTryAnotherCM
	ResultAccountLoginDeniedThrottle
	ResultAlreadyLoggedInElsewhere
	ResultBadResponse
	ResultConnectFailed
	ResultAccountNotFound
	ResultAccountLogonDenied
)

var resultNames = map[Result]string{
	ResultInvalid:                    "Invalid",
	ResultOK:                         "OK",
	ResultFail:                       "Fail",
	ResultNoConnection:               "NoConnection",
	ResultInvalidPassword:            "InvalidPassword",
	ResultLoggedInElsewhere:          "LoggedInElsewhere",
	ResultBusy:                       "Busy",
	ResultServiceUnavailable:         "ServiceUnavailable",
	ResultServiceReadOnly:            "ServiceReadOnly",
	ResultTryAnotherCM:               "TryAnotherCM",
	ResultAccountLoginDeniedThrottle: "AccountLoginDeniedThrottle",
	ResultAlreadyLoggedInElsewhere:   "AlreadyLoggedInElsewhere",
	ResultBadResponse:                "BadResponse",
	ResultConnectFailed:              "ConnectFailed",
	ResultAccountNotFound:            "AccountNotFound",
	ResultAccountLogonDenied:         "AccountLogonDenied",
}

func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// Retryable reports whether a failed log-on with this result is transient.
func (r Result) Retryable() bool {
	switch r {
	case ResultServiceUnavailable,
		ResultServiceReadOnly,
		ResultTryAnotherCM,
		ResultAccountLoginDeniedThrottle,
		ResultAlreadyLoggedInElsewhere,
		ResultBadResponse,
		ResultBusy,
		ResultConnectFailed:
		return true
	default:
		return false
	}
}

// PersonaState is the presence shown to friends.
type PersonaState int

const (
	PersonaOffline PersonaState = iota
	PersonaOnline
	PersonaBusy
	PersonaAway
)

func (s PersonaState) String() string {
	switch s {
	case PersonaOffline:
		return "Offline"
	case PersonaOnline:
		return "Online"
	case PersonaBusy:
		return "Busy"
	case PersonaAway:
		return "Away"
	default:
		return fmt.Sprintf("PersonaState(%d)", int(s))
	}
}

// GCConnectionStatus is the coordinator session status.
type GCConnectionStatus int

const (
	GCHaveSession GCConnectionStatus = iota
	GCNoSession
	GCNoSessionInLogonQueue
	GCNoSteam
	GCSuspended
)

func (s GCConnectionStatus) String() string {
	switch s {
	case GCHaveSession:
		return "HaveSession"
	case GCNoSession:
		return "NoSession"
	case GCNoSessionInLogonQueue:
		return "NoSessionInLogonQueue"
	case GCNoSteam:
		return "NoSteam"
	case GCSuspended:
		return "Suspended"
	default:
		return fmt.Sprintf("GCConnectionStatus(%d)", int(s))
	}
}

// ChannelType is the kind of a coordinator chat channel.
type ChannelType int

const (
	ChannelRegional ChannelType = iota
	ChannelCustom
	ChannelParty
	ChannelLobby
	ChannelTeam
)

// LobbyState is the phase of a practice lobby, in lifecycle order.
type LobbyState int

const (
	LobbyUI LobbyState = iota
	LobbyReadyUp
	LobbyServerSetup
	LobbyRun
	LobbyPostgame
	LobbyNotReady
	LobbyServerAssign
)

func (s LobbyState) String() string {
	switch s {
	case LobbyUI:
		return "UI"
	case LobbyReadyUp:
		return "ReadyUp"
	case LobbyServerSetup:
		return "ServerSetup"
	case LobbyRun:
		return "Run"
	case LobbyPostgame:
		return "Postgame"
	case LobbyNotReady:
		return "NotReady"
	case LobbyServerAssign:
		return "ServerAssign"
	default:
		return fmt.Sprintf("LobbyState(%d)", int(s))
	}
}

// Team is a lobby slot team.
type Team int

const (
	TeamGoodGuys Team = iota
	TeamBadGuys
	TeamBroadcaster
	TeamSpectator
	TeamPlayerPool
)

// LobbyMember is a member of a lobby.
type LobbyMember struct {
	ID   uint64
	Name string
	Team Team
}

// Lobby is a snapshot of a practice lobby as seen by the coordinator.
type Lobby struct {
	ID        uint64
	State     LobbyState
	PassKey   string
	Connect   string
	Members   []LobbyMember
	GameState game.GameState
}

// ChannelName returns the name of the lobby's chat channel.
func (l *Lobby) ChannelName() string {
	return fmt.Sprintf("Lobby_%d", l.ID)
}

// Clone returns a deep copy of the lobby.
func (l *Lobby) Clone() *Lobby {
	if l == nil {
		return nil
	}
	c := *l
	c.Members = append([]LobbyMember(nil), l.Members...)
	return &c
}

// LobbyDetails are the settings used when creating a lobby.
type LobbyDetails struct {
	GameName        string
	GameMode        uint32
	ServerRegion    uint32
	AllChat         bool
	AllowCheats     bool
	AllowSpectating bool
	FillWithBots    bool
}

// SessionState is the connection state of a game client.
type SessionState int

const (
	SessionDisconnected SessionState = iota
	SessionConnecting
	SessionConnected
	SessionLoading
	SessionPlay
)

func (s SessionState) String() string {
	switch s {
	case SessionDisconnected:
		return "Disconnected"
	case SessionConnecting:
		return "Connecting"
	case SessionConnected:
		return "Connected"
	case SessionLoading:
		return "Loading"
	case SessionPlay:
		return "Play"
	default:
		return fmt.Sprintf("SessionState(%d)", int(s))
	}
}
