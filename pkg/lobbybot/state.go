// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package lobbybot

import "fmt"

// State is a lifecycle state of a bot.
//
//	Conceived
//	├── SignedOff
//	│   └── RetryConnection
//	└── Steam
//	    └── Dota
//	        ├── DotaMenu
//	        ├── DotaLobby
//	        └── DotaPlay
type State int

const (
	StateConceived State = iota
	StateSignedOff
	StateRetryConnection
	StateSteam
	StateDota
	StateDotaMenu
	StateDotaLobby
	StateDotaPlay
)

var stateNames = [...]string{
	StateConceived:       "Conceived",
	StateSignedOff:       "SignedOff",
	StateRetryConnection: "RetryConnection",
	StateSteam:           "Steam",
	StateDota:            "Dota",
	StateDotaMenu:        "DotaMenu",
	StateDotaLobby:       "DotaLobby",
	StateDotaPlay:        "DotaPlay",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// States returns every lifecycle state.
func States() []State {
	states := make([]State, len(stateNames))
	for i := range stateNames {
		states[i] = State(i)
	}
	return states
}
