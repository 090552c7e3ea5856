// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package lobbybot

import "fmt"

// Trigger is an input to the lifecycle state machine.
type Trigger int

const (
	TriggerConnectRequested Trigger = iota
	TriggerShutdownRequested
	TriggerSteamConnected
	TriggerSteamDisconnected
	TriggerSteamInvalidCreds
	TriggerDotaConnected
	TriggerDotaDisconnected
	TriggerDotaEnteredLobbyUI
	TriggerDotaEnteredLobbyPlay
	TriggerDotaNoLobby
)

var triggerNames = [...]string{
	TriggerConnectRequested:     "ConnectRequested",
	TriggerShutdownRequested:    "ShutdownRequested",
	TriggerSteamConnected:       "SteamConnected",
	TriggerSteamDisconnected:    "SteamDisconnected",
	TriggerSteamInvalidCreds:    "SteamInvalidCreds",
	TriggerDotaConnected:        "DotaConnected",
	TriggerDotaDisconnected:     "DotaDisconnected",
	TriggerDotaEnteredLobbyUI:   "DotaEnteredLobbyUI",
	TriggerDotaEnteredLobbyPlay: "DotaEnteredLobbyPlay",
	TriggerDotaNoLobby:          "DotaNoLobby",
}

func (t Trigger) String() string {
	if t >= 0 && int(t) < len(triggerNames) {
		return triggerNames[t]
	}
	return fmt.Sprintf("Trigger(%d)", int(t))
}

// Triggers returns every trigger.
func Triggers() []Trigger {
	triggers := make([]Trigger, len(triggerNames))
	for i := range triggerNames {
		triggers[i] = Trigger(i)
	}
	return triggers
}
