// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package status publishes lobby bot status to Redis so operators and other
// services can see what each bot is doing.
package status

import "time"

// BotStatus is the published view of one bot.
type BotStatus struct {
	Username      string    `json:"username"`
	State         string    `json:"state"`
	PreviousState string    `json:"previousState,omitempty"`
	Trigger       string    `json:"trigger,omitempty"`
	LobbyID       uint64    `json:"lobbyId,omitempty"`
	LobbyState    string    `json:"lobbyState,omitempty"`
	MatchAttempts int       `json:"matchAttempts"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
