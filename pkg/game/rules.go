// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package game

import "fmt"

// GameState is the phase of a running match, in chronological order.
type GameState int

const (
	GameStateInit GameState = iota
	GameStateWaitForPlayersToLoad
	GameStateHeroSelection
	GameStateStrategyTime
	GameStatePreGame
	GameStateInProgress
	GameStatePostGame
	GameStateDisconnect
)

func (s GameState) String() string {
	switch s {
	case GameStateInit:
		return "Init"
	case GameStateWaitForPlayersToLoad:
		return "WaitForPlayersToLoad"
	case GameStateHeroSelection:
		return "HeroSelection"
	case GameStateStrategyTime:
		return "StrategyTime"
	case GameStatePreGame:
		return "PreGame"
	case GameStateInProgress:
		return "GameInProgress"
	case GameStatePostGame:
		return "PostGame"
	case GameStateDisconnect:
		return "Disconnect"
	default:
		return fmt.Sprintf("GameState(%d)", int(s))
	}
}

// ServerTeam identifies a side on the game server.
type ServerTeam int

const (
	TeamUnassigned ServerTeam = 0
	TeamSpectator  ServerTeam = 1
	TeamRadiant    ServerTeam = 2
	TeamDire       ServerTeam = 3
)

func (t ServerTeam) String() string {
	switch t {
	case TeamUnassigned:
		return "unassigned"
	case TeamSpectator:
		return "spectator"
	case TeamRadiant:
		return "radiant"
	case TeamDire:
		return "dire"
	default:
		return fmt.Sprintf("team(%d)", int(t))
	}
}

// IsPlaying reports whether the team is one of the two playing sides.
func (t ServerTeam) IsPlaying() bool {
	return t == TeamRadiant || t == TeamDire
}

// GameRules is the replicated match rules entity.
type GameRules struct {
	GameState     GameState
	PauseTeam     ServerTeam
	GameTime      float32
	GameStartTime float32
	NetTimeOfDay  int
}
