// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package lobbybot

import (
	"sync"

	"github.com/AccelByte/extend-lobby-bot/pkg/game"
	"github.com/AccelByte/extend-lobby-bot/pkg/provider"
)

// lobbyTracker keeps the last lobby snapshot and the lobby chat channel.
type lobbyTracker struct {
	mu        sync.Mutex
	lobby     *provider.Lobby
	channelID uint64
}

func (t *lobbyTracker) previous() *provider.Lobby {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lobby
}

func (t *lobbyTracker) setPrevious(lobby *provider.Lobby) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lobby = lobby
}

func (t *lobbyTracker) channel() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.channelID
}

func (t *lobbyTracker) setChannel(id uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.channelID = id
}

// takeChannel returns the channel and forgets it.
func (t *lobbyTracker) takeChannel() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.channelID
	t.channelID = 0
	return id
}

func (t *lobbyTracker) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lobby = nil
	t.channelID = 0
}

// lobbyTrigger derives the trigger a lobby snapshot implies.
func lobbyTrigger(lobby *provider.Lobby) Trigger {
	switch {
	case lobby == nil:
		return TriggerDotaNoLobby
	case lobby.State == provider.LobbyUI || lobby.Connect == "":
		return TriggerDotaEnteredLobbyUI
	default:
		return TriggerDotaEnteredLobbyPlay
	}
}

// handleLobby diffs lobby against the previous snapshot and fires the
// derived trigger.
func (b *Bot) handleLobby(lobby *provider.Lobby) {
	prev := b.tracker.previous()

	switch {
	case prev == nil && lobby != nil:
		b.log.Debugf("entered lobby %d with state %s", lobby.ID, lobby.State)
		if b.shouldLeave(lobby) {
			if coordinator := b.sessions.currentCoordinator(); coordinator != nil {
				b.log.Debugf("leaving lobby %d", lobby.ID)
				coordinator.LeaveLobby()
			}
		}
	case prev != nil && lobby == nil:
		b.log.Debugf("exited lobby %d", prev.ID)
	}

	b.fire(lobbyTrigger(lobby))
	b.tracker.setPrevious(lobby.Clone())

	if lobby != nil && lobby.GameState == game.GameStatePostGame && b.profile.Behavior.ShutdownOnPostgame {
		b.log.Debugf("lobby %d reached postgame, shutting down", lobby.ID)
		b.Stop()
	}
}

// shouldLeave reports whether a newly joined lobby is not ours to host or
// is already past its match.
func (b *Bot) shouldLeave(lobby *provider.Lobby) bool {
	return lobby.PassKey != b.profile.Lobby.PassKey || lobby.State >= provider.LobbyPostgame
}

func (b *Bot) joinLobbyChat() {
	coordinator := b.sessions.currentCoordinator()
	if coordinator == nil {
		return
	}
	lobby := coordinator.Lobby()
	if lobby == nil {
		b.log.Warnf("joinLobbyChat called with no lobby")
		return
	}
	coordinator.JoinChatChannel(lobby.ChannelName(), provider.ChannelLobby)
}

func (b *Bot) leaveLobbyChat() {
	channelID := b.tracker.takeChannel()
	if channelID == 0 {
		return
	}
	if coordinator := b.sessions.currentCoordinator(); coordinator != nil {
		coordinator.LeaveChatChannel(channelID)
	}
}

func (b *Bot) joinBroadcastChannel() {
	if !b.profile.Behavior.JoinBroadcastChannel {
		return
	}
	if coordinator := b.sessions.currentCoordinator(); coordinator != nil {
		coordinator.JoinBroadcastChannel()
	}
}

// onJoinChatChannelResponse records the lobby channel, ignoring responses for
// channels of a lobby the bot has since left.
func (b *Bot) onJoinChatChannelResponse(e provider.JoinChatChannelResponse) {
	coordinator := b.sessions.currentCoordinator()
	if coordinator == nil || e.ChannelID == 0 {
		return
	}
	lobby := coordinator.Lobby()
	if lobby == nil || e.ChannelName != lobby.ChannelName() {
		b.log.Debugf("ignoring stale chat channel %s", e.ChannelName)
		return
	}
	b.tracker.setChannel(e.ChannelID)
}
