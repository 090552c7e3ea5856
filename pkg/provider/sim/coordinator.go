// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package sim

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-lobby-bot/pkg/game"
	"github.com/AccelByte/extend-lobby-bot/pkg/provider"
)

// ErrNotStarted is returned by coordinator calls made before Start.
var ErrNotStarted = errors.New("sim: coordinator session not started")

const simPlayer = "sim-player"

type coordinator struct {
	transport *transport
	log       *logrus.Entry

	mu          sync.Mutex
	started     bool
	lobby       *provider.Lobby
	gameClients []*gameClient
}

func (c *coordinator) emit(ev provider.Event) {
	c.transport.emitter.emit(ev)
}

func (c *coordinator) Start() error {
	c.mu.Lock()
	c.started = true
	c.mu.Unlock()

	c.emit(provider.GCWelcome{})
	return nil
}

func (c *coordinator) Stop() {
	c.mu.Lock()
	c.started = false
	c.lobby = nil
	clients := c.gameClients
	c.gameClients = nil
	c.mu.Unlock()

	for _, gc := range clients {
		gc.Disconnect()
	}
}

func (c *coordinator) Lobby() *provider.Lobby {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lobby.Clone()
}

func (c *coordinator) CreateLobby(passKey string, details provider.LobbyDetails) error {
	c.mu.Lock()
	if !c.started {
		c.mu.Unlock()
		return ErrNotStarted
	}
	c.lobby = &provider.Lobby{
		ID:      c.transport.factory.lobbyID.Add(1),
		State:   provider.LobbyUI,
		PassKey: passKey,
		Members: []provider.LobbyMember{{ID: 1, Name: c.transport.PersonaName(), Team: provider.TeamPlayerPool}},
	}
	snapshot := c.lobby.Clone()
	c.mu.Unlock()

	c.log.Debugf("created lobby %d (%s)", snapshot.ID, details.GameName)
	c.emit(provider.LobbySnapshot{Lobby: snapshot})
	return nil
}

func (c *coordinator) LeaveLobby() {
	c.mu.Lock()
	c.lobby = nil
	c.mu.Unlock()
	c.emit(provider.LobbyLeave{})
}

func (c *coordinator) LaunchLobby() {
	snapshot := c.updateLobby(func(l *provider.Lobby) {
		l.State = provider.LobbyRun
		l.Connect = DefaultServerAddress
	})
	if snapshot != nil {
		c.log.Debugf("launched lobby %d", snapshot.ID)
	}
}

// updateLobby mutates the current lobby and pushes the update. It returns nil
// when there is no lobby.
func (c *coordinator) updateLobby(fn func(*provider.Lobby)) *provider.Lobby {
	c.mu.Lock()
	if c.lobby == nil {
		c.mu.Unlock()
		return nil
	}
	fn(c.lobby)
	snapshot := c.lobby.Clone()
	c.mu.Unlock()

	c.emit(provider.LobbyUpdate{Lobby: snapshot})
	return snapshot
}

func (c *coordinator) JoinChatChannel(name string, channelType provider.ChannelType) {
	c.mu.Lock()
	lobby := c.lobby
	c.mu.Unlock()
	if lobby == nil {
		return
	}

	channelID := lobby.ID
	c.emit(provider.JoinChatChannelResponse{ChannelID: channelID, ChannelName: name})
	if channelType == provider.ChannelLobby && c.transport.factory.opts.AutoStart {
		c.emit(provider.ChatMessage{ChannelID: channelID, PersonaName: simPlayer, Text: "ready, !start"})
	}
}

func (c *coordinator) LeaveChatChannel(channelID uint64) {
	c.log.Debugf("left chat channel %d", channelID)
}

func (c *coordinator) JoinBroadcastChannel() {
	c.log.Debugf("joined broadcast channel")
}

func (c *coordinator) NewGameClient() (provider.GameClient, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started {
		return nil, ErrNotStarted
	}
	gc := &gameClient{coordinator: c, opts: c.transport.factory.opts}
	c.gameClients = append(c.gameClients, gc)
	return gc, nil
}

// onPhase mirrors the match phase into the lobby.
func (c *coordinator) onPhase(phase game.GameState) {
	c.updateLobby(func(l *provider.Lobby) {
		l.GameState = phase
		if phase == game.GameStatePostGame {
			l.State = provider.LobbyPostgame
		}
	})
}

var _ provider.Coordinator = (*coordinator)(nil)
