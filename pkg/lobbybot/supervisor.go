// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package lobbybot

import (
	"context"
	"sync"
	"time"

	"github.com/AccelByte/extend-lobby-bot/pkg/metrics"
	"github.com/AccelByte/extend-lobby-bot/pkg/provider"
)

// eventBufferSize bounds the events a transport may queue for its dispatcher.
const eventBufferSize = 64

// sessions holds the nested sessions. References are swapped under the lock;
// provider calls are made outside it.
type sessions struct {
	mu             sync.Mutex
	transport      provider.Transport
	coordinator    provider.Coordinator
	gameClient     provider.GameClient
	matchOpen      bool
	cancelDispatch context.CancelFunc
}

func (s *sessions) currentTransport() provider.Transport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transport
}

func (s *sessions) currentCoordinator() provider.Coordinator {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coordinator
}

func (s *sessions) currentGameClient() provider.GameClient {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameClient
}

// openTransport replaces any transport with a fresh one and connects it.
func (b *Bot) openTransport() {
	b.releaseTransport()

	events := make(chan provider.Event, eventBufferSize)
	transport, err := b.factory.NewTransport(events)
	if err != nil {
		b.log.Errorf("failed to create transport: %v", err)
		b.fire(TriggerSteamDisconnected)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.sessions.mu.Lock()
	b.sessions.transport = transport
	b.sessions.cancelDispatch = cancel
	b.sessions.mu.Unlock()

	b.wg.Add(1)
	go b.dispatch(ctx, events)

	metrics.RecordTransportConnect()
	b.log.Debugf("connecting transport")
	if err := transport.Connect(); err != nil {
		b.log.Errorf("failed to connect transport: %v", err)
		b.fire(TriggerSteamDisconnected)
	}
}

// releaseTransport releases every nested session, signs off and stops the
// transport's dispatcher. Safe to call with nothing open.
func (b *Bot) releaseTransport() {
	b.releaseCoordinator()

	b.sessions.mu.Lock()
	transport := b.sessions.transport
	cancel := b.sessions.cancelDispatch
	b.sessions.transport = nil
	b.sessions.cancelDispatch = nil
	b.sessions.mu.Unlock()

	if transport != nil {
		transport.SetPersonaState(provider.PersonaOffline)
		transport.LogOff()
		transport.Disconnect()
		b.log.Debugf("released transport")
	}
	if cancel != nil {
		cancel()
	}
}

// openCoordinator starts the coordinator session on the signed-in transport
// and prepares its game client.
func (b *Bot) openCoordinator() {
	transport := b.sessions.currentTransport()
	if transport == nil {
		b.log.Warnf("cannot open coordinator without a transport")
		return
	}

	coordinator := transport.Coordinator()
	b.sessions.mu.Lock()
	b.sessions.coordinator = coordinator
	b.sessions.mu.Unlock()

	if err := coordinator.Start(); err != nil {
		b.log.Errorf("failed to start coordinator session: %v", err)
		return
	}

	gameClient, err := coordinator.NewGameClient()
	if err != nil {
		b.log.Errorf("failed to create game client: %v", err)
		return
	}
	gameClient.RegisterController(newGameController(b.log, b.profile.Greeting, b.commands))

	b.sessions.mu.Lock()
	b.sessions.gameClient = gameClient
	b.sessions.mu.Unlock()
	b.log.Debugf("coordinator session started")
}

// releaseCoordinator releases the match session, disposes the game client and
// stops the coordinator. Safe to call with nothing open.
func (b *Bot) releaseCoordinator() {
	b.releaseMatch()

	b.sessions.mu.Lock()
	gameClient := b.sessions.gameClient
	coordinator := b.sessions.coordinator
	b.sessions.gameClient = nil
	b.sessions.coordinator = nil
	b.sessions.mu.Unlock()

	if gameClient != nil {
		if err := gameClient.Close(); err != nil {
			b.log.Warnf("failed to close game client: %v", err)
		}
	}
	if coordinator != nil {
		coordinator.Stop()
		b.log.Debugf("released coordinator session")
	}
	b.tracker.reset()
}

// startMatch (re)connects the game client to the lobby's game server.
func (b *Bot) startMatch() {
	b.releaseMatch()

	b.sessions.mu.Lock()
	gameClient := b.sessions.gameClient
	if gameClient != nil {
		b.sessions.matchOpen = true
	}
	b.sessions.mu.Unlock()

	if gameClient == nil {
		b.log.Warnf("cannot connect to the game without a game client")
		return
	}

	attempt := b.attempts.increment()
	b.log.Debugf("connecting to the game, attempt %d/%d", attempt, MaxMatchAttempts)
	if err := gameClient.Connect(); err != nil {
		metrics.RecordMatchAttempt("error")
		b.log.Errorf("failed to connect to the game: %v", err)
		return
	}
	metrics.RecordMatchAttempt("ok")
}

// releaseMatch disconnects the game client if a match session is open.
func (b *Bot) releaseMatch() {
	b.sessions.mu.Lock()
	gameClient := b.sessions.gameClient
	open := b.sessions.matchOpen
	b.sessions.matchOpen = false
	b.sessions.mu.Unlock()

	if gameClient != nil && open {
		gameClient.Disconnect()
		b.log.Debugf("released match session")
	}
}

// scheduleMatchConnect connects to the game after the match connect delay
// unless DotaPlay is left first.
func (b *Bot) scheduleMatchConnect() {
	ctx, cancel := context.WithCancel(context.Background())
	b.playMu.Lock()
	if b.playCancel != nil {
		b.playCancel()
	}
	b.playCancel = cancel
	b.playMu.Unlock()

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		timer := time.NewTimer(b.matchConnectDelay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		// Holding playMu makes DotaPlay's exit wait for an in-flight connect,
		// so the match is always released after it is opened.
		b.playMu.Lock()
		defer b.playMu.Unlock()
		if ctx.Err() == nil && b.State() == StateDotaPlay {
			b.startMatch()
		}
	}()
}

func (b *Bot) cancelMatchConnect() {
	b.playMu.Lock()
	defer b.playMu.Unlock()
	if b.playCancel != nil {
		b.playCancel()
		b.playCancel = nil
	}
}

// updatePersona shows the profile persona name and goes online.
func (b *Bot) updatePersona() {
	transport := b.sessions.currentTransport()
	if transport == nil {
		return
	}

	target := b.profile.PersonaName
	if current := transport.PersonaName(); current != target {
		b.log.Debugf("changed persona name to %s from %s", target, current)
		transport.SetPersonaName(target)
	}
	transport.SetPersonaState(provider.PersonaOnline)
}

// createLobby requests the profile's lobby when the bot reaches the menu.
func (b *Bot) createLobby() {
	if !b.profile.Behavior.CreateLobbyOnMenu {
		return
	}
	coordinator := b.sessions.currentCoordinator()
	if coordinator == nil {
		b.log.Warnf("cannot create a lobby without a coordinator session")
		return
	}

	b.log.Debugf("requested lobby creation")
	if err := coordinator.CreateLobby(b.profile.Lobby.PassKey, b.profile.Lobby.LobbyDetails()); err != nil {
		b.log.Errorf("failed to create lobby: %v", err)
	}
}
