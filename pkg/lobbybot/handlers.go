// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package lobbybot

import (
	"strconv"
	"strings"

	"github.com/AccelByte/extend-lobby-bot/pkg/provider"
)

// launchToken in a lobby chat line launches the lobby.
const launchToken = "!start"

func (b *Bot) handle(ev provider.Event) {
	switch e := ev.(type) {
	case provider.Connected:
		b.onConnected()
	case provider.Disconnected:
		b.fire(TriggerSteamDisconnected)
	case provider.LoggedOn:
		b.onLoggedOn(e)
	case provider.AccountInfo:
		b.log.Debugf("current name is: %s, flags %d", e.PersonaName, e.Flags)
		b.updatePersona()

	case provider.GCWelcome:
		b.log.Debugf("GC session welcomed")
		b.fire(TriggerDotaConnected)
	case provider.GCConnectionStatusChanged:
		b.log.Debugf("GC connection status: %s", e.Status)
		if e.Status == provider.GCHaveSession {
			b.fire(TriggerDotaConnected)
		} else {
			b.fire(TriggerDotaDisconnected)
		}
	case provider.GCPopup:
		b.log.Debugf("GC popup message: %d", e.ID)
	case provider.LobbySnapshot:
		b.handleLobby(e.Lobby)
	case provider.LobbyUpdate:
		b.handleLobby(e.Lobby)
	case provider.LobbyLeave:
		b.handleLobby(nil)
	case provider.JoinChatChannelResponse:
		b.onJoinChatChannelResponse(e)
	case provider.ChatMessage:
		b.onChatMessage(e)

	case provider.HandshakeRejected:
		b.log.Errorf("connection to the game rejected with reason %s. Attempts %d/%d.",
			e.Reason, b.attempts.value(), MaxMatchAttempts)
	case provider.SessionStateTransition:
		b.onSessionStateTransition(e)
	case provider.LogMessage:
		b.log.Debugf("[GameClient] %s", e.Message)

	default:
		b.log.Warnf("unhandled provider event %T", ev)
	}
}

func (b *Bot) onConnected() {
	transport := b.sessions.currentTransport()
	if transport == nil {
		return
	}
	if err := transport.LogOn(b.details); err != nil {
		b.log.Errorf("failed to log on: %v", err)
		b.fire(TriggerSteamDisconnected)
	}
}

func (b *Bot) onLoggedOn(e provider.LoggedOn) {
	b.log.Debugf("sign-in result: %s", e.Result)
	switch {
	case e.Result == provider.ResultOK:
		b.fire(TriggerSteamConnected)
	case e.Result.Retryable():
		b.fire(TriggerSteamDisconnected)
	default:
		b.fire(TriggerSteamInvalidCreds)
	}
}

func (b *Bot) onChatMessage(e provider.ChatMessage) {
	channelID := b.tracker.channel()
	inLobby := channelID != 0 && e.ChannelID == channelID

	label := strconv.FormatUint(e.ChannelID, 10)
	if inLobby {
		label = "Lobby"
	}
	b.log.Debugf("[Chat][%s] %s: %s", label, e.PersonaName, e.Text)

	if !inLobby || !strings.Contains(e.Text, launchToken) {
		return
	}
	if coordinator := b.sessions.currentCoordinator(); coordinator != nil {
		b.log.Debugf("launching lobby by request from %s", e.PersonaName)
		coordinator.LaunchLobby()
	}
}

func (b *Bot) onSessionStateTransition(e provider.SessionStateTransition) {
	b.log.Debugf("[GameClient] %s => %s", e.Old, e.New)

	if e.New == provider.SessionPlay {
		b.attempts.reset()
	}
	if e.New != provider.SessionDisconnected || b.State() != StateDotaPlay {
		return
	}

	attempts := b.attempts.value()
	if attempts >= MaxMatchAttempts {
		b.log.Warnf("client has disconnected, attempts %d/%d. Not retrying.", attempts, MaxMatchAttempts)
		return
	}
	b.log.Warnf("client has disconnected, attempts %d/%d. Retrying.", attempts, MaxMatchAttempts)
	b.startMatch()
}
