// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package sim

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/AccelByte/extend-lobby-bot/pkg/game"
	"github.com/AccelByte/extend-lobby-bot/pkg/provider"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func quietLogger() *logrus.Entry {
	logger, _ := test.NewNullLogger()
	return logrus.NewEntry(logger)
}

func receive(t *testing.T, events <-chan provider.Event) provider.Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for an event")
		return nil
	}
}

func TestSignIn(t *testing.T) {
	f := NewFactory(Options{Logger: quietLogger()})
	events := make(chan provider.Event, 16)
	tr, err := f.NewTransport(events)
	require.NoError(t, err)
	defer tr.Disconnect()

	require.NoError(t, tr.Connect())
	assert.Equal(t, provider.Connected{}, receive(t, events))

	require.NoError(t, tr.LogOn(provider.LogOnDetails{Username: "bot", Password: "pw"}))
	assert.Equal(t, provider.LoggedOn{Result: provider.ResultOK}, receive(t, events))
	assert.Equal(t, provider.AccountInfo{PersonaName: "unnamed"}, receive(t, events))
}

func TestSignInWithoutPassword(t *testing.T) {
	f := NewFactory(Options{Logger: quietLogger()})
	events := make(chan provider.Event, 16)
	tr, err := f.NewTransport(events)
	require.NoError(t, err)
	defer tr.Disconnect()

	require.NoError(t, tr.Connect())
	receive(t, events)
	require.NoError(t, tr.LogOn(provider.LogOnDetails{Username: "bot"}))
	assert.Equal(t, provider.LoggedOn{Result: provider.ResultInvalidPassword}, receive(t, events))
}

func TestCoordinatorLobby(t *testing.T) {
	f := NewFactory(Options{Logger: quietLogger(), AutoStart: true})
	events := make(chan provider.Event, 16)
	tr, err := f.NewTransport(events)
	require.NoError(t, err)
	defer tr.Disconnect()
	require.NoError(t, tr.Connect())
	receive(t, events)

	gc := tr.Coordinator()
	assert.ErrorIs(t, gc.CreateLobby("key", provider.LobbyDetails{}), ErrNotStarted)

	require.NoError(t, gc.Start())
	assert.Equal(t, provider.GCWelcome{}, receive(t, events))

	require.NoError(t, gc.CreateLobby("key", provider.LobbyDetails{GameName: "Test Lobby"}))
	snapshot, ok := receive(t, events).(provider.LobbySnapshot)
	require.True(t, ok)
	assert.Equal(t, provider.LobbyUI, snapshot.Lobby.State)
	assert.Equal(t, "key", snapshot.Lobby.PassKey)

	lobby := gc.Lobby()
	gc.JoinChatChannel(lobby.ChannelName(), provider.ChannelLobby)
	resp, ok := receive(t, events).(provider.JoinChatChannelResponse)
	require.True(t, ok)
	assert.Equal(t, lobby.ChannelName(), resp.ChannelName)
	chat, ok := receive(t, events).(provider.ChatMessage)
	require.True(t, ok)
	assert.Equal(t, resp.ChannelID, chat.ChannelID)
	assert.Contains(t, chat.Text, "!start")

	gc.LaunchLobby()
	update, ok := receive(t, events).(provider.LobbyUpdate)
	require.True(t, ok)
	assert.Equal(t, provider.LobbyRun, update.Lobby.State)
	assert.Equal(t, DefaultServerAddress, update.Lobby.Connect)

	gc.LeaveLobby()
	assert.Equal(t, provider.LobbyLeave{}, receive(t, events))
	assert.Nil(t, gc.Lobby())
}

type recordingController struct {
	ticks chan game.GameState
	state *game.State
}

func (c *recordingController) Initialize(_ uint64, state *game.State, _ game.Commander) {
	c.state = state
}

func (c *recordingController) Tick() {
	rules, _ := c.state.Entities.GameRules()
	select {
	case c.ticks <- rules.GameState:
	default:
	}
}

func TestMatchPlaysScript(t *testing.T) {
	f := NewFactory(Options{Logger: quietLogger(), TickInterval: time.Millisecond, TicksPerPhase: 1})
	events := make(chan provider.Event, 64)
	tr, err := f.NewTransport(events)
	require.NoError(t, err)
	defer tr.Disconnect()
	require.NoError(t, tr.Connect())

	coordinator := tr.Coordinator()
	require.NoError(t, coordinator.Start())
	require.NoError(t, coordinator.CreateLobby("key", provider.LobbyDetails{}))

	client, err := coordinator.NewGameClient()
	require.NoError(t, err)
	controller := &recordingController{ticks: make(chan game.GameState, 1)}
	client.RegisterController(controller)
	require.NoError(t, client.Connect())

	require.Eventually(t, func() bool {
		select {
		case s := <-controller.ticks:
			return s == game.GameStatePostGame
		default:
			return false
		}
	}, 2*time.Second, time.Millisecond)

	client.Disconnect()
	require.NoError(t, client.Close())
}

func TestMatchAdvance(t *testing.T) {
	state := game.NewState()
	m := newMatch(Options{TickInterval: time.Second, TicksPerPhase: 2, Script: DefaultScript()}, state)

	phase, changed := m.advance()
	assert.True(t, changed)
	assert.Equal(t, game.GameStateWaitForPlayersToLoad, phase)

	_, changed = m.advance()
	assert.False(t, changed)

	phase, changed = m.advance()
	assert.True(t, changed)
	assert.Equal(t, game.GameStateHeroSelection, phase)
	assert.Equal(t, 2, state.ChatMessages.Len())

	rules, ok := state.Entities.GameRules()
	require.True(t, ok)
	assert.Equal(t, float32(3), rules.GameTime)
}

func TestSubmitPause(t *testing.T) {
	gc := &gameClient{coordinator: &coordinator{transport: &transport{emitter: newEmitter(nil, 0)}, log: quietLogger()}}
	gc.state = game.NewState()
	gc.state.Entities.SetGameRules(game.GameRules{GameState: game.GameStateInProgress})

	gc.Submit("dota_pause")

	rules, _ := gc.state.Entities.GameRules()
	assert.Equal(t, game.TeamRadiant, rules.PauseTeam)
	assert.Equal(t, []string{"dota_pause"}, gc.Commands())
}
