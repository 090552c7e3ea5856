// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package lobbybot

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AccelByte/extend-lobby-bot/pkg/game"
	"github.com/AccelByte/extend-lobby-bot/pkg/metrics"
	"github.com/AccelByte/extend-lobby-bot/pkg/provider"
	"github.com/AccelByte/extend-lobby-bot/pkg/provider/mock"
)

func TestNewValidates(t *testing.T) {
	_, err := New(provider.LogOnDetails{}, mock.NewFactory())
	assert.ErrorIs(t, err, ErrMissingUsername)

	_, err = New(provider.LogOnDetails{Username: "bot"}, nil)
	assert.ErrorIs(t, err, ErrMissingFactory)
}

func TestNewStartsSignedOff(t *testing.T) {
	b, f := newTestBot(t)

	assert.Equal(t, StateSignedOff, b.State())
	assert.True(t, b.IsInState(StateConceived))
	assert.Equal(t, "bot", b.Username())
	assert.Nil(t, b.Lobby())
	assert.Empty(t, f.Recorder.Calls())
}

func TestUnhandledTriggerIsNoop(t *testing.T) {
	b, f := newTestBot(t)
	log := &transitionLog{}
	b.OnTransition(log.record)

	b.fire(TriggerDotaConnected)
	b.fire(TriggerDotaEnteredLobbyPlay)
	b.fire(Trigger(99))

	assert.Equal(t, StateSignedOff, b.State())
	assert.Zero(t, log.len())
	assert.Empty(t, f.Recorder.Calls())
}

func TestSignInFlow(t *testing.T) {
	publisher := &fakePublisher{}
	b, f := newTestBot(t, WithStatusPublisher(publisher))

	tr := signIn(t, b, f)

	details, ok := tr.LoggedOnWith()
	require.True(t, ok)
	assert.Equal(t, "bot", details.Username)
	assert.Equal(t, 1, f.Recorder.Count(mock.CallCoordinatorStart))
	assert.Equal(t, 1, f.Recorder.Count(mock.CallRegisterController))
	waitCount(t, f, mock.CallCreateLobby, 1)

	call, ok := f.Recorder.Last(mock.CallCreateLobby)
	require.True(t, ok)
	assert.Equal(t, passKey, call.Args[0])

	tr.Emit(provider.AccountInfo{PersonaName: "unnamed"})
	require.Eventually(t, func() bool { return tr.PersonaState() == provider.PersonaOnline }, waitFor, tick)
	assert.Equal(t, "WebLeagueBot", tr.PersonaName())

	assert.Equal(t, []string{"Steam", "Dota", "DotaMenu"}, publisher.states())

	shutdown(t, b)
}

func TestShutdownReleasesEachSessionOnce(t *testing.T) {
	b, f := newTestBot(t)
	tr := signIn(t, b, f)
	enterPlay(t, b, f, tr)

	shutdown(t, b)

	assert.Equal(t, 1, f.Recorder.Count(mock.CallGameDisconnect))
	assert.Equal(t, 1, f.Recorder.Count(mock.CallGameClose))
	assert.Equal(t, 1, f.Recorder.Count(mock.CallCoordinatorStop))
	assert.Equal(t, 1, f.Recorder.Count(mock.CallLogOff))
	assert.Equal(t, 1, f.Recorder.Count(mock.CallDisconnect))
	assert.Equal(t, provider.PersonaOffline, tr.PersonaState())

	// Order: match, then coordinator, then transport.
	names := f.Recorder.Names()
	assert.Less(t, indexOf(names, mock.CallGameDisconnect), indexOf(names, mock.CallCoordinatorStop))
	assert.Less(t, indexOf(names, mock.CallCoordinatorStop), indexOf(names, mock.CallDisconnect))
	assert.Nil(t, b.Lobby())
}

func TestShutdownFromEveryState(t *testing.T) {
	tests := []struct {
		name  string
		drive func(t *testing.T, b *Bot, f *mock.Factory)
		want  map[string]int
	}{
		{
			name:  "SignedOff",
			drive: func(t *testing.T, b *Bot, f *mock.Factory) {},
			want:  map[string]int{mock.CallDisconnect: 0},
		},
		{
			name: "Steam",
			drive: func(t *testing.T, b *Bot, f *mock.Factory) {
				b.Start()
				waitState(t, b, StateSteam)
			},
			want: map[string]int{mock.CallDisconnect: 1, mock.CallCoordinatorStop: 0},
		},
		{
			name: "DotaMenu",
			drive: func(t *testing.T, b *Bot, f *mock.Factory) {
				signIn(t, b, f)
			},
			want: map[string]int{mock.CallDisconnect: 1, mock.CallCoordinatorStop: 1, mock.CallGameClose: 1, mock.CallGameDisconnect: 0},
		},
		{
			name: "DotaLobby",
			drive: func(t *testing.T, b *Bot, f *mock.Factory) {
				tr := signIn(t, b, f)
				tr.MockCoordinator().EmitLobby(uiLobby())
				waitState(t, b, StateDotaLobby)
			},
			want: map[string]int{mock.CallDisconnect: 1, mock.CallCoordinatorStop: 1, mock.CallGameDisconnect: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, f := newTestBot(t)
			tt.drive(t, b, f)

			shutdown(t, b)

			for name, n := range tt.want {
				if got := f.Recorder.Count(name); got != n {
					t.Errorf("Count(%s) = %d, expected %d", name, got, n)
				}
			}
		})
	}
}

func TestInvalidCredentialsSignOff(t *testing.T) {
	b, f := newTestBot(t)
	b.Start()
	waitState(t, b, StateSteam)

	f.Latest().Emit(provider.LoggedOn{Result: provider.ResultInvalidPassword})
	waitState(t, b, StateSignedOff)
	b.Wait()

	assert.Equal(t, 1, f.Recorder.Count(mock.CallDisconnect))
	assert.Zero(t, b.reconnect.startCount())
}

func TestRetryableLogOnReconnects(t *testing.T) {
	b, f := newTestBot(t, WithReconnectDelay(5*time.Millisecond))
	b.Start()
	waitState(t, b, StateSteam)

	f.Latest().Emit(provider.LoggedOn{Result: provider.ResultServiceUnavailable})

	require.Eventually(t, func() bool { return len(f.Transports()) == 2 }, waitFor, tick)
	waitState(t, b, StateSteam)
	assert.False(t, b.reconnect.running())
	assert.Equal(t, 1, b.reconnect.startCount())

	shutdown(t, b)
}

func TestTransportLossWithReconnect(t *testing.T) {
	b, f := newTestBot(t, WithReconnectDelay(5*time.Millisecond))
	tr := signIn(t, b, f)

	tr.Emit(provider.Disconnected{})

	require.Eventually(t, func() bool { return len(f.Transports()) == 2 }, waitFor, tick)
	waitState(t, b, StateSteam)
	assert.Equal(t, 1, f.Recorder.Count(mock.CallCoordinatorStop))

	// Events from the released transport are no longer dispatched.
	assert.NotSame(t, tr, f.Latest())

	shutdown(t, b)
}

func TestTransportLossWithoutReconnect(t *testing.T) {
	b, f := newTestBot(t, WithReconnectDelay(-1))
	tr := signIn(t, b, f)

	tr.Emit(provider.Disconnected{})
	waitState(t, b, StateSignedOff)
	b.Wait()

	assert.Zero(t, b.reconnect.startCount())
	assert.Len(t, f.Transports(), 1)
}

func TestNewTransportFailureRetries(t *testing.T) {
	b, f := newTestBot(t)
	f.NewTransportErr = mock.ErrInjected

	b.Start()
	waitState(t, b, StateRetryConnection)
	assert.True(t, b.reconnect.running())

	shutdown(t, b)
	assert.False(t, b.reconnect.running())
	assert.Equal(t, StateSignedOff, b.State())
}

func TestCoordinatorReentryKeepsSession(t *testing.T) {
	b, f := newTestBot(t)
	tr := signIn(t, b, f)

	tr.Emit(provider.GCConnectionStatusChanged{Status: provider.GCNoSession})
	waitState(t, b, StateDota)
	tr.Emit(provider.GCConnectionStatusChanged{Status: provider.GCHaveSession})
	waitState(t, b, StateDotaMenu)

	assert.Equal(t, 1, f.Recorder.Count(mock.CallCoordinatorStart))
	assert.Equal(t, 0, f.Recorder.Count(mock.CallCoordinatorStop))
	waitCount(t, f, mock.CallCreateLobby, 2)

	shutdown(t, b)
}

func TestRepeatedWelcomeKeepsLobby(t *testing.T) {
	b, f := newTestBot(t)
	tr := signIn(t, b, f)
	tr.MockCoordinator().EmitLobby(uiLobby())
	waitState(t, b, StateDotaLobby)

	log := &transitionLog{}
	b.OnTransition(log.record)
	tr.Emit(provider.GCWelcome{})
	tr.MockCoordinator().EmitLobby(uiLobby())

	assert.Never(t, func() bool { return log.len() > 0 }, 50*time.Millisecond, tick)
	assert.Equal(t, StateDotaLobby, b.State())
	assert.Equal(t, 1, f.Recorder.Count(mock.CallJoinChatChannel))

	shutdown(t, b)
}

func TestMatchAttemptsAreBounded(t *testing.T) {
	b, f := newTestBot(t)
	tr := signIn(t, b, f)
	enterPlay(t, b, f, tr)
	gc := tr.MockCoordinator().GameClients()[0]

	for i := 0; i < 4; i++ {
		gc.EmitSession(provider.SessionConnected, provider.SessionDisconnected)
	}

	waitCount(t, f, mock.CallGameConnect, MaxMatchAttempts)
	assert.Never(t, func() bool { return f.Recorder.Count(mock.CallGameConnect) > MaxMatchAttempts },
		50*time.Millisecond, tick)
	assert.Equal(t, MaxMatchAttempts, b.MatchAttempts())
	assert.Equal(t, StateDotaPlay, b.State())

	shutdown(t, b)
}

func TestMatchAttemptsResetOnPlayEntry(t *testing.T) {
	b, f := newTestBot(t)
	tr := signIn(t, b, f)
	enterPlay(t, b, f, tr)
	gc := tr.MockCoordinator().GameClients()[0]

	gc.EmitSession(provider.SessionConnected, provider.SessionDisconnected)
	waitCount(t, f, mock.CallGameConnect, 2)
	assert.Equal(t, 2, b.MatchAttempts())

	tr.MockCoordinator().EmitLobby(uiLobby())
	waitState(t, b, StateDotaLobby)
	tr.MockCoordinator().EmitLobby(runLobby())
	waitState(t, b, StateDotaPlay)

	waitCount(t, f, mock.CallGameConnect, 3)
	assert.Equal(t, 1, b.MatchAttempts())

	shutdown(t, b)
}

func TestSessionPlayResetsAttempts(t *testing.T) {
	b, f := newTestBot(t)
	tr := signIn(t, b, f)
	enterPlay(t, b, f, tr)

	gc := tr.MockCoordinator().GameClients()[0]
	gc.EmitSession(provider.SessionLoading, provider.SessionPlay)
	require.Eventually(t, func() bool { return b.MatchAttempts() == 0 }, waitFor, tick)

	shutdown(t, b)
}

func TestMatchConnectCancelledWhenPlayLeft(t *testing.T) {
	b, f := newTestBot(t, WithMatchConnectDelay(time.Hour))
	tr := signIn(t, b, f)
	tr.MockCoordinator().EmitLobby(runLobby())
	waitState(t, b, StateDotaPlay)

	tr.MockCoordinator().EmitLobby(nil)
	waitState(t, b, StateDotaMenu)

	assert.Zero(t, f.Recorder.Count(mock.CallGameConnect))
	assert.Zero(t, f.Recorder.Count(mock.CallGameDisconnect))

	shutdown(t, b)
}

func TestPostgameShutsDown(t *testing.T) {
	b, f := newTestBot(t)
	tr := signIn(t, b, f)
	enterPlay(t, b, f, tr)

	lobby := runLobby()
	lobby.GameState = game.GameStatePostGame
	tr.MockCoordinator().EmitLobby(lobby)

	waitState(t, b, StateSignedOff)
	b.Wait()
	assert.Equal(t, 1, f.Recorder.Count(mock.CallCoordinatorStop))
}

func TestUnknownEventIsIgnored(t *testing.T) {
	b, f := newTestBot(t)
	tr := signIn(t, b, f)

	tr.Emit(strayEvent{})
	tr.MockCoordinator().EmitLobby(uiLobby())
	waitState(t, b, StateDotaLobby)

	shutdown(t, b)
}

func TestReleasedTransportEventsAreDropped(t *testing.T) {
	b, f := newTestBot(t, WithReconnectDelay(5*time.Millisecond))
	old := signIn(t, b, f)

	old.Emit(provider.Disconnected{})
	require.Eventually(t, func() bool { return len(f.Transports()) == 2 }, waitFor, tick)
	waitState(t, b, StateSteam)

	old.Emit(provider.Connected{})
	old.Emit(provider.LoggedOn{Result: provider.ResultOK})

	assert.Never(t, func() bool {
		return f.Recorder.Count(mock.CallLogOn) != 1 || b.State() != StateSteam
	}, 50*time.Millisecond, tick)

	shutdown(t, b)
}

func TestDispatcherSurvivesPanickingHandler(t *testing.T) {
	b, f := newTestBot(t)
	tr := signIn(t, b, f)
	coordinator := tr.MockCoordinator()
	before := dispatcherErrors()

	coordinator.SetLobbyPanic("lobby unavailable")
	tr.Emit(provider.JoinChatChannelResponse{ChannelID: 5, ChannelName: "Lobby_1"})
	require.Eventually(t, func() bool { return dispatcherErrors() == before+1 }, waitFor, tick)

	coordinator.SetLobbyPanic("")
	coordinator.EmitLobby(uiLobby())
	waitState(t, b, StateDotaLobby)
	waitCount(t, f, mock.CallJoinChatChannel, 1)

	shutdown(t, b)
}

// dispatcherErrors reads the recovered dispatcher failure counter.
func dispatcherErrors() float64 {
	registry := prometheus.NewRegistry()
	registry.MustRegister(metrics.Collectors()...)
	families, err := registry.Gather()
	if err != nil {
		return -1
	}
	for _, family := range families {
		if family.GetName() == "lobby_bot_dispatcher_errors_total" {
			return family.GetMetric()[0].GetCounter().GetValue()
		}
	}
	return 0
}

type strayEvent struct{}

func (strayEvent) EventName() string { return "stray" }

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
