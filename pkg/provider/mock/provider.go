// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package mock

import (
	"errors"
	"sync"

	"github.com/AccelByte/extend-lobby-bot/pkg/game"
	"github.com/AccelByte/extend-lobby-bot/pkg/provider"
)

// ErrInjected is returned by mock operations configured to fail.
var ErrInjected = errors.New("mock: injected failure")

// Factory creates recording mock transports.
type Factory struct {
	Recorder *Recorder

	// NewTransportErr, when set, is returned by NewTransport.
	NewTransportErr error
	// ConnectErr, when set, is returned by Transport.Connect.
	ConnectErr error
	// GameConnectErr, when set, is returned by GameClient.Connect.
	GameConnectErr error

	mu         sync.Mutex
	transports []*Transport
}

// NewFactory creates a factory with an empty recorder.
func NewFactory() *Factory {
	return &Factory{Recorder: &Recorder{}}
}

func (f *Factory) NewTransport(events chan<- provider.Event) (provider.Transport, error) {
	f.Recorder.record(CallNewTransport)
	if f.NewTransportErr != nil {
		return nil, f.NewTransportErr
	}
	t := &Transport{factory: f, events: events, personaName: "unnamed"}
	t.coordinator = &Coordinator{transport: t}

	f.mu.Lock()
	f.transports = append(f.transports, t)
	f.mu.Unlock()
	return t, nil
}

// Transports returns every transport created so far.
func (f *Factory) Transports() []*Transport {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*Transport(nil), f.transports...)
}

// Latest returns the most recently created transport, or nil.
func (f *Factory) Latest() *Transport {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.transports) == 0 {
		return nil
	}
	return f.transports[len(f.transports)-1]
}

// Transport is a mock transport session.
type Transport struct {
	factory     *Factory
	events      chan<- provider.Event
	coordinator *Coordinator

	mu           sync.Mutex
	personaName  string
	personaState provider.PersonaState
	loggedOnWith *provider.LogOnDetails
}

// Emit pushes an event to the bot as if the platform had sent it.
func (t *Transport) Emit(ev provider.Event) {
	t.events <- ev
}

// MockCoordinator returns the concrete coordinator.
func (t *Transport) MockCoordinator() *Coordinator {
	return t.coordinator
}

// LoggedOnWith returns the last credentials passed to LogOn.
func (t *Transport) LoggedOnWith() (provider.LogOnDetails, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.loggedOnWith == nil {
		return provider.LogOnDetails{}, false
	}
	return *t.loggedOnWith, true
}

// PersonaState returns the last presence set.
func (t *Transport) PersonaState() provider.PersonaState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.personaState
}

func (t *Transport) Connect() error {
	t.factory.Recorder.record(CallConnect)
	return t.factory.ConnectErr
}

func (t *Transport) Disconnect() {
	t.factory.Recorder.record(CallDisconnect)
}

func (t *Transport) LogOn(details provider.LogOnDetails) error {
	t.factory.Recorder.record(CallLogOn, details.Username)
	t.mu.Lock()
	t.loggedOnWith = &details
	t.mu.Unlock()
	return nil
}

func (t *Transport) LogOff() {
	t.factory.Recorder.record(CallLogOff)
}

func (t *Transport) PersonaName() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.personaName
}

func (t *Transport) SetPersonaName(name string) {
	t.factory.Recorder.record(CallSetPersonaName, name)
	t.mu.Lock()
	t.personaName = name
	t.mu.Unlock()
}

func (t *Transport) SetPersonaState(state provider.PersonaState) {
	t.factory.Recorder.record(CallSetPersonaState, state)
	t.mu.Lock()
	t.personaState = state
	t.mu.Unlock()
}

func (t *Transport) Coordinator() provider.Coordinator {
	return t.coordinator
}

// Coordinator is a mock coordinator session.
type Coordinator struct {
	transport *Transport

	mu          sync.Mutex
	lobby       *provider.Lobby
	lobbyPanic  string
	gameClients []*GameClient
}

// SetLobbyPanic makes Lobby panic with message until called with "".
func (c *Coordinator) SetLobbyPanic(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lobbyPanic = message
}

// SetLobby replaces the coordinator's view of the lobby without emitting.
func (c *Coordinator) SetLobby(lobby *provider.Lobby) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lobby = lobby.Clone()
}

// EmitLobby sets the lobby and emits a snapshot for it, or a leave when
// lobby is nil.
func (c *Coordinator) EmitLobby(lobby *provider.Lobby) {
	c.SetLobby(lobby)
	if lobby == nil {
		c.transport.Emit(provider.LobbyLeave{})
		return
	}
	c.transport.Emit(provider.LobbySnapshot{Lobby: lobby.Clone()})
}

// GameClients returns every game client created so far.
func (c *Coordinator) GameClients() []*GameClient {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*GameClient(nil), c.gameClients...)
}

func (c *Coordinator) record(name string, args ...any) {
	c.transport.factory.Recorder.record(name, args...)
}

func (c *Coordinator) Start() error {
	c.record(CallCoordinatorStart)
	return nil
}

func (c *Coordinator) Stop() {
	c.record(CallCoordinatorStop)
}

func (c *Coordinator) Lobby() *provider.Lobby {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lobbyPanic != "" {
		panic(c.lobbyPanic)
	}
	return c.lobby.Clone()
}

func (c *Coordinator) CreateLobby(passKey string, details provider.LobbyDetails) error {
	c.record(CallCreateLobby, passKey, details)
	return nil
}

func (c *Coordinator) LeaveLobby() {
	c.record(CallLeaveLobby)
}

func (c *Coordinator) LaunchLobby() {
	c.record(CallLaunchLobby)
}

func (c *Coordinator) JoinChatChannel(name string, channelType provider.ChannelType) {
	c.record(CallJoinChatChannel, name, channelType)
}

func (c *Coordinator) LeaveChatChannel(channelID uint64) {
	c.record(CallLeaveChatChannel, channelID)
}

func (c *Coordinator) JoinBroadcastChannel() {
	c.record(CallJoinBroadcastChannel)
}

func (c *Coordinator) NewGameClient() (provider.GameClient, error) {
	c.record(CallNewGameClient)
	gc := &GameClient{coordinator: c, Commander: &Commander{recorder: c.transport.factory.Recorder}}
	c.mu.Lock()
	c.gameClients = append(c.gameClients, gc)
	c.mu.Unlock()
	return gc, nil
}

// GameClient is a mock match session. Ticks are driven by the test through
// Tick rather than by an engine loop.
type GameClient struct {
	coordinator *Coordinator
	Commander   *Commander

	mu         sync.Mutex
	controller provider.Controller
	state      *game.State
}

func (g *GameClient) RegisterController(controller provider.Controller) {
	g.coordinator.record(CallRegisterController)
	g.mu.Lock()
	g.controller = controller
	g.mu.Unlock()
}

func (g *GameClient) Connect() error {
	g.coordinator.record(CallGameConnect)
	if err := g.coordinator.transport.factory.GameConnectErr; err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.controller != nil && g.state == nil {
		g.state = game.NewState()
		g.controller.Initialize(76561198000000000, g.state, g.Commander)
	}
	return nil
}

func (g *GameClient) Disconnect() {
	g.coordinator.record(CallGameDisconnect)
}

func (g *GameClient) Close() error {
	g.coordinator.record(CallGameClose)
	return nil
}

// EmitSession emits a session state transition for this client.
func (g *GameClient) EmitSession(old, next provider.SessionState) {
	g.coordinator.transport.Emit(provider.SessionStateTransition{Old: old, New: next})
}

// State returns the replicated state handed to the controller, if connected.
func (g *GameClient) State() *game.State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Tick runs one controller tick.
func (g *GameClient) Tick() {
	g.mu.Lock()
	c := g.controller
	g.mu.Unlock()
	if c != nil {
		c.Tick()
	}
}

// Commander records submitted console commands.
type Commander struct {
	recorder *Recorder

	mu       sync.Mutex
	commands []string
}

// NewCommander creates a standalone commander.
func NewCommander() *Commander {
	return &Commander{recorder: &Recorder{}}
}

func (c *Commander) Submit(command string) {
	c.recorder.record(CallSubmit, command)
	c.mu.Lock()
	c.commands = append(c.commands, command)
	c.mu.Unlock()
}

// Commands returns every submitted command in order.
func (c *Commander) Commands() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.commands...)
}

var (
	_ provider.Factory     = (*Factory)(nil)
	_ provider.Transport   = (*Transport)(nil)
	_ provider.Coordinator = (*Coordinator)(nil)
	_ provider.GameClient  = (*GameClient)(nil)
	_ game.Commander       = (*Commander)(nil)
)
