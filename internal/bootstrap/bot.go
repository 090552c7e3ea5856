// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-lobby-bot/internal/config"
	"github.com/AccelByte/extend-lobby-bot/pkg/command"
	"github.com/AccelByte/extend-lobby-bot/pkg/lobbybot"
	"github.com/AccelByte/extend-lobby-bot/pkg/profile"
	"github.com/AccelByte/extend-lobby-bot/pkg/provider"
	"github.com/AccelByte/extend-lobby-bot/pkg/provider/sim"
	"github.com/AccelByte/extend-lobby-bot/pkg/status"
)

// InitProvider creates the session provider the bot signs in through.
//
// ============================================================
// DEVELOPER: Plug in a real platform here.
// ============================================================
// The bot only sees the provider.Factory contract. The built-in
// factory is the in-process simulated platform; replace it with a
// factory backed by a real platform client to go live.
// ============================================================
func InitProvider(cfg *config.Config) provider.Factory {
	logrus.Infof("using simulated platform (tick %s, %d ticks per phase)", cfg.TickInterval(), cfg.TicksPerPhase)
	return sim.NewFactory(sim.Options{
		TickInterval:  cfg.TickInterval(),
		TicksPerPhase: cfg.TicksPerPhase,
		AutoStart:     cfg.SimAutoStart,
		Logger:        logrus.WithField("provider", "sim"),
	})
}

// InitBot creates the lobby bot.
func InitBot(
	cfg *config.Config,
	details provider.LogOnDetails,
	factory provider.Factory,
	p *profile.Profile,
	commands *command.Registry,
	publisher *status.Publisher,
) (*lobbybot.Bot, error) {
	opts := []lobbybot.Option{
		lobbybot.WithReconnectDelay(cfg.ReconnectDelay()),
		lobbybot.WithMatchConnectDelay(cfg.MatchConnectDelay()),
		lobbybot.WithProfile(p),
		lobbybot.WithCommands(commands),
		lobbybot.WithLogger(logrus.WithField("bot", details.Username)),
	}
	if publisher != nil {
		opts = append(opts, lobbybot.WithStatusPublisher(publisher))
	}

	bot, err := lobbybot.New(details, factory, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create lobby bot: %w", err)
	}

	logrus.Infof("initialized lobby bot for %s", details.Username)
	return bot, nil
}
