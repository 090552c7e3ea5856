// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import "time"

// Config holds all application configuration loaded from environment variables.
// Fields are parsed with github.com/caarlos0/env.
//
// ============================================================
// DEVELOPER: Add new configuration fields here.
// ============================================================
// Use struct tags to define:
// - `env:"VAR_NAME"` - the environment variable name
// - `envDefault:"value"` - set a default value
//
// After adding fields here, update loader.go Validate() if custom
// validation is needed.
// ============================================================
type Config struct {
	// ============================================================
	// Server configuration
	// ============================================================
	GRPCPort    int    `env:"GRPC_PORT" envDefault:"6565"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"LobbyBot"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// ============================================================
	// Bot configuration
	// ============================================================
	// Username and password are prompted for on stdin when empty.
	Username string `env:"BOT_USERNAME"`
	Password string `env:"BOT_PASSWORD"`

	// A negative reconnect delay disables automatic reconnects.
	ReconnectDelayMs    int    `env:"BOT_RECONNECT_DELAY_MS" envDefault:"3000"`
	MatchConnectDelayMs int    `env:"BOT_MATCH_CONNECT_DELAY_MS" envDefault:"500"`
	TickIntervalMs      int    `env:"BOT_TICK_INTERVAL_MS" envDefault:"33"`
	TicksPerPhase       int    `env:"SIM_TICKS_PER_PHASE" envDefault:"300"`
	SimAutoStart        bool   `env:"SIM_AUTO_START" envDefault:"true"`
	ProfilePath         string `env:"PROFILE_PATH" envDefault:"config/profile.yaml"`

	// ============================================================
	// Redis configuration
	// ============================================================
	RedisEnabled      bool   `env:"REDIS_ENABLED" envDefault:"false"`
	RedisHost         string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort         string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword     string `env:"REDIS_PASSWORD"`
	RedisMaxRetries   int    `env:"REDIS_MAX_RETRIES" envDefault:"5"`
	RedisRetryDelayMs int    `env:"REDIS_RETRY_DELAY_MS" envDefault:"1000"`
	StatusTTLSeconds  int    `env:"STATUS_TTL_SECONDS" envDefault:"3600"`

	// ============================================================
	// Telemetry configuration
	// ============================================================
	OtelEnabled     bool   `env:"OTEL_ENABLED" envDefault:"false"`
	OtelServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"extend-lobby-bot"`
}

// ReconnectDelay returns the reconnect delay; negative when disabled.
func (c *Config) ReconnectDelay() time.Duration {
	return time.Duration(c.ReconnectDelayMs) * time.Millisecond
}

func (c *Config) MatchConnectDelay() time.Duration {
	return time.Duration(c.MatchConnectDelayMs) * time.Millisecond
}

func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

func (c *Config) StatusTTL() time.Duration {
	return time.Duration(c.StatusTTLSeconds) * time.Second
}
