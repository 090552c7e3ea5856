// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package metrics defines the lobby bot's Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "lobby_bot"

var (
	transitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transitions_total",
		Help:      "Total number of lifecycle transitions, re-entries included",
	}, []string{"source", "destination", "trigger"})

	currentState = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "state",
		Help:      "Current lifecycle state per bot (1 for the current state, 0 otherwise)",
	}, []string{"bot", "state"})

	unhandledTriggers = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "unhandled_triggers_total",
		Help:      "Total number of triggers fired with no rule in the current state",
	}, []string{"state", "trigger"})

	transportConnects = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transport_connects_total",
		Help:      "Total number of transport sessions opened",
	})

	matchAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "match_connect_attempts_total",
		Help:      "Total number of match session connect attempts by result",
	}, []string{"result"})

	dispatcherErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dispatcher_errors_total",
		Help:      "Total number of recovered dispatcher failures",
	})

	events = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_events_total",
		Help:      "Total number of provider events dispatched",
	}, []string{"event"})

	chatCommands = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_commands_total",
		Help:      "Total number of chat commands and chat events answered",
	}, []string{"command"})
)

// Collectors returns every lobby bot collector for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		transitions,
		currentState,
		unhandledTriggers,
		transportConnects,
		matchAttempts,
		dispatcherErrors,
		events,
		chatCommands,
	}
}

// RecordTransition counts a transition and moves the bot's state gauge.
func RecordTransition(bot, source, destination, trigger string) {
	transitions.WithLabelValues(source, destination, trigger).Inc()
	currentState.WithLabelValues(bot, source).Set(0)
	currentState.WithLabelValues(bot, destination).Set(1)
}

// RecordUnhandledTrigger counts a trigger with no rule.
func RecordUnhandledTrigger(state, trigger string) {
	unhandledTriggers.WithLabelValues(state, trigger).Inc()
}

// RecordTransportConnect counts an opened transport session.
func RecordTransportConnect() {
	transportConnects.Inc()
}

// RecordMatchAttempt counts a match connect attempt; result is "ok" or "error".
func RecordMatchAttempt(result string) {
	matchAttempts.WithLabelValues(result).Inc()
}

// RecordDispatcherError counts a recovered dispatcher failure.
func RecordDispatcherError() {
	dispatcherErrors.Inc()
}

// RecordEvent counts a dispatched provider event.
func RecordEvent(name string) {
	if name == "" {
		name = "unknown"
	}
	events.WithLabelValues(name).Inc()
}

// RecordChatCommand counts an answered chat command or event.
func RecordChatCommand(command string) {
	chatCommands.WithLabelValues(command).Inc()
}
