// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package status

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Store persists bot status.
type Store interface {
	Save(ctx context.Context, status BotStatus) error
}

const (
	defaultPublisherBuffer = 32
	saveTimeout            = 3 * time.Second
)

// Publisher saves status updates asynchronously so state machine actions
// never wait on Redis. When the buffer is full the update is dropped; the next
// transition publishes a fresh one.
type Publisher struct {
	store   Store
	updates chan BotStatus
}

// NewPublisher creates a publisher writing to store.
func NewPublisher(store Store) *Publisher {
	return &Publisher{
		store:   store,
		updates: make(chan BotStatus, defaultPublisherBuffer),
	}
}

// Publish queues status for saving. It never blocks.
func (p *Publisher) Publish(status BotStatus) {
	select {
	case p.updates <- status:
	default:
		logrus.Warnf("status buffer full, dropping update for bot %s (%s)", status.Username, status.State)
	}
}

// Run saves queued updates until ctx is done, then flushes what is left.
func (p *Publisher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			p.flush()
			return nil
		case status := <-p.updates:
			p.save(status)
		}
	}
}

func (p *Publisher) flush() {
	for {
		select {
		case status := <-p.updates:
			p.save(status)
		default:
			return
		}
	}
}

// save is not tied to the Run context so updates queued before shutdown
// still land.
func (p *Publisher) save(status BotStatus) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := p.store.Save(ctx, status); err != nil {
		logrus.Errorf("failed to publish status for bot %s: %v", status.Username, err)
	}
}
