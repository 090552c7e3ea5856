// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package status

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestPublisher_SavesUpdates(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreTopFunction("github.com/go-redis/redis/v8/internal/pool.(*ConnPool).reaper"))

	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	store := NewRedisStore(client, time.Minute)
	publisher := NewPublisher(store)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- publisher.Run(ctx) }()

	publisher.Publish(BotStatus{Username: "bot1", State: "Steam"})
	publisher.Publish(BotStatus{Username: "bot1", State: "DotaMenu"})

	require.Eventually(t, func() bool {
		got, err := store.Get(context.Background(), "bot1")
		return err == nil && got.State == "DotaMenu"
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestPublisher_FlushesOnStop(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	store := NewRedisStore(client, time.Minute)
	publisher := NewPublisher(store)
	publisher.Publish(BotStatus{Username: "bot2", State: "SignedOff"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, publisher.Run(ctx))

	got, err := store.Get(context.Background(), "bot2")
	require.NoError(t, err)
	assert.Equal(t, "SignedOff", got.State)
}

func TestPublisher_DropsWhenFull(t *testing.T) {
	publisher := NewPublisher(nil)
	for i := 0; i < defaultPublisherBuffer+5; i++ {
		publisher.Publish(BotStatus{Username: "bot3"})
	}
	assert.Len(t, publisher.updates, defaultPublisherBuffer)
}
