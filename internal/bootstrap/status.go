// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-lobby-bot/pkg/status"
)

// InitStatusPublisher creates the publisher that stores a status snapshot
// after every bot transition. It returns nil when client is nil.
func InitStatusPublisher(client *redis.Client, ttl time.Duration) *status.Publisher {
	if client == nil {
		logrus.Infof("status publication disabled")
		return nil
	}

	store := status.NewRedisStore(client, ttl)
	logrus.Infof("initialized status publisher (ttl %s)", ttl)
	return status.NewPublisher(store)
}
