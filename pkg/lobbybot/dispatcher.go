// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package lobbybot

import (
	"context"
	"fmt"
	"time"

	"github.com/AccelByte/extend-lobby-bot/pkg/common"
	"github.com/AccelByte/extend-lobby-bot/pkg/metrics"
	"github.com/AccelByte/extend-lobby-bot/pkg/provider"
)

// dispatchWait bounds each wait for the next event so a cancelled generation
// is noticed even when the transport goes quiet.
const dispatchWait = time.Second

// dispatch pumps events of one transport generation until ctx is cancelled
// by releaseTransport.
func (b *Bot) dispatch(ctx context.Context, events <-chan provider.Event) {
	defer b.wg.Done()

	for ctx.Err() == nil {
		b.dispatchNext(ctx, events)
	}
	b.log.Debugf("dispatcher stopped")
}

func (b *Bot) dispatchNext(ctx context.Context, events <-chan provider.Event) {
	timer := time.NewTimer(dispatchWait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	case ev := <-events:
		if ctx.Err() != nil {
			return
		}
		b.dispatchEvent(ctx, ev)
	}
}

// dispatchEvent handles one event. A panicking handler is logged and the
// dispatcher keeps running.
func (b *Bot) dispatchEvent(ctx context.Context, ev provider.Event) {
	scope := common.StartScope(ctx, "lobbybot."+ev.EventName(), b.log)
	defer scope.End()
	before := b.State()
	scope.Tag("state", before.String())

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic handling %s: %v", ev.EventName(), r)
			metrics.RecordDispatcherError()
			scope.Fail(err)
			scope.Log.Errorf("error in dispatcher: %v", err)
		}
	}()

	metrics.RecordEvent(ev.EventName())
	b.handle(ev)
	if after := b.State(); after != before {
		scope.Note("entered " + after.String())
	}
}
