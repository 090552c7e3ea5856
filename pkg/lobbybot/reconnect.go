// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package lobbybot

import (
	"sync"
	"time"
)

const minReconnectDelay = time.Millisecond

// reconnectTimer calls onElapsed every delay while running.
type reconnectTimer struct {
	delay     time.Duration
	onElapsed func()
	wg        *sync.WaitGroup

	mu     sync.Mutex
	stop   chan struct{}
	starts int
}

func newReconnectTimer(delay time.Duration, onElapsed func(), wg *sync.WaitGroup) *reconnectTimer {
	if delay < minReconnectDelay {
		delay = minReconnectDelay
	}
	return &reconnectTimer{delay: delay, onElapsed: onElapsed, wg: wg}
}

// Start starts the timer. It is a no-op while already running.
func (r *reconnectTimer) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stop != nil {
		return
	}

	stop := make(chan struct{})
	r.stop = stop
	r.starts++

	r.wg.Add(1)
	go r.run(stop)
}

// Stop stops the timer. It may be called from onElapsed.
func (r *reconnectTimer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stop != nil {
		close(r.stop)
		r.stop = nil
	}
}

func (r *reconnectTimer) running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stop != nil
}

func (r *reconnectTimer) startCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.starts
}

func (r *reconnectTimer) run(stop <-chan struct{}) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.delay)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			select {
			case <-stop:
				return
			default:
			}
			r.onElapsed()
		}
	}
}
