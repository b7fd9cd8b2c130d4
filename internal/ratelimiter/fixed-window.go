package ratelimiter

import (
	"sync"
	"time"
)

// FixedWindowRateLimiter counts requests per key and forgets a key one window
// after its first request.
type FixedWindowRateLimiter struct {
	sync.Mutex
	clients map[string]int
	limit   int
	window  time.Duration
}

func NewFixedWindowLimiter(limit int, window time.Duration) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		clients: make(map[string]int),
		limit:   limit,
		window:  window,
	}
}

func (rl *FixedWindowRateLimiter) Allow(key string) (bool, time.Duration) {
	rl.Lock()
	defer rl.Unlock()

	count, exists := rl.clients[key]
	if exists && count >= rl.limit {
		return false, rl.window
	}
	if !exists {
		time.AfterFunc(rl.window, func() { rl.reset(key) })
	}
	rl.clients[key]++
	return true, 0
}

func (rl *FixedWindowRateLimiter) reset(key string) {
	rl.Lock()
	delete(rl.clients, key)
	rl.Unlock()
}
