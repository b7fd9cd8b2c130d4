package ratelimiter

import "time"

// Limiter decides whether a client key may make another request now. When it
// may not, the duration says how long to wait.
type Limiter interface {
	Allow(key string) (bool, time.Duration)
}

type Config struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}
