// Package timeouts provides centralized timeout values for store and core
// engine operations.
//
// These are used with context.WithTimeout around database work. Central
// values keep call sites consistent and easy to retune.
//
// Guidelines:
//   - Ping: health checks and connectivity verification
//   - Short: single-document reads or lookups
//   - Medium: list queries, moderate writes, multi-step reads
//   - Long: ranking passes touching several collections
package timeouts

import (
	"sync"
	"time"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
)

var mu sync.RWMutex

var (
	ping   = DefaultPing
	short  = DefaultShort
	medium = DefaultMedium
	long   = DefaultLong
)

// Configure overrides the timeout values. Zero durations keep the current
// value. Call at startup before serving.
func Configure(pingT, shortT, mediumT, longT time.Duration) {
	mu.Lock()
	defer mu.Unlock()
	if pingT > 0 {
		ping = pingT
	}
	if shortT > 0 {
		short = shortT
	}
	if mediumT > 0 {
		medium = mediumT
	}
	if longT > 0 {
		long = longT
	}
}

// Ping returns the timeout for health checks and connectivity verification.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Short returns the timeout for simple single-document operations.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Medium returns the timeout for list queries and moderate writes.
func Medium() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return medium
}

// Long returns the timeout for ranking passes over several collections.
func Long() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return long
}
