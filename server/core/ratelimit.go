package core

import (
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig configures the per-client command limiter
type RateLimitConfig struct {
	CommandsPerSecond float64       // Commands allowed per second per client
	Burst             int           // Maximum burst size
	CleanupInterval   time.Duration // How often to clean up stale limiters
}

// clientLimiterEntry tracks per-client rate limiting state
type clientLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nanos
}

// CommandLimiter throttles command messages per client id.
type CommandLimiter struct {
	limiters sync.Map // map[string]*clientLimiterEntry
	config   RateLimitConfig
	stopChan chan struct{}
	stopOnce sync.Once

	// Stats for monitoring
	rejectedCount atomic.Uint64
	allowedCount  atomic.Uint64
}

// NewCommandLimiter creates a limiter. A positive CleanupInterval starts a
// goroutine that forgets idle clients; Stop ends it.
func NewCommandLimiter(cfg RateLimitConfig) *CommandLimiter {
	rl := &CommandLimiter{
		config:   cfg,
		stopChan: make(chan struct{}),
	}
	if cfg.CleanupInterval > 0 {
		go rl.cleanupLoop()
	}
	return rl
}

// Stop stops the cleanup goroutine
func (rl *CommandLimiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.stopChan)
	})
}

func (rl *CommandLimiter) getLimiter(id string) *rate.Limiter {
	now := time.Now().UnixNano()

	if entry, ok := rl.limiters.Load(id); ok {
		e := entry.(*clientLimiterEntry)
		e.lastSeen.Store(now)
		return e.limiter
	}

	entry := &clientLimiterEntry{
		limiter: rate.NewLimiter(rate.Limit(rl.config.CommandsPerSecond), rl.config.Burst),
	}
	entry.lastSeen.Store(now)

	actual, _ := rl.limiters.LoadOrStore(id, entry)
	return actual.(*clientLimiterEntry).limiter
}

func (rl *CommandLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopChan:
			return
		case <-ticker.C:
			rl.cleanup(time.Now().Add(-rl.config.CleanupInterval * 2))
		}
	}
}

// cleanup removes limiters that haven't been used since cutoff
func (rl *CommandLimiter) cleanup(cutoff time.Time) {
	rl.limiters.Range(func(key, value interface{}) bool {
		entry := value.(*clientLimiterEntry)
		if entry.lastSeen.Load() < cutoff.UnixNano() {
			rl.limiters.Delete(key)
		}
		return true
	})
}

// Allow reports whether a command from client id may pass.
func (rl *CommandLimiter) Allow(id string) bool {
	if rl.getLimiter(id).Allow() {
		rl.allowedCount.Add(1)
		return true
	}
	rl.rejectedCount.Add(1)
	return false
}

// Forget drops a disconnected client's limiter.
func (rl *CommandLimiter) Forget(id string) {
	rl.limiters.Delete(id)
}

// GetStats returns rate limiter statistics
func (rl *CommandLimiter) GetStats() map[string]uint64 {
	return map[string]uint64{
		"allowed":  rl.allowedCount.Load(),
		"rejected": rl.rejectedCount.Load(),
	}
}
