package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCommandLimiterBurstThenReject(t *testing.T) {
	rl := NewCommandLimiter(RateLimitConfig{CommandsPerSecond: 0.001, Burst: 3})
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("a"), "command %d within burst", i)
	}
	assert.False(t, rl.Allow("a"))

	// Clients are limited independently.
	assert.True(t, rl.Allow("b"))

	stats := rl.GetStats()
	assert.Equal(t, uint64(4), stats["allowed"])
	assert.Equal(t, uint64(1), stats["rejected"])
}

func TestCommandLimiterForgetResetsClient(t *testing.T) {
	rl := NewCommandLimiter(RateLimitConfig{CommandsPerSecond: 0.001, Burst: 1})
	defer rl.Stop()

	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))

	rl.Forget("a")
	assert.True(t, rl.Allow("a"))
}

func TestCommandLimiterCleanupDropsIdleClients(t *testing.T) {
	rl := NewCommandLimiter(RateLimitConfig{CommandsPerSecond: 0.001, Burst: 1})
	defer rl.Stop()

	assert.True(t, rl.Allow("idle"))
	rl.cleanup(time.Now().Add(time.Second))

	_, ok := rl.limiters.Load("idle")
	assert.False(t, ok)
	assert.True(t, rl.Allow("idle"))
}

func TestCommandLimiterStopIsIdempotent(t *testing.T) {
	rl := NewCommandLimiter(RateLimitConfig{CommandsPerSecond: 10, Burst: 1, CleanupInterval: time.Hour})
	assert.NotPanics(t, func() {
		rl.Stop()
		rl.Stop()
	})
}
