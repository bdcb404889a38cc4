package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimiterAllowsWithinBurst(t *testing.T) {
	l := NewLimiter(60, 5)
	defer l.Stop()

	for i := 0; i < 5; i++ {
		info := l.Allow("client-a")
		assert.True(t, info.Allowed, "request %d within burst", i+1)
		assert.Equal(t, 60, info.Limit)
	}
}

func TestLimiterBlocksOverBurst(t *testing.T) {
	l := NewLimiter(60, 2)
	defer l.Stop()

	assert.True(t, l.Allow("client-a").Allowed)
	assert.True(t, l.Allow("client-a").Allowed)

	info := l.Allow("client-a")
	assert.False(t, info.Allowed)
	assert.Positive(t, info.RetryAfter)
}

func TestLimiterIsolatesClients(t *testing.T) {
	l := NewLimiter(60, 1)
	defer l.Stop()

	assert.True(t, l.Allow("client-a").Allowed)
	assert.False(t, l.Allow("client-a").Allowed)
	assert.True(t, l.Allow("client-b").Allowed, "other clients keep their own budget")
}

func TestLimiterDisabled(t *testing.T) {
	l := NewLimiter(0, 0)
	defer l.Stop()

	for i := 0; i < 100; i++ {
		info := l.Allow("client-a")
		assert.True(t, info.Allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiterBurstDefaultsToPerMinute(t *testing.T) {
	l := NewLimiter(3, 0)
	defer l.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("client-a").Allowed)
	}
	assert.False(t, l.Allow("client-a").Allowed)
}
