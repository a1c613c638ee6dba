package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowExhaustsBurstPerKey(t *testing.T) {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(map[string]Limit{"send_message": {Burst: 2, Every: 10 * time.Second}})
	rl.now = func() time.Time { return clock }

	ok, _ := rl.Allow("u1", "send_message")
	assert.True(t, ok)
	ok, _ = rl.Allow("u1", "send_message")
	assert.True(t, ok)

	ok, wait := rl.Allow("u1", "send_message")
	assert.False(t, ok)
	assert.Greater(t, wait, time.Duration(0))

	// other keys have their own bucket
	ok, _ = rl.Allow("u2", "send_message")
	assert.True(t, ok)

	clock = clock.Add(10 * time.Second)
	ok, _ = rl.Allow("u1", "send_message")
	assert.True(t, ok)
}

func TestUnknownActionUsesFallback(t *testing.T) {
	rl := NewRateLimiter(nil)
	for i := 0; i < 20; i++ {
		ok, _ := rl.Allow("ip", "anything")
		assert.True(t, ok)
	}
	ok, _ := rl.Allow("ip", "anything")
	assert.False(t, ok)
}

func TestCleanupDropsIdleBuckets(t *testing.T) {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(nil)
	rl.now = func() time.Time { return clock }

	rl.Allow("a", "x")
	clock = clock.Add(2 * time.Hour)
	rl.Allow("b", "x")

	rl.Cleanup(time.Hour)
	assert.Equal(t, 1, rl.size())
}

func TestPerMinute(t *testing.T) {
	l := PerMinute(30)
	assert.Equal(t, 30, l.Burst)
	assert.Equal(t, 2*time.Second, l.Every)
	assert.Equal(t, 1, PerMinute(0).Burst)
}
