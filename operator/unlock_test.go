package operator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUnlockWithinWindow(t *testing.T) {
	u := NewUnlock(8, 1500*time.Millisecond)
	now := time.Unix(1000, 0)

	for i := range 7 {
		assert.False(t, u.TapAt(now), "tap %d", i+1)
		now = now.Add(time.Second)
	}
	assert.True(t, u.TapAt(now))
	assert.Zero(t, u.Count(), "count resets after unlocking")
}

func TestUnlockSlowTapRestarts(t *testing.T) {
	u := NewUnlock(3, time.Second)
	now := time.Unix(0, 0)

	assert.False(t, u.TapAt(now))
	assert.False(t, u.TapAt(now.Add(500*time.Millisecond)))
	now = now.Add(2 * time.Second)
	assert.False(t, u.TapAt(now), "late tap starts a new sequence")
	assert.Equal(t, 1, u.Count())
	assert.False(t, u.TapAt(now.Add(time.Second)), "exactly on the window still counts")
	assert.True(t, u.TapAt(now.Add(1500*time.Millisecond)))
}

func TestUnlockDefaults(t *testing.T) {
	u := NewUnlock(0, 0)
	now := time.Unix(0, 0)
	for range DefaultTaps - 1 {
		assert.False(t, u.TapAt(now))
	}
	assert.True(t, u.TapAt(now))
}
