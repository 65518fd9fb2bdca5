package operator

import "time"

const (
	DefaultTaps      = 8
	DefaultTapWindow = 1500 * time.Millisecond
)

// Unlock counts taps on a hidden target. Taps must follow each other within
// the window; a slower tap starts the count over.
type Unlock struct {
	taps   int
	window time.Duration
	count  int
	last   time.Time
}

func NewUnlock(taps int, window time.Duration) *Unlock {
	if taps <= 0 {
		taps = DefaultTaps
	}
	if window <= 0 {
		window = DefaultTapWindow
	}
	return &Unlock{taps: taps, window: window}
}

// Tap records a tap now.
func (u *Unlock) Tap() bool {
	return u.TapAt(time.Now())
}

// TapAt records a tap at now and reports whether it completed the sequence.
// The count resets after a completed sequence.
func (u *Unlock) TapAt(now time.Time) bool {
	if u.count > 0 && now.Sub(u.last) > u.window {
		u.count = 0
	}
	u.count++
	u.last = now
	if u.count >= u.taps {
		u.count = 0
		return true
	}
	return false
}

// Count is the number of taps in the current sequence.
func (u *Unlock) Count() int {
	return u.count
}
