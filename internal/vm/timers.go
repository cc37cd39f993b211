package vm

import "time"

// timers holds the delay and sound timers and the wall-clock time that has
// not yet amounted to a whole TimerPeriod
type timers struct {
	delay uint8
	sound uint8

	pending time.Duration
	beeped  bool
}

// advance counts the timers down once for every whole TimerPeriod in elapsed
// plus the carried remainder. Returns true if the sound timer reached zero
// from one during this advance.
func (t *timers) advance(elapsed time.Duration) bool {
	t.beeped = false
	if elapsed <= 0 {
		return false
	}

	t.pending += elapsed
	for t.pending >= TimerPeriod {
		t.pending -= TimerPeriod
		if t.delay > 0 {
			t.delay--
		}
		if t.sound > 0 {
			if t.sound == 1 {
				t.beeped = true
			}
			t.sound--
		}
	}
	return t.beeped
}
