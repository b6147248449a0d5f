package pickit

import (
	"time"
)

// frameStats accumulates callback counts and timings. When Config.Debug is
// set they are logged once per second.
type frameStats struct {
	updates int
	draws   int
	events  int

	calls map[string]int
	time  map[string]time.Duration

	windowStart time.Time
}

// record adds one invocation of callback taking d.
func (s *frameStats) record(callback string, d time.Duration) {
	if s.calls == nil {
		s.calls = make(map[string]int)
		s.time = make(map[string]time.Duration)
	}
	s.calls[callback]++
	s.time[callback] += d
}

// average returns the mean duration of callback in the current window.
func (s *frameStats) average(callback string) time.Duration {
	n := s.calls[callback]
	if n == 0 {
		return 0
	}
	return s.time[callback] / time.Duration(n)
}

// flush logs and resets the window once at least a second has passed.
func (s *frameStats) flush(now time.Time) {
	if s.windowStart.IsZero() {
		s.windowStart = now
		return
	}
	if now.Sub(s.windowStart) < time.Second {
		return
	}
	logDebug("frame stats",
		"updates", s.updates, "draws", s.draws, "events", s.events,
		"update_avg", s.average(CallbackUpdate),
		"draw_avg", s.average(CallbackDraw),
		"event_avg", s.average(CallbackEvent))
	s.reset(now)
}

func (s *frameStats) reset(now time.Time) {
	s.updates, s.draws, s.events = 0, 0, 0
	clear(s.calls)
	clear(s.time)
	s.windowStart = now
}
