package pickit

import "time"

// pacer gates update to at most once per frame and once per period of
// accumulated real time. The residual is carried over, never discarded.
type pacer struct {
	period  time.Duration
	acc     time.Duration
	last    time.Time
	started bool
}

func newPacer(period time.Duration) *pacer {
	return &pacer{period: period}
}

// start sets the reference time. Time before start is not counted.
func (p *pacer) start(now time.Time) {
	p.last = now
	p.acc = 0
	p.started = true
}

// tick accumulates the time since the previous tick and reports whether an
// update is due. When it is, exactly one period is subtracted.
func (p *pacer) tick(now time.Time) bool {
	if !p.started {
		p.start(now)
		return false
	}
	if elapsed := now.Sub(p.last); elapsed > 0 {
		p.acc += elapsed
	}
	p.last = now
	if p.acc < p.period {
		return false
	}
	p.acc -= p.period
	return true
}

// residual returns the accumulated time not yet consumed by an update.
func (p *pacer) residual() time.Duration { return p.acc }

// setPeriod changes the period. The accumulator is kept.
func (p *pacer) setPeriod(d time.Duration) { p.period = d }
