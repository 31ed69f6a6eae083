package system

// Interval calls a function every period seconds of frame time.
// It is advanced by the game loop, so it never fires outside Update.
type Interval struct {
	period  float64
	elapsed float64
	fn      func()
	stopped bool
}

// NewInterval creates a running interval. period must be positive.
func NewInterval(period float64, fn func()) *Interval {
	return &Interval{period: period, fn: fn, stopped: period <= 0}
}

// Advance adds dt seconds and fires once per elapsed period. It returns the
// number of calls made.
func (i *Interval) Advance(dt float64) int {
	if i.stopped {
		return 0
	}

	i.elapsed += dt
	fired := 0
	for i.elapsed >= i.period {
		i.elapsed -= i.period
		fired++
		i.fn()
		// fn may stop the interval
		if i.stopped {
			break
		}
	}
	return fired
}

// Stop cancels every future call
func (i *Interval) Stop() {
	i.stopped = true
}

// Stopped reports whether Stop has been called
func (i *Interval) Stopped() bool {
	return i.stopped
}
