package entity

// PointerSample is a pointer position stamped in milliseconds
type PointerSample struct {
	X, Y float64
	T    float64
}

// PointerHistory is a rolling window of the most recent pointer samples
type PointerHistory struct {
	size    int
	samples []PointerSample
}

// NewPointerHistory keeps at most size samples (minimum 2)
func NewPointerHistory(size int) *PointerHistory {
	size = max(size, 2)
	return &PointerHistory{size: size, samples: make([]PointerSample, 0, size)}
}

// Record appends a sample, dropping the oldest when full
func (h *PointerHistory) Record(x, y, t float64) {
	if len(h.samples) == h.size {
		copy(h.samples, h.samples[1:])
		h.samples = h.samples[:h.size-1]
	}
	h.samples = append(h.samples, PointerSample{X: x, Y: y, T: t})
}

// Reset forgets every sample
func (h *PointerHistory) Reset() {
	h.samples = h.samples[:0]
}

// Len returns the number of recorded samples
func (h *PointerHistory) Len() int {
	return len(h.samples)
}

// Samples returns the recorded samples, oldest first
func (h *PointerHistory) Samples() []PointerSample {
	return h.samples
}

// Throw returns the velocity between the oldest and newest sample in px per
// (elapsed ms / divisor). ok is false with fewer than two samples or when no
// time has passed.
func (h *PointerHistory) Throw(divisor float64) (vx, vy float64, ok bool) {
	if len(h.samples) < 2 || divisor <= 0 {
		return 0, 0, false
	}
	first := h.samples[0]
	last := h.samples[len(h.samples)-1]

	dt := (last.T - first.T) / divisor
	if dt <= 0 {
		return 0, 0, false
	}
	return (last.X - first.X) / dt, (last.Y - first.Y) / dt, true
}
