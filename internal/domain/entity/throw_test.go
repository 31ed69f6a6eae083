package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointerHistory_CapsSamples(t *testing.T) {
	h := NewPointerHistory(6)
	for i := 0; i < 10; i++ {
		h.Record(float64(i), 0, float64(i*10))
	}

	assert.Equal(t, 6, h.Len())
	assert.Equal(t, 4.0, h.Samples()[0].X, "oldest samples are dropped")
	assert.Equal(t, 9.0, h.Samples()[5].X)

	h.Reset()
	assert.Equal(t, 0, h.Len())
}

func TestPointerHistory_MinimumSize(t *testing.T) {
	h := NewPointerHistory(0)
	h.Record(0, 0, 0)
	h.Record(1, 0, 1)
	h.Record(2, 0, 2)

	assert.Equal(t, 2, h.Len())
}

func TestPointerHistory_Throw(t *testing.T) {
	tests := []struct {
		name    string
		samples []PointerSample
		wantVX  float64
		wantVY  float64
		wantOK  bool
	}{
		{"empty", nil, 0, 0, false},
		{"single sample", []PointerSample{{100, 100, 0}}, 0, 0, false},
		{"horizontal drag", []PointerSample{{100, 100, 0}, {200, 100, 100}, {300, 100, 200}}, 2, 0, true},
		{"upward flick", []PointerSample{{0, 300, 0}, {0, 100, 50}}, 0, -8, true},
		{"no elapsed time", []PointerSample{{0, 0, 10}, {50, 0, 10}}, 0, 0, false},
		{"clock went back", []PointerSample{{0, 0, 10}, {50, 0, 5}}, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewPointerHistory(6)
			for _, s := range tt.samples {
				h.Record(s.X, s.Y, s.T)
			}

			vx, vy, ok := h.Throw(2)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.wantVX, vx, 1e-9)
			assert.InDelta(t, tt.wantVY, vy, 1e-9)
		})
	}
}

func TestPointerHistory_ThrowUsesOldestAndNewest(t *testing.T) {
	h := NewPointerHistory(3)
	h.Record(0, 0, 0)
	h.Record(1000, 0, 10)
	h.Record(10, 0, 20)
	h.Record(20, 0, 30)

	// oldest kept sample is (1000, 10)
	vx, _, ok := h.Throw(1)
	assert.True(t, ok)
	assert.InDelta(t, -49, vx, 1e-9)
}

func TestDirection(t *testing.T) {
	assert.Equal(t, 1.0, DirRight.Sign())
	assert.Equal(t, -1.0, DirLeft.Sign())
	assert.Equal(t, DirRight, DirLeft.Opposite())
	assert.Equal(t, DirLeft, DirRight.Opposite())
	assert.Equal(t, "left", DirLeft.String())
	assert.Equal(t, "right", DirRight.String())
	assert.Equal(t, "unknown", Direction(5).String())
}
