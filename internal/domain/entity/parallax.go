package entity

import (
	"github.com/younwookim/pixelcity/internal/render"
)

// Parallax shifts background layers against the cursor. Deeper layers
// (higher index) move further.
type Parallax struct {
	Strength float64 // shift in px at the viewport edge
	Step     float64 // depth added per layer
	Layers   []*render.Backdrop
}

// ParallaxOffset returns the shift of one layer along one axis
func ParallaxOffset(cursor, size, strength float64, index int, step float64) float64 {
	if size <= 0 {
		return 0
	}
	return (cursor/size - 0.5) * strength * float64(index+1) * step
}

// Follow moves every layer for a cursor at (cx, cy) in a width×height view
func (p *Parallax) Follow(cx, cy, width, height float64) {
	for i, l := range p.Layers {
		l.OffsetX = ParallaxOffset(cx, width, p.Strength, i, p.Step)
		l.OffsetY = ParallaxOffset(cy, height, p.Strength, i, p.Step)
	}
}
