package entity

import (
	"github.com/younwookim/pixelcity/internal/render"
)

// DecorationLayout places a prop in viewport-relative coordinates
type DecorationLayout struct {
	XRel, YRel       float64
	Alpha            float64
	Z                int
	AnchorX, AnchorY float64
	AnimationSpeed   float64 // zero for a still image
}

// Decoration is a non-interactive prop such as a sign or a lamp
type Decoration struct {
	Key    string
	sprite *render.Sprite
	layout DecorationLayout
}

// NewDecoration creates the prop's sprite. It starts animating when the
// layout has a positive AnimationSpeed.
func NewDecoration(key string, frames render.Frames, layout DecorationLayout) *Decoration {
	s := render.NewSprite(frames)
	s.Alpha = layout.Alpha
	s.Z = layout.Z
	s.AnchorX, s.AnchorY = layout.AnchorX, layout.AnchorY
	if layout.AnimationSpeed > 0 {
		s.Play(layout.AnimationSpeed)
	}
	return &Decoration{Key: key, sprite: s, layout: layout}
}

// Sprite returns the prop's sprite
func (d *Decoration) Sprite() *render.Sprite {
	return d.sprite
}

// Layout scales the prop and moves it to its relative spot
func (d *Decoration) Layout(width, height, scale float64) {
	d.sprite.SetScale(scale)
	d.sprite.X = width * d.layout.XRel
	d.sprite.Y = height * d.layout.YRel
}

// Destroy detaches the sprite from its stage
func (d *Decoration) Destroy() {
	d.sprite.Destroy()
}
