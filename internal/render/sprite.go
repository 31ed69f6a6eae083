// Package render provides a small retained sprite stage on top of Ebitengine.
//
// A Stage holds sprites sorted by Z. Sprites carry their own transform,
// opacity, anchor and an optional frame animation. Drawing always uses
// nearest-neighbour filtering so pixel art stays crisp at any scale.
package render

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Frames is a sequence of equally sized images played as an animation.
// A single-image Frames is a static picture.
type Frames struct {
	Images []*ebiten.Image
	Width  float64
	Height float64
}

// NewFrames builds Frames sized after the first image
func NewFrames(images ...*ebiten.Image) Frames {
	f := Frames{Images: images}
	if len(images) > 0 && images[0] != nil {
		b := images[0].Bounds()
		f.Width = float64(b.Dx())
		f.Height = float64(b.Dy())
	}
	return f
}

// Len returns the number of frames
func (f Frames) Len() int {
	return len(f.Images)
}

// Sprite is a positioned, optionally animated image
type Sprite struct {
	X, Y             float64
	ScaleX, ScaleY   float64
	Rotation         float64 // radians
	Alpha            float64
	AnchorX, AnchorY float64 // 0..1 within the frame, (0,0) is top-left
	Z                int
	Visible          bool

	frames    Frames
	speed     float64 // frames advanced per tick
	cursor    float64
	playing   bool
	stage     *Stage
	destroyed bool
}

// NewSprite creates a visible sprite at the origin with unit scale
func NewSprite(frames Frames) *Sprite {
	return &Sprite{
		ScaleX:  1,
		ScaleY:  1,
		Alpha:   1,
		Visible: true,
		frames:  frames,
	}
}

// Play starts the animation, advancing speed frames per tick (1/6 = one
// image every six ticks).
func (s *Sprite) Play(speed float64) {
	s.speed = speed
	s.playing = true
}

// Stop freezes the animation on the current frame
func (s *Sprite) Stop() {
	s.playing = false
}

// Playing reports whether the animation is advancing
func (s *Sprite) Playing() bool {
	return s.playing
}

// Frame returns the index of the current frame
func (s *Sprite) Frame() int {
	return int(s.cursor)
}

// Advance steps the animation by one tick
func (s *Sprite) Advance() {
	n := s.frames.Len()
	if !s.playing || n < 2 {
		return
	}
	s.cursor = math.Mod(s.cursor+s.speed, float64(n))
}

// SetScale sets a uniform scale
func (s *Sprite) SetScale(v float64) {
	s.ScaleX = v
	s.ScaleY = v
}

// FrameSize returns the unscaled frame dimensions
func (s *Sprite) FrameSize() (width, height float64) {
	return s.frames.Width, s.frames.Height
}

// Width returns the on-screen width
func (s *Sprite) Width() float64 {
	return s.frames.Width * math.Abs(s.ScaleX)
}

// Height returns the on-screen height
func (s *Sprite) Height() float64 {
	return s.frames.Height * math.Abs(s.ScaleY)
}

// Contains reports whether the screen point lies inside the sprite's
// rotated and scaled frame.
func (s *Sprite) Contains(px, py float64) bool {
	if s.ScaleX == 0 || s.ScaleY == 0 {
		return false
	}

	dx := px - s.X
	dy := py - s.Y
	sin, cos := math.Sincos(s.Rotation)
	lx := (dx*cos + dy*sin) / s.ScaleX
	ly := (-dx*sin + dy*cos) / s.ScaleY

	left := -s.AnchorX * s.frames.Width
	top := -s.AnchorY * s.frames.Height
	return lx >= left && lx <= left+s.frames.Width &&
		ly >= top && ly <= top+s.frames.Height
}

// Draw renders the current frame, shifted by (ox, oy)
func (s *Sprite) Draw(dst *ebiten.Image, ox, oy float64) {
	if !s.Visible || s.Alpha <= 0 || s.frames.Len() == 0 {
		return
	}
	img := s.frames.Images[s.Frame()%s.frames.Len()]
	if img == nil {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterNearest
	op.GeoM.Translate(-s.AnchorX*s.frames.Width, -s.AnchorY*s.frames.Height)
	op.GeoM.Scale(s.ScaleX, s.ScaleY)
	op.GeoM.Rotate(s.Rotation)
	op.GeoM.Translate(s.X+ox, s.Y+oy)
	op.ColorScale.ScaleAlpha(float32(s.Alpha))
	dst.DrawImage(img, op)
}

// Destroy detaches the sprite from its stage. The sprite must not be reused.
func (s *Sprite) Destroy() {
	if s.destroyed {
		return
	}
	if s.stage != nil {
		s.stage.RemoveChild(s)
	}
	s.playing = false
	s.destroyed = true
}

// Destroyed reports whether Destroy has been called
func (s *Sprite) Destroyed() bool {
	return s.destroyed
}

// Stage returns the stage the sprite is attached to, or nil
func (s *Sprite) Stage() *Stage {
	return s.stage
}
