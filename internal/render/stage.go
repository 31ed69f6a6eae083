package render

import (
	"cmp"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// Stage is the render surface: an ordered set of sprites drawn back to front.
type Stage struct {
	width, height int
	children      []*Sprite

	added     int
	releases  int
	destroyed bool
}

// NewStage creates an empty stage sized to the viewport
func NewStage(width, height int) *Stage {
	return &Stage{width: width, height: height}
}

// Size returns the viewport size
func (st *Stage) Size() (width, height int) {
	return st.width, st.height
}

// Resize updates the viewport size
func (st *Stage) Resize(width, height int) {
	st.width = width
	st.height = height
}

// AddChild attaches a sprite. Adding to a destroyed stage is ignored.
func (st *Stage) AddChild(s *Sprite) {
	if st.destroyed || s == nil || s.destroyed {
		return
	}
	if s.stage == st {
		return
	}
	if s.stage != nil {
		s.stage.RemoveChild(s)
	}
	s.stage = st
	st.children = append(st.children, s)
	st.added++
}

// RemoveChild detaches a sprite
func (st *Stage) RemoveChild(s *Sprite) {
	i := slices.Index(st.children, s)
	if i < 0 {
		return
	}
	st.children = slices.Delete(st.children, i, i+1)
	s.stage = nil
}

// Len returns the number of attached sprites
func (st *Stage) Len() int {
	return len(st.children)
}

// Children returns the sprites in draw order
func (st *Stage) Children() []*Sprite {
	st.sort()
	return slices.Clone(st.children)
}

// AddedCount returns how many sprites were ever attached
func (st *Stage) AddedCount() int {
	return st.added
}

// sort orders children by Z. Equal Z keeps insertion order.
func (st *Stage) sort() {
	slices.SortStableFunc(st.children, func(a, b *Sprite) int {
		return cmp.Compare(a.Z, b.Z)
	})
}

// Update advances every sprite animation by one tick
func (st *Stage) Update() {
	for _, s := range st.children {
		s.Advance()
	}
}

// Draw renders all visible sprites, shifted by (ox, oy)
func (st *Stage) Draw(dst *ebiten.Image, ox, oy float64) {
	if st.destroyed {
		return
	}
	st.sort()
	for _, s := range st.children {
		s.Draw(dst, ox, oy)
	}
}

// Destroy detaches and destroys every child. Only the first call has effect.
func (st *Stage) Destroy() {
	if st.destroyed {
		return
	}
	for _, s := range slices.Clone(st.children) {
		s.Destroy()
	}
	st.children = nil
	st.destroyed = true
	st.releases++
}

// Destroyed reports whether the stage has been released
func (st *Stage) Destroyed() bool {
	return st.destroyed
}

// ReleaseCount returns how many times the stage was actually released
func (st *Stage) ReleaseCount() int {
	return st.releases
}
