// Package physics wraps a Chipmunk2D space behind the small surface the scene
// needs: a fixed-step world, rectangular bodies, collision categories and a
// contact query.
//
// Units are pixels and seconds. The Y axis points down, matching screen space,
// so a positive gravity pulls bodies toward the bottom of the viewport.
package physics

import (
	"github.com/jakecoffman/cp"
)

// Category is a collision category bit. A shape collides with another only if
// each one's category is present in the other's mask.
type Category uint

const (
	CategoryCar Category = 1 << iota
	CategoryGroundLeft
	CategoryGroundRight
)

// CategoryAll matches every category when used as a mask.
const CategoryAll = Category(^uint(0))

// Config holds world-wide simulation settings
type Config struct {
	Gravity  float64 // px/s², positive is down
	Timestep float64 // seconds advanced by each Step
}

// World is a fixed-step rigid-body simulation.
type World struct {
	space     *cp.Space
	timestep  float64
	bodies    map[*Body]struct{}
	destroyed bool
}

// NewWorld creates an empty world with downward gravity
func NewWorld(cfg Config) *World {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: 0, Y: cfg.Gravity})

	timestep := cfg.Timestep
	if timestep <= 0 {
		timestep = 1.0 / 60.0
	}

	return &World{
		space:    space,
		timestep: timestep,
		bodies:   make(map[*Body]struct{}),
	}
}

// Step advances the simulation by exactly one fixed timestep.
// Elapsed wall time is ignored; a slow frame simply runs the world slower.
func (w *World) Step() {
	if w.destroyed {
		return
	}
	w.space.Step(w.timestep)
}

// Timestep returns the seconds advanced per Step
func (w *World) Timestep() float64 {
	return w.timestep
}

// StepRate returns the number of steps per simulated second
func (w *World) StepRate() float64 {
	return 1 / w.timestep
}

// BodyCount returns the number of bodies currently in the world
func (w *World) BodyCount() int {
	return len(w.bodies)
}

// Destroyed reports whether Destroy has been called
func (w *World) Destroyed() bool {
	return w.destroyed
}

// Destroy removes every remaining body. The world is unusable afterwards.
func (w *World) Destroy() {
	if w.destroyed {
		return
	}
	for b := range w.bodies {
		b.Remove()
	}
	w.destroyed = true
}
