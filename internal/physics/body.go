package physics

import (
	"github.com/jakecoffman/cp"
)

// Material describes how a shape responds to contact
type Material struct {
	Elasticity float64
	Friction   float64
}

// BoxOptions configures a rectangular body
type BoxOptions struct {
	Static   bool
	Mass     float64 // ignored for static bodies
	Material Material

	// Bodies sharing a non-zero group never collide with each other
	Group uint

	Category Category
	Mask     Category // zero means CategoryAll
}

// Body is a rectangle attached to a World.
// Position is the centre of the rectangle.
type Body struct {
	world   *World
	body    *cp.Body
	shape   *cp.Shape
	width   float64
	height  float64
	opts    BoxOptions
	frozen  bool
	removed bool
}

// NewBox creates a rectangular body centred at (x, y) and adds it to the world
func (w *World) NewBox(x, y, width, height float64, opts BoxOptions) *Body {
	if opts.Category == 0 {
		opts.Category = CategoryAll
	}
	if opts.Mask == 0 {
		opts.Mask = CategoryAll
	}
	if !opts.Static && opts.Mass <= 0 {
		opts.Mass = 1
	}

	var body *cp.Body
	if opts.Static {
		body = cp.NewStaticBody()
	} else {
		body = cp.NewBody(opts.Mass, cp.MomentForBox(opts.Mass, width, height))
	}
	body.SetPosition(cp.Vector{X: x, Y: y})
	w.space.AddBody(body)

	b := &Body{
		world:  w,
		body:   body,
		width:  width,
		height: height,
		opts:   opts,
	}
	b.attachShape()
	w.bodies[b] = struct{}{}

	return b
}

func (b *Body) attachShape() {
	shape := cp.NewBox(b.body, b.width, b.height, 0)
	shape.SetElasticity(b.opts.Material.Elasticity)
	shape.SetFriction(b.opts.Material.Friction)
	shape.SetFilter(cp.ShapeFilter{
		Group:      b.opts.Group,
		Categories: uint(b.opts.Category),
		Mask:       uint(b.opts.Mask),
	})
	b.world.space.AddShape(shape)
	b.shape = shape
}

// Position returns the centre of the body
func (b *Body) Position() (x, y float64) {
	p := b.body.Position()
	return p.X, p.Y
}

// SetPosition teleports the body. Moving to the current position is a no-op.
func (b *Body) SetPosition(x, y float64) {
	if p := b.body.Position(); p.X == x && p.Y == y {
		return
	}
	b.body.SetPosition(cp.Vector{X: x, Y: y})
	if b.opts.Static && !b.removed {
		b.reindex()
	}
}

// reindex re-adds the shape so the space caches its new bounding box.
// Static shapes are only bounded when added; the space never updates them.
func (b *Body) reindex() {
	b.world.space.RemoveShape(b.shape)
	b.world.space.AddShape(b.shape)
}

// Velocity returns the linear velocity in px/s
func (b *Body) Velocity() (vx, vy float64) {
	v := b.body.Velocity()
	return v.X, v.Y
}

// SetVelocity sets the linear velocity in px/s
func (b *Body) SetVelocity(vx, vy float64) {
	b.body.SetVelocity(vx, vy)
}

// Angle returns the rotation in radians
func (b *Body) Angle() float64 {
	return b.body.Angle()
}

// Size returns the current rectangle dimensions
func (b *Body) Size() (width, height float64) {
	return b.width, b.height
}

// IsStatic reports whether the body is immune to forces, either because it
// was created static or because it is currently frozen.
func (b *Body) IsStatic() bool {
	return b.opts.Static || b.frozen
}

// SetStatic freezes or releases a dynamic body. A frozen body ignores gravity
// and contacts but can still be moved with SetPosition.
func (b *Body) SetStatic(frozen bool) {
	if b.opts.Static || b.frozen == frozen || b.removed {
		return
	}
	b.frozen = frozen

	if frozen {
		b.body.SetType(cp.BODY_KINEMATIC)
		b.body.SetVelocity(0, 0)
		b.body.SetAngularVelocity(0)
		return
	}

	b.body.SetType(cp.BODY_DYNAMIC)
	b.body.SetMass(b.opts.Mass)
	b.body.SetMoment(cp.MomentForBox(b.opts.Mass, b.width, b.height))
}

// Scale resizes the rectangle around its centre. A polygon cannot change
// size in place, so the shape is rebuilt unless both factors are 1.
func (b *Body) Scale(sx, sy float64) {
	if b.removed || (sx == 1 && sy == 1) {
		return
	}
	b.world.space.RemoveShape(b.shape)
	b.width *= sx
	b.height *= sy
	b.attachShape()

	if !b.opts.Static && !b.frozen {
		b.body.SetMoment(cp.MomentForBox(b.opts.Mass, b.width, b.height))
	}
}

// Touching reports whether the body currently has a contact with other
func (b *Body) Touching(other *Body) bool {
	if b.removed || other == nil || other.removed {
		return false
	}
	touching := false
	b.body.EachArbiter(func(arb *cp.Arbiter) {
		a, c := arb.Bodies()
		if a == other.body || c == other.body {
			touching = true
		}
	})
	return touching
}

// Remove detaches the body and its shape from the world. Safe to call twice.
func (b *Body) Remove() {
	if b.removed {
		return
	}
	b.removed = true
	b.world.space.RemoveShape(b.shape)
	b.world.space.RemoveBody(b.body)
	delete(b.world.bodies, b)
}

// Removed reports whether Remove has been called
func (b *Body) Removed() bool {
	return b.removed
}
