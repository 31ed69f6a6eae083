package entity

import (
	"math"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/younwookim/pixelcity/internal/physics"
	"github.com/younwookim/pixelcity/internal/render"
)

// carGroup keeps cars from colliding with each other
const carGroup = 1

// CarOptions configures a new car
type CarOptions struct {
	Frames    render.Frames
	Direction Direction
	X, Y      float64
	Scale     float64

	AnimationSpeed float64
	Z              int
	Mass           float64
	Material       physics.Material

	// Lane is the collision category of the ground the car drives on
	Lane physics.Category

	MinSpeed, MaxSpeed float64 // drive speed range, px/s
	CullMargin         float64
	HistorySize        int
	ThrowTimeDivisor   float64
}

// Car is an animated sprite driven by a dynamic body. It can be grabbed,
// dragged and thrown with the pointer.
type Car struct {
	ID uuid.UUID

	sprite    *render.Sprite
	body      *physics.Body
	ground    *physics.Body
	direction Direction
	stepRate  float64
	rng       *rand.Rand
	opts      CarOptions

	dragging         bool
	offsetX, offsetY float64
	history          *PointerHistory

	destroyed bool
}

// NewCar creates a car and attaches its sprite to stage and its body to world.
// ground is the body the car drives on.
func NewCar(world *physics.World, stage *render.Stage, ground *physics.Body, opts CarOptions, rng *rand.Rand) *Car {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}

	sprite := render.NewSprite(opts.Frames)
	sprite.AnchorX, sprite.AnchorY = 0.5, 0.5
	sprite.Z = opts.Z
	sprite.X, sprite.Y = opts.X, opts.Y
	sprite.SetScale(opts.Scale)
	sprite.Play(opts.AnimationSpeed)

	w, h := sprite.Width(), sprite.Height()
	if w <= 0 || h <= 0 {
		w, h = 1, 1
	}
	body := world.NewBox(opts.X, opts.Y, w, h, physics.BoxOptions{
		Mass:     opts.Mass,
		Material: opts.Material,
		Group:    carGroup,
		Category: physics.CategoryCar,
		Mask:     opts.Lane,
	})

	if stage != nil {
		stage.AddChild(sprite)
	}

	return &Car{
		ID:        uuid.New(),
		sprite:    sprite,
		body:      body,
		ground:    ground,
		direction: opts.Direction,
		stepRate:  world.StepRate(),
		rng:       rng,
		opts:      opts,
		history:   NewPointerHistory(opts.HistorySize),
	}
}

// Direction returns the car's travel direction
func (c *Car) Direction() Direction {
	return c.direction
}

// Sprite returns the car's visual
func (c *Car) Sprite() *render.Sprite {
	return c.sprite
}

// Body returns the car's physics body
func (c *Car) Body() *physics.Body {
	return c.body
}

// Position returns the body centre
func (c *Car) Position() (x, y float64) {
	return c.body.Position()
}

// Dragging reports whether a drag gesture is in progress
func (c *Car) Dragging() bool {
	return c.dragging
}

// Contains reports whether the screen point is over the car
func (c *Car) Contains(x, y float64) bool {
	return !c.destroyed && c.sprite.Contains(x, y)
}

// PointerDown starts a drag when the point hits the car. t is in ms.
func (c *Car) PointerDown(x, y, t float64) bool {
	if c.destroyed || c.dragging || !c.Contains(x, y) {
		return false
	}
	c.dragging = true
	c.body.SetStatic(true)
	c.offsetX = x - c.sprite.X
	c.offsetY = y - c.sprite.Y
	c.history.Reset()
	c.history.Record(x, y, t)
	return true
}

// PointerMove drags the body to the pointer
func (c *Car) PointerMove(x, y, t float64) {
	if c.destroyed || !c.dragging {
		return
	}
	c.history.Record(x, y, t)
	c.body.SetPosition(x-c.offsetX, y-c.offsetY)
}

// PointerUp releases the car and throws it with the velocity of the recent
// pointer samples.
func (c *Car) PointerUp() {
	if c.destroyed || !c.dragging {
		return
	}
	c.dragging = false
	c.body.SetStatic(false)

	// Throw yields px per step; the body wants px/s
	if vx, vy, ok := c.history.Throw(c.opts.ThrowTimeDivisor); ok {
		c.body.SetVelocity(vx*c.stepRate, vy*c.stepRate)
	}
	c.history.Reset()
}

// Tick drives the car while it rests on its lane and syncs the sprite to the
// body. Call once per frame after the world step.
func (c *Car) Tick() {
	if c.destroyed {
		return
	}

	if !c.dragging {
		speed := c.opts.MinSpeed + c.rng.Float64()*(c.opts.MaxSpeed-c.opts.MinSpeed)

		if c.direction == DirLeft {
			c.sprite.ScaleX = -math.Abs(c.sprite.ScaleX)
		}

		if c.body.Touching(c.ground) {
			_, vy := c.body.Velocity()
			c.body.SetVelocity(c.direction.Sign()*speed, vy)
		}
	}

	c.sprite.X, c.sprite.Y = c.body.Position()
	c.sprite.Rotation = c.body.Angle()
}

// Rescale applies a new uniform scale to the sprite and resizes the body by
// the ratio to the previous one.
func (c *Car) Rescale(newScale, previousScale float64) {
	if c.destroyed || previousScale <= 0 || newScale <= 0 {
		return
	}
	ratio := newScale / previousScale
	c.sprite.SetScale(newScale)
	c.body.Scale(ratio, ratio)
}

// IsOffscreen reports whether the car left the viewport by more than the
// cull margin.
func (c *Car) IsOffscreen(viewportWidth float64) bool {
	x, _ := c.body.Position()
	return x < -c.opts.CullMargin || x > viewportWidth+c.opts.CullMargin
}

// Destroy removes the body and the sprite. A drag in progress is cancelled.
func (c *Car) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.dragging = false
	c.history.Reset()
	c.body.Remove()
	c.sprite.Destroy()
}

// Destroyed reports whether Destroy has been called
func (c *Car) Destroyed() bool {
	return c.destroyed
}
