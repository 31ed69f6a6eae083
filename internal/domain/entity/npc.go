package entity

import (
	"math"
	"math/rand/v2"

	"github.com/younwookim/pixelcity/internal/render"
)

// NpcState is the animation an NPC is playing
type NpcState int

const (
	NpcIdle NpcState = iota
	NpcWalk
	NpcSpecial
	npcStateCount
)

func (s NpcState) String() string {
	switch s {
	case NpcIdle:
		return "idle"
	case NpcWalk:
		return "walk"
	case NpcSpecial:
		return "special"
	default:
		return "unknown"
	}
}

// NpcStates lists every state in declaration order
func NpcStates() []NpcState {
	return []NpcState{NpcIdle, NpcWalk, NpcSpecial}
}

// Randomizer thresholds
const (
	idleBelow = 0.6
	walkBelow = 0.85
)

// NpcAnimations holds one sprite per state. Idle is mandatory.
type NpcAnimations [npcStateCount]*render.Sprite

// NewNpcAnimations builds hidden, playing sprites anchored at bottom centre
// for every state present in frames.
func NewNpcAnimations(frames map[NpcState]render.Frames, speed float64, z int) NpcAnimations {
	var anims NpcAnimations
	for state, f := range frames {
		if state < 0 || state >= npcStateCount {
			continue
		}
		s := render.NewSprite(f)
		s.AnchorX, s.AnchorY = 0.5, 1
		s.Z = z
		s.Visible = false
		s.Play(speed)
		anims[state] = s
	}
	return anims
}

// Sprites returns the present sprites in state order
func (a NpcAnimations) Sprites() []*render.Sprite {
	sprites := make([]*render.Sprite, 0, npcStateCount)
	for _, s := range a {
		if s != nil {
			sprites = append(sprites, s)
		}
	}
	return sprites
}

// NpcOptions places an NPC in viewport-relative (0..1) coordinates
type NpcOptions struct {
	Speed     float64 // px per tick
	XRel      float64
	YRel      float64
	MinXRel   float64
	MaxXRel   float64
	Direction Direction
}

// Npc is an ambient character patrolling a short stretch of sidewalk
type Npc struct {
	Name string

	anims     NpcAnimations
	active    *render.Sprite
	state     NpcState
	direction Direction
	speed     float64

	xRel, yRel       float64
	minXRel, maxXRel float64
	minX, maxX       float64

	destroyed bool
}

// NewNpc creates an NPC showing its idle animation. It returns nil when the
// idle animation is missing.
func NewNpc(name string, anims NpcAnimations, opts NpcOptions) *Npc {
	idle := anims[NpcIdle]
	if idle == nil {
		return nil
	}
	for _, s := range anims.Sprites() {
		s.Visible = false
	}
	idle.Visible = true

	return &Npc{
		Name:      name,
		anims:     anims,
		active:    idle,
		state:     NpcIdle,
		direction: opts.Direction,
		speed:     opts.Speed,
		xRel:      opts.XRel,
		yRel:      opts.YRel,
		minXRel:   opts.MinXRel,
		maxXRel:   opts.MaxXRel,
	}
}

// State returns the current state
func (n *Npc) State() NpcState {
	return n.state
}

// Direction returns the patrol direction
func (n *Npc) Direction() Direction {
	return n.direction
}

// Active returns the visible sprite
func (n *Npc) Active() *render.Sprite {
	return n.active
}

// Sprites returns every animation sprite
func (n *Npc) Sprites() []*render.Sprite {
	return n.anims.Sprites()
}

// Bounds returns the patrol limits in pixels
func (n *Npc) Bounds() (minX, maxX float64) {
	return n.minX, n.maxX
}

// Available reports whether the NPC has an animation for state
func (n *Npc) Available(state NpcState) bool {
	return state >= 0 && state < npcStateCount && n.anims[state] != nil
}

// SetState switches the visible animation. The incoming sprite takes over
// the outgoing sprite's position and scale. It returns false when nothing
// changed.
func (n *Npc) SetState(state NpcState) bool {
	if n.destroyed || n.state == state || !n.Available(state) {
		return false
	}
	next := n.anims[state]

	for _, s := range n.anims.Sprites() {
		s.Visible = false
	}
	next.X, next.Y = n.active.X, n.active.Y
	next.ScaleX, next.ScaleY = n.active.ScaleX, n.active.ScaleY
	next.Visible = true

	n.state = state
	n.active = next
	return true
}

// RandomizeState maps r in [0, 1) to a state: below 0.6 idle, below 0.85
// walk, otherwise special. A state without an animation leaves the NPC as
// it is.
func (n *Npc) RandomizeState(r float64) bool {
	switch {
	case r < idleBelow:
		return n.SetState(NpcIdle)
	case r < walkBelow:
		return n.SetState(NpcWalk)
	default:
		return n.SetState(NpcSpecial)
	}
}

// Randomize draws r from rng and calls RandomizeState
func (n *Npc) Randomize(rng *rand.Rand) bool {
	return n.RandomizeState(rng.Float64())
}

// Tick walks the NPC one step and turns around past either bound
func (n *Npc) Tick() {
	if n.destroyed || n.state != NpcWalk || !n.Available(NpcWalk) {
		return
	}

	dir := n.direction.Sign()
	n.active.X += dir * n.speed
	n.active.ScaleX = math.Abs(n.active.ScaleX) * dir

	if n.active.X < n.minX {
		n.direction = DirRight
	}
	if n.active.X > n.maxX {
		n.direction = DirLeft
	}
}

// Resize recomputes the patrol bounds and the active sprite's position from
// the relative layout, and rescales every sprite. Inactive sprites pick up
// the position on their next activation.
func (n *Npc) Resize(width, height, scale float64) {
	if n.destroyed {
		return
	}
	for _, s := range n.anims.Sprites() {
		s.SetScale(scale)
	}

	n.minX = width * n.minXRel
	n.maxX = width * n.maxXRel

	n.active.X = width * n.xRel
	n.active.Y = height * n.yRel
}

// Destroy removes every animation sprite from its stage
func (n *Npc) Destroy() {
	if n.destroyed {
		return
	}
	for _, s := range n.anims.Sprites() {
		s.Destroy()
	}
	n.destroyed = true
}

// Destroyed reports whether Destroy has been called
func (n *Npc) Destroyed() bool {
	return n.destroyed
}

// Sidewalk is the strip NPCs are scattered over, in viewport-relative units
type Sidewalk struct {
	Y         float64
	MinX      float64
	MaxX      float64
	WalkRange float64
}

// Place turns r in [0, 1) into a spot on the sidewalk with a patrol range
// clamped to the sidewalk ends.
func (sw Sidewalk) Place(r, speed float64, dir Direction) NpcOptions {
	x := sw.MinX + r*(sw.MaxX-sw.MinX-sw.WalkRange)
	return NpcOptions{
		Speed:     speed,
		XRel:      x,
		YRel:      sw.Y,
		MinXRel:   clamp(x-sw.WalkRange, sw.MinX, x),
		MaxXRel:   clamp(x+sw.WalkRange, x+sw.WalkRange/2, sw.MaxX),
		Direction: dir,
	}
}
