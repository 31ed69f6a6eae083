package entity

import (
	"math/rand/v2"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/pixelcity/internal/render"
)

func npcFrames(states ...NpcState) map[NpcState]render.Frames {
	frames := make(map[NpcState]render.Frames, len(states))
	for _, s := range states {
		frames[s] = render.Frames{Width: 16, Height: 32, Images: make([]*ebiten.Image, 4)}
	}
	return frames
}

func newTestNpc(t *testing.T, states ...NpcState) *Npc {
	t.Helper()
	anims := NewNpcAnimations(npcFrames(states...), 0.1, 2)
	npc := NewNpc("npc1", anims, NpcOptions{
		Speed:     0.5,
		XRel:      0.5,
		YRel:      0.88,
		MinXRel:   0.45,
		MaxXRel:   0.55,
		Direction: DirRight,
	})
	require.NotNil(t, npc)
	npc.Resize(1000, 500, 2)
	return npc
}

func visibleCount(n *Npc) int {
	count := 0
	for _, s := range n.Sprites() {
		if s.Visible {
			count++
		}
	}
	return count
}

func TestNewNpcAnimations(t *testing.T) {
	anims := NewNpcAnimations(npcFrames(NpcIdle, NpcSpecial), 0.1, 2)

	require.NotNil(t, anims[NpcIdle])
	assert.Nil(t, anims[NpcWalk])
	require.NotNil(t, anims[NpcSpecial])
	assert.Len(t, anims.Sprites(), 2)

	s := anims[NpcIdle]
	assert.Equal(t, 0.5, s.AnchorX)
	assert.Equal(t, 1.0, s.AnchorY)
	assert.Equal(t, 2, s.Z)
	assert.True(t, s.Playing())
	assert.False(t, s.Visible)
}

func TestNewNpc_RequiresIdle(t *testing.T) {
	anims := NewNpcAnimations(npcFrames(NpcWalk), 0.1, 2)
	assert.Nil(t, NewNpc("ghost", anims, NpcOptions{}))
}

func TestNewNpc_StartsIdle(t *testing.T) {
	npc := newTestNpc(t, NpcIdle, NpcWalk, NpcSpecial)

	assert.Equal(t, NpcIdle, npc.State())
	assert.Equal(t, 1, visibleCount(npc))
	assert.True(t, npc.Active().Visible)
	assert.True(t, npc.Available(NpcWalk))
}

func TestNpc_SetStateKeepsPosition(t *testing.T) {
	npc := newTestNpc(t, NpcIdle, NpcWalk, NpcSpecial)
	npc.Active().X = 512
	npc.Active().ScaleX = -2

	for _, state := range []NpcState{NpcWalk, NpcSpecial, NpcIdle} {
		prev := npc.Active()
		px, py := prev.X, prev.Y

		require.True(t, npc.SetState(state))

		assert.Equal(t, state, npc.State())
		assert.Equal(t, 1, visibleCount(npc), "state %s", state)
		assert.True(t, npc.Active().Visible)
		assert.Equal(t, px, npc.Active().X)
		assert.Equal(t, py, npc.Active().Y)
		assert.Equal(t, -2.0, npc.Active().ScaleX)
	}
}

func TestNpc_SetStateSameOrMissing(t *testing.T) {
	npc := newTestNpc(t, NpcIdle, NpcSpecial)

	assert.False(t, npc.SetState(NpcIdle))
	assert.False(t, npc.SetState(NpcWalk))
	assert.Equal(t, NpcIdle, npc.State())
}

func TestNpc_RandomizeState(t *testing.T) {
	tests := []struct {
		name   string
		states []NpcState
		start  NpcState
		r      float64
		want   NpcState
	}{
		{"low draw idles", []NpcState{NpcIdle, NpcWalk, NpcSpecial}, NpcSpecial, 0.2, NpcIdle},
		{"middle draw walks", []NpcState{NpcIdle, NpcWalk, NpcSpecial}, NpcIdle, 0.7, NpcWalk},
		{"high draw is special", []NpcState{NpcIdle, NpcWalk, NpcSpecial}, NpcIdle, 0.9, NpcSpecial},
		{"walk draw without walk", []NpcState{NpcIdle, NpcSpecial}, NpcIdle, 0.7, NpcIdle},
		{"walk draw without walk keeps special", []NpcState{NpcIdle, NpcSpecial}, NpcSpecial, 0.7, NpcSpecial},
		{"special draw without special", []NpcState{NpcIdle, NpcWalk}, NpcWalk, 0.95, NpcWalk},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			npc := newTestNpc(t, tt.states...)
			npc.SetState(tt.start)

			npc.RandomizeState(tt.r)

			assert.Equal(t, tt.want, npc.State())
			assert.Equal(t, 1, visibleCount(npc))
		})
	}
}

func TestNpc_Randomize(t *testing.T) {
	npc := newTestNpc(t, NpcIdle, NpcWalk, NpcSpecial)
	rng := rand.New(rand.NewPCG(7, 7))

	seen := make(map[NpcState]bool)
	for i := 0; i < 200; i++ {
		npc.Randomize(rng)
		seen[npc.State()] = true
		require.Equal(t, 1, visibleCount(npc))
	}
	assert.Len(t, seen, 3)
}

func TestNpc_TickPatrolsWithinBounds(t *testing.T) {
	npc := newTestNpc(t, NpcIdle, NpcWalk)
	require.True(t, npc.SetState(NpcWalk))

	minX, maxX := npc.Bounds()
	assert.Equal(t, 450.0, minX)
	assert.Equal(t, 550.0, maxX)

	turns := 0
	last := npc.Direction()
	for i := 0; i < 1000; i++ {
		npc.Tick()
		x := npc.Active().X
		assert.GreaterOrEqual(t, x, minX-0.5)
		assert.LessOrEqual(t, x, maxX+0.5)

		if npc.Direction() != last {
			turns++
			last = npc.Direction()
			if last == DirLeft {
				assert.Greater(t, x, maxX)
			} else {
				assert.Less(t, x, minX)
			}
		}
	}
	assert.Greater(t, turns, 2)
}

func TestNpc_TickFacesTravelDirection(t *testing.T) {
	npc := newTestNpc(t, NpcIdle, NpcWalk)
	require.True(t, npc.SetState(NpcWalk))

	npc.Tick()
	assert.Equal(t, 2.0, npc.Active().ScaleX)

	npc.direction = DirLeft
	npc.Tick()
	assert.Equal(t, -2.0, npc.Active().ScaleX)
}

func TestNpc_TickIgnoredOutsideWalk(t *testing.T) {
	npc := newTestNpc(t, NpcIdle, NpcWalk, NpcSpecial)
	x := npc.Active().X

	npc.Tick()
	assert.Equal(t, x, npc.Active().X)

	require.True(t, npc.SetState(NpcSpecial))
	npc.Tick()
	assert.Equal(t, x, npc.Active().X)
}

func TestNpc_ResizeIsIdempotent(t *testing.T) {
	npc := newTestNpc(t, NpcIdle, NpcWalk, NpcSpecial)

	npc.Resize(1280, 720, 1.6)
	first := *npc.Active()
	minA, maxA := npc.Bounds()

	npc.Resize(1280, 720, 1.6)
	assert.Equal(t, first.X, npc.Active().X)
	assert.Equal(t, first.Y, npc.Active().Y)
	assert.Equal(t, first.ScaleX, npc.Active().ScaleX)
	minB, maxB := npc.Bounds()
	assert.Equal(t, minA, minB)
	assert.Equal(t, maxA, maxB)

	assert.InDelta(t, 640, first.X, 1e-9)
	assert.InDelta(t, 633.6, first.Y, 1e-9)
}

func TestNpc_ResizeMovesOnlyActiveSprite(t *testing.T) {
	npc := newTestNpc(t, NpcIdle, NpcWalk)
	walk := npc.anims[NpcWalk]
	walk.X, walk.Y = 1, 1

	npc.Resize(2000, 1000, 4)

	assert.Equal(t, 1000.0, npc.Active().X)
	assert.Equal(t, 1.0, walk.X)
	assert.Equal(t, 4.0, walk.ScaleX)

	require.True(t, npc.SetState(NpcWalk))
	assert.Equal(t, 1000.0, walk.X)
}

func TestNpc_Destroy(t *testing.T) {
	stage := render.NewStage(100, 100)
	npc := newTestNpc(t, NpcIdle, NpcWalk, NpcSpecial)
	for _, s := range npc.Sprites() {
		stage.AddChild(s)
	}
	require.Equal(t, 3, stage.Len())

	npc.Destroy()
	npc.Destroy()

	assert.True(t, npc.Destroyed())
	assert.Equal(t, 0, stage.Len())
	assert.False(t, npc.SetState(NpcWalk))
}

func TestSidewalk_Place(t *testing.T) {
	sw := Sidewalk{Y: 0.88, MinX: 0.26, MaxX: 0.82, WalkRange: 0.05}

	tests := []struct {
		name    string
		r       float64
		x       float64
		minXRel float64
		maxXRel float64
	}{
		{"left end", 0, 0.26, 0.26, 0.31},
		{"middle", 0.5, 0.515, 0.465, 0.565},
		{"right end", 1, 0.77, 0.72, 0.82},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := sw.Place(tt.r, 0.1, DirLeft)
			assert.InDelta(t, tt.x, opts.XRel, 1e-9)
			assert.InDelta(t, tt.minXRel, opts.MinXRel, 1e-9)
			assert.InDelta(t, tt.maxXRel, opts.MaxXRel, 1e-9)
			assert.Equal(t, 0.88, opts.YRel)
			assert.Equal(t, 0.1, opts.Speed)
			assert.Equal(t, DirLeft, opts.Direction)
		})
	}
}

func TestNpcState_String(t *testing.T) {
	assert.Equal(t, "idle", NpcIdle.String())
	assert.Equal(t, "walk", NpcWalk.String())
	assert.Equal(t, "special", NpcSpecial.String())
	assert.Equal(t, "unknown", NpcState(9).String())
	assert.Equal(t, []NpcState{NpcIdle, NpcWalk, NpcSpecial}, NpcStates())
}
