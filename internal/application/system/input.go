package system

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerState is one frame of mouse or touch input
type PointerState struct {
	X, Y     float64
	Down     bool // held this frame
	Pressed  bool // went down this frame
	Released bool // went up this frame
}

// PointerSource provides the pointer for the current frame
type PointerSource interface {
	Pointer() PointerState
}

// InputSystem reads the left mouse button, or the first touch when one is
// active.
type InputSystem struct {
	touch    ebiten.TouchID
	touching bool
	touchIDs []ebiten.TouchID

	// last known touch position, reported on release
	lastX, lastY float64
}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// Pointer reads the current pointer state
func (s *InputSystem) Pointer() PointerState {
	if p, ok := s.touchPointer(); ok {
		return p
	}

	mx, my := ebiten.CursorPosition()
	return PointerState{
		X:        float64(mx),
		Y:        float64(my),
		Down:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Pressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Released: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
}

// touchPointer tracks a single touch from press to release
func (s *InputSystem) touchPointer() (PointerState, bool) {
	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])

	if s.touching {
		if !slices.Contains(s.touchIDs, s.touch) {
			s.touching = false
			return PointerState{X: s.lastX, Y: s.lastY, Released: true}, true
		}
		s.readTouch()
		return PointerState{X: s.lastX, Y: s.lastY, Down: true}, true
	}

	if len(s.touchIDs) == 0 {
		return PointerState{}, false
	}
	s.touch = s.touchIDs[0]
	s.touching = true
	s.readTouch()
	return PointerState{X: s.lastX, Y: s.lastY, Down: true, Pressed: true}, true
}

func (s *InputSystem) readTouch() {
	x, y := ebiten.TouchPosition(s.touch)
	s.lastX, s.lastY = float64(x), float64(y)
}
