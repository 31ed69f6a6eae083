package system

import (
	"github.com/younwookim/pixelcity/internal/domain/entity"
)

// DragSystem routes pointer input to the car being dragged
type DragSystem struct {
	dragged      *entity.Car
	lastX, lastY float64
}

// NewDragSystem creates a new drag system
func NewDragSystem() *DragSystem {
	return &DragSystem{}
}

// Dragged returns the car under the pointer, or nil
func (s *DragSystem) Dragged() *entity.Car {
	return s.dragged
}

// Update feeds one frame of pointer input. t is the frame time in ms.
// A press grabs the topmost car under the pointer; cars later in the slice
// are drawn above earlier ones.
func (s *DragSystem) Update(cars []*entity.Car, p PointerState, t float64) {
	if s.dragged != nil && s.dragged.Destroyed() {
		s.dragged = nil
	}

	if p.Pressed && s.dragged == nil {
		for i := len(cars) - 1; i >= 0; i-- {
			if cars[i].PointerDown(p.X, p.Y, t) {
				s.dragged = cars[i]
				s.lastX, s.lastY = p.X, p.Y
				break
			}
		}
	}

	if s.dragged == nil {
		return
	}

	// Move events only happen when the pointer actually moves
	if p.X != s.lastX || p.Y != s.lastY {
		s.dragged.PointerMove(p.X, p.Y, t)
		s.lastX, s.lastY = p.X, p.Y
	}

	if p.Released || !p.Down {
		s.dragged.PointerUp()
		s.dragged = nil
	}
}

// Cancel forgets the dragged car. Used on teardown, after the car is gone.
func (s *DragSystem) Cancel() {
	s.dragged = nil
}
