// Package entity contains the scene actors: cars, NPCs, decorations and
// the parallax backdrop. Actors own their sprites and bodies and clean up
// after themselves on Destroy.
package entity

// Direction is the way an actor travels
type Direction int

const (
	DirRight Direction = iota
	DirLeft
)

// Sign returns -1 for left and 1 for right
func (d Direction) Sign() float64 {
	if d == DirLeft {
		return -1
	}
	return 1
}

// Opposite returns the reverse direction
func (d Direction) Opposite() Direction {
	if d == DirLeft {
		return DirRight
	}
	return DirLeft
}

func (d Direction) String() string {
	switch d {
	case DirRight:
		return "right"
	case DirLeft:
		return "left"
	default:
		return "unknown"
	}
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
