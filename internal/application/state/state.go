package state

// SceneState represents where the scene is in its lifecycle
type SceneState int

const (
	StateIdle SceneState = iota
	StateLoading
	StateRunning
	StateDestroyed
)

// String returns the string representation of the scene state
func (s SceneState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateLoading:
		return "Loading"
	case StateRunning:
		return "Running"
	case StateDestroyed:
		return "Destroyed"
	default:
		return "Unknown"
	}
}

// Active reports whether the scene still owns live resources
func (s SceneState) Active() bool {
	return s == StateLoading || s == StateRunning
}
