package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSceneState_String(t *testing.T) {
	tests := []struct {
		state    SceneState
		expected string
	}{
		{StateIdle, "Idle"},
		{StateLoading, "Loading"},
		{StateRunning, "Running"},
		{StateDestroyed, "Destroyed"},
		{SceneState(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}

func TestSceneStateConstants(t *testing.T) {
	// Verify the iota ordering
	assert.Equal(t, SceneState(0), StateIdle)
	assert.Equal(t, SceneState(1), StateLoading)
	assert.Equal(t, SceneState(2), StateRunning)
	assert.Equal(t, SceneState(3), StateDestroyed)
}

func TestSceneState_Active(t *testing.T) {
	assert.False(t, StateIdle.Active())
	assert.True(t, StateLoading.Active())
	assert.True(t, StateRunning.Active())
	assert.False(t, StateDestroyed.Active())
}
