package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/younwookim/pixelcity/internal/application/system"
)

// Replayer plays recorded pointer input back as a PointerSource
type Replayer struct {
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}

	return &data, nil
}

// Pointer returns the input for the current frame and advances.
// After the last frame the pointer stays idle at its final position.
func (r *Replayer) Pointer() system.PointerState {
	if len(r.data.Frames) == 0 {
		return system.PointerState{}
	}
	if r.frame >= len(r.data.Frames) {
		last := r.data.Frames[len(r.data.Frames)-1]
		return system.PointerState{X: last.X, Y: last.Y}
	}

	fi := r.data.Frames[r.frame]
	r.frame++

	return system.PointerState{
		X:        fi.X,
		Y:        fi.Y,
		Down:     fi.D,
		Pressed:  fi.P,
		Released: fi.R,
	}
}

// Done reports whether every frame has been played
func (r *Replayer) Done() bool {
	return r.frame >= len(r.data.Frames)
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Seed returns the seed used for the replay
func (r *Replayer) Seed() uint64 {
	return r.data.Seed
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}
