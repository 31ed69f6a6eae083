package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/pixelcity/internal/application/system"
)

// Recorder passes pointer input through from a source and keeps a copy of
// every frame.
type Recorder struct {
	source    system.PointerSource
	data      ReplayData
	recording bool
}

// NewRecorder records source for a session started with seed
func NewRecorder(source system.PointerSource, seed uint64, width, height int) *Recorder {
	return &Recorder{
		source: source,
		data: ReplayData{
			Version:   Version,
			Seed:      seed,
			Width:     width,
			Height:    height,
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]FrameInput, 0, 3600), // Pre-allocate for ~1 minute at 60fps
		},
		recording: true,
	}
}

// Pointer reads the source and records the frame
func (r *Recorder) Pointer() system.PointerState {
	p := r.source.Pointer()
	if r.recording {
		r.data.Frames = append(r.data.Frames, FrameInput{
			F: len(r.data.Frames),
			X: p.X,
			Y: p.Y,
			D: p.Down,
			P: p.Pressed,
			R: p.Released,
		})
	}
	return p
}

// Save writes the replay data to a file
func (r *Recorder) Save(filename string) error {
	if len(r.data.Frames) == 0 {
		return fmt.Errorf("no frames to save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}

	return nil
}

// Stop stops recording; input still passes through
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// Data returns the recorded replay data
func (r *Recorder) Data() ReplayData {
	return r.data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}
