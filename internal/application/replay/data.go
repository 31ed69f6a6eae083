// Package replay records pointer input frame by frame and plays it back.
//
// Window size changes are not recorded. Together with the scene seed a
// replay reproduces a session exactly only if the viewport kept the
// recorded Width and Height throughout, which is why the host locks the
// window size while recording or replaying.
package replay

// Version is written into every replay file
const Version = "2.0"

// FrameInput records pointer state for a single frame
type FrameInput struct {
	F int     `json:"f"`           // Frame number
	X float64 `json:"x"`           // Pointer X
	Y float64 `json:"y"`           // Pointer Y
	D bool    `json:"d,omitempty"` // Down
	P bool    `json:"p,omitempty"` // Pressed
	R bool    `json:"r,omitempty"` // Released
}

// ReplayData contains all data needed to replay a session
type ReplayData struct {
	Version   string       `json:"version"`
	Seed      uint64       `json:"seed"`
	Width     int          `json:"width"`
	Height    int          `json:"height"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
