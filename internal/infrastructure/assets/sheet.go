package assets

import (
	"encoding/json"
	"fmt"
	"image"
	"io/fs"
	"path"
	"slices"
)

// Sheet is a decoded spritesheet: one atlas image and named frame sequences
type Sheet struct {
	Image      image.Image
	Frames     map[string]image.Rectangle
	Animations map[string][]string
}

// sheetFile is the JSON layout written by TexturePacker's "Pixi" exporter
type sheetFile struct {
	Frames map[string]struct {
		Frame struct {
			X int `json:"x"`
			Y int `json:"y"`
			W int `json:"w"`
			H int `json:"h"`
		} `json:"frame"`
	} `json:"frames"`
	Animations map[string][]string `json:"animations"`
	Meta       struct {
		Image string `json:"image"`
	} `json:"meta"`
}

func (l *Loader) loadSheet(p string) (*Sheet, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, err
	}

	sheet, atlas, err := parseSheet(data)
	if err != nil {
		return nil, err
	}

	img, err := l.decodeImage(path.Join(path.Dir(p), atlas))
	if err != nil {
		return nil, fmt.Errorf("atlas %s: %w", atlas, err)
	}
	sheet.Image = img

	bounds := img.Bounds()
	for name, rect := range sheet.Frames {
		if !rect.In(bounds) {
			return nil, fmt.Errorf("frame %s %v lies outside atlas %v", name, rect, bounds)
		}
	}

	return sheet, nil
}

// parseSheet decodes the JSON part of a spritesheet and returns the atlas
// image path relative to the sheet.
func parseSheet(data []byte) (*Sheet, string, error) {
	var file sheetFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, "", fmt.Errorf("failed to parse spritesheet: %w", err)
	}
	if file.Meta.Image == "" {
		return nil, "", fmt.Errorf("spritesheet has no meta.image")
	}

	sheet := &Sheet{
		Frames:     make(map[string]image.Rectangle, len(file.Frames)),
		Animations: make(map[string][]string, len(file.Animations)),
	}
	for name, f := range file.Frames {
		sheet.Frames[name] = image.Rect(f.Frame.X, f.Frame.Y, f.Frame.X+f.Frame.W, f.Frame.Y+f.Frame.H)
	}

	for name, frames := range file.Animations {
		if len(frames) == 0 {
			return nil, "", fmt.Errorf("%w: %s", ErrNoFrames, name)
		}
		for _, frame := range frames {
			if _, ok := sheet.Frames[frame]; !ok {
				return nil, "", fmt.Errorf("animation %s references unknown frame %s", name, frame)
			}
		}
		sheet.Animations[name] = slices.Clone(frames)
	}

	return sheet, file.Meta.Image, nil
}

// AnimationNames returns the sheet's animation names in sorted order
func (s *Sheet) AnimationNames() []string {
	names := make([]string, 0, len(s.Animations))
	for name := range s.Animations {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
