package assets

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/pixelcity/internal/render"
)

// Uploader turns decoded assets into textures
type Uploader interface {
	Upload() (*Library, error)
}

// Library holds GPU textures ready for sprites
type Library struct {
	frames     map[string]render.Frames
	animations map[string]map[string]render.Frames
	owned      []*ebiten.Image
	released   bool
}

// NewLibrary creates an empty library
func NewLibrary() *Library {
	return &Library{
		frames:     make(map[string]render.Frames),
		animations: make(map[string]map[string]render.Frames),
	}
}

// AddFrames registers a single-image asset
func (l *Library) AddFrames(key string, frames render.Frames) {
	l.frames[key] = frames
}

// AddAnimation registers one animation of a spritesheet
func (l *Library) AddAnimation(sheet, name string, frames render.Frames) {
	anims, ok := l.animations[sheet]
	if !ok {
		anims = make(map[string]render.Frames)
		l.animations[sheet] = anims
	}
	anims[name] = frames
}

// Frames returns a single-image asset as one-frame Frames
func (l *Library) Frames(key string) (render.Frames, error) {
	f, ok := l.frames[key]
	if !ok {
		return render.Frames{}, fmt.Errorf("%w: %s", ErrUnknownAsset, key)
	}
	return f, nil
}

// Image returns the texture of a single-image asset
func (l *Library) Image(key string) (*ebiten.Image, error) {
	f, err := l.Frames(key)
	if err != nil {
		return nil, err
	}
	if f.Len() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFrames, key)
	}
	return f.Images[0], nil
}

// Animation returns the named animation of a spritesheet
func (l *Library) Animation(sheet, name string) (render.Frames, error) {
	anims, ok := l.animations[sheet]
	if !ok {
		return render.Frames{}, fmt.Errorf("%w: %s", ErrUnknownAsset, sheet)
	}
	f, ok := anims[name]
	if !ok {
		return render.Frames{}, fmt.Errorf("%w: %s in %s", ErrUnknownAnimation, name, sheet)
	}
	return f, nil
}

// Release frees every texture created by Upload. Only the first call has effect.
func (l *Library) Release() {
	if l.released {
		return
	}
	for _, img := range l.owned {
		img.Deallocate()
	}
	l.owned = nil
	l.released = true
}

// Released reports whether Release has been called
func (l *Library) Released() bool {
	return l.released
}

// Upload creates textures for every decoded asset.
// It must be called on the game loop goroutine.
func (b *Bundle) Upload() (*Library, error) {
	lib := NewLibrary()

	for key, img := range b.Images {
		tex := ebiten.NewImageFromImage(img)
		lib.owned = append(lib.owned, tex)
		lib.AddFrames(key, render.NewFrames(tex))
	}

	for key, sheet := range b.Sheets {
		atlas := ebiten.NewImageFromImage(sheet.Image)
		lib.owned = append(lib.owned, atlas)

		for name, frameNames := range sheet.Animations {
			images := make([]*ebiten.Image, 0, len(frameNames))
			for _, frame := range frameNames {
				images = append(images, subImage(atlas, sheet.Frames[frame]))
			}
			if len(images) == 0 {
				lib.Release()
				return nil, fmt.Errorf("%w: %s in %s", ErrNoFrames, name, key)
			}
			lib.AddAnimation(key, name, render.NewFrames(images...))
		}
	}

	return lib, nil
}

func subImage(atlas *ebiten.Image, r image.Rectangle) *ebiten.Image {
	return atlas.SubImage(r).(*ebiten.Image)
}
