// Package assets loads the scene's image and spritesheet manifest.
//
// Loading happens in two phases. Load reads and decodes files on worker
// goroutines into a CPU-side Bundle. Bundle.Upload then turns the decoded
// pictures into GPU textures and must run on the game loop goroutine.
package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"path"
	"sync"

	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

var (
	ErrUnsupported      = errors.New("unsupported asset type")
	ErrUnknownAsset     = errors.New("unknown asset")
	ErrUnknownAnimation = errors.New("unknown animation")
	ErrNoFrames         = errors.New("animation has no frames")
)

// DefaultWorkers bounds concurrent file decoding
const DefaultWorkers = 4

// Bundle holds decoded assets keyed by manifest path
type Bundle struct {
	Images map[string]image.Image
	Sheets map[string]*Sheet
}

func newBundle() *Bundle {
	return &Bundle{
		Images: make(map[string]image.Image),
		Sheets: make(map[string]*Sheet),
	}
}

// Len returns the number of loaded entries
func (b *Bundle) Len() int {
	return len(b.Images) + len(b.Sheets)
}

// Loader reads manifests from a filesystem
type Loader struct {
	fsys    fs.FS
	workers int
}

// NewLoader creates a loader over fsys
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys, workers: DefaultWorkers}
}

// SetWorkers changes the decode parallelism (minimum 1)
func (l *Loader) SetWorkers(n int) {
	l.workers = max(n, 1)
}

// Load reads every manifest entry. progress receives 0 before any file is
// read and the completed fraction after each file; calls are serialised and
// non-decreasing. Cancelling ctx aborts outstanding reads and returns
// ctx.Err().
func (l *Loader) Load(ctx context.Context, manifest []string, progress func(float64)) (*Bundle, error) {
	if progress == nil {
		progress = func(float64) {}
	}
	progress(0)

	bundle := newBundle()
	if len(manifest) == 0 {
		progress(1)
		return bundle, nil
	}

	var (
		mu   sync.Mutex
		done int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)

	for _, p := range manifest {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			img, sheet, err := l.loadEntry(p)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", p, err)
			}

			mu.Lock()
			defer mu.Unlock()
			if sheet != nil {
				bundle.Sheets[p] = sheet
			} else {
				bundle.Images[p] = img
			}
			done++
			progress(float64(done) / float64(len(manifest)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return bundle, nil
}

func (l *Loader) loadEntry(p string) (image.Image, *Sheet, error) {
	switch path.Ext(p) {
	case ".png", ".webp":
		img, err := l.decodeImage(p)
		return img, nil, err
	case ".json":
		sheet, err := l.loadSheet(p)
		return nil, sheet, err
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupported, path.Ext(p))
	}
}

func (l *Loader) decodeImage(p string) (image.Image, error) {
	f, err := l.fsys.Open(p)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}
