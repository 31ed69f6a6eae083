package assets

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/pixelcity/internal/render"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{255, 0, 255, 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

const carSheet = `{
  "frames": {
    "car_red_0.png": {"frame": {"x": 0, "y": 0, "w": 16, "h": 8}},
    "car_red_1.png": {"frame": {"x": 16, "y": 0, "w": 16, "h": 8}},
    "car_blue_0.png": {"frame": {"x": 0, "y": 8, "w": 16, "h": 8}}
  },
  "animations": {
    "car_red": ["car_red_0.png", "car_red_1.png"],
    "car_blue": ["car_blue_0.png"]
  },
  "meta": {"image": "carro.png"}
}`

func testFS(t *testing.T) fstest.MapFS {
	return fstest.MapFS{
		"carro.json":        {Data: []byte(carSheet)},
		"carro.png":         {Data: pngBytes(t, 32, 16)},
		"street_lamp.png":   {Data: pngBytes(t, 4, 12)},
		"npc/npc1/idle.png": {Data: pngBytes(t, 8, 8)},
	}
}

func TestLoader_Load(t *testing.T) {
	loader := NewLoader(testFS(t))

	var (
		mu       sync.Mutex
		reported []float64
	)
	progress := func(p float64) {
		mu.Lock()
		defer mu.Unlock()
		reported = append(reported, p)
	}

	bundle, err := loader.Load(context.Background(), []string{"carro.json", "street_lamp.png"}, progress)
	require.NoError(t, err)

	assert.Equal(t, 2, bundle.Len())
	require.Contains(t, bundle.Images, "street_lamp.png")
	assert.Equal(t, image.Rect(0, 0, 4, 12), bundle.Images["street_lamp.png"].Bounds())

	sheet := bundle.Sheets["carro.json"]
	require.NotNil(t, sheet)
	assert.Equal(t, []string{"car_blue", "car_red"}, sheet.AnimationNames())
	assert.Equal(t, image.Rect(16, 0, 32, 8), sheet.Frames["car_red_1.png"])
	assert.Equal(t, []string{"car_red_0.png", "car_red_1.png"}, sheet.Animations["car_red"])

	require.Len(t, reported, 3)
	assert.Equal(t, 0.0, reported[0])
	assert.Equal(t, 0.5, reported[1])
	assert.Equal(t, 1.0, reported[2])
}

func TestLoader_EmptyManifest(t *testing.T) {
	var reported []float64
	bundle, err := NewLoader(fstest.MapFS{}).Load(context.Background(), nil, func(p float64) {
		reported = append(reported, p)
	})
	require.NoError(t, err)

	assert.Equal(t, 0, bundle.Len())
	assert.Equal(t, []float64{0, 1}, reported)
}

func TestLoader_ProgressIsMonotonic(t *testing.T) {
	fsys := fstest.MapFS{}
	manifest := make([]string, 0, 12)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
		fsys[name+".png"] = &fstest.MapFile{Data: pngBytes(t, 2, 2)}
		manifest = append(manifest, name+".png")
	}

	var reported []float64
	loader := NewLoader(fsys)
	loader.SetWorkers(8)
	_, err := loader.Load(context.Background(), manifest, func(p float64) {
		reported = append(reported, p)
	})
	require.NoError(t, err)

	require.Len(t, reported, len(manifest)+1)
	for i := 1; i < len(reported); i++ {
		assert.GreaterOrEqual(t, reported[i], reported[i-1])
	}
	assert.Equal(t, 1.0, reported[len(reported)-1])
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := NewLoader(testFS(t)).Load(context.Background(), []string{"dev_sign.png"}, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "dev_sign.png")
}

func TestLoader_Unsupported(t *testing.T) {
	fsys := fstest.MapFS{"theme.mp3": {Data: []byte{0}}}

	_, err := NewLoader(fsys).Load(context.Background(), []string{"theme.mp3"}, nil)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestLoader_CorruptImage(t *testing.T) {
	fsys := fstest.MapFS{"broken.png": {Data: []byte("not a png")}}

	_, err := NewLoader(fsys).Load(context.Background(), []string{"broken.png"}, nil)
	assert.Error(t, err)
}

func TestLoader_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	bundle, err := NewLoader(testFS(t)).Load(ctx, []string{"carro.json", "street_lamp.png"}, nil)

	assert.Nil(t, bundle)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseSheet(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"valid", carSheet, nil},
		{"no atlas", `{"frames": {}, "meta": {}}`, nil},
		{"unknown frame", `{"frames": {}, "animations": {"walk": ["walk_0.png"]}, "meta": {"image": "a.png"}}`, nil},
		{"empty animation", `{"frames": {}, "animations": {"walk": []}, "meta": {"image": "a.png"}}`, ErrNoFrames},
		{"not json", `frames:`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, atlas, err := parseSheet([]byte(tt.data))
			if tt.name == "valid" {
				require.NoError(t, err)
				assert.Equal(t, "carro.png", atlas)
				assert.Len(t, sheet.Frames, 3)
				return
			}
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestLoader_FrameOutsideAtlas(t *testing.T) {
	fsys := testFS(t)
	fsys["carro.png"] = &fstest.MapFile{Data: pngBytes(t, 16, 8)}

	_, err := NewLoader(fsys).Load(context.Background(), []string{"carro.json"}, nil)
	assert.ErrorContains(t, err, "outside atlas")
}

func TestLibrary_Lookups(t *testing.T) {
	lib := NewLibrary()
	lib.AddFrames("dev_sign.png", render.Frames{Width: 10, Height: 20, Images: make([]*ebiten.Image, 1)})
	lib.AddAnimation("carro.json", "car_red", render.Frames{Width: 16, Height: 8, Images: make([]*ebiten.Image, 2)})

	f, err := lib.Frames("dev_sign.png")
	require.NoError(t, err)
	assert.Equal(t, 10.0, f.Width)

	_, err = lib.Frames("missing.png")
	assert.ErrorIs(t, err, ErrUnknownAsset)

	anim, err := lib.Animation("carro.json", "car_red")
	require.NoError(t, err)
	assert.Equal(t, 2, anim.Len())

	_, err = lib.Animation("carro.json", "car_green")
	assert.ErrorIs(t, err, ErrUnknownAnimation)

	_, err = lib.Animation("bus.json", "car_red")
	assert.ErrorIs(t, err, ErrUnknownAsset)

	lib.AddFrames("empty.png", render.Frames{})
	_, err = lib.Image("empty.png")
	assert.ErrorIs(t, err, ErrNoFrames)

	lib.Release()
	lib.Release()
	assert.True(t, lib.Released())
}
