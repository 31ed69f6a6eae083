// Package city provides the pixel city scene: parallax backdrop, street
// props, strolling NPCs and cars that can be grabbed and thrown.
//
// The scene loads its assets on a background goroutine when entered and
// builds the world on the first Update after loading finishes. Everything
// else runs on the game loop goroutine.
package city

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/pixelcity/internal/application/scene"
	"github.com/younwookim/pixelcity/internal/application/state"
	"github.com/younwookim/pixelcity/internal/application/system"
	"github.com/younwookim/pixelcity/internal/domain/entity"
	"github.com/younwookim/pixelcity/internal/infrastructure/assets"
	"github.com/younwookim/pixelcity/internal/infrastructure/config"
	"github.com/younwookim/pixelcity/internal/physics"
	"github.com/younwookim/pixelcity/internal/render"
)

var _ scene.Scene = (*City)(nil)
var _ scene.Resizer = (*City)(nil)

// LoadFunc loads the asset manifest. It runs on its own goroutine and must
// return promptly once ctx is cancelled. progress may be called from any
// goroutine.
type LoadFunc func(ctx context.Context, progress func(float64)) (assets.Uploader, error)

// AssetLoader adapts an assets.Loader to a LoadFunc
func AssetLoader(l *assets.Loader, manifest []string) LoadFunc {
	return func(ctx context.Context, progress func(float64)) (assets.Uploader, error) {
		bundle, err := l.Load(ctx, manifest, progress)
		if err != nil {
			return nil, err
		}
		return bundle, nil
	}
}

// Options configures a City
type Options struct {
	Config *config.SceneConfig
	Load   LoadFunc

	// Input feeds pointer state to the drag gesture and the parallax.
	// Nil disables interaction.
	Input system.PointerSource

	Logger *slog.Logger
	Seed   uint64

	// Initial viewport; zero uses the configured display size
	Width, Height int

	OnProgress func(float64)
	OnReady    func()
}

type loadResult struct {
	uploader assets.Uploader
	err      error
}

// City is the pixel city scene
type City struct {
	cfg  *config.SceneConfig
	opts Options
	log  *slog.Logger
	rng  *rand.Rand

	state         state.SceneState
	width, height float64

	stage   *render.Stage
	world   *physics.World
	library *assets.Library

	// ground carries left-bound cars, lowerGround right-bound ones
	ground, lowerGround *physics.Body
	groundWidth         float64

	cars        []*entity.Car
	carScale    float64
	npcs        []*entity.Npc
	decorations []*entity.Decoration
	parallax    *entity.Parallax

	drag     *system.DragSystem
	npcTimer *system.Interval
	carTimer *system.Interval
	elapsed  float64 // seconds since the world was built

	ctx          context.Context
	cancel       context.CancelFunc
	loaded       chan loadResult
	progress     atomic.Uint64 // float64 bits, written by the loader
	lastProgress float64
}

// New creates the scene. Nothing is loaded until OnEnter.
func New(opts Options) *City {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = opts.Config.Display.Width, opts.Config.Display.Height
	}

	return &City{
		cfg:          opts.Config,
		opts:         opts,
		log:          logger,
		rng:          rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		state:        state.StateIdle,
		width:        float64(width),
		height:       float64(height),
		drag:         system.NewDragSystem(),
		lastProgress: -1,
	}
}

// State returns the lifecycle state
func (c *City) State() state.SceneState {
	return c.state
}

// Stage returns the render stage, nil before OnEnter
func (c *City) Stage() *render.Stage {
	return c.stage
}

// Cars returns the active cars
func (c *City) Cars() []*entity.Car {
	return c.cars
}

// Npcs returns the NPCs
func (c *City) Npcs() []*entity.Npc {
	return c.npcs
}

// OnEnter creates the stage and starts loading assets
func (c *City) OnEnter() {
	if c.state != state.StateIdle {
		return
	}
	c.state = state.StateLoading
	c.stage = render.NewStage(int(c.width), int(c.height))

	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.loaded = make(chan loadResult, 1)

	c.reportProgress(0)
	c.log.Info("loading scene assets", slog.Int("assets", len(c.cfg.Assets)))

	ctx := c.ctx
	go func() {
		up, err := c.opts.Load(ctx, c.storeProgress)
		c.loaded <- loadResult{uploader: up, err: err}
	}()
}

// storeProgress runs on loader goroutines
func (c *City) storeProgress(p float64) {
	c.progress.Store(math.Float64bits(p))
}

func (c *City) reportProgress(p float64) {
	if p <= c.lastProgress {
		return
	}
	c.lastProgress = p
	if c.opts.OnProgress != nil {
		c.opts.OnProgress(p)
	}
}

// Update polls the asset load, then runs one frame of the scene
func (c *City) Update(dt float64) (scene.Scene, error) {
	switch c.state {
	case state.StateLoading:
		return nil, c.pollLoad()
	case state.StateRunning:
		c.tick(dt)
	}
	return nil, nil
}

func (c *City) pollLoad() error {
	c.reportProgress(math.Float64frombits(c.progress.Load()))

	var res loadResult
	select {
	case res = <-c.loaded:
	default:
		return nil
	}

	if c.ctx.Err() != nil {
		return nil
	}
	if res.err != nil {
		if errors.Is(res.err, context.Canceled) {
			c.log.Info("scene load cancelled")
			return nil
		}
		return fmt.Errorf("failed to load scene assets: %w", res.err)
	}

	lib, err := res.uploader.Upload()
	if err != nil {
		return fmt.Errorf("failed to upload scene assets: %w", err)
	}
	c.library = lib

	if err := c.build(); err != nil {
		return fmt.Errorf("failed to build scene: %w", err)
	}

	c.state = state.StateRunning
	c.log.Info("scene ready",
		slog.Int("decorations", len(c.decorations)),
		slog.Int("npcs", len(c.npcs)),
	)

	c.Resize(int(c.width), int(c.height))

	c.reportProgress(1)
	if c.opts.OnReady != nil {
		c.opts.OnReady()
	}
	return nil
}

// Draw renders the backdrop layers and then the stage
func (c *City) Draw(screen *ebiten.Image) {
	if c.state != state.StateRunning {
		return
	}
	for _, layer := range c.parallax.Layers {
		layer.Draw(screen)
	}
	c.stage.Draw(screen, 0, 0)
}

// OnExit tears the scene down. Timers stop before any actor is released.
func (c *City) OnExit() {
	if !c.state.Active() {
		return
	}
	wasRunning := c.state == state.StateRunning
	c.state = state.StateDestroyed

	c.cancel()

	if c.npcTimer != nil {
		c.npcTimer.Stop()
	}
	if c.carTimer != nil {
		c.carTimer.Stop()
	}
	c.drag.Cancel()

	for _, car := range c.cars {
		car.Destroy()
	}
	c.cars = nil
	for _, n := range c.npcs {
		n.Destroy()
	}
	c.npcs = nil
	for _, d := range c.decorations {
		d.Destroy()
	}
	c.decorations = nil

	if c.world != nil {
		c.world.Destroy()
	}
	c.stage.Destroy()
	if c.library != nil {
		c.library.Release()
	}

	c.log.Info("scene torn down", slog.Bool("loaded", wasRunning))
}
