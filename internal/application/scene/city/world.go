package city

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/younwookim/pixelcity/internal/application/state"
	"github.com/younwookim/pixelcity/internal/application/system"
	"github.com/younwookim/pixelcity/internal/domain/entity"
	"github.com/younwookim/pixelcity/internal/infrastructure/config"
	"github.com/younwookim/pixelcity/internal/physics"
	"github.com/younwookim/pixelcity/internal/render"
)

// build creates the world and every persistent actor from the library
func (c *City) build() error {
	phys := c.cfg.Physics
	c.world = physics.NewWorld(physics.Config{Gravity: phys.Gravity, Timestep: phys.Timestep})

	g := phys.Ground
	ground := physics.BoxOptions{
		Static:   true,
		Material: physics.Material{Elasticity: g.Elasticity, Friction: g.Friction},
	}
	c.groundWidth = c.width + g.InitialExtra

	ground.Category = physics.CategoryGroundLeft
	c.ground = c.world.NewBox(c.groundWidth/2, c.height-g.Inset, c.groundWidth, g.Height, ground)
	ground.Category = physics.CategoryGroundRight
	c.lowerGround = c.world.NewBox(c.groundWidth/2, c.height-g.Inset+g.LaneOffset, c.groundWidth, g.Height, ground)

	if err := c.buildDecorations(); err != nil {
		return err
	}
	if err := c.buildNpcs(); err != nil {
		return err
	}
	if err := c.buildParallax(); err != nil {
		return err
	}

	c.carScale = c.width / c.cfg.Cars.ScaleDivisor
	c.npcTimer = system.NewInterval(c.cfg.Npcs.RandomizeInterval, c.randomizeNpcs)
	c.carTimer = system.NewInterval(c.cfg.Cars.SpawnInterval, func() { c.SpawnCar() })
	return nil
}

func (c *City) buildDecorations() error {
	for _, item := range c.cfg.Decorations.Items {
		frames, err := c.frames(item.Asset, item.Animation)
		if err != nil {
			return fmt.Errorf("decoration %s: %w", item.Key, err)
		}
		d := entity.NewDecoration(item.Key, frames, entity.DecorationLayout{
			XRel:           item.X,
			YRel:           item.Y,
			Alpha:          item.Alpha,
			Z:              item.Z,
			AnchorX:        item.AnchorX,
			AnchorY:        item.AnchorY,
			AnimationSpeed: item.AnimationSpeed,
		})
		c.stage.AddChild(d.Sprite())
		c.decorations = append(c.decorations, d)
	}
	return nil
}

func (c *City) buildNpcs() error {
	cfg := c.cfg.Npcs
	sidewalk := entity.Sidewalk{
		Y:         cfg.Sidewalk.Y,
		MinX:      cfg.Sidewalk.MinX,
		MaxX:      cfg.Sidewalk.MaxX,
		WalkRange: cfg.Sidewalk.WalkRange,
	}

	for _, def := range cfg.Roster {
		frames := make(map[entity.NpcState]render.Frames, 3)
		for _, st := range entity.NpcStates() {
			if !npcHas(def, st) {
				continue
			}
			f, err := c.library.Animation(config.NpcAsset(def.BasePath, st.String()), st.String())
			if err != nil {
				return fmt.Errorf("npc %s: %w", def.Name, err)
			}
			frames[st] = f
		}

		anims := entity.NewNpcAnimations(frames, cfg.AnimationSpeed, cfg.Z)
		npc := entity.NewNpc(def.Name, anims, sidewalk.Place(c.rng.Float64(), cfg.Speed, c.randomDirection()))
		if npc == nil {
			return fmt.Errorf("npc %s has no idle animation", def.Name)
		}
		for _, s := range npc.Sprites() {
			c.stage.AddChild(s)
		}
		c.npcs = append(c.npcs, npc)
	}
	return nil
}

func npcHas(def config.NpcDefConfig, st entity.NpcState) bool {
	switch st {
	case entity.NpcIdle:
		return true
	case entity.NpcWalk:
		return def.Walk
	case entity.NpcSpecial:
		return def.Special
	default:
		return false
	}
}

func (c *City) buildParallax() error {
	cfg := c.cfg.Parallax
	c.parallax = &entity.Parallax{Strength: cfg.Strength, Step: cfg.Step}
	for _, layer := range cfg.Layers {
		img, err := c.library.Image(layer.Image)
		if err != nil {
			return fmt.Errorf("parallax layer: %w", err)
		}
		c.parallax.Layers = append(c.parallax.Layers, &render.Backdrop{Image: img, Zoom: layer.Zoom})
	}
	return nil
}

// frames resolves a still image, or a spritesheet animation when anim is set
func (c *City) frames(asset, anim string) (render.Frames, error) {
	if anim != "" {
		return c.library.Animation(asset, anim)
	}
	return c.library.Frames(asset)
}

func (c *City) randomDirection() entity.Direction {
	if c.rng.Float64() < 0.5 {
		return entity.DirLeft
	}
	return entity.DirRight
}

// SpawnCar adds a car with a random colour and direction just outside the
// viewport. It does nothing when the scene is not running or the car limit
// is reached.
func (c *City) SpawnCar() *entity.Car {
	cfg := c.cfg.Cars
	if c.state != state.StateRunning || len(c.cars) >= cfg.Max {
		return nil
	}

	color := cfg.Colors[c.rng.IntN(len(cfg.Colors))]
	frames, err := c.library.Animation(cfg.Sheet, color)
	if err != nil {
		c.log.Warn("car colour missing from sheet", slog.String("color", color), slog.Any("error", err))
		return nil
	}

	dir := c.randomDirection()
	x, ground, lane := -cfg.SpawnMargin, c.lowerGround, physics.CategoryGroundRight
	if dir == entity.DirLeft {
		x, ground, lane = c.width+cfg.SpawnMargin, c.ground, physics.CategoryGroundLeft
	}

	car := entity.NewCar(c.world, c.stage, ground, entity.CarOptions{
		Frames:           frames,
		Direction:        dir,
		X:                x,
		Y:                c.height * cfg.SpawnYRel,
		Scale:            c.width / cfg.ScaleDivisor,
		AnimationSpeed:   cfg.AnimationSpeed,
		Z:                cfg.Z,
		Mass:             cfg.Mass,
		Material:         physics.Material{Elasticity: cfg.Elasticity, Friction: cfg.Friction},
		Lane:             lane,
		MinSpeed:         cfg.DriveSpeed.Min,
		MaxSpeed:         cfg.DriveSpeed.Max,
		CullMargin:       cfg.CullMargin,
		HistorySize:      cfg.HistorySize,
		ThrowTimeDivisor: cfg.ThrowTimeDivisor,
	}, c.rng)
	c.cars = append(c.cars, car)

	c.log.Debug("car spawned",
		slog.String("id", car.ID.String()),
		slog.String("color", color),
		slog.String("direction", dir.String()),
	)
	return car
}

func (c *City) randomizeNpcs() {
	for _, n := range c.npcs {
		n.Randomize(c.rng)
	}
}

// Resize relayouts the scene for a new viewport. Before the world is built
// only the stage is resized.
func (c *City) Resize(width, height int) {
	if width <= 0 || height <= 0 || !c.state.Active() {
		return
	}
	c.width, c.height = float64(width), float64(height)
	c.stage.Resize(width, height)
	if c.state != state.StateRunning {
		return
	}
	W, H := c.width, c.height

	decScale := W / c.cfg.Decorations.ScaleDivisor
	for _, d := range c.decorations {
		d.Layout(W, H, decScale)
	}

	npcScale := W / c.cfg.Npcs.ScaleDivisor
	for _, n := range c.npcs {
		n.Resize(W, H, npcScale)
	}

	carScale := W / c.cfg.Cars.ScaleDivisor
	for _, car := range c.cars {
		car.Rescale(carScale, c.carScale)
	}
	c.carScale = carScale

	g := c.cfg.Physics.Ground
	groundWidth := W + g.ResizeExtra
	ratio := groundWidth / c.groundWidth
	c.ground.Scale(ratio, 1)
	c.lowerGround.Scale(ratio, 1)
	c.groundWidth = groundWidth
	c.ground.SetPosition(groundWidth/2, H-g.Inset)
	c.lowerGround.SetPosition(groundWidth/2, H-g.Inset+g.LaneOffset)

	c.log.Debug("scene resized", slog.Int("width", width), slog.Int("height", height))

	c.SpawnCar()
}

// tick runs one frame: input, one physics step, actors, animations, timers
func (c *City) tick(dt float64) {
	c.elapsed += dt

	if c.opts.Input != nil {
		p := c.opts.Input.Pointer()
		c.drag.Update(c.cars, p, c.elapsed*1000)
		c.parallax.Follow(p.X, p.Y, c.width, c.height)
	}

	c.world.Step()

	// Reverse order so removal does not skip the next car
	for i := len(c.cars) - 1; i >= 0; i-- {
		car := c.cars[i]
		car.Tick()
		if car.IsOffscreen(c.width) {
			car.Destroy()
			c.cars = slices.Delete(c.cars, i, i+1)
			c.log.Debug("car culled", slog.String("id", car.ID.String()))
		}
	}

	for _, n := range c.npcs {
		n.Tick()
	}

	c.stage.Update()

	c.npcTimer.Advance(dt)
	c.carTimer.Advance(dt)
}
