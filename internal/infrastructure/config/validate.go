package config

import (
	"errors"
	"fmt"
	"path"
	"slices"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid scene config")

// NpcAsset returns the spritesheet path for one animation of a roster entry
func NpcAsset(basePath, animation string) string {
	return path.Join(basePath, animation+".json")
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// Validate rejects values the scene cannot run with
func (c *SceneConfig) Validate() error {
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return invalid("display size must be positive, got %dx%d", c.Display.Width, c.Display.Height)
	}
	if c.Display.TPS <= 0 {
		return invalid("display.tps must be positive")
	}
	if c.Physics.Timestep <= 0 {
		return invalid("physics.timestep must be positive")
	}
	if c.Physics.Ground.Height <= 0 {
		return invalid("physics.ground.height must be positive")
	}

	if err := c.validateCars(); err != nil {
		return err
	}
	if err := c.validateNpcs(); err != nil {
		return err
	}
	if err := c.validateDecorations(); err != nil {
		return err
	}

	for i, layer := range c.Parallax.Layers {
		if err := c.requireAsset(layer.Image); err != nil {
			return fmt.Errorf("parallax layer %d: %w", i, err)
		}
	}

	return nil
}

func (c *SceneConfig) validateCars() error {
	cars := c.Cars
	if cars.Max < 0 {
		return invalid("cars.max must not be negative")
	}
	if cars.SpawnInterval <= 0 {
		return invalid("cars.spawnInterval must be positive")
	}
	if len(cars.Colors) == 0 {
		return invalid("cars.colors is empty")
	}
	if cars.ScaleDivisor <= 0 {
		return invalid("cars.scaleDivisor must be positive")
	}
	if cars.DriveSpeed.Min > cars.DriveSpeed.Max {
		return invalid("cars.driveSpeed min %.2f exceeds max %.2f", cars.DriveSpeed.Min, cars.DriveSpeed.Max)
	}
	if cars.HistorySize < 2 {
		return invalid("cars.historySize must be at least 2")
	}
	if cars.ThrowTimeDivisor <= 0 {
		return invalid("cars.throwTimeDivisor must be positive")
	}
	if err := c.requireAsset(cars.Sheet); err != nil {
		return fmt.Errorf("cars.sheet: %w", err)
	}
	return nil
}

func (c *SceneConfig) validateNpcs() error {
	npcs := c.Npcs
	if npcs.RandomizeInterval <= 0 {
		return invalid("npcs.randomizeInterval must be positive")
	}
	if npcs.ScaleDivisor <= 0 {
		return invalid("npcs.scaleDivisor must be positive")
	}

	walk := npcs.Sidewalk
	if walk.MinX < 0 || walk.MaxX > 1 || walk.MinX+walk.WalkRange >= walk.MaxX {
		return invalid("npcs.sidewalk [%.2f, %.2f] cannot hold a walk range of %.2f", walk.MinX, walk.MaxX, walk.WalkRange)
	}

	seen := make(map[string]bool, len(npcs.Roster))
	for _, def := range npcs.Roster {
		if def.Name == "" {
			return invalid("npc roster entry without a name")
		}
		if seen[def.Name] {
			return invalid("duplicate npc %q", def.Name)
		}
		seen[def.Name] = true

		anims := []string{"idle"}
		if def.Walk {
			anims = append(anims, "walk")
		}
		if def.Special {
			anims = append(anims, "special")
		}
		for _, anim := range anims {
			if err := c.requireAsset(NpcAsset(def.BasePath, anim)); err != nil {
				return fmt.Errorf("npc %s: %w", def.Name, err)
			}
		}
	}
	return nil
}

func (c *SceneConfig) validateDecorations() error {
	if c.Decorations.ScaleDivisor <= 0 {
		return invalid("decorations.scaleDivisor must be positive")
	}

	seen := make(map[string]bool, len(c.Decorations.Items))
	for _, item := range c.Decorations.Items {
		if item.Key == "" {
			return invalid("decoration without a key")
		}
		if seen[item.Key] {
			return invalid("duplicate decoration %q", item.Key)
		}
		seen[item.Key] = true

		if err := c.requireAsset(item.Asset); err != nil {
			return fmt.Errorf("decoration %s: %w", item.Key, err)
		}
	}
	return nil
}

func (c *SceneConfig) requireAsset(p string) error {
	if !slices.Contains(c.Assets, p) {
		return invalid("asset %q is not in the manifest", p)
	}
	return nil
}
