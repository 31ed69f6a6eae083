package config

// SceneConfig is the root config for scene.yaml
type SceneConfig struct {
	Display     DisplayConfig     `yaml:"display"`
	Physics     PhysicsConfig     `yaml:"physics"`
	Cars        CarsConfig        `yaml:"cars"`
	Npcs        NpcsConfig        `yaml:"npcs"`
	Decorations DecorationsConfig `yaml:"decorations"`
	Parallax    ParallaxConfig    `yaml:"parallax"`

	// Assets is the fixed load manifest, paths relative to the asset root
	Assets []string `yaml:"assets"`
}

type DisplayConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	TPS    int    `yaml:"tps"`
}

type PhysicsConfig struct {
	Gravity  float64      `yaml:"gravity"`  // px/s²
	Timestep float64      `yaml:"timestep"` // seconds per step
	Ground   GroundConfig `yaml:"ground"`
}

// GroundConfig describes the two lane colliders
type GroundConfig struct {
	Height       float64 `yaml:"height"`
	Inset        float64 `yaml:"inset"`        // distance of the upper lane centre from the viewport bottom
	LaneOffset   float64 `yaml:"laneOffset"`   // vertical gap between the two lanes
	InitialExtra float64 `yaml:"initialExtra"` // width beyond the viewport at creation
	ResizeExtra  float64 `yaml:"resizeExtra"`  // width beyond the viewport after a resize
	Elasticity   float64 `yaml:"elasticity"`
	Friction     float64 `yaml:"friction"`
}

type RangeConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type CarsConfig struct {
	Max            int         `yaml:"max"`
	SpawnInterval  float64     `yaml:"spawnInterval"` // seconds
	Sheet          string      `yaml:"sheet"`
	Colors         []string    `yaml:"colors"`
	ScaleDivisor   float64     `yaml:"scaleDivisor"`
	SpawnMargin    float64     `yaml:"spawnMargin"`
	SpawnYRel      float64     `yaml:"spawnYRel"`
	CullMargin     float64     `yaml:"cullMargin"`
	DriveSpeed     RangeConfig `yaml:"driveSpeed"` // px/s
	AnimationSpeed float64     `yaml:"animationSpeed"`
	Z              int         `yaml:"z"`
	Mass           float64     `yaml:"mass"`
	Elasticity     float64     `yaml:"elasticity"`
	Friction       float64     `yaml:"friction"`

	// Throw gesture
	HistorySize      int     `yaml:"historySize"`
	ThrowTimeDivisor float64 `yaml:"throwTimeDivisor"`
}

type NpcsConfig struct {
	RandomizeInterval float64        `yaml:"randomizeInterval"` // seconds
	Speed             float64        `yaml:"speed"`             // px per frame
	ScaleDivisor      float64        `yaml:"scaleDivisor"`
	AnimationSpeed    float64        `yaml:"animationSpeed"`
	Z                 int            `yaml:"z"`
	Sidewalk          SidewalkConfig `yaml:"sidewalk"`
	Roster            []NpcDefConfig `yaml:"roster"`
}

// SidewalkConfig bounds NPC placement, in viewport-relative units
type SidewalkConfig struct {
	Y         float64 `yaml:"y"`
	MinX      float64 `yaml:"minX"`
	MaxX      float64 `yaml:"maxX"`
	WalkRange float64 `yaml:"walkRange"`
}

type NpcDefConfig struct {
	Name     string `yaml:"name"`
	BasePath string `yaml:"basePath"`
	Walk     bool   `yaml:"walk"`
	Special  bool   `yaml:"special"`
}

type DecorationsConfig struct {
	ScaleDivisor float64            `yaml:"scaleDivisor"`
	Items        []DecorationConfig `yaml:"items"`
}

type DecorationConfig struct {
	Key            string  `yaml:"key"`
	Asset          string  `yaml:"asset"`
	Animation      string  `yaml:"animation,omitempty"` // set for spritesheet assets
	AnimationSpeed float64 `yaml:"animationSpeed,omitempty"`
	X              float64 `yaml:"x"`
	Y              float64 `yaml:"y"`
	Alpha          float64 `yaml:"alpha"`
	Z              int     `yaml:"z"`
	AnchorX        float64 `yaml:"anchorX"`
	AnchorY        float64 `yaml:"anchorY"`
}

type ParallaxConfig struct {
	Strength float64               `yaml:"strength"` // max cursor shift in px
	Step     float64               `yaml:"step"`     // extra depth per layer
	Layers   []ParallaxLayerConfig `yaml:"layers"`
}

type ParallaxLayerConfig struct {
	Image string  `yaml:"image"`
	Zoom  float64 `yaml:"zoom"`
}
