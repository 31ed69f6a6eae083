package main

import (
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/pixelcity/internal/application/game"
	"github.com/younwookim/pixelcity/internal/application/replay"
	"github.com/younwookim/pixelcity/internal/application/scene/city"
	"github.com/younwookim/pixelcity/internal/application/system"
	"github.com/younwookim/pixelcity/internal/infrastructure/assets"
	"github.com/younwookim/pixelcity/internal/infrastructure/config"
)

func main() {
	configDir := flag.String("config", "", "Config directory (default: embedded configs)")
	assetDir := flag.String("assets", "assets", "Asset root directory")
	seed := flag.Uint64("seed", 0, "RNG seed (0: time based)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	recordFlag := flag.String("record", "", "Record pointer input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play back a recorded session")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := loadConfig(*configDir)
	if err != nil {
		fatal(logger, "failed to load config", err)
	}

	width, height := cfg.Display.Width, cfg.Display.Height
	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	var input system.PointerSource = system.NewInputSystem()
	var recorder *replay.Recorder

	switch {
	case *replayFlag != "":
		data, err := replay.LoadReplay(*replayFlag)
		if err != nil {
			fatal(logger, "failed to load replay", err)
		}
		*seed = data.Seed
		if data.Width > 0 && data.Height > 0 {
			width, height = data.Width, data.Height
		}
		input = replay.NewReplayer(*data)
		logger.Info("replaying", slog.String("file", *replayFlag), slog.Int("frames", len(data.Frames)))
	case *recordFlag != "":
		recorder = replay.NewRecorder(input, *seed, width, height)
		input = recorder
		logger.Info("recording enabled", slog.String("file", *recordFlag))
	}

	scene := city.New(city.Options{
		Config: cfg,
		Load:   city.AssetLoader(assets.NewLoader(os.DirFS(*assetDir)), cfg.Assets),
		Input:  input,
		Logger: logger,
		Seed:   *seed,
		Width:  width,
		Height: height,
		OnProgress: func(p float64) {
			logger.Debug("loading", slog.Float64("progress", p))
		},
		OnReady: func() {
			logger.Info("city ready", slog.Uint64("seed", *seed))
		},
	})

	g := game.New(scene, width, height)
	g.SetDT(1.0 / float64(cfg.Display.TPS))

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(cfg.Display.Title)
	// Resizes are not part of a recording, so sessions that record or
	// replay keep a fixed window
	if *recordFlag == "" && *replayFlag == "" {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(cfg.Display.TPS)

	runErr := ebiten.RunGame(g)
	g.Close()

	if recorder != nil {
		if err := recorder.Save(*recordFlag); err != nil {
			logger.Error("failed to save recording", slog.Any("error", err))
		} else {
			logger.Info("recording saved", slog.String("file", *recordFlag), slog.Int("frames", recorder.FrameCount()))
		}
	}

	if runErr != nil {
		fatal(logger, "game exited with error", runErr)
	}
}

func loadConfig(dir string) (*config.SceneConfig, error) {
	if dir != "" {
		return config.NewLoader(dir).LoadScene()
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, err
	}
	return config.NewFSLoader(fsys, "configs").LoadScene()
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, slog.Any("error", err))
	os.Exit(1)
}
