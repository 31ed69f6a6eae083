package config

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/goccy/go-yaml"
)

// SceneFile is the scene description read by LoadScene
const SceneFile = "scene.yaml"

// Loader loads scene configuration using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadScene loads and validates scene.yaml
func (l *Loader) LoadScene() (*SceneConfig, error) {
	data, err := fs.ReadFile(l.fsys, SceneFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s/%s: %w", l.basePath, SceneFile, err)
	}

	cfg, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("%s/%s: %w", l.basePath, SceneFile, err)
	}

	return cfg, nil
}

// ParseScene decodes a scene description. Unknown keys are rejected.
func ParseScene(data []byte) (*SceneConfig, error) {
	var cfg SceneConfig
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
