package main

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/flubbe/swr-sub001"
	"github.com/flubbe/swr-sub001/texture"
)

// Scene configures the demo render. Every field has a default, so an empty
// or missing scene file renders the default cube.
type Scene struct {
	Width    int        `yaml:"width"`
	Height   int        `yaml:"height"`
	Frames   int        `yaml:"frames"`
	Rotation float32    `yaml:"rotation"` // degrees per frame
	Mode     string     `yaml:"mode"`     // sweep or tiled
	Workers  int        `yaml:"workers"`
	Filter   string     `yaml:"filter"` // nearest, linear or dithered
	Checker  int        `yaml:"checker"`
	TexSize  int        `yaml:"texture_size"`
	Clear    [4]float32 `yaml:"clear"`
	Light    [3]float32 `yaml:"light"`
	Output   string     `yaml:"output"` // fmt pattern taking the frame number
}

func defaultScene() Scene {
	return Scene{
		Width:    320,
		Height:   240,
		Frames:   12,
		Rotation: 15,
		Mode:     "sweep",
		Filter:   "linear",
		Checker:  8,
		TexSize:  64,
		Clear:    [4]float32{0.08, 0.08, 0.12, 1},
		Light:    [3]float32{0.4, 0.7, 0.6},
		Output:   "frame%03d.png",
	}
}

// loadScene reads a YAML scene on top of the defaults. An empty path
// returns the defaults.
func loadScene(path string) (Scene, error) {
	scene := defaultScene()
	if path == "" {
		return scene, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return scene, fmt.Errorf("read scene: %w", err)
	}
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return scene, fmt.Errorf("parse scene %s: %w", path, err)
	}
	if err := scene.validate(); err != nil {
		return scene, fmt.Errorf("scene %s: %w", path, err)
	}
	slog.Debug("loaded scene", "path", path, "width", scene.Width, "height", scene.Height, "frames", scene.Frames)
	return scene, nil
}

func (s *Scene) validate() error {
	switch {
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("invalid size %dx%d", s.Width, s.Height)
	case s.Frames <= 0:
		return fmt.Errorf("invalid frame count %d", s.Frames)
	case s.TexSize <= 0 || s.Checker <= 0:
		return fmt.Errorf("invalid texture size %d with %d checks", s.TexSize, s.Checker)
	}
	if _, err := s.mode(); err != nil {
		return err
	}
	if _, err := s.filter(); err != nil {
		return err
	}
	return nil
}

func (s *Scene) mode() (swr.RasterizerMode, error) {
	switch s.Mode {
	case "", "sweep":
		return swr.RasterizerSweep, nil
	case "tiled":
		return swr.RasterizerTiled, nil
	default:
		return 0, fmt.Errorf("unknown rasterizer mode %q", s.Mode)
	}
}

func (s *Scene) filter() (texture.Filter, error) {
	switch s.Filter {
	case "", "nearest":
		return texture.FilterNearest, nil
	case "linear":
		return texture.FilterLinear, nil
	case "dithered":
		return texture.FilterDithered, nil
	default:
		return 0, fmt.Errorf("unknown filter %q", s.Filter)
	}
}
