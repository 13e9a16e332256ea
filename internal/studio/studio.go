// Package studio wires the pipeline stages and narrated scenes behind the
// command line
package studio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"visualpattern/internal/config"
	"visualpattern/internal/pipeline/blueprintgen"
	"visualpattern/internal/pipeline/manim"
	"visualpattern/internal/scene"
	"visualpattern/internal/voice/cache"
	"visualpattern/internal/voice/tts"

	"github.com/sirupsen/logrus"
)

// Studio is the main application structure
type Studio struct {
	cfg        *config.Config
	engine     tts.Engine
	voices     *cache.Cache
	blueprints *blueprintgen.Generator
	renderer   *manim.Renderer

	ctx    context.Context
	Cancel context.CancelFunc
}

func New(cfg *config.Config) (*Studio, error) {
	engine, err := tts.NewEngine(tts.Config{
		Type:     cfg.TTS.Type,
		Voice:    cfg.TTS.Voice,
		Language: cfg.TTS.Language,
		Speed:    cfg.TTS.Speed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tts engine: %w", err)
	}

	var runner *manim.Runner
	if cfg.Render.Enabled {
		runner = manim.NewRunner(cfg.Render.Binary, cfg.Render.ModuleArgs, cfg.Render.Quality)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Studio{
		cfg:    cfg,
		engine: engine,
		voices: cache.New(engine, cache.Config{
			AudioDir:        cfg.Paths.AudioDir,
			TextDir:         cfg.Paths.TextDir,
			Prefix:          cfg.TTS.Prefix,
			DefaultDuration: cfg.TTS.DefaultDuration,
			PrefetchWorkers: cfg.TTS.PrefetchWorkers,
		}),
		blueprints: blueprintgen.NewGenerator(cfg.Blueprint.SceneDuration),
		renderer:   manim.NewRenderer(runner, cfg.Paths.GeneratedSource, manim.DefaultSceneClass),
		ctx:        ctx,
		Cancel:     cancel,
	}, nil
}

// Close releases the speech engine's connections
func (s *Studio) Close() error {
	s.Cancel()
	if c, ok := s.engine.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// timing takes the configured holds as given; zero is a valid setting
func (s *Studio) timing() scene.Timing {
	return scene.Timing{
		AnimationBaseline: s.cfg.Timing.AnimationBaseline,
		CleanupFade:       s.cfg.Timing.CleanupFade,
		CleanupHold:       s.cfg.Timing.CleanupHold,
	}
}

// writeJSON dumps v with indentation for inspection
func writeJSON(path string, v any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	logrus.WithField("path", path).Debug("Wrote debug dump")
	return nil
}
