// Package manim turns blueprints into Manim programs and hands them to
// the external renderer
package manim

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"visualpattern/internal/domain/blueprint"

	"github.com/sirupsen/logrus"
)

const DefaultSceneClass = "GeneratedScene"

// RenderResult describes one render attempt. A failed renderer leaves
// Rendered false and the reason in Err; the source stays on disk.
type RenderResult struct {
	SourcePath string
	SceneClass string
	Rendered   bool
	Err        error
}

type Renderer struct {
	// Runner is nil when rendering is disabled
	Runner     *Runner
	Emitter    *Emitter
	OutputPath string
}

func NewRenderer(runner *Runner, outputPath, sceneClass string) *Renderer {
	if sceneClass == "" {
		sceneClass = DefaultSceneClass
	}
	return &Renderer{
		Runner:     runner,
		Emitter:    NewEmitter(sceneClass),
		OutputPath: outputPath,
	}
}

// Render emits bp to OutputPath and runs the renderer on it.
// The error is only non-nil when the source could not be written.
func (r *Renderer) Render(ctx context.Context, bp *blueprint.Blueprint, narration Narration) (RenderResult, error) {
	logrus.WithField("title", bp.Title).Info("Translating blueprint to Manim code")
	return r.RenderSource(ctx, r.Emitter.Emit(bp, narration), r.OutputPath, r.Emitter.SceneClass)
}

// RenderSource writes an already generated program and renders class from it
func (r *Renderer) RenderSource(ctx context.Context, source, path, class string) (RenderResult, error) {
	result := RenderResult{SourcePath: path, SceneClass: class}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return result, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(source), 0644); err != nil {
		return result, fmt.Errorf("failed to write %s: %w", path, err)
	}

	log := logrus.WithFields(logrus.Fields{"source": path, "class": class})
	if r.Runner == nil {
		log.Info("Rendering disabled, source written")
		return result, nil
	}

	log.Info("Starting render")
	if err := r.Runner.Run(ctx, path, class); err != nil {
		log.WithError(err).Warn("Rendering failed, source file kept")
		result.Err = err
		return result, nil
	}

	result.Rendered = true
	log.Info("Rendering complete")
	return result, nil
}
