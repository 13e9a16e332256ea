package studio

import (
	"context"

	"visualpattern/internal/cli/scheme/colours"
	"visualpattern/internal/pipeline/manim"
	"visualpattern/internal/scene"
	"visualpattern/internal/scene/explainer"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NarrateResult describes one narrated scene build
type NarrateResult struct {
	Report *scene.Report
	Render manim.RenderResult
}

func (s *Studio) NarrateScene(cmd *cobra.Command, args []string) error {
	colours.Title.Println("🎙️ Building narrated scene")

	result, err := s.Narrate(s.ctx)
	if err != nil {
		colours.Error.Printf("❌ Scene failed, see %s\n", s.cfg.Paths.ErrorLog)
		return err
	}

	colours.Info.Printf("⏱️ Timeline: %.1fs\n", result.Report.Duration)
	if n := len(result.Report.NarrationFailures); n > 0 {
		colours.Warning.Printf("⚠️ %d narration lines fell back to silent waits\n", n)
	} else {
		colours.Success.Println("✅ All narration synthesized")
	}

	colours.Info.Print("🐍 Source: ")
	colours.Path.Println(result.Render.SourcePath)
	if result.Render.Err != nil {
		colours.Warning.Printf("⚠️ Rendering failed: %v\n", result.Render.Err)
	} else if result.Render.Rendered {
		colours.Success.Println("✅ Rendering complete!")
	}
	return nil
}

// Narrate builds the explainer scene against cached narration, writes its
// source and renders it. Only a visual failure is returned as an error.
func (s *Studio) Narrate(ctx context.Context) (*NarrateResult, error) {
	sc := explainer.AIMLDL{}

	// Warm the cache so the scene itself only hits disk
	if _, err := s.voices.Prefetch(ctx, sc.Lines()); err != nil {
		logrus.WithError(err).Warn("Narration prefetch failed")
	}

	tl := scene.NewTimeline()
	d := scene.NewDirector(tl, s.voices, s.timing())

	report, err := scene.Run(ctx, sc, d, s.cfg.Paths.ErrorLog)
	if err != nil {
		return nil, err
	}

	render, err := s.renderer.RenderSource(ctx, tl.Emit(sc.Name()), s.cfg.Paths.NarratedSource, sc.Name())
	if err != nil {
		return nil, err
	}

	return &NarrateResult{Report: report, Render: render}, nil
}
