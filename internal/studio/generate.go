package studio

import (
	"context"
	"fmt"

	"visualpattern/internal/cli/scheme/colours"
	"visualpattern/internal/domain/blueprint"
	"visualpattern/internal/domain/script"
	"visualpattern/internal/pipeline/manim"
	"visualpattern/internal/pipeline/scriptgen"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GenerateOptions are the inputs of one pipeline run
type GenerateOptions struct {
	Topic   string
	Style   string
	Narrate bool
}

// GenerateResult holds what each pipeline stage produced
type GenerateResult struct {
	Script    *script.Script
	Blueprint *blueprint.Blueprint
	Render    manim.RenderResult
}

func (s *Studio) GenerateVideo(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	style, _ := cmd.Flags().GetString("style")
	narrate, _ := cmd.Flags().GetBool("narrate")

	colours.Title.Printf("🎬 Generating video for topic: %s\n", topic)

	result, err := s.Generate(s.ctx, GenerateOptions{Topic: topic, Style: style, Narrate: narrate})
	if err != nil {
		return err
	}

	colours.Info.Print("📝 Script: ")
	colours.Path.Println(s.cfg.Paths.ScriptDump)
	colours.Info.Print("🧩 Blueprint: ")
	colours.Path.Println(s.cfg.Paths.BlueprintDump)
	colours.Info.Print("🐍 Source: ")
	colours.Path.Println(result.Render.SourcePath)

	switch {
	case result.Render.Rendered:
		colours.Success.Println("✅ Rendering complete!")
	case result.Render.Err != nil:
		colours.Warning.Printf("⚠️ Rendering failed (Manim might not be installed): %v\n", result.Render.Err)
		colours.Info.Println("💡 Skipping video generation step. The scene file is saved.")
	default:
		colours.Info.Println("💡 Rendering disabled. The scene file is saved.")
	}
	return nil
}

// Generate runs topic to script to blueprint to source, then renders.
// A failed render is reported in the result, not as an error.
func (s *Studio) Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	profile, err := LoadStyle(opts.Style)
	if err != nil {
		return nil, err
	}

	generator, err := scriptgen.New(s.cfg.Script.Generator, s.cfg.Script.Model)
	if err != nil {
		return nil, err
	}

	colours.Stage.Println("📝 Generating script...")
	sc, err := generator.Generate(ctx, opts.Topic)
	if err != nil {
		return nil, fmt.Errorf("failed to generate script: %w", err)
	}
	if err := writeJSON(s.cfg.Paths.ScriptDump, sc); err != nil {
		return nil, err
	}

	colours.Stage.Println("🧩 Planning visuals...")
	bp := s.blueprints.Create(sc, profile)
	if err := writeJSON(s.cfg.Paths.BlueprintDump, bp); err != nil {
		return nil, err
	}

	var narration manim.Narration
	if opts.Narrate {
		colours.Stage.Println("🎙️ Synthesizing narration...")
		narration = s.narrationFor(ctx, bp)
	}

	colours.Stage.Println("🎞️ Rendering...")
	render, err := s.renderer.Render(ctx, bp, narration)
	if err != nil {
		return nil, err
	}

	return &GenerateResult{Script: sc, Blueprint: bp, Render: render}, nil
}

// narrationFor synthesizes every scene's narration. Failure leaves the
// video silent rather than stopping it.
func (s *Studio) narrationFor(ctx context.Context, bp *blueprint.Blueprint) manim.Narration {
	texts := make([]string, len(bp.Scenes))
	for i, sc := range bp.Scenes {
		texts[i] = sc.Narration
	}

	artifacts, err := s.voices.Prefetch(ctx, texts)
	if err != nil {
		logrus.WithError(err).Warn("Narration unavailable, rendering without audio")
		colours.Warning.Printf("⚠️ TTS error, continuing without narration: %v\n", err)
		return nil
	}
	return manim.AttachNarration(bp, artifacts)
}
