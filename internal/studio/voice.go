package studio

import (
	"context"
	"fmt"
	"strings"

	"visualpattern/internal/cli/scheme/colours"
	"visualpattern/internal/voice/player"
	"visualpattern/internal/voice/tts"

	"github.com/spf13/cobra"
)

type voiceLister interface {
	Voices(ctx context.Context) ([]string, error)
}

// Say synthesizes the arguments through the cache and plays them
func (s *Studio) Say(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	noPlay, _ := cmd.Flags().GetBool("no-play")

	artifact, err := s.voices.Synthesize(s.ctx, text)
	if err != nil {
		return err
	}

	source := "synthesized"
	if artifact.Cached {
		source = "cached"
	}
	colours.Info.Printf("🔊 %s (%.2fs, %s)\n", artifact.Path, artifact.Duration, source)

	if noPlay {
		return nil
	}
	return player.Play(s.ctx, artifact.Path)
}

func (s *Studio) ShowCacheStatus(cmd *cobra.Command, args []string) error {
	colours.Title.Println("📊 Narration Cache Status")

	stats, err := s.voices.Stats()
	if err != nil {
		return fmt.Errorf("failed to read cache: %w", err)
	}

	colours.Info.Printf("📁 Location: %s\n", stats.Directory)
	colours.Info.Printf("🎤 Engine: %s\n", stats.Engine)
	if stats.Files == 0 {
		colours.Warning.Println("❌ Cache is empty")
		return nil
	}
	colours.Success.Printf("✅ %d files, %.2f MB\n", stats.Files, stats.SizeMB)
	return nil
}

func (s *Studio) ListEngines(cmd *cobra.Command, args []string) error {
	showVoices, _ := cmd.Flags().GetBool("voices")

	colours.Title.Println("🎤 Speech Engines")
	for _, e := range tts.AvailableEngines() {
		if e.String() == s.engine.Name() {
			colours.Success.Printf("  • %s (active)\n", e)
			continue
		}
		fmt.Printf("  • %s\n", e)
	}

	if !showVoices {
		return nil
	}

	lister, ok := s.engine.(voiceLister)
	if !ok {
		colours.Warning.Printf("⚠️ %s does not list voices\n", s.engine.Name())
		return nil
	}
	voices, err := lister.Voices(s.ctx)
	if err != nil {
		return fmt.Errorf("failed to list voices: %w", err)
	}

	fmt.Println()
	colours.Info.Printf("🗣️ %d voices:\n", len(voices))
	for _, v := range voices {
		fmt.Printf("  %s\n", v)
	}
	return nil
}
