package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"visualpattern/internal/cli/scheme/colours"
	"visualpattern/internal/config"
	"visualpattern/internal/studio"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	config.Init()
	cfg, err := config.Load()
	if err != nil {
		colours.Error.Printf("❌ Error: %v\n", err)
		os.Exit(1)
	}

	app, err := studio.New(cfg)
	if err != nil {
		colours.Error.Printf("❌ Error: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\n" + colours.Warning.Sprint("👋 Stopping..."))
		app.Cancel()
	}()

	rootCmd := &cobra.Command{
		Use:   "visualpattern",
		Short: "🎬 Turn a topic into a narrated explainer animation",
		Long: `
┌─────────────────────────────────────────┐
│  🎬 visualpattern                        │
│  topic → script → blueprint → Manim      │
└─────────────────────────────────────────┘

Generates a short script for a topic, plans the visuals for every scene,
writes a Manim program and hands it to the renderer.
		`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	// Generate command
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "🎞️ Generate a video for a topic",
		Long:  "Write the script and blueprint dumps, emit the Manim program and render it",
		Args:  cobra.NoArgs,
		RunE:  app.GenerateVideo,
	}
	generateCmd.Flags().StringP("topic", "t", "", "Topic of the video")
	generateCmd.Flags().StringP("style", "s", studio.DefaultStyleRef, "Style profile: 'default' or a YAML/JSON file")
	generateCmd.Flags().BoolP("narrate", "n", false, "Synthesize narration and attach it to each scene")
	_ = generateCmd.MarkFlagRequired("topic")

	// Narrate command
	narrateCmd := &cobra.Command{
		Use:   "narrate",
		Short: "🎙️ Build the narrated AI/ML/DL explainer",
		Long:  "Pace the hand-authored explainer against cached narration and render it",
		Args:  cobra.NoArgs,
		RunE:  app.NarrateScene,
	}

	// Say command
	sayCmd := &cobra.Command{
		Use:   "say <text>",
		Short: "🔊 Synthesize and play a line of narration",
		Args:  cobra.MinimumNArgs(1),
		RunE:  app.Say,
	}
	sayCmd.Flags().Bool("no-play", false, "Only synthesize into the cache")

	// Cache command
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "📊 Show narration cache status",
		Args:  cobra.NoArgs,
		RunE:  app.ShowCacheStatus,
	}

	// Engines command
	enginesCmd := &cobra.Command{
		Use:   "engines",
		Short: "🎤 List speech engines",
		Args:  cobra.NoArgs,
		RunE:  app.ListEngines,
	}
	enginesCmd.Flags().Bool("voices", false, "Also list the active engine's voices")

	rootCmd.AddCommand(generateCmd, narrateCmd, sayCmd, cacheCmd, enginesCmd)

	if err := rootCmd.Execute(); err != nil {
		colours.Error.Printf("❌ Error: %v\n", err)
		app.Close()
		os.Exit(1)
	}
}
