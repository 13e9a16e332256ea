package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the typed view over the viper settings
type Config struct {
	Paths     Paths     `mapstructure:"paths"`
	TTS       TTS       `mapstructure:"tts"`
	Timing    Timing    `mapstructure:"timing"`
	Blueprint Blueprint `mapstructure:"blueprint"`
	Script    Script    `mapstructure:"script"`
	Render    Render    `mapstructure:"render"`
}

type Paths struct {
	AudioDir        string `mapstructure:"audio_dir"`
	TextDir         string `mapstructure:"text_dir"`
	ScriptDump      string `mapstructure:"script_dump"`
	BlueprintDump   string `mapstructure:"blueprint_dump"`
	GeneratedSource string `mapstructure:"generated_source"`
	NarratedSource  string `mapstructure:"narrated_source"`
	ErrorLog        string `mapstructure:"error_log"`
}

type TTS struct {
	Type            string  `mapstructure:"type"`
	Voice           string  `mapstructure:"voice"`
	Language        string  `mapstructure:"language"`
	Prefix          string  `mapstructure:"prefix"`
	Speed           float64 `mapstructure:"speed"`
	DefaultDuration float64 `mapstructure:"default_duration"`
	PrefetchWorkers int     `mapstructure:"prefetch_workers"`
}

// Timing values are seconds
type Timing struct {
	AnimationBaseline float64 `mapstructure:"animation_baseline"`
	CleanupFade       float64 `mapstructure:"cleanup_fade"`
	CleanupHold       float64 `mapstructure:"cleanup_hold"`
}

type Blueprint struct {
	SceneDuration float64 `mapstructure:"scene_duration"`
}

type Script struct {
	Generator string `mapstructure:"generator"`
	Model     string `mapstructure:"model"`
}

type Render struct {
	Enabled    bool     `mapstructure:"enabled"`
	Binary     string   `mapstructure:"binary"`
	ModuleArgs []string `mapstructure:"module_args"`
	Quality    string   `mapstructure:"quality"`
}

func SetDefaults() {
	viper.SetDefault("paths.audio_dir", "media/audio")
	viper.SetDefault("paths.text_dir", "media/texts")
	viper.SetDefault("paths.script_dump", "debug_script.json")
	viper.SetDefault("paths.blueprint_dump", "debug_blueprint.json")
	viper.SetDefault("paths.generated_source", "generated_scene.py")
	viper.SetDefault("paths.narrated_source", "narrated_scene.py")
	viper.SetDefault("paths.error_log", "error.log")

	viper.SetDefault("tts.type", "auto") // Auto-select best engine
	viper.SetDefault("tts.voice", "en-US-Chirp3-HD-Charon")
	viper.SetDefault("tts.language", "en-US")
	viper.SetDefault("tts.prefix", "tts")
	viper.SetDefault("tts.speed", 1.0)
	viper.SetDefault("tts.default_duration", 2.0)
	viper.SetDefault("tts.prefetch_workers", 4)

	viper.SetDefault("timing.animation_baseline", 1.0)
	viper.SetDefault("timing.cleanup_fade", 0.5)
	viper.SetDefault("timing.cleanup_hold", 0.2)

	viper.SetDefault("blueprint.scene_duration", 4.0)

	viper.SetDefault("script.generator", "mock")
	viper.SetDefault("script.model", "gpt-4o-mini")

	viper.SetDefault("render.enabled", true)
	viper.SetDefault("render.binary", "python3")
	viper.SetDefault("render.module_args", []string{"-m", "manim"})
	viper.SetDefault("render.quality", "-ql") // low quality keeps renders fast
}

// Init points viper at the config file locations and environment
func Init() {
	viper.SetConfigName("visualpattern")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.visualpattern")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("VISUALPATTERN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	SetDefaults()
}

// Load reads the config file if one exists and returns the merged settings.
// A missing config file is not an error.
func Load() (*Config, error) {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}
