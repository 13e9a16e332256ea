// Package cache keeps synthesized narration on disk, keyed by a
// fingerprint of the narration text.
package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"visualpattern/internal/voice/tts"

	"github.com/sirupsen/logrus"
)

// DefaultDuration is reported, in seconds, when an artifact's length cannot be read
const DefaultDuration = 2.0

var ErrEmptyText = errors.New("narration text is empty")

// Artifact is a synthesized narration file
type Artifact struct {
	Path     string  `json:"path"`
	Duration float64 `json:"duration"` // seconds
	Cached   bool    `json:"cached"`
}

type Config struct {
	AudioDir        string
	TextDir         string
	Prefix          string
	DefaultDuration float64
	PrefetchWorkers int
}

// Cache synthesizes narration at most once per distinct text
type Cache struct {
	engine tts.Engine
	config Config
	probe  func(path string) (float64, error)
}

func New(engine tts.Engine, config Config) *Cache {
	if config.Prefix == "" {
		config.Prefix = "tts"
	}
	if config.DefaultDuration <= 0 {
		config.DefaultDuration = DefaultDuration
	}
	if config.PrefetchWorkers <= 0 {
		config.PrefetchWorkers = 1
	}
	return &Cache{
		engine: engine,
		config: config,
		probe:  Probe,
	}
}

// Key derives the cache file stem for text: the prefix plus the first
// eight hex digits of the text's MD5.
func Key(prefix, text string) string {
	sum := md5.Sum([]byte(text))
	return fmt.Sprintf("%s_%s", prefix, hex.EncodeToString(sum[:])[:8])
}

// Path is where the artifact for text lives, whether or not it exists yet
func (c *Cache) Path(text string) string {
	return filepath.Join(c.config.AudioDir, Key(c.config.Prefix, text)+"."+c.engine.Extension())
}

func (c *Cache) ensureDirs() error {
	for _, dir := range []string{c.config.TextDir, c.config.AudioDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create cache directory %s: %w", dir, err)
		}
	}
	return nil
}

// Synthesize returns the narration artifact for text, asking the engine
// only when no file exists at the derived path. Existing files are reused
// without any staleness check. Engine errors are returned; a duration that
// cannot be read falls back to the configured default.
func (c *Cache) Synthesize(ctx context.Context, text string) (Artifact, error) {
	if strings.TrimSpace(text) == "" {
		return Artifact{}, ErrEmptyText
	}
	if err := c.ensureDirs(); err != nil {
		return Artifact{}, err
	}

	path := c.Path(text)
	log := logrus.WithFields(logrus.Fields{
		"engine": c.engine.Name(),
		"text":   preview(text),
	})

	cached := true
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cached = false
		log.Info("Generating narration")
		if err := c.write(ctx, text, path); err != nil {
			return Artifact{}, err
		}
	} else if err != nil {
		return Artifact{}, fmt.Errorf("failed to stat %s: %w", path, err)
	} else {
		log.Debug("Using cached narration")
	}

	duration, err := c.probe(path)
	if err != nil {
		log.WithError(err).Warn("Failed to read narration length, using default")
		duration = c.config.DefaultDuration
	}

	return Artifact{Path: path, Duration: duration, Cached: cached}, nil
}

// write synthesizes into a temporary file beside path and renames it into
// place, so a half-written file is never mistaken for a cache hit.
func (c *Cache) write(ctx context.Context, text, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".pending-*."+c.engine.Extension())
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := c.engine.Synthesize(ctx, text, tmpPath); err != nil {
		return fmt.Errorf("failed to synthesize narration: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to store narration at %s: %w", path, err)
	}
	return nil
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= 20 {
		return text
	}
	return string(runes[:20]) + "..."
}
