// Package tts synthesizes narration audio files
package tts

import (
	"context"
	"errors"
)

var (
	ErrUnknownEngine = errors.New("unsupported TTS engine type")
	ErrEmptyText     = errors.New("empty text")
)

type Config struct {
	Type     string
	Voice    string
	Language string
	Speed    float64
}

// Engine converts text into an audio file
type Engine interface {
	// Name identifies the engine in logs and cache stats
	Name() string
	// Extension is the audio container written by Synthesize, without the dot
	Extension() string
	// Synthesize writes speech for text to path, replacing any existing file
	Synthesize(ctx context.Context, text string, path string) error
}
