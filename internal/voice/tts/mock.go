package tts

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/fatih/color"
)

const (
	mockWordsPerMinute = 150
	mockMinDuration    = 500 * time.Millisecond
)

var mockFormat = beep.Format{
	SampleRate:  beep.SampleRate(22050),
	NumChannels: 1,
	Precision:   2,
}

// MockEngine writes silent WAV files sized to a natural reading pace.
// Useful offline and in tests.
type MockEngine struct {
	speed float64
}

func NewMockEngine(c Config) *MockEngine {
	speed := c.Speed
	if speed <= 0 {
		speed = 1.0
	}
	return &MockEngine{speed: speed}
}

func (m *MockEngine) Name() string {
	return EngineTypeMock.String()
}

func (m *MockEngine) Extension() string {
	return "wav"
}

// Duration is how long the silent narration for text lasts
func (m *MockEngine) Duration(text string) time.Duration {
	words := len(strings.Fields(text))
	d := time.Duration(float64(words) * float64(time.Minute) / (mockWordsPerMinute * m.speed))
	if d < mockMinDuration {
		d = mockMinDuration
	}
	return d
}

func (m *MockEngine) Synthesize(_ context.Context, text string, path string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}

	d := m.Duration(text)
	color.Yellow("🔇 Silent narration (%v)", d)

	return WriteSilence(path, d)
}

// WriteSilence writes a mono 16-bit WAV file of the given length
func WriteSilence(path string, d time.Duration) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := wav.Encode(f, beep.Silence(mockFormat.SampleRate.N(d)), mockFormat); err != nil {
		return fmt.Errorf("failed to encode WAV %s: %w", path, err)
	}
	return nil
}
