package tts

import (
	"fmt"
	"os"
)

type EngineType string

const (
	EngineTypeMock   EngineType = "mock"
	EngineTypeESpeak EngineType = "espeak"
	EngineTypeGoogle EngineType = "google"
	EngineTypeAuto   EngineType = "auto" // Automatically choose best for platform
)

func (e EngineType) String() string {
	return string(e)
}

// NewEngine creates a new TTS engine based on the provided config
func NewEngine(config Config) (Engine, error) {
	if config.Type == EngineTypeAuto.String() || config.Type == "" {
		config.Type = getBestEngineForPlatform().String()
	}

	switch config.Type {
	case EngineTypeMock.String():
		return NewMockEngine(config), nil

	case EngineTypeGoogle.String():
		return newGoogleEngine(config)

	case EngineTypeESpeak.String():
		return newESpeakEngine(config)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, config.Type)
	}
}

// getBestEngineForPlatform returns the recommended engine for the current machine
func getBestEngineForPlatform() EngineType {
	if hasGoogleCredentials() {
		return EngineTypeGoogle
	}
	if _, err := findESpeakExecutable(); err == nil {
		return EngineTypeESpeak
	}
	// Silent narration keeps the pipeline usable offline
	return EngineTypeMock
}

// AvailableEngines returns engines usable on the current machine
func AvailableEngines() []EngineType {
	engines := []EngineType{EngineTypeMock}

	if _, err := findESpeakExecutable(); err == nil {
		engines = append(engines, EngineTypeESpeak)
	}
	if hasGoogleCredentials() {
		engines = append(engines, EngineTypeGoogle)
	}

	return engines
}

// hasGoogleCredentials checks if Google Cloud credentials are available
func hasGoogleCredentials() bool {
	_, ok := os.LookupEnv("GOOGLE_APPLICATION_CREDENTIALS")
	return ok
}
