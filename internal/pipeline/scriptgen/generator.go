package scriptgen

import (
	"context"
	"fmt"

	"visualpattern/internal/domain/script"
)

const (
	GeneratorMock   = "mock"
	GeneratorOpenAI = "openai"
)

// Generator produces a narration script for a topic
type Generator interface {
	Generate(ctx context.Context, topic string) (*script.Script, error)
}

// New returns the generator registered under name
func New(name, model string) (Generator, error) {
	switch name {
	case GeneratorMock, "":
		return NewMock(), nil
	case GeneratorOpenAI:
		return NewOpenAI(model)
	default:
		return nil, fmt.Errorf("unsupported script generator: %s", name)
	}
}
