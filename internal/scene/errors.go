package scene

import (
	"errors"
	"fmt"
)

var (
	ErrNoAnimations = errors.New("play called without animations")
	ErrNoTarget     = errors.New("animation has no target")
)

// Kind separates failures a scene can continue past from those it cannot
type Kind int

const (
	// KindNarration means speech could not be produced; the scene
	// continues silently
	KindNarration Kind = iota + 1
	// KindVisual means the timeline could not be built
	KindVisual
)

func (k Kind) String() string {
	switch k {
	case KindNarration:
		return "narration"
	case KindVisual:
		return "visual"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind    Kind
	Section string
	Text    string
	Err     error
}

func (e *Error) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("%s failure in %q: %v", e.Kind, e.Section, e.Err)
	}
	return fmt.Sprintf("%s failure: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Recoverable() bool {
	return e.Kind == KindNarration
}

// Report summarises a finished scene
type Report struct {
	Scene             string
	NarrationFailures []*Error
	Duration          float64 // seconds of timeline produced
}
