package scene

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultRunTime is the play length the animation library uses when none is given
const DefaultRunTime = 1.0

// Stage receives the ordered steps of a scene. The animation library
// plays sound and animations concurrently; a Stage only records order
// and holds.
type Stage interface {
	AddSound(path string)
	// Play animates anims together. runTime <= 0 uses the library default.
	Play(runTime float64, anims ...Animation) error
	Wait(seconds float64)
	SetBackground(color string)
	// Visible lists objects shown and not yet faded out, in reveal order
	Visible() []*Mobject
	Clear()
}

type StepKind string

const (
	StepSound      StepKind = "sound"
	StepPlay       StepKind = "play"
	StepWait       StepKind = "wait"
	StepBackground StepKind = "background"
)

type Step struct {
	Kind    StepKind
	Path    string
	Anims   []Animation
	RunTime float64
	Seconds float64
	Color   string
}

// Timeline is a Stage that records steps and emits them as Manim source
type Timeline struct {
	steps    []Step
	body     []string
	declared map[*Mobject]bool
	visible  []*Mobject
}

func NewTimeline() *Timeline {
	return &Timeline{declared: map[*Mobject]bool{}}
}

func (t *Timeline) Steps() []Step {
	return t.steps
}

func (t *Timeline) AddSound(path string) {
	t.steps = append(t.steps, Step{Kind: StepSound, Path: path})
	t.line("self.add_sound(%s)", strconv.Quote(path))
}

func (t *Timeline) Play(runTime float64, anims ...Animation) error {
	if len(anims) == 0 {
		return ErrNoAnimations
	}
	for _, a := range anims {
		if len(a.Targets) == 0 {
			return fmt.Errorf("%w: %s", ErrNoTarget, a.Verb)
		}
		for _, m := range a.Targets {
			if m == nil {
				return fmt.Errorf("%w: %s", ErrNoTarget, a.Verb)
			}
		}
	}

	for _, a := range anims {
		for _, m := range a.Targets {
			t.declare(m)
		}
	}

	calls := make([]string, len(anims))
	for i, a := range anims {
		calls[i] = a.String()
	}
	if runTime > 0 {
		t.line("self.play(%s, run_time=%s)", strings.Join(calls, ", "), formatSeconds(runTime))
	} else {
		t.line("self.play(%s)", strings.Join(calls, ", "))
	}

	for _, a := range anims {
		if a.fadesOut() {
			t.hide(a.Targets...)
		} else {
			t.show(a.Targets...)
		}
	}

	t.steps = append(t.steps, Step{Kind: StepPlay, Anims: anims, RunTime: runTime})
	return nil
}

func (t *Timeline) Wait(seconds float64) {
	t.steps = append(t.steps, Step{Kind: StepWait, Seconds: seconds})
	// the library rejects zero-length waits
	if seconds > 0 {
		t.line("self.wait(%s)", formatSeconds(seconds))
	}
}

func (t *Timeline) SetBackground(color string) {
	t.steps = append(t.steps, Step{Kind: StepBackground, Color: color})
	t.line("self.camera.background_color = %s", strconv.Quote(color))
}

func (t *Timeline) Visible() []*Mobject {
	out := make([]*Mobject, len(t.visible))
	copy(out, t.visible)
	return out
}

func (t *Timeline) Clear() {
	t.visible = nil
}

// Duration is the timeline length in seconds, counting default-length plays
func (t *Timeline) Duration() float64 {
	var total float64
	for _, s := range t.steps {
		switch s.Kind {
		case StepPlay:
			if s.RunTime > 0 {
				total += s.RunTime
			} else {
				total += DefaultRunTime
			}
		case StepWait:
			if s.Seconds > 0 {
				total += s.Seconds
			}
		}
	}
	return total
}

// Emit returns a Manim program whose scene class replays the timeline
func (t *Timeline) Emit(className string) string {
	var b strings.Builder
	b.WriteString("from manim import *\n\n\n")
	fmt.Fprintf(&b, "class %s(Scene):\n", className)
	b.WriteString("    def construct(self):\n")
	if len(t.body) == 0 {
		b.WriteString("        pass\n")
	}
	for _, l := range t.body {
		b.WriteString("        ")
		b.WriteString(l)
		b.WriteString("\n")
	}
	return b.String()
}

func (t *Timeline) declare(m *Mobject) {
	if t.declared[m] {
		return
	}
	t.declared[m] = true
	for _, dep := range m.Deps {
		t.declare(dep)
	}
	t.line("%s = %s", m.Name, m.Expr)
}

func (t *Timeline) show(ms ...*Mobject) {
	for _, m := range ms {
		if !t.isVisible(m) {
			t.visible = append(t.visible, m)
		}
	}
}

func (t *Timeline) hide(ms ...*Mobject) {
	kept := t.visible[:0]
	for _, v := range t.visible {
		hidden := false
		for _, m := range ms {
			if v == m {
				hidden = true
				break
			}
		}
		if !hidden {
			kept = append(kept, v)
		}
	}
	t.visible = kept
}

func (t *Timeline) isVisible(m *Mobject) bool {
	for _, v := range t.visible {
		if v == m {
			return true
		}
	}
	return false
}

func (t *Timeline) line(format string, args ...any) {
	t.body = append(t.body, fmt.Sprintf(format, args...))
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}
