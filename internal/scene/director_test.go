package scene

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"visualpattern/internal/voice/cache"
)

// fixedNarrator reports the same duration for every text
type fixedNarrator struct {
	duration float64
	err      error
	calls    []string
}

func (n *fixedNarrator) Synthesize(_ context.Context, text string) (cache.Artifact, error) {
	n.calls = append(n.calls, text)
	if n.err != nil {
		return cache.Artifact{}, n.err
	}
	return cache.Artifact{Path: "media/audio/" + cache.Key("tts", text) + ".mp3", Duration: n.duration}, nil
}

func newTestDirector(n Narrator) (*Director, *Timeline) {
	tl := NewTimeline()
	return NewDirector(tl, n, DefaultTiming()), tl
}

func waits(steps []Step) []float64 {
	var out []float64
	for _, s := range steps {
		if s.Kind == StepWait {
			out = append(out, s.Seconds)
		}
	}
	return out
}

func kinds(steps []Step) []StepKind {
	out := make([]StepKind, len(steps))
	for i, s := range steps {
		out[i] = s.Kind
	}
	return out
}

func equalKinds(a, b []StepKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSpeakHoldsForLongerOfDurationAndMinWait(t *testing.T) {
	tests := []struct {
		duration float64
		minWait  float64
		want     float64
	}{
		{duration: 2, minWait: 5, want: 5},
		{duration: 7, minWait: 5, want: 7},
		{duration: 3.5, minWait: 0, want: 3.5},
	}

	for _, tt := range tests {
		d, tl := newTestDirector(&fixedNarrator{duration: tt.duration})
		d.Speak(context.Background(), "narration", tt.minWait)

		steps := tl.Steps()
		if !equalKinds(kinds(steps), []StepKind{StepSound, StepWait}) {
			t.Fatalf("steps = %v", kinds(steps))
		}
		if got := steps[1].Seconds; got != tt.want {
			t.Errorf("duration %v minWait %v: held %v, want %v", tt.duration, tt.minWait, got, tt.want)
		}
	}
}

func TestSpeakAndPlayWithAnimations(t *testing.T) {
	d, tl := newTestDirector(&fixedNarrator{duration: 3})
	title := NewMobject("title", `Text("Hello")`)

	if err := d.SpeakAndPlay(context.Background(), "hello", 0, Write(title)); err != nil {
		t.Fatal(err)
	}

	steps := tl.Steps()
	if !equalKinds(kinds(steps), []StepKind{StepSound, StepPlay, StepWait}) {
		t.Fatalf("steps = %v", kinds(steps))
	}
	if steps[2].Seconds != 2 {
		t.Errorf("held %v after animations, want 2", steps[2].Seconds)
	}
}

func TestSpeakAndPlayShortNarrationDoesNotHoldNegative(t *testing.T) {
	d, tl := newTestDirector(&fixedNarrator{duration: 0.4})
	box := NewMobject("box", "Square()")

	if err := d.SpeakAndPlay(context.Background(), "hi", 3, Create(box)); err != nil {
		t.Fatal(err)
	}
	if got := waits(tl.Steps()); len(got) != 1 || got[0] != 0 {
		t.Errorf("waits = %v, want [0]", got)
	}
}

func TestSpeakAndPlayWithoutAnimations(t *testing.T) {
	d, tl := newTestDirector(&fixedNarrator{duration: 2})

	if err := d.SpeakAndPlay(context.Background(), "hello", 4); err != nil {
		t.Fatal(err)
	}
	if !equalKinds(kinds(tl.Steps()), []StepKind{StepSound, StepWait}) {
		t.Fatalf("steps = %v", kinds(tl.Steps()))
	}
	if got := waits(tl.Steps()); got[0] != 4 {
		t.Errorf("held %v, want 4", got[0])
	}
}

func TestSpeakAndPlayNarrationFailure(t *testing.T) {
	ttsErr := errors.New("network down")
	d, tl := newTestDirector(&fixedNarrator{err: ttsErr})
	d.Section("intro")
	title := NewMobject("title", `Text("Hello")`)

	if err := d.SpeakAndPlay(context.Background(), "hello", 1.5, Write(title)); err != nil {
		t.Fatalf("narration failure must not stop the scene: %v", err)
	}

	if !equalKinds(kinds(tl.Steps()), []StepKind{StepPlay, StepWait}) {
		t.Fatalf("steps = %v", kinds(tl.Steps()))
	}
	if got := waits(tl.Steps()); got[0] != 1.5 {
		t.Errorf("held %v, want minWait 1.5", got[0])
	}

	report := d.Report()
	if len(report.NarrationFailures) != 1 {
		t.Fatalf("failures = %d, want 1", len(report.NarrationFailures))
	}
	failure := report.NarrationFailures[0]
	if failure.Kind != KindNarration || !failure.Recoverable() || failure.Section != "intro" || !errors.Is(failure, ttsErr) {
		t.Errorf("unexpected failure %+v", failure)
	}
}

func TestSpeakNarrationFailure(t *testing.T) {
	d, tl := newTestDirector(&fixedNarrator{err: errors.New("boom")})
	d.Speak(context.Background(), "hello", 2)

	if !equalKinds(kinds(tl.Steps()), []StepKind{StepWait}) {
		t.Fatalf("steps = %v", kinds(tl.Steps()))
	}
	if tl.Steps()[0].Seconds != 2 {
		t.Errorf("held %v, want 2", tl.Steps()[0].Seconds)
	}
}

func TestCleanup(t *testing.T) {
	d, tl := newTestDirector(&fixedNarrator{duration: 1})
	a := NewMobject("a", "Circle()")
	b := NewMobject("b", "Square()")

	if err := d.Play(0, Create(a), FadeIn(b)); err != nil {
		t.Fatal(err)
	}
	if err := d.Cleanup(); err != nil {
		t.Fatal(err)
	}

	steps := tl.Steps()
	if !equalKinds(kinds(steps), []StepKind{StepPlay, StepPlay, StepWait}) {
		t.Fatalf("steps = %v", kinds(steps))
	}
	fade := steps[1]
	if fade.RunTime != 0.5 || len(fade.Anims) != 1 || fade.Anims[0].Verb != "FadeOut" || len(fade.Anims[0].Targets) != 2 {
		t.Errorf("fade step = %+v", fade)
	}
	if steps[2].Seconds != 0.2 {
		t.Errorf("cleanup hold = %v, want 0.2", steps[2].Seconds)
	}
	if len(tl.Visible()) != 0 {
		t.Errorf("visible after cleanup: %d", len(tl.Visible()))
	}

	// nothing on screen: only the hold
	if err := d.Cleanup(); err != nil {
		t.Fatal(err)
	}
	if got := kinds(tl.Steps()[3:]); !equalKinds(got, []StepKind{StepWait}) {
		t.Errorf("empty cleanup steps = %v", got)
	}
}

func TestPlayWithoutAnimationsIsVisualError(t *testing.T) {
	d, _ := newTestDirector(&fixedNarrator{duration: 1})
	err := d.Play(0)

	var serr *Error
	if !errors.As(err, &serr) || serr.Kind != KindVisual || serr.Recoverable() {
		t.Fatalf("expected visual error, got %v", err)
	}
	if !errors.Is(err, ErrNoAnimations) {
		t.Errorf("expected ErrNoAnimations, got %v", err)
	}
}

type stubScene struct {
	name      string
	construct func(ctx context.Context, d *Director) error
}

func (s stubScene) Name() string { return s.name }
func (s stubScene) Construct(ctx context.Context, d *Director) error {
	return s.construct(ctx, d)
}

func TestRunCollectsNarrationFailures(t *testing.T) {
	d, _ := newTestDirector(&fixedNarrator{err: errors.New("offline")})
	logPath := filepath.Join(t.TempDir(), "error.log")

	s := stubScene{name: "Quiet", construct: func(ctx context.Context, d *Director) error {
		d.Speak(ctx, "one", 1)
		d.Speak(ctx, "two", 1)
		return nil
	}}

	report, err := Run(context.Background(), s, d, logPath)
	if err != nil {
		t.Fatal(err)
	}
	if report.Scene != "Quiet" || len(report.NarrationFailures) != 2 || report.Duration != 2 {
		t.Errorf("report = %+v", report)
	}
	if _, err := os.Stat(logPath); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error log written for a recoverable run")
	}
}

func TestRunVisualFailureWritesErrorLog(t *testing.T) {
	d, _ := newTestDirector(&fixedNarrator{duration: 1})
	logPath := filepath.Join(t.TempDir(), "error.log")

	s := stubScene{name: "Broken", construct: func(ctx context.Context, d *Director) error {
		d.Section("flowchart")
		return d.Play(0)
	}}

	report, err := Run(context.Background(), s, d, logPath)
	var serr *Error
	if !errors.As(err, &serr) || serr.Kind != KindVisual {
		t.Fatalf("expected visual error, got %v", err)
	}
	if report == nil || report.Scene != "Broken" {
		t.Errorf("report = %+v", report)
	}

	data, rerr := os.ReadFile(logPath)
	if rerr != nil {
		t.Fatal(rerr)
	}
	if !strings.Contains(string(data), "scene: Broken") || !strings.Contains(string(data), "flowchart") {
		t.Errorf("error log = %q", data)
	}
	if !strings.Contains(string(data), "goroutine") {
		t.Errorf("error log lacks a stack trace: %q", data)
	}
}

func TestRunPlainErrorBecomesVisual(t *testing.T) {
	d, _ := newTestDirector(&fixedNarrator{duration: 1})
	plain := errors.New("layout overflow")

	s := stubScene{name: "Plain", construct: func(context.Context, *Director) error { return plain }}

	_, err := Run(context.Background(), s, d, "")
	var serr *Error
	if !errors.As(err, &serr) || serr.Kind != KindVisual || !errors.Is(err, plain) {
		t.Fatalf("expected wrapped visual error, got %v", err)
	}
}

func TestRunRecoversPanic(t *testing.T) {
	d, _ := newTestDirector(&fixedNarrator{duration: 1})
	logPath := filepath.Join(t.TempDir(), "error.log")

	s := stubScene{name: "Panicky", construct: func(context.Context, *Director) error {
		var m *Mobject
		_ = m.Name
		return nil
	}}

	_, err := Run(context.Background(), s, d, logPath)
	var serr *Error
	if !errors.As(err, &serr) || serr.Kind != KindVisual {
		t.Fatalf("expected visual error, got %v", err)
	}

	data, rerr := os.ReadFile(logPath)
	if rerr != nil {
		t.Fatal(rerr)
	}
	if !strings.Contains(string(data), "panic") || !strings.Contains(string(data), "goroutine") {
		t.Errorf("error log lacks panic stack: %q", data)
	}
}
