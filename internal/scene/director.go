package scene

import (
	"context"
	"math"

	"visualpattern/internal/voice/cache"

	"github.com/sirupsen/logrus"
)

// Narrator produces narration audio and reports its length.
// *cache.Cache satisfies it.
type Narrator interface {
	Synthesize(ctx context.Context, text string) (cache.Artifact, error)
}

// Timing holds the hold lengths used by Director, in seconds
type Timing struct {
	// AnimationBaseline is the assumed play time of one animation step.
	// It is an estimate; animations running longer or shorter drift
	// against the narration.
	AnimationBaseline float64
	CleanupFade       float64
	CleanupHold       float64
}

func DefaultTiming() Timing {
	return Timing{
		AnimationBaseline: 1.0,
		CleanupFade:       0.5,
		CleanupHold:       0.2,
	}
}

// Director paces a scene's visual reveals against its narration
type Director struct {
	stage    Stage
	narrator Narrator
	timing   Timing
	section  string
	report   Report
}

func NewDirector(stage Stage, narrator Narrator, timing Timing) *Director {
	return &Director{
		stage:    stage,
		narrator: narrator,
		timing:   timing,
	}
}

// Section labels the steps that follow, for logs and errors
func (d *Director) Section(name string) {
	d.section = name
	logrus.WithField("section", name).Debug("Starting section")
}

// SpeakAndPlay starts the narration for text and, when anims are given,
// plays them alongside it, then holds for whatever narration remains
// after the animation baseline. Without anims it holds for the narration
// length or minWait, whichever is longer.
//
// If narration fails the scene carries on silently: anims still play and
// the hold is minWait.
func (d *Director) SpeakAndPlay(ctx context.Context, text string, minWait float64, anims ...Animation) error {
	artifact, err := d.narrator.Synthesize(ctx, text)
	if err != nil {
		d.narrationFailed(text, err)
		if len(anims) > 0 {
			if err := d.Play(0, anims...); err != nil {
				return err
			}
		}
		d.stage.Wait(minWait)
		return nil
	}

	d.stage.AddSound(artifact.Path)

	if len(anims) > 0 {
		if err := d.Play(0, anims...); err != nil {
			return err
		}
		d.stage.Wait(math.Max(0, artifact.Duration-d.timing.AnimationBaseline))
		return nil
	}

	d.stage.Wait(math.Max(artifact.Duration, minWait))
	return nil
}

// Speak starts the narration for text and holds for its length or
// minWait, whichever is longer. Callers play animations separately.
func (d *Director) Speak(ctx context.Context, text string, minWait float64) {
	artifact, err := d.narrator.Synthesize(ctx, text)
	if err != nil {
		d.narrationFailed(text, err)
		d.stage.Wait(minWait)
		return
	}

	d.stage.AddSound(artifact.Path)
	d.stage.Wait(math.Max(artifact.Duration, minWait))
}

// Cleanup fades out everything on screen and pauses briefly before the
// next section
func (d *Director) Cleanup() error {
	if visible := d.stage.Visible(); len(visible) > 0 {
		if err := d.Play(d.timing.CleanupFade, FadeOut(visible...)); err != nil {
			return err
		}
	}
	d.stage.Clear()
	d.stage.Wait(d.timing.CleanupHold)
	return nil
}

// Play animates without narration
func (d *Director) Play(runTime float64, anims ...Animation) error {
	if err := d.stage.Play(runTime, anims...); err != nil {
		return &Error{Kind: KindVisual, Section: d.section, Err: err}
	}
	return nil
}

func (d *Director) Wait(seconds float64) {
	d.stage.Wait(seconds)
}

func (d *Director) SetBackground(color string) {
	d.stage.SetBackground(color)
}

// Report returns the narration failures collected so far
func (d *Director) Report() *Report {
	r := d.report
	r.NarrationFailures = append([]*Error(nil), d.report.NarrationFailures...)
	if t, ok := d.stage.(interface{ Duration() float64 }); ok {
		r.Duration = t.Duration()
	}
	return &r
}

func (d *Director) narrationFailed(text string, err error) {
	logrus.WithError(err).WithField("section", d.section).Error("TTS error, continuing without narration")
	d.report.NarrationFailures = append(d.report.NarrationFailures, &Error{
		Kind:    KindNarration,
		Section: d.section,
		Text:    text,
		Err:     err,
	})
}
