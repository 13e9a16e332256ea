package scene

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/sirupsen/logrus"
)

// Scene is a hand-authored narrated animation
type Scene interface {
	Name() string
	Construct(ctx context.Context, d *Director) error
}

// Run constructs s through d. Narration failures are collected in the
// report and never stop the scene. Any error from Construct, or a panic,
// is treated as a visual failure: it is written to errorLog and returned.
func Run(ctx context.Context, s Scene, d *Director, errorLog string) (report *Report, err error) {
	log := logrus.WithField("scene", s.Name())

	defer func() {
		if r := recover(); r != nil {
			err = &Error{Kind: KindVisual, Section: d.section, Err: fmt.Errorf("panic: %v", r)}
			writeErrorLog(errorLog, s.Name(), err, debug.Stack())
			log.WithError(err).Error("Scene construction panicked")
		}
		report = d.Report()
		report.Scene = s.Name()
	}()

	log.Info("Constructing scene")

	if cerr := s.Construct(ctx, d); cerr != nil {
		var serr *Error
		if !errors.As(cerr, &serr) {
			cerr = &Error{Kind: KindVisual, Section: d.section, Err: cerr}
		}
		writeErrorLog(errorLog, s.Name(), cerr, debug.Stack())
		log.WithError(cerr).Error("Scene construction failed")
		return nil, cerr
	}

	log.WithField("narration_failures", len(d.report.NarrationFailures)).Info("Scene constructed")
	return nil, nil
}

func writeErrorLog(path, name string, err error, stack []byte) {
	if path == "" {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "scene: %s\n", name)
	fmt.Fprintf(&b, "error: %v\n", err)
	if len(stack) > 0 {
		b.WriteString("\n")
		b.Write(stack)
	}

	if werr := os.WriteFile(path, []byte(b.String()), 0644); werr != nil {
		logrus.WithError(werr).WithField("path", path).Warn("Failed to write error log")
	}
}
