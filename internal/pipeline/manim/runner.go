package manim

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	DefaultBinary  = "python3"
	DefaultQuality = "-ql"
)

// Runner invokes the external renderer on a source file
type Runner struct {
	Binary     string
	ModuleArgs []string
	Quality    string
}

func NewRunner(binary string, moduleArgs []string, quality string) *Runner {
	if binary == "" {
		binary = DefaultBinary
	}
	if moduleArgs == nil {
		moduleArgs = []string{"-m", "manim"}
	}
	if quality == "" {
		quality = DefaultQuality
	}
	return &Runner{Binary: binary, ModuleArgs: moduleArgs, Quality: quality}
}

// Args returns the full argument list passed to Binary
func (r *Runner) Args(source, class string) []string {
	args := append([]string{}, r.ModuleArgs...)
	if r.Quality != "" {
		args = append(args, r.Quality)
	}
	return append(args, source, class)
}

// Run blocks until the renderer exits or ctx is cancelled
func (r *Runner) Run(ctx context.Context, source, class string) error {
	args := r.Args(source, class)

	logrus.WithFields(logrus.Fields{
		"binary": r.Binary,
		"args":   strings.Join(args, " "),
	}).Debug("Starting renderer")

	stdout := logrus.StandardLogger().WriterLevel(logrus.DebugLevel)
	defer stdout.Close()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Binary, args...)
	cmd.Stdout = stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("renderer %s: %w: %s", r.Binary, err, lastLine(msg))
		}
		return fmt.Errorf("renderer %s: %w", r.Binary, err)
	}
	return nil
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
