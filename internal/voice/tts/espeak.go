package tts

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ESpeakEngine writes WAV narration with eSpeak/eSpeak-NG
type ESpeakEngine struct {
	config Config
	path   string
}

// newESpeakEngine creates a new eSpeak TTS engine
func newESpeakEngine(config Config) (*ESpeakEngine, error) {
	espeakPath, err := findESpeakExecutable()
	if err != nil {
		return nil, fmt.Errorf("eSpeak not found: %w", err)
	}

	if err := exec.Command(espeakPath, "--version").Run(); err != nil {
		return nil, fmt.Errorf("eSpeak test failed: %w", err)
	}

	return &ESpeakEngine{
		config: config,
		path:   espeakPath,
	}, nil
}

func findESpeakExecutable() (string, error) {
	candidates := []string{"espeak-ng", "espeak"}

	for _, candidate := range candidates {
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("eSpeak executable not found in PATH")
}

func (e *ESpeakEngine) Name() string {
	return EngineTypeESpeak.String()
}

func (e *ESpeakEngine) Extension() string {
	return "wav"
}

func (e *ESpeakEngine) Synthesize(ctx context.Context, text string, path string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}

	cmd := exec.CommandContext(ctx, e.path, e.args(text, path)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("eSpeak failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

func (e *ESpeakEngine) args(text, path string) []string {
	args := []string{"-w", path}

	// Google voice names do not exist in eSpeak
	if e.config.Voice != "" && e.config.Voice != "default" && !strings.Contains(e.config.Voice, "-Chirp") {
		args = append(args, "-v", e.config.Voice)
	}

	// words per minute, eSpeak default is 175
	speed := e.config.Speed
	if speed <= 0 {
		speed = 1.0
	}
	args = append(args, "-s", strconv.Itoa(int(175*speed)))

	// "--" stops narration starting with a dash being read as a flag
	return append(args, "--", text)
}

// Voices lists the voices reported by eSpeak
func (e *ESpeakEngine) Voices(ctx context.Context) ([]string, error) {
	output, err := exec.CommandContext(ctx, e.path, "--voices").Output()
	if err != nil {
		return nil, err
	}
	return parseESpeakVoices(string(output)), nil
}

func parseESpeakVoices(output string) []string {
	lines := strings.Split(output, "\n")
	voices := make([]string, 0)

	for i, line := range lines {
		// Skip header line
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}

		// Pty Language Age/Gender VoiceName File Other Languages
		fields := strings.Fields(line)
		if len(fields) >= 4 {
			voices = append(voices, fields[3])
		}
	}

	return voices
}
