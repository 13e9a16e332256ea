package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	"visualpattern/internal/voice/tts"
)

// countingEngine writes silent WAV narration and records each call
type countingEngine struct {
	mu       sync.Mutex
	calls    map[string]int
	duration time.Duration
	err      error
	garbage  bool
}

func newCountingEngine(d time.Duration) *countingEngine {
	return &countingEngine{calls: map[string]int{}, duration: d}
}

func (e *countingEngine) Name() string      { return "counting" }
func (e *countingEngine) Extension() string { return "wav" }

func (e *countingEngine) Synthesize(_ context.Context, text, path string) error {
	e.mu.Lock()
	e.calls[text]++
	e.mu.Unlock()

	if e.err != nil {
		return e.err
	}
	if e.garbage {
		return os.WriteFile(path, []byte("not audio"), 0644)
	}
	return tts.WriteSilence(path, e.duration)
}

func (e *countingEngine) total() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, c := range e.calls {
		n += c
	}
	return n
}

func newTestCache(t *testing.T, engine tts.Engine) *Cache {
	t.Helper()
	dir := t.TempDir()
	return New(engine, Config{
		AudioDir:        filepath.Join(dir, "media", "audio"),
		TextDir:         filepath.Join(dir, "media", "texts"),
		Prefix:          "tts",
		PrefetchWorkers: 3,
	})
}

func TestSynthesizeCachesByText(t *testing.T) {
	engine := newCountingEngine(3 * time.Second)
	c := newTestCache(t, engine)
	ctx := context.Background()

	first, err := c.Synthesize(ctx, "Machine Learning is a subset of AI.")
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.Synthesize(ctx, "Machine Learning is a subset of AI.")
	if err != nil {
		t.Fatal(err)
	}

	if first.Path != second.Path {
		t.Errorf("paths differ: %s vs %s", first.Path, second.Path)
	}
	if engine.total() != 1 {
		t.Errorf("engine called %d times, want 1", engine.total())
	}
	if first.Cached || !second.Cached {
		t.Errorf("cached flags = %v, %v", first.Cached, second.Cached)
	}
	if first.Duration != 3.0 || second.Duration != 3.0 {
		t.Errorf("durations = %v, %v, want 3", first.Duration, second.Duration)
	}
}

func TestSynthesizeCreatesDirectories(t *testing.T) {
	c := newTestCache(t, newCountingEngine(time.Second))
	if _, err := c.Synthesize(context.Background(), "hello"); err != nil {
		t.Fatal(err)
	}
	for _, dir := range []string{c.config.AudioDir, c.config.TextDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("directory %s missing: %v", dir, err)
		}
	}
}

func TestSynthesizeReusesExistingFileUnconditionally(t *testing.T) {
	engine := newCountingEngine(time.Second)
	c := newTestCache(t, engine)
	if err := os.MkdirAll(c.config.AudioDir, 0755); err != nil {
		t.Fatal(err)
	}

	// a hand-placed file at the derived path is trusted as-is
	if err := tts.WriteSilence(c.Path("hello"), 5*time.Second); err != nil {
		t.Fatal(err)
	}

	a, err := c.Synthesize(context.Background(), "hello")
	if err != nil {
		t.Fatal(err)
	}
	if engine.total() != 0 {
		t.Errorf("engine called %d times, want 0", engine.total())
	}
	if a.Duration != 5.0 {
		t.Errorf("duration = %v, want 5", a.Duration)
	}
}

func TestSynthesizeEngineErrorPropagates(t *testing.T) {
	engine := newCountingEngine(time.Second)
	engine.err = errors.New("service unavailable")
	c := newTestCache(t, engine)

	_, err := c.Synthesize(context.Background(), "hello")
	if err == nil || !errors.Is(err, engine.err) {
		t.Fatalf("expected wrapped engine error, got %v", err)
	}
	if _, statErr := os.Stat(c.Path("hello")); !errors.Is(statErr, os.ErrNotExist) {
		t.Errorf("failed synthesis left a file behind: %v", statErr)
	}
}

func TestSynthesizeDurationFallback(t *testing.T) {
	engine := newCountingEngine(time.Second)
	engine.garbage = true
	c := newTestCache(t, engine)

	a, err := c.Synthesize(context.Background(), "hello")
	if err != nil {
		t.Fatal(err)
	}
	if a.Duration != DefaultDuration {
		t.Errorf("duration = %v, want %v", a.Duration, DefaultDuration)
	}
}

func TestSynthesizeEmptyText(t *testing.T) {
	c := newTestCache(t, newCountingEngine(time.Second))
	if _, err := c.Synthesize(context.Background(), " \n"); !errors.Is(err, ErrEmptyText) {
		t.Errorf("expected ErrEmptyText, got %v", err)
	}
}

func TestKey(t *testing.T) {
	key := Key("tts", "hello")
	if !regexp.MustCompile(`^tts_[0-9a-f]{8}$`).MatchString(key) {
		t.Errorf("unexpected key format %q", key)
	}
	// md5("hello") = 5d41402abc4b2a76b9719d911017c592
	if key != "tts_5d41402a" {
		t.Errorf("key = %q", key)
	}
	if Key("tts", "hello") != key {
		t.Error("key is not stable")
	}

	texts := []string{"hello", "Hello", "hello ", "goodbye", ""}
	seen := map[string]string{}
	for _, text := range texts {
		k := Key("tts", text)
		if prev, ok := seen[k]; ok {
			t.Errorf("texts %q and %q share key %s", prev, text, k)
		}
		seen[k] = text
	}
}

func TestPathUsesEngineExtension(t *testing.T) {
	c := newTestCache(t, newCountingEngine(time.Second))
	if got, want := c.Path("hello"), filepath.Join(c.config.AudioDir, "tts_5d41402a.wav"); got != want {
		t.Errorf("path = %s, want %s", got, want)
	}
}

func TestPrefetch(t *testing.T) {
	engine := newCountingEngine(2 * time.Second)
	c := newTestCache(t, engine)

	texts := []string{"one", "two", "one", "three", "two"}
	artifacts, err := c.Prefetch(context.Background(), texts)
	if err != nil {
		t.Fatal(err)
	}

	if len(artifacts) != len(texts) {
		t.Fatalf("got %d artifacts, want %d", len(artifacts), len(texts))
	}
	for i, text := range texts {
		if artifacts[i].Path != c.Path(text) {
			t.Errorf("artifact %d path = %s, want %s", i, artifacts[i].Path, c.Path(text))
		}
		if artifacts[i].Duration != 2.0 {
			t.Errorf("artifact %d duration = %v", i, artifacts[i].Duration)
		}
	}
	for text, n := range engine.calls {
		if n != 1 {
			t.Errorf("%q synthesized %d times", text, n)
		}
	}
	if engine.total() != 3 {
		t.Errorf("engine called %d times, want 3", engine.total())
	}
}

func TestPrefetchError(t *testing.T) {
	engine := newCountingEngine(time.Second)
	engine.err = errors.New("quota exceeded")
	c := newTestCache(t, engine)

	if _, err := c.Prefetch(context.Background(), []string{"a", "b"}); !errors.Is(err, engine.err) {
		t.Errorf("expected quota error, got %v", err)
	}
}

func TestStats(t *testing.T) {
	c := newTestCache(t, newCountingEngine(time.Second))

	stats, err := c.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Files != 0 {
		t.Errorf("empty cache reports %d files", stats.Files)
	}

	ctx := context.Background()
	for _, text := range []string{"a", "b"} {
		if _, err := c.Synthesize(ctx, text); err != nil {
			t.Fatal(err)
		}
	}

	stats, err = c.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Files != 2 || stats.SizeMB <= 0 || stats.Engine != "counting" {
		t.Errorf("stats = %+v", stats)
	}
}

func TestProbeUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voice.ogg")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Probe(path); err == nil {
		t.Error("expected error for unsupported extension")
	}
}
