package manim

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"visualpattern/internal/domain/blueprint"
)

func testBlueprint() *blueprint.Blueprint {
	return &blueprint.Blueprint{
		Title: "Test",
		Scenes: []blueprint.Scene{{
			ID:       1,
			Duration: 4,
			Visuals:  []blueprint.Visual{{Type: blueprint.KindCircle, Color: "RED"}},
		}},
	}
}

func TestRunnerArgs(t *testing.T) {
	r := NewRunner("", nil, "")
	got := r.Args("generated_scene.py", "GeneratedScene")
	want := []string{"-m", "manim", "-ql", "generated_scene.py", "GeneratedScene"}
	if r.Binary != "python3" || !reflect.DeepEqual(got, want) {
		t.Errorf("%s %v, want python3 %v", r.Binary, got, want)
	}
}

func TestRenderFailureIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "generated_scene.py")
	runner := NewRunner(filepath.Join(dir, "no-such-renderer"), []string{}, "-ql")

	result, err := NewRenderer(runner, out, "").Render(context.Background(), testBlueprint(), nil)
	if err != nil {
		t.Fatalf("render failure must not be returned: %v", err)
	}
	if result.Rendered || result.Err == nil {
		t.Errorf("result = %+v, want a recorded failure", result)
	}

	data, rerr := os.ReadFile(out)
	if rerr != nil {
		t.Fatalf("source not kept: %v", rerr)
	}
	if !strings.Contains(string(data), "class GeneratedScene(Scene):") {
		t.Errorf("unexpected source:\n%s", data)
	}
}

func TestRenderSuccess(t *testing.T) {
	bin, err := exec.LookPath("true")
	if err != nil {
		t.Skip("true not available")
	}
	out := filepath.Join(t.TempDir(), "out", "scene.py")

	result, err := NewRenderer(NewRunner(bin, []string{}, "-ql"), out, "Demo").Render(context.Background(), testBlueprint(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Rendered || result.Err != nil || result.SceneClass != "Demo" {
		t.Errorf("result = %+v", result)
	}
}

func TestRenderDisabledWritesSource(t *testing.T) {
	out := filepath.Join(t.TempDir(), "scene.py")

	result, err := NewRenderer(nil, out, "").Render(context.Background(), testBlueprint(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.Rendered || result.Err != nil {
		t.Errorf("result = %+v", result)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("source missing: %v", err)
	}
}

func TestRenderWriteFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewRenderer(nil, filepath.Join(blocker, "scene.py"), "").Render(context.Background(), testBlueprint(), nil)
	if err == nil {
		t.Error("expected an error when the source cannot be written")
	}
}
