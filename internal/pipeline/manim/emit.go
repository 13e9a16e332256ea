package manim

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"visualpattern/internal/domain/blueprint"
	"visualpattern/internal/voice/cache"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Narration maps a blueprint scene index to the audio played with it
type Narration map[int]string

// AttachNarration pairs each blueprint scene with the artifact synthesized
// for its narration. Artifacts are matched by position; scenes without one
// stay silent.
func AttachNarration(bp *blueprint.Blueprint, artifacts []cache.Artifact) Narration {
	narration := make(Narration)
	for i := range bp.Scenes {
		if i >= len(artifacts) || artifacts[i].Path == "" {
			continue
		}
		narration[i] = artifacts[i].Path
	}
	return narration
}

// Emitter writes blueprints as Manim source
type Emitter struct {
	// SceneClass names the generated Scene subclass
	SceneClass string
	// token returns the identity part of an element name
	token func() string
}

func NewEmitter(sceneClass string) *Emitter {
	return &Emitter{
		SceneClass: sceneClass,
		token:      newToken,
	}
}

func newToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// Emit returns the program for bp. Scenes with an entry in narration
// start their audio as they fade in.
func (e *Emitter) Emit(bp *blueprint.Blueprint, narration Narration) string {
	var b strings.Builder

	b.WriteString("from manim import *\n\n")
	fmt.Fprintf(&b, "# %s\n", oneLine(bp.Title))
	fmt.Fprintf(&b, "class %s(Scene):\n", e.SceneClass)
	b.WriteString("    def construct(self):\n")

	if bg := bp.StyleSettings[blueprint.BackgroundColor]; bg != "" {
		fmt.Fprintf(&b, "        self.camera.background_color = %s\n", colorLiteral(bg))
	}

	for i, scene := range bp.Scenes {
		group := fmt.Sprintf("scene_group_%d", i)

		fmt.Fprintf(&b, "        # Scene %d\n", i+1)
		fmt.Fprintf(&b, "        %s = VGroup()\n", group)

		for _, visual := range scene.Visuals {
			name := fmt.Sprintf("elem_%d_%s_%s", i, visual.Type, e.token())
			stmts := e.visual(name, visual)
			if len(stmts) == 0 {
				logrus.WithFields(logrus.Fields{"scene": i + 1, "type": visual.Type}).Warn("Skipping unsupported visual")
				continue
			}
			for _, stmt := range stmts {
				fmt.Fprintf(&b, "        %s\n", stmt)
			}
			fmt.Fprintf(&b, "        %s.add(%s)\n", group, name)
		}

		fmt.Fprintf(&b, "        # Narration: %s\n", oneLine(scene.Narration))
		if path, ok := narration[i]; ok {
			fmt.Fprintf(&b, "        self.add_sound(%s)\n", strconv.Quote(path))
		}
		fmt.Fprintf(&b, "        self.play(FadeIn(%s))\n", group)
		fmt.Fprintf(&b, "        self.wait(%s)\n", strconv.FormatFloat(sceneDuration(scene), 'f', -1, 64))
		fmt.Fprintf(&b, "        self.play(FadeOut(%s))\n\n", group)
	}

	if len(bp.Scenes) == 0 {
		b.WriteString("        pass\n")
	}

	return b.String()
}

// visual returns the statements that construct and place one element
func (e *Emitter) visual(name string, v blueprint.Visual) []string {
	switch v.Type {
	case blueprint.KindText:
		stmts := []string{fmt.Sprintf("%s = Text(%s, font_size=24)", name, strconv.Quote(v.Content))}
		if v.Scale > 0 {
			stmts = append(stmts, fmt.Sprintf("%s.scale(%s)", name, strconv.FormatFloat(v.Scale, 'f', -1, 64)))
		}
		switch v.Position {
		case "center":
			stmts = append(stmts, name+".move_to(ORIGIN)")
		case "bottom":
			stmts = append(stmts, name+".to_edge(DOWN)")
		}
		return stmts

	case blueprint.KindRectangle:
		stmts := []string{fmt.Sprintf("%s = Rectangle(color=%s)", name, colorOr(v.Color))}
		switch v.Position {
		case "left":
			stmts = append(stmts, name+".shift(LEFT * 2)")
		case "right":
			stmts = append(stmts, name+".shift(RIGHT * 2)")
		}
		return stmts

	case blueprint.KindCircle:
		return []string{fmt.Sprintf("%s = Circle(color=%s)", name, colorOr(v.Color))}

	case blueprint.KindArrow:
		return []string{fmt.Sprintf("%s = Arrow(start=%s, end=%s)", name, direction(v.Start, "LEFT"), direction(v.End, "RIGHT"))}

	case blueprint.KindGrid:
		rows, cols := v.Rows, v.Cols
		if rows <= 0 {
			rows = 3
		}
		if cols <= 0 {
			cols = 3
		}
		return []string{fmt.Sprintf("%s = NumberPlane(x_range=[-%d, %d, 1], y_range=[-%d, %d, 1])", name, cols, cols, rows, rows)}

	default:
		return nil
	}
}

func sceneDuration(s blueprint.Scene) float64 {
	if s.Duration > 0 {
		return s.Duration
	}
	return 2
}

var colorConstant = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

// colorLiteral leaves Manim colour constants bare and quotes anything
// else, such as hex values
func colorLiteral(c string) string {
	if colorConstant.MatchString(c) {
		return c
	}
	return strconv.Quote(c)
}

func colorOr(c string) string {
	if c == "" {
		return "WHITE"
	}
	return colorLiteral(c)
}

func direction(pos, fallback string) string {
	switch strings.ToLower(pos) {
	case "left":
		return "LEFT"
	case "right":
		return "RIGHT"
	case "up", "top":
		return "UP"
	case "down", "bottom":
		return "DOWN"
	default:
		return fallback
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
