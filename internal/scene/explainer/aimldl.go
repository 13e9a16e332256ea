// Package explainer holds hand-authored narrated scenes
package explainer

import (
	"context"
	"fmt"
	"strconv"

	"visualpattern/internal/scene"
)

const (
	lineIntro     = "Let's explore Artificial Intelligence, Deep Learning, and Machine Learning visually."
	lineBrain     = "Artificial Intelligence is about creating smart machines that can perform tasks like humans."
	lineFlowchart = "Machine Learning is a subset of AI, and Deep Learning is a subset of Machine Learning."
	lineWorkflow  = "Machine Learning has a workflow: Data Collection, Model Design, Training, and Evaluation."
	lineNetwork   = "Think of a neural network as a team passing messages to make decisions."
	lineDataFlow  = "Data flows from input to hidden layers and produces output."
	lineSummary   = "That's a visual journey through AI, Machine Learning, and Deep Learning."
	lineCredit    = "Directed and coded by Tarif."
)

// AIMLDL walks through AI, Machine Learning and Deep Learning in six sections
type AIMLDL struct{}

func (AIMLDL) Name() string {
	return "AI_ML_DL_Scene"
}

// Lines returns every narration line in speaking order
func (AIMLDL) Lines() []string {
	return []string{
		lineIntro, lineBrain, lineFlowchart, lineWorkflow,
		lineNetwork, lineDataFlow, lineSummary, lineCredit,
	}
}

func (s AIMLDL) Construct(ctx context.Context, d *scene.Director) error {
	d.SetBackground("#1e1e1e")

	sections := []struct {
		name  string
		build func(context.Context, *scene.Director) error
	}{
		{"kinetic typography", s.intro},
		{"ai concept", s.brain},
		{"flowchart", s.flowchart},
		{"ml workflow", s.workflow},
		{"neural network", s.network},
		{"outro", s.outro},
	}

	for _, section := range sections {
		d.Section(section.name)
		if err := section.build(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

func (AIMLDL) intro(ctx context.Context, d *scene.Director) error {
	ai := scene.NewMobject("text_ai", `Text("Artificial Intelligence", font_size=72, weight=BOLD, color=YELLOW).to_edge(UP)`)
	dl := scene.NewMobject("text_dl", `Text("Deep Learning", font_size=60, weight=BOLD, color=BLUE).next_to(text_ai, DOWN, buff=1)`, ai)
	ml := scene.NewMobject("text_ml", `Text("Machine Learning", font_size=60, weight=BOLD, color=GREEN).next_to(text_dl, DOWN, buff=0.8)`, dl)

	if err := d.SpeakAndPlay(ctx, lineIntro, 0,
		scene.Write(ai),
		scene.FadeIn(dl, "shift=UP*0.2"),
		scene.Write(ml),
	); err != nil {
		return err
	}
	return d.Cleanup()
}

func (AIMLDL) brain(ctx context.Context, d *scene.Director) error {
	brain := scene.NewMobject("brain", `Circle(radius=2, color=YELLOW, fill_opacity=0.1).to_edge(UP)`)
	label := scene.NewMobject("brain_label", `Text("AI = Smart Machines", font_size=28, color=WHITE).next_to(brain, DOWN, buff=0.5)`, brain)

	offsets := [][2]float64{{-1, 0.5}, {0.5, 1}, {-0.5, -1}, {1, -0.5}}
	nodes := make([]*scene.Mobject, len(offsets))
	for i, o := range offsets {
		nodes[i] = scene.NewMobject(
			fmt.Sprintf("node_%d", i),
			fmt.Sprintf("Dot(point=brain.get_center() + np.array([%s, %s, 0]) * 0.5, color=BLUE)", num(o[0]), num(o[1])),
			brain,
		)
	}

	anims := []scene.Animation{scene.FadeIn(brain), scene.Write(label)}
	for _, n := range nodes {
		anims = append(anims, scene.FadeIn(n))
	}
	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			line := scene.NewMobject(
				fmt.Sprintf("link_%d_%d", i, j),
				fmt.Sprintf("Line(%s.get_center(), %s.get_center(), color=WHITE)", nodes[i].Name, nodes[j].Name),
				nodes[i], nodes[j],
			)
			anims = append(anims, scene.Create(line))
		}
	}

	if err := d.SpeakAndPlay(ctx, lineBrain, 0, anims...); err != nil {
		return err
	}
	return d.Cleanup()
}

func (AIMLDL) flowchart(ctx context.Context, d *scene.Director) error {
	aiBox := scene.NewMobject("ai_box", `RoundedRectangle(height=1.5, width=5, color=YELLOW, corner_radius=0.2).to_edge(UP, buff=1)`)
	mlBox := scene.NewMobject("ml_box", `RoundedRectangle(height=1.2, width=4, color=GREEN, corner_radius=0.2).next_to(ai_box, DOWN, buff=1.2)`, aiBox)
	dlBox := scene.NewMobject("dl_box", `RoundedRectangle(height=1.0, width=3, color=BLUE, corner_radius=0.2).next_to(ml_box, DOWN, buff=1)`, mlBox)

	aiLabel := scene.NewMobject("ai_label", `Text("AI", font_size=24, color=BLACK).move_to(ai_box)`, aiBox)
	mlLabel := scene.NewMobject("ml_label", `Text("Machine Learning", font_size=20, color=BLACK).move_to(ml_box)`, mlBox)
	dlLabel := scene.NewMobject("dl_label", `Text("Deep Learning", font_size=18, color=BLACK).move_to(dl_box)`, dlBox)

	arrow1 := scene.NewMobject("arrow_ai_ml", `Arrow(start=ai_box.get_bottom(), end=ml_box.get_top(), color=WHITE)`, aiBox, mlBox)
	arrow2 := scene.NewMobject("arrow_ml_dl", `Arrow(start=ml_box.get_bottom(), end=dl_box.get_top(), color=WHITE)`, mlBox, dlBox)

	if err := d.SpeakAndPlay(ctx, lineFlowchart, 0,
		scene.Create(aiBox), scene.Write(aiLabel),
		scene.Create(mlBox), scene.Write(mlLabel),
		scene.Create(dlBox), scene.Write(dlLabel),
		scene.Create(arrow1), scene.Create(arrow2),
	); err != nil {
		return err
	}
	return d.Cleanup()
}

func (AIMLDL) workflow(ctx context.Context, d *scene.Director) error {
	steps := []string{"Data", "Model", "Training", "Evaluation"}
	colors := []string{"BLUE", "GREEN", "ORANGE", "YELLOW"}

	boxes := make([]*scene.Mobject, len(steps))
	var anims []scene.Animation
	for i, step := range steps {
		place := ".to_edge(LEFT, buff=1)"
		var deps []*scene.Mobject
		if i > 0 {
			place = fmt.Sprintf(".next_to(step_box_%d, RIGHT, buff=0.8)", i-1)
			deps = append(deps, boxes[i-1])
		}
		boxes[i] = scene.NewMobject(
			fmt.Sprintf("step_box_%d", i),
			fmt.Sprintf("RoundedRectangle(width=3, height=1, color=%s, corner_radius=0.2)%s", colors[i], place),
			deps...,
		)
		text := scene.NewMobject(
			fmt.Sprintf("step_text_%d", i),
			fmt.Sprintf("Text(%s, font_size=22, color=BLACK).move_to(step_box_%d)", strconv.Quote(step), i),
			boxes[i],
		)
		anims = append(anims, scene.Create(boxes[i]), scene.Write(text))
	}
	for i := 0; i < len(boxes)-1; i++ {
		arrow := scene.NewMobject(
			fmt.Sprintf("step_arrow_%d", i),
			fmt.Sprintf("Arrow(start=step_box_%d.get_right(), end=step_box_%d.get_left(), color=WHITE)", i, i+1),
			boxes[i], boxes[i+1],
		)
		anims = append(anims, scene.Create(arrow))
	}

	if err := d.SpeakAndPlay(ctx, lineWorkflow, 0, anims...); err != nil {
		return err
	}
	return d.Cleanup()
}

func (AIMLDL) network(ctx context.Context, d *scene.Director) error {
	input := scene.NewMobject("input_node", `Circle(radius=0.5, color=BLUE, fill_opacity=0.8).shift(LEFT*3)`)
	hidden := scene.NewMobject("hidden_node", `Circle(radius=0.5, color=GREEN, fill_opacity=0.8)`)
	output := scene.NewMobject("output_node", `Circle(radius=0.5, color=YELLOW, fill_opacity=0.8).shift(RIGHT*3)`)

	inputLabel := scene.NewMobject("input_label", `Text("Input Node", font_size=18).next_to(input_node, DOWN)`, input)
	hiddenLabel := scene.NewMobject("hidden_label", `Text("Hidden Node", font_size=18).next_to(hidden_node, DOWN)`, hidden)
	outputLabel := scene.NewMobject("output_label", `Text("Output Node", font_size=18).next_to(output_node, DOWN)`, output)

	conn1 := scene.NewMobject("conn_input_hidden", `Line(input_node.get_right(), hidden_node.get_left(), color=WHITE)`, input, hidden)
	conn2 := scene.NewMobject("conn_hidden_output", `Line(hidden_node.get_right(), output_node.get_left(), color=WHITE)`, hidden, output)

	if err := d.SpeakAndPlay(ctx, lineNetwork, 0,
		scene.FadeIn(input), scene.Write(inputLabel),
		scene.FadeIn(hidden), scene.Write(hiddenLabel),
		scene.FadeIn(output), scene.Write(outputLabel),
		scene.Create(conn1), scene.Create(conn2),
	); err != nil {
		return err
	}

	if err := d.SpeakAndPlay(ctx, lineDataFlow, 0); err != nil {
		return err
	}
	return d.Cleanup()
}

func (AIMLDL) outro(ctx context.Context, d *scene.Director) error {
	board := scene.NewMobject("board", `Rectangle(width=12, height=7, color=WHITE, fill_opacity=1)`)
	d.SetBackground("#e0e0e0")

	title := scene.NewMobject("summary_title", `Text("Summary", font_size=50, color=BLACK, weight=BOLD).to_edge(UP)`)
	items := scene.NewMobject("summary_items", `VGroup(
            Text("✔ AI: Intelligence in Machines", font_size=28, color=BLACK),
            Text("✔ ML: Learning from Data", font_size=28, color=BLACK),
            Text("✔ DL: Neural Networks at Scale", font_size=28, color=BLACK),
        ).arrange(DOWN, buff=0.5, aligned_edge=LEFT).shift(LEFT*2 + DOWN*1)`)
	credit := scene.NewMobject("credit", `Text("Directed and coded by Tarif", font_size=40, color=BLUE, weight=BOLD).next_to(summary_items, DOWN, buff=1)`, items)

	if err := d.SpeakAndPlay(ctx, lineSummary, 0,
		scene.FadeIn(board), scene.Write(title), scene.Write(items),
	); err != nil {
		return err
	}
	if err := d.SpeakAndPlay(ctx, lineCredit, 0, scene.Write(credit)); err != nil {
		return err
	}

	d.Wait(2)
	return d.Play(1, scene.FadeOut(board), scene.FadeOut(title), scene.FadeOut(items), scene.FadeOut(credit))
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
