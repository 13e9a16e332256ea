package scene

import "strings"

// Mobject is an animation-library object declared by a constructor
// expression, e.g. Circle(radius=2).to_edge(UP). Deps are objects the
// expression refers to and must be declared first.
type Mobject struct {
	Name string
	Expr string
	Deps []*Mobject
}

func NewMobject(name, expr string, deps ...*Mobject) *Mobject {
	return &Mobject{Name: name, Expr: expr, Deps: deps}
}

// Animation applies an animation verb to one or more objects. Several
// targets are animated together as a Group.
type Animation struct {
	Verb    string
	Targets []*Mobject
	Kwargs  string
}

func (a Animation) String() string {
	var target string
	if len(a.Targets) == 1 {
		target = a.Targets[0].Name
	} else {
		names := make([]string, len(a.Targets))
		for i, m := range a.Targets {
			names[i] = m.Name
		}
		target = "Group(" + strings.Join(names, ", ") + ")"
	}
	if a.Kwargs != "" {
		return a.Verb + "(" + target + ", " + a.Kwargs + ")"
	}
	return a.Verb + "(" + target + ")"
}

// fadesOut reports whether the animation removes its targets from view
func (a Animation) fadesOut() bool {
	return a.Verb == "FadeOut" || a.Verb == "Uncreate" || a.Verb == "Unwrite"
}

func Write(m *Mobject) Animation {
	return Animation{Verb: "Write", Targets: []*Mobject{m}}
}

func Create(m *Mobject) Animation {
	return Animation{Verb: "Create", Targets: []*Mobject{m}}
}

// FadeIn takes optional keyword arguments such as "shift=UP*0.2"
func FadeIn(m *Mobject, kwargs ...string) Animation {
	return Animation{Verb: "FadeIn", Targets: []*Mobject{m}, Kwargs: strings.Join(kwargs, ", ")}
}

func FadeOut(ms ...*Mobject) Animation {
	return Animation{Verb: "FadeOut", Targets: ms}
}
