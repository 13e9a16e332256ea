package blueprintgen

import (
	"strings"

	"visualpattern/internal/domain/blueprint"
	"visualpattern/internal/domain/script"
)

// Rule pairs a visual concept predicate with the visuals it produces
type Rule struct {
	Name  string
	Match func(concept string) bool
	Build func(scene script.Scene, style blueprint.Style) []blueprint.Visual
}

// containsAny reports whether the lowercased concept contains any keyword
func containsAny(keywords ...string) func(string) bool {
	return func(concept string) bool {
		concept = strings.ToLower(concept)
		for _, keyword := range keywords {
			if strings.Contains(concept, keyword) {
				return true
			}
		}
		return false
	}
}

// defaultRules are checked in order; the first match wins
var defaultRules = []Rule{
	{
		Name:  "title",
		Match: containsAny("title"),
		Build: func(scene script.Scene, _ blueprint.Style) []blueprint.Visual {
			return []blueprint.Visual{
				{Type: blueprint.KindText, Content: scene.Text, Position: "center", Scale: 0.8},
			}
		},
	},
	{
		Name:  "flowchart",
		Match: containsAny("flowchart", "connect"),
		Build: func(_ script.Scene, style blueprint.Style) []blueprint.Visual {
			return []blueprint.Visual{
				{Type: blueprint.KindRectangle, Position: "left", Color: style[blueprint.PrimaryColor]},
				{Type: blueprint.KindRectangle, Position: "right", Color: "GREEN"},
				{Type: blueprint.KindArrow, Start: "left", End: "right"},
			}
		},
	},
	{
		Name:  "mesh",
		Match: containsAny("mesh", "complex"),
		Build: func(_ script.Scene, _ blueprint.Style) []blueprint.Visual {
			return []blueprint.Visual{
				{Type: blueprint.KindGrid, Rows: 3, Cols: 3},
			}
		},
	},
}

// fallbackRule applies when no other rule matches
var fallbackRule = Rule{
	Name:  "default",
	Match: func(string) bool { return true },
	Build: func(scene script.Scene, style blueprint.Style) []blueprint.Visual {
		circleColor := "ORANGE"
		if style[blueprint.ShapeStyle] == blueprint.ShapeStyleGeometric {
			circleColor = "RED"
		}
		return []blueprint.Visual{
			{Type: blueprint.KindText, Content: scene.Text, Position: "bottom", Scale: 0.6},
			{Type: blueprint.KindCircle, Color: circleColor},
		}
	},
}
