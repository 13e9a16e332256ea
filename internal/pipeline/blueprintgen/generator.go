package blueprintgen

import (
	"visualpattern/internal/domain/blueprint"
	"visualpattern/internal/domain/script"

	"github.com/sirupsen/logrus"
)

// DefaultSceneDuration is the hold time given to every scene, in seconds
const DefaultSceneDuration = 4.0

// Generator turns a script into a blueprint
type Generator struct {
	SceneDuration float64
	rules         []Rule
	fallback      Rule
}

func NewGenerator(sceneDuration float64) *Generator {
	if sceneDuration <= 0 {
		sceneDuration = DefaultSceneDuration
	}
	return &Generator{
		SceneDuration: sceneDuration,
		rules:         defaultRules,
		fallback:      fallbackRule,
	}
}

// Rules returns the rule names in match order, fallback last
func (g *Generator) Rules() []string {
	names := make([]string, 0, len(g.rules)+1)
	for _, r := range g.rules {
		names = append(names, r.Name)
	}
	return append(names, g.fallback.Name)
}

// Match returns the rule chosen for a visual concept
func (g *Generator) Match(concept string) Rule {
	for _, r := range g.rules {
		if r.Match(concept) {
			return r
		}
	}
	return g.fallback
}

// Create builds the blueprint for s. The profile is laid over the default
// style. Scene order follows the script. A nil script panics.
func (g *Generator) Create(s *script.Script, profile blueprint.Style) *blueprint.Blueprint {
	style := blueprint.DefaultStyle().Merge(profile)

	title := s.Title
	if title == "" {
		title = "Untitled"
	}

	bp := &blueprint.Blueprint{
		Title:         title,
		StyleSettings: style,
		Scenes:        make([]blueprint.Scene, 0, len(s.Scenes)),
	}

	for _, scene := range s.Scenes {
		rule := g.Match(scene.VisualConcept)
		logrus.WithFields(logrus.Fields{
			"scene": scene.ID,
			"rule":  rule.Name,
		}).Debug("Selected visual rule")

		bp.Scenes = append(bp.Scenes, blueprint.Scene{
			ID:        scene.ID,
			Narration: scene.Text,
			Duration:  g.SceneDuration,
			Visuals:   rule.Build(scene, style),
		})
	}

	logrus.WithFields(logrus.Fields{
		"title":  bp.Title,
		"scenes": len(bp.Scenes),
	}).Info("Generated animation blueprint")

	return bp
}
