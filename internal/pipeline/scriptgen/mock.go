package scriptgen

import (
	"context"
	"fmt"

	"visualpattern/internal/domain/script"

	"github.com/sirupsen/logrus"
)

// Mock fills a fixed four scene template with the topic
type Mock struct{}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Generate(_ context.Context, topic string) (*script.Script, error) {
	logrus.WithField("topic", topic).Info("Generating script")

	return &script.Script{
		Title: fmt.Sprintf("The Fundamentals of %s", topic),
		Scenes: []script.Scene{
			{
				ID:            1,
				Type:          "intro",
				Text:          fmt.Sprintf("Welcome to our quick guide on %s.", topic),
				VisualConcept: "Title card with smooth fade in",
			},
			{
				ID:            2,
				Type:          "concept",
				Text:          fmt.Sprintf("At its core, %s is about connecting the dots.", topic),
				VisualConcept: "Flowchart nodes connecting",
			},
			{
				ID:            3,
				Type:          "explanation",
				Text:          "It simplifies complex workflows into manageable steps.",
				VisualConcept: "Complex mesh simplifying into a straight line",
			},
			{
				ID:            4,
				Type:          "outro",
				Text:          fmt.Sprintf("And that's the basic idea behind %s. Thanks for watching.", topic),
				VisualConcept: "End screen with logo",
			},
		},
	}, nil
}
