package scriptgen

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"visualpattern/internal/domain/script"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/sirupsen/logrus"
)

// scriptResponse is the structured output requested from the model
type scriptResponse struct {
	Title  string          `json:"title" jsonschema_description:"A short, engaging title for the explainer video"`
	Scenes []sceneResponse `json:"scenes" jsonschema_description:"Three to five scenes in playback order"`
}

type sceneResponse struct {
	Type          string `json:"type" jsonschema_description:"One of intro, concept, explanation, outro"`
	Text          string `json:"text" jsonschema_description:"The narration spoken during this scene, one or two sentences"`
	VisualConcept string `json:"visual_concept" jsonschema_description:"A short description of the visual, e.g. 'Title card', 'Flowchart nodes connecting', 'Complex mesh', 'End screen'"`
}

// GenerateSchema generates a JSON schema for structured outputs
func GenerateSchema[T any]() interface{} {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

var scriptResponseSchema = GenerateSchema[scriptResponse]()

// OpenAI asks a chat model for the script
type OpenAI struct {
	client openai.Client
	model  string
}

func NewOpenAI(model string) (*OpenAI, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}
	if model == "" {
		model = string(openai.ChatModelGPT4oMini)
	}

	return &OpenAI{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}, nil
}

func (o *OpenAI) Generate(ctx context.Context, topic string) (*script.Script, error) {
	logrus.WithFields(logrus.Fields{
		"topic": topic,
		"model": o.model,
	}).Info("Generating script with OpenAI")

	prompt := fmt.Sprintf(`You are writing a short animated explainer video about "%s".
Write 3 to 5 scenes. Each scene has one or two sentences of narration and a short visual concept.
Start with a title card and finish with an end screen.`, topic)

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "explainer_script",
		Description: openai.String("Narration and visual concept per scene"),
		Schema:      scriptResponseSchema,
		Strict:      openai.Bool(true),
	}

	completion, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model: openai.ChatModel(o.model),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: schemaParam,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	var resp scriptResponse
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse OpenAI JSON response: %w", err)
	}

	return resp.toScript(), nil
}

func (r scriptResponse) toScript() *script.Script {
	s := &script.Script{Title: r.Title}
	for i, sc := range r.Scenes {
		s.Scenes = append(s.Scenes, script.Scene{
			ID:            i + 1,
			Type:          sc.Type,
			Text:          sc.Text,
			VisualConcept: sc.VisualConcept,
		})
	}
	return s
}
