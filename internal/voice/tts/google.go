package tts

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"cloud.google.com/go/texttospeech/apiv1"
	"github.com/sirupsen/logrus"
	texttospeechpb "google.golang.org/genproto/googleapis/cloud/texttospeech/v1"
)

// Cloud TTS rejects requests over 5000 bytes of input
const googleChunkLimit = 4800

// GoogleEngine synthesizes MP3 narration with Google Cloud Text-to-Speech
type GoogleEngine struct {
	client   *texttospeech.Client
	voice    string
	language string
	speed    float64
}

func newGoogleEngine(config Config) (*GoogleEngine, error) {
	client, err := texttospeech.NewClient(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to create TTS client: %w", err)
	}

	language := config.Language
	if language == "" {
		language = "en-US"
	}

	return &GoogleEngine{
		client:   client,
		voice:    config.Voice,
		language: language,
		speed:    config.Speed,
	}, nil
}

func (g *GoogleEngine) Name() string {
	return EngineTypeGoogle.String()
}

func (g *GoogleEngine) Extension() string {
	return "mp3"
}

func (g *GoogleEngine) Synthesize(ctx context.Context, text string, path string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}

	chunks := splitIntoChunks(text, googleChunkLimit)

	// MP3 frames concatenate cleanly, so chunks are appended into one file
	var audio bytes.Buffer
	for chunkIndex, chunk := range chunks {
		req := &texttospeechpb.SynthesizeSpeechRequest{
			Input: &texttospeechpb.SynthesisInput{
				InputSource: &texttospeechpb.SynthesisInput_Text{Text: chunk},
			},
			Voice: &texttospeechpb.VoiceSelectionParams{
				LanguageCode: g.language,
				Name:         g.voice,
			},
			AudioConfig: g.audioConfig(),
		}

		resp, err := g.client.SynthesizeSpeech(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to synthesize chunk %d: %w", chunkIndex, err)
		}
		audio.Write(resp.AudioContent)

		logrus.WithFields(logrus.Fields{
			"chunk": chunkIndex + 1,
			"total": len(chunks),
		}).Debug("Synthesized narration chunk")
	}

	if err := os.WriteFile(path, audio.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write MP3 to %s: %w", path, err)
	}
	return nil
}

func (g *GoogleEngine) audioConfig() *texttospeechpb.AudioConfig {
	cfg := &texttospeechpb.AudioConfig{
		AudioEncoding: texttospeechpb.AudioEncoding_MP3,
	}

	// Chirp voices reject speakingRate
	if g.speed > 0 && !strings.Contains(strings.ToLower(g.voice), "chirp") {
		cfg.SpeakingRate = g.speed
	}
	return cfg
}

// Voices lists the voice names the service offers for the configured language
func (g *GoogleEngine) Voices(ctx context.Context) ([]string, error) {
	resp, err := g.client.ListVoices(ctx, &texttospeechpb.ListVoicesRequest{LanguageCode: g.language})
	if err != nil {
		return nil, err
	}
	voices := []string{}
	for _, v := range resp.Voices {
		voices = append(voices, v.Name)
	}
	return voices, nil
}

func (g *GoogleEngine) Close() error {
	return g.client.Close()
}

func splitIntoChunks(text string, limit int) []string {
	var chunks []string
	runes := []rune(text) // safe for UTF-8
	for i := 0; i < len(runes); i += limit {
		end := i + limit
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
	}
	return chunks
}
