package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"ArticlesPublisher/internal/content/assemble"
	"ArticlesPublisher/internal/domain"
	"ArticlesPublisher/internal/ports"
)

// DefaultModel is used when configuration leaves the model empty.
const DefaultModel = "gemini-2.5-flash"

// ErrEmptyResponse is returned when the model answers without text.
var ErrEmptyResponse = errors.New("empty response from model")

// TextModel produces raw text for a prompt.
type TextModel interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator asks Gemini for a structured article draft.
type GeminiGenerator struct {
	model  TextModel
	client *genai.Client
}

var _ ports.Generator = (*GeminiGenerator)(nil)

// NewGeminiGenerator dials the Gemini API with an API key.
func NewGeminiGenerator(ctx context.Context, apiKey, modelName string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini generator misconfigured: missing api key")
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.8)
	model.ResponseMIMEType = "application/json"

	return &GeminiGenerator{model: &genaiModel{model: model}, client: client}, nil
}

// NewGenerator wraps any text model; used for alternative backends and tests.
func NewGenerator(model TextModel) *GeminiGenerator {
	return &GeminiGenerator{model: model}
}

// Close releases the underlying API client.
func (g *GeminiGenerator) Close() error {
	if g == nil || g.client == nil {
		return nil
	}
	return g.client.Close()
}

// Generate builds the prompt, calls the model and parses the JSON answer.
func (g *GeminiGenerator) Generate(ctx context.Context, req ports.GenerationRequest) (domain.ArticleDraft, error) {
	if g == nil || g.model == nil {
		return domain.ArticleDraft{}, fmt.Errorf("gemini generator is nil")
	}

	text, err := g.model.GenerateText(ctx, BuildPrompt(req))
	if err != nil {
		return domain.ArticleDraft{}, fmt.Errorf("generate article: %w", err)
	}

	draft, err := ParseDraft(text)
	if err != nil {
		return domain.ArticleDraft{}, err
	}
	draft.Category = req.Task.Category
	if draft.Title == "" {
		draft.Title = Topic(req.Task)
	}
	return draft, nil
}

type genaiModel struct {
	model *genai.GenerativeModel
}

func (m *genaiModel) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := m.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return b.String(), nil
}

type draftPayload struct {
	Title           string   `json:"title"`
	MetaDescription string   `json:"meta_description"`
	Tags            []string `json:"tags"`
	HTMLContent     string   `json:"html_content"`
}

// ParseDraft decodes the model answer. Code fences and text around the JSON
// object are tolerated; an answer without JSON is treated as the HTML body.
func ParseDraft(text string) (domain.ArticleDraft, error) {
	body := assemble.StripCodeFence(text)
	if body == "" {
		return domain.ArticleDraft{}, ErrEmptyResponse
	}

	var payload draftPayload
	start, end := strings.Index(body, "{"), strings.LastIndex(body, "}")
	if start < 0 || end <= start || json.Unmarshal([]byte(body[start:end+1]), &payload) != nil {
		return domain.ArticleDraft{HTMLContent: body}, nil
	}

	if strings.TrimSpace(payload.HTMLContent) == "" {
		return domain.ArticleDraft{}, fmt.Errorf("parse draft: missing html_content")
	}

	tags := make([]string, 0, len(payload.Tags))
	for _, tag := range payload.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	return domain.ArticleDraft{
		Title:           strings.TrimSpace(payload.Title),
		HTMLContent:     payload.HTMLContent,
		MetaDescription: strings.TrimSpace(payload.MetaDescription),
		Tags:            tags,
	}, nil
}
