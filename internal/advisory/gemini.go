package advisory

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/spec-kit/dominion-roster/internal/config"
	"github.com/spec-kit/dominion-roster/internal/domain"
)

// MemberSummary is the reduced per-member shape sent to the model.
type MemberSummary struct {
	Name          string `json:"name"`
	Group         string `json:"group"`
	DominionCount int    `json:"dominionCount"`
}

// BuildSummary reduces the roster to name, group and dominion win count.
func BuildSummary(members []domain.Member) []MemberSummary {
	summary := make([]MemberSummary, 0, len(members))
	for _, member := range members {
		summary = append(summary, MemberSummary{
			Name:          member.Name,
			Group:         member.Group,
			DominionCount: member.DominionCount(),
		})
	}
	return summary
}

const promptTemplate = `You are a high-level strategic advisor for an alliance in a tactical strategy game.
Analyze the following roster data and provide a concise (max 120 characters) tactical recommendation
in Traditional Chinese. Focus on which groups are performing best and how to distribute new rewards.

Roster Data: %s`

// BuildPrompt renders the fixed instruction template around the summary.
func BuildPrompt(summary []MemberSummary) (string, error) {
	data, err := json.Marshal(summary)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(promptTemplate, string(data)), nil
}

// Generator produces advisory text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator calls the Gemini API with the configured sampling settings.
type GeminiGenerator struct {
	client      *genai.Client
	model       string
	temperature float32
	topP        float32
}

// NewGeminiGenerator builds the generator; requires an API key.
func NewGeminiGenerator(ctx context.Context, cfg config.AdvisoryConfig) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not configured")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiGenerator{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		topP:        cfg.TopP,
	}, nil
}

// Generate sends the prompt and returns the model's text verbatim.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr(g.temperature),
			TopP:        genai.Ptr(g.topP),
		})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
