package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Persona is a generated identity for an AI member.
type Persona struct {
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
}

// PersonaGenerator produces identities for AI member provisioning when the
// caller supplies none.
type PersonaGenerator interface {
	GeneratePersona(ctx context.Context) (*Persona, error)
}

type LLMClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewLLMClient(ctx context.Context, apiKey string) (*LLMClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	model := client.GenerativeModel("gemini-2.5-flash")
	model.SetTemperature(0.9)
	model.ResponseMIMEType = "application/json"

	return &LLMClient{
		client: client,
		model:  model,
	}, nil
}

func (c *LLMClient) GeneratePersona(ctx context.Context) (*Persona, error) {
	prompt := `Invent a persona for a friendly bot account on a project-team community platform.
Rules:
1. "name" is a plausible Korean given name, at most 10 characters.
2. "nickname" is a single playful word, no whitespace, at most 50 characters.
3. Output MUST be JSON: {"name": "...", "nickname": "..."}`

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response from LLM")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			var persona Persona
			if err := json.Unmarshal([]byte(txt), &persona); err != nil {
				return nil, fmt.Errorf("failed to parse persona JSON: %w", err)
			}
			if persona.Name == "" || persona.Nickname == "" {
				return nil, fmt.Errorf("LLM returned an incomplete persona")
			}
			return &persona, nil
		}
	}

	return nil, fmt.Errorf("no text content in response")
}

func (c *LLMClient) Close() {
	c.client.Close()
}
