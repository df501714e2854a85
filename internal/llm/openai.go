// Package llm polishes the template briefing narrative into friendlier
// prose with OpenAI. The polisher is strictly optional: any failure
// leaves the template narrative in place.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"skybrief/internal/briefing"
	"skybrief/internal/logger"

	"github.com/sashabaranov/go-openai"
)

const (
	polishTimeout   = 60 * time.Second
	polishMaxTokens = 600
)

const systemPrompt = `You are an astronomy guide writing a nightly sky briefing for a general audience, including screen reader users. Rewrite the draft into one warm, flowing paragraph. Keep every fact and number exactly as given, never invent sights or conditions, spell out units, and avoid symbols that read poorly aloud.`

// Polisher rewrites briefing narratives via the OpenAI chat API.
type Polisher struct {
	client *openai.Client
	model  string
	log    *logger.Logger
}

// NewPolisher creates a polisher. Returns nil when no API key is
// configured so callers can wire it straight into the synthesizer.
func NewPolisher(apiKey, model string) *Polisher {
	if apiKey == "" {
		return nil
	}
	return &Polisher{
		client: openai.NewClient(apiKey),
		model:  model,
		log:    logger.GetGlobalLogger().WithComponent("llm"),
	}
}

// Polish implements briefing.NarrativePolisher.
func (p *Polisher) Polish(ctx context.Context, b *briefing.DailyBriefing) (string, error) {
	if p.client == nil {
		return "", fmt.Errorf("OpenAI client not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, polishTimeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(b),
			},
		},
		MaxTokens:   polishMaxTokens,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	polished := resp.Choices[0].Message.Content
	p.log.Debug("narrative polished", map[string]interface{}{
		"chars": len(polished),
	})
	return polished, nil
}

// buildPrompt pairs the draft narrative with the structured facts so the
// model can smooth the prose without drifting from the data.
func buildPrompt(b *briefing.DailyBriefing) string {
	prompt := fmt.Sprintf("Draft briefing for %s:\n\n%s\n", b.Date.Format("January 2, 2006"), b.Narrative)

	if facts, err := json.MarshalIndent(b.AsDict(), "", "  "); err == nil {
		prompt += "\nStructured facts the paragraph must stay consistent with:\n```json\n"
		prompt += string(facts)
		prompt += "\n```\n"
	}

	prompt += "\nRewrite the draft as a single paragraph."
	return prompt
}
