package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

type gemini struct {
	client *genai.Client
	model  string
}

// NewGemini builds a Client on the Gemini API. baseURL is only set in tests
// and for proxies.
func NewGemini(ctx context.Context, apiKey, baseURL, model string) (Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: api key is required")
	}
	cc := &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI}
	if baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &gemini{client: client, model: model}, nil
}

func (c *gemini) Reply(ctx context.Context, p Prompt) (string, error) {
	var contents []*genai.Content
	for _, m := range recent(p.History) {
		role := genai.Role(genai.RoleUser)
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	contents = append(contents, genai.NewContentFromText(p.Message, genai.RoleUser))

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt(p), genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	out := strings.TrimSpace(resp.Text())
	if out == "" {
		return "", errors.New("generate content: empty reply")
	}
	return out, nil
}
