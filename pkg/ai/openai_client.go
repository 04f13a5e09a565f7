package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type openAI struct {
	client openai.Client
	model  string
}

// NewOpenAI talks to the OpenAI chat completions API, or to any compatible
// endpoint when baseURL is set.
func NewOpenAI(apiKey, baseURL, model string, opts ...option.RequestOption) Client {
	o := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		o = append(o, option.WithBaseURL(baseURL))
	}
	o = append(o, opts...)
	return &openAI{client: openai.NewClient(o...), model: model}
}

func (c *openAI) Reply(ctx context.Context, p Prompt) (string, error) {
	msgs := []openai.ChatCompletionMessageParamUnion{openai.SystemMessage(systemPrompt(p))}
	for _, m := range recent(p.History) {
		if m.Role == RoleAssistant {
			msgs = append(msgs, openai.AssistantMessage(m.Content))
		} else {
			msgs = append(msgs, openai.UserMessage(m.Content))
		}
	}
	msgs = append(msgs, openai.UserMessage(p.Message))

	chat, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: msgs,
		Model:    openai.ChatModel(c.model),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(chat.Choices) == 0 {
		return "", errors.New("chat completion: no choices")
	}
	out := strings.TrimSpace(chat.Choices[0].Message.Content)
	if out == "" {
		return "", errors.New("chat completion: empty reply")
	}
	return out, nil
}
