package ai

import (
	"context"
	"fmt"
	"strings"
)

// MaxHistory is how many earlier messages are sent with each request.
const MaxHistory = 10

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Prompt is everything a client may use to answer one chat message.
type Prompt struct {
	Language string
	History  []Message // oldest first
	Message  string
	Articles []string // titles of knowledge base articles that match the message
}

type Client interface {
	Reply(ctx context.Context, p Prompt) (string, error)
}

var languageNames = map[string]string{"en": "English", "hi": "Hindi", "es": "Spanish"}

func recent(hist []Message) []Message {
	if len(hist) > MaxHistory {
		return hist[len(hist)-MaxHistory:]
	}
	return hist
}

// systemPrompt is shared by the hosted model clients.
func systemPrompt(p Prompt) string {
	lang := languageNames[p.Language]
	if lang == "" {
		lang = "English"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "You are a practical farming assistant for smallholder farmers. Reply in %s, in at most 5 short sentences. ", lang)
	b.WriteString("Give concrete doses, timings and quantities when you can, and say so when a local extension officer should be consulted.")
	if len(p.Articles) > 0 {
		b.WriteString("\nRelevant advisory articles: ")
		b.WriteString(strings.Join(p.Articles, "; "))
	}
	return b.String()
}
