// pkg/ai/scripted_client.go

package ai

import (
	"context"
	"strings"
)

type intent struct {
	keywords []string
	reply    string
}

// intents are checked in order; the first keyword hit wins.
var intents = []intent{
	{[]string{"thank", "thanks", "dhanyavad", "gracias"},
		"You're welcome! Ask me anytime about your crops, soil or budget."},
	{[]string{"fertilizer", "fertiliser", "urea", "npk", "manure", "compost"},
		"Base fertilizer on a soil test. As a rule of thumb split nitrogen into two or three doses and apply phosphorus and potash at sowing. The crop recommendation page shows the ideal NPK range for each crop."},
	{[]string{"pest", "insect", "disease", "blight", "fungus", "rust", "mildew", "spots"},
		"Upload a clear photo on the disease analysis page for a first look. Meanwhile remove badly affected leaves, avoid overhead watering and keep tools clean between plants."},
	{[]string{"water", "irrigat", "drip", "moisture", "dry"},
		"Irrigate early in the morning and check soil moisture at root depth before watering again. Drip or furrow irrigation saves 30-50% water compared with flooding."},
	{[]string{"weather", "rain", "forecast", "temperature", "monsoon"},
		"Check the local forecast before spraying or fertilizing; rain within 24 hours washes most of it away. Enter temperature and rainfall in the crop recommendation form for weather-aware advice."},
	{[]string{"price", "market", "sell", "mandi", "msp"},
		"Compare prices at nearby markets before selling and consider staggered sales. You can enter current market prices in the budget planner to see updated returns."},
	{[]string{"budget", "cost", "loan", "money", "profit", "invest"},
		"Use the budget planner: enter your total budget and current crops and it spreads the money across crops by expected return, at most 10 acres per crop."},
	{[]string{"hello", "hi", "hey", "namaste", "hola", "good morning"},
		"Hello! I'm your farming assistant. Ask me about fertilizer, pests, irrigation, weather, market prices or budgeting."},
}

const fallbackReply = "I'm not sure about that yet. Try asking about fertilizer, pests and diseases, irrigation, weather, market prices or your budget."

type scriptedClient struct{}

// NewScripted answers from fixed keyword intents. It never fails and the
// same prompt always gets the same reply.
func NewScripted() Client { return scriptedClient{} }

func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r > 127)
	})
}

func matches(ws []string, msg, kw string) bool {
	if strings.Contains(kw, " ") {
		return strings.Contains(msg, kw)
	}
	for _, w := range ws {
		// prefix match so "irrigat" covers irrigate and irrigation
		if w == kw || (len(kw) > 3 && strings.HasPrefix(w, kw)) {
			return true
		}
	}
	return false
}

func (scriptedClient) Reply(ctx context.Context, p Prompt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	msg := strings.ToLower(p.Message)
	ws := words(msg)

	reply := fallbackReply
	for _, in := range intents {
		hit := false
		for _, kw := range in.keywords {
			if matches(ws, msg, kw) {
				hit = true
				break
			}
		}
		if hit {
			reply = in.reply
			break
		}
	}
	if len(p.Articles) > 0 {
		reply += " See also: \"" + p.Articles[0] + "\"."
	}
	return reply, nil
}
