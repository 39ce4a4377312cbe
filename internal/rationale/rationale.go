package rationale

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
)

// AlertContext carries everything the model needs to reason about one
// price move.
type AlertContext struct {
	Symbol      string
	CompanyName string
	DeltaPct    float64
	Price       float64
	Currency    string
}

// Service produces a short natural-language explanation for an alert.
// Implementations are best-effort: they return a placeholder string on
// failure instead of an error, so an alert is never suppressed because
// the explanation is missing.
type Service interface {
	Explain(ctx context.Context, a AlertContext) string
}

// OpenRouter asks a chat model behind the OpenRouter API for 2-3
// plausible reasons for the move.
type OpenRouter struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewOpenRouter(apiKey, model string) *OpenRouter {
	return newOpenRouter(apiKey, model, "https://openrouter.ai/api/v1")
}

func newOpenRouter(apiKey, model, baseURL string) *OpenRouter {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL

	return &OpenRouter{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: 20 * time.Second,
	}
}

func (s *OpenRouter) Explain(ctx context.Context, a AlertContext) string {
	direction := "gestiegen"
	if a.DeltaPct < 0 {
		direction = "gefallen"
	}

	prompt := fmt.Sprintf(
		"Der Kurs von %s (%s) ist um %+.2f%% %s.\n"+
			"Aktueller Kurs: %.2f %s.\n"+
			"Nenne 2-3 mögliche Gründe für diese Bewegung - basierend auf typischen Marktfaktoren:\n"+
			"- Sektorweite Korrektur?\n"+
			"- Unternehmensnachrichten?\n"+
			"- Makro-Wirtschaft (Zinsen, Inflation)?\n"+
			"- Technische Faktoren?\n"+
			"Halte die Antwort kurz, sachlich und wie ein professioneller Finanzanalyst. Max. 3 Sätze.",
		a.CompanyName, a.Symbol, a.DeltaPct, direction, a.Price, a.Currency,
	)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		log.Errorf("rationale request for %s failed: %v", a.Symbol, err)
		return fmt.Sprintf("KI-Analyse fehlgeschlagen: %v", err)
	}
	if len(resp.Choices) == 0 {
		log.Errorf("rationale request for %s returned no choices", a.Symbol)
		return "KI-Analyse fehlgeschlagen: leere Antwort"
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content)
}

// Disabled is used when no API key is configured. Alerts still fire,
// just without an explanation.
type Disabled struct{}

func (Disabled) Explain(ctx context.Context, a AlertContext) string {
	return "KI-Analyse nicht konfiguriert"
}
