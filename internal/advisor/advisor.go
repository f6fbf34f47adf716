// Package advisor answers tenant and owner questions through a language model.
package advisor

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

const (
	MessageNotConfigured = "⚠️ AI Assistant is not configured. Please contact the administrator."
	MessageUnavailable   = "I'm currently having trouble connecting. Please try again in a moment."
	MessageEmpty         = "I apologize, I couldn't generate a response at this moment."
)

const systemInstruction = `You are "Kushtati AI", an expert real estate advisor for the premium agency "Kushtati Immo" in Guinea.
Your tone is professional, warm, and sophisticated.
You help users find properties in Conakry and surrounding areas, understand real estate terms, and value homes.
Prices are in Guinean Francs (GNF). You know the neighborhoods of Conakry: Kaloum, Camayenne, Kipé, Ratoma, Hamdallaye, etc.
If asked about the agency, emphasize our expertise in Guinea's real estate market and personalized service.
Keep responses concise (under 100 words) unless asked for a detailed explanation.`

var ErrNotConfigured = errors.New("advisor api key is not configured")

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one message of a conversation.
type Turn struct {
	Role Role
	Text string
}

type Generator interface {
	Generate(ctx context.Context, history []Turn, message string) (string, error)
}

// Unconfigured is used when no API key is available.
type Unconfigured struct{}

func (Unconfigured) Generate(context.Context, []Turn, string) (string, error) {
	return "", ErrNotConfigured
}

type Service struct {
	gen Generator
}

func NewService(gen Generator) *Service {
	if gen == nil {
		gen = Unconfigured{}
	}

	return &Service{gen: gen}
}

// Advise always returns text to show; failures are logged and replaced by a
// fixed message.
func (s *Service) Advise(ctx context.Context, message string, history []Turn) string {
	answer, err := s.gen.Generate(ctx, normalize(history), message)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			return MessageNotConfigured
		}

		slog.Error("failed to generate advice", "error", err)

		return MessageUnavailable
	}

	if strings.TrimSpace(answer) == "" {
		return MessageEmpty
	}

	return answer
}

// normalize maps any role other than user to model and drops empty turns.
func normalize(history []Turn) []Turn {
	out := make([]Turn, 0, len(history))

	for _, t := range history {
		if strings.TrimSpace(t.Text) == "" {
			continue
		}

		if t.Role != RoleUser {
			t.Role = RoleModel
		}

		out = append(out, t)
	}

	return out
}
