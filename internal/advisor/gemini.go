package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const DefaultModel = "gemini-2.5-flash"

// Gemini generates answers with the Gemini API.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" || apiKey == "your_gemini_api_key_here" {
		return nil, ErrNotConfigured
	}

	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	m := client.GenerativeModel(model)
	m.SetTemperature(0.7)
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemInstruction)}}

	return &Gemini{client: client, model: m}, nil
}

func (g *Gemini) Generate(ctx context.Context, history []Turn, message string) (string, error) {
	cs := g.model.StartChat()

	for _, t := range history {
		cs.History = append(cs.History, &genai.Content{
			Role:  string(t.Role),
			Parts: []genai.Part{genai.Text(t.Text)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("sending message: %w", err)
	}

	var sb strings.Builder

	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}

		for _, p := range c.Content.Parts {
			if text, ok := p.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}

		break
	}

	return sb.String(), nil
}

func (g *Gemini) Close() error {
	return g.client.Close()
}
