package advisor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kushtati/kushtati-immo/internal/advisor"
)

type stubGenerator struct {
	answer  string
	err     error
	history []advisor.Turn
	message string
}

func (s *stubGenerator) Generate(_ context.Context, history []advisor.Turn, message string) (string, error) {
	s.history = history
	s.message = message

	return s.answer, s.err
}

func TestService_Advise(t *testing.T) {
	type testCase struct {
		name string
		gen  *stubGenerator
		want string
	}

	tests := []testCase{
		{
			name: "Answer",
			gen:  &stubGenerator{answer: "Kipé offre un bon rapport qualité-prix."},
			want: "Kipé offre un bon rapport qualité-prix.",
		},
		{
			name: "NotConfigured",
			gen:  &stubGenerator{err: advisor.ErrNotConfigured},
			want: advisor.MessageNotConfigured,
		},
		{
			name: "Unavailable",
			gen:  &stubGenerator{err: errors.New("connection reset")},
			want: advisor.MessageUnavailable,
		},
		{
			name: "Empty",
			gen:  &stubGenerator{answer: "  \n"},
			want: advisor.MessageEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := advisor.NewService(tt.gen)
			assert.Equal(t, tt.want, svc.Advise(context.Background(), "Où investir ?", nil))
			assert.Equal(t, "Où investir ?", tt.gen.message)
		})
	}
}

func TestService_Advise_NormalizesHistory(t *testing.T) {
	gen := &stubGenerator{answer: "ok"}
	svc := advisor.NewService(gen)

	svc.Advise(context.Background(), "Et à Ratoma ?", []advisor.Turn{
		{Role: advisor.RoleUser, Text: "Bonjour"},
		{Role: "assistant", Text: "Bonjour, comment puis-je aider ?"},
		{Role: advisor.RoleUser, Text: " "},
	})

	assert.Equal(t, []advisor.Turn{
		{Role: advisor.RoleUser, Text: "Bonjour"},
		{Role: advisor.RoleModel, Text: "Bonjour, comment puis-je aider ?"},
	}, gen.history)
}

func TestService_NilGenerator(t *testing.T) {
	svc := advisor.NewService(nil)
	assert.Equal(t, advisor.MessageNotConfigured, svc.Advise(context.Background(), "Bonjour", nil))
}

func TestNewGemini_MissingKey(t *testing.T) {
	_, err := advisor.NewGemini(context.Background(), "", "")
	assert.ErrorIs(t, err, advisor.ErrNotConfigured)

	_, err = advisor.NewGemini(context.Background(), "your_gemini_api_key_here", "")
	assert.ErrorIs(t, err, advisor.ErrNotConfigured)
}
