// Package contact records enquiries sent from the public contact form.
package contact

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var ErrInvalid = errors.New("invalid contact request")

type Subject string

const (
	SubjectGeneral  Subject = "general"
	SubjectProperty Subject = "property"
	SubjectVisit    Subject = "visit"
	SubjectSell     Subject = "sell"
	SubjectRent     Subject = "rent"
	SubjectOther    Subject = "other"
)

func (s Subject) Label() string {
	switch s {
	case SubjectGeneral:
		return "Renseignement général"
	case SubjectProperty:
		return "Information sur une propriété"
	case SubjectVisit:
		return "Demande de visite"
	case SubjectSell:
		return "Vendre une propriété"
	case SubjectRent:
		return "Mettre en location"
	case SubjectOther:
		return "Autre"
	}

	return string(s)
}

// Lead is an enquiry waiting for an agent to call back.
type Lead struct {
	ID         uuid.UUID
	Name       string
	Email      string
	Phone      string
	Subject    Subject
	Message    string
	ReceivedAt time.Time
}

// Params is what a visitor submits.
type Params struct {
	Name    string  `validate:"required,max=120"`
	Email   string  `validate:"required,email,max=254"`
	Phone   string  `validate:"omitempty,max=32"`
	Subject Subject `validate:"required,oneof=general property visit sell rent other"`
	Message string  `validate:"required,max=4000"`
}

type Repository interface {
	List(ctx context.Context) ([]*Lead, error)
	Create(ctx context.Context, l *Lead) error
}

type Service struct {
	repo     Repository
	validate *validator.Validate
	clock    func() time.Time
}

func NewService(repo Repository, clock func() time.Time) *Service {
	if clock == nil {
		clock = time.Now
	}

	return &Service{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		clock:    clock,
	}
}

func (s *Service) Submit(ctx context.Context, params Params) (*Lead, error) {
	if err := s.validate.Struct(params); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	l := &Lead{
		ID:         uuid.New(),
		Name:       params.Name,
		Email:      params.Email,
		Phone:      params.Phone,
		Subject:    params.Subject,
		Message:    params.Message,
		ReceivedAt: s.clock(),
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("saving lead: %w", err)
	}

	return l, nil
}

// List returns leads in the order they arrived.
func (s *Service) List(ctx context.Context) ([]*Lead, error) {
	leads, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing leads: %w", err)
	}

	return leads, nil
}

type Memory struct {
	mu    sync.RWMutex
	leads []Lead
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) List(_ context.Context) ([]*Lead, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Lead, 0, len(m.leads))
	for i := range m.leads {
		l := m.leads[i]
		out = append(out, &l)
	}

	return out, nil
}

func (m *Memory) Create(_ context.Context, l *Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.leads = append(m.leads, *l)

	return nil
}
