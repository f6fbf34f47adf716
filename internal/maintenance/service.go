package maintenance

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Repository interface {
	List(ctx context.Context) ([]*Request, error)
	Get(ctx context.Context, id uuid.UUID) (*Request, error)
	Create(ctx context.Context, r *Request) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
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

// CreateParams is what a tenant or owner submits for a new request.
type CreateParams struct {
	PropertyID  string   `validate:"omitempty,max=64"`
	Property    string   `validate:"omitempty,max=120"`
	Type        string   `validate:"omitempty,max=60"`
	Title       string   `validate:"required,max=120"`
	Description string   `validate:"max=1000"`
	Priority    Priority `validate:"required,oneof=haute moyenne basse"`
	Cost        int64    `validate:"gte=0"`
}

// List returns requests most recent first.
func (s *Service) List(ctx context.Context) ([]*Request, error) {
	requests, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing requests: %w", err)
	}

	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].Date.After(requests[j].Date)
	})

	return requests, nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Request, error) {
	if err := s.validate.Struct(params); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	now := s.clock()
	r := &Request{
		ID:          uuid.New(),
		PropertyID:  params.PropertyID,
		Property:    params.Property,
		Type:        params.Type,
		Title:       params.Title,
		Description: params.Description,
		Priority:    params.Priority,
		Status:      StatusPending,
		Date:        time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Cost:        params.Cost,
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	return r, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Request, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalid, status)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, id)
}

// PendingCount counts requests that are not resolved.
func (s *Service) PendingCount(ctx context.Context) (int, error) {
	requests, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing requests: %w", err)
	}

	n := 0

	for _, r := range requests {
		if r.Open() {
			n++
		}
	}

	return n, nil
}

// TotalCost sums the cost of every request, resolved or not.
func (s *Service) TotalCost(ctx context.Context) (int64, error) {
	requests, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing requests: %w", err)
	}

	return Total(requests), nil
}

func Total(requests []*Request) int64 {
	var total int64
	for _, r := range requests {
		total += r.Cost
	}

	return total
}

// CostByType groups costs by intervention type.
func CostByType(requests []*Request) map[string]int64 {
	out := make(map[string]int64)

	for _, r := range requests {
		if r.Cost == 0 {
			continue
		}

		out[r.Type] += r.Cost
	}

	return out
}

// Seed loads requests as they are, keeping ids and dates.
func (s *Service) Seed(ctx context.Context, requests []*Request) error {
	for _, r := range requests {
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}

		if err := s.repo.Create(ctx, r); err != nil {
			return fmt.Errorf("seeding request %q: %w", r.Title, err)
		}
	}

	return nil
}
