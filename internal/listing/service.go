package listing

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Repository interface {
	List(ctx context.Context) ([]*Listing, error)
	Get(ctx context.Context, id uuid.UUID) (*Listing, error)
	Create(ctx context.Context, l *Listing) error
}

type Service struct {
	repo     Repository
	validate *validator.Validate
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// CreateParams is what an owner submits to publish a property.
type CreateParams struct {
	Title       string `validate:"required,max=120"`
	Description string `validate:"required,max=2000"`
	Location    string `validate:"required,max=120"`
	Kind        Kind   `validate:"required,oneof=villa appartement terrain bureau commerce"`
	Type        Type   `validate:"required,oneof=sale rent"`
	Price       int64  `validate:"gt=0"`
	Beds        int    `validate:"gte=0,lte=50"`
	Baths       int    `validate:"gte=0,lte=50"`
	Area        int    `validate:"gt=0"`
	ImageURL    string `validate:"omitempty,url"`
	Owner       string `validate:"max=120"`
}

// List returns the listings matching f.
func (s *Service) List(ctx context.Context, f Filter) ([]*Listing, error) {
	listings, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing properties: %w", err)
	}

	return Apply(listings, f), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Listing, error) {
	return s.repo.Get(ctx, id)
}

// Create publishes a new available listing.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Listing, error) {
	if err := s.validate.Struct(params); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	l := &Listing{
		ID:          uuid.New(),
		Title:       params.Title,
		Description: params.Description,
		Price:       params.Price,
		Location:    params.Location,
		Beds:        params.Beds,
		Baths:       params.Baths,
		Area:        params.Area,
		Kind:        params.Kind,
		Type:        params.Type,
		Status:      StatusAvailable,
		ImageURL:    params.ImageURL,
		Owner:       params.Owner,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("creating listing: %w", err)
	}

	return l, nil
}

func (s *Service) Seed(ctx context.Context, listings []*Listing) error {
	for _, l := range listings {
		if l.ID == uuid.Nil {
			l.ID = uuid.New()
		}

		if err := s.repo.Create(ctx, l); err != nil {
			return fmt.Errorf("seeding listing %q: %w", l.Title, err)
		}
	}

	return nil
}
