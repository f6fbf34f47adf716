package payment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=payment
type Repository interface {
	ListRecords(ctx context.Context) ([]*Record, error)
	GetRecord(ctx context.Context, id uuid.UUID) (*Record, error)
	CreateRecords(ctx context.Context, records []*Record) error

	// MarkPaid must populate the paid-only fields atomically and only when the
	// record is still pending. It returns ErrAlreadyPaid otherwise.
	MarkPaid(ctx context.Context, id uuid.UUID, fields PaidFields) (*Record, error)
}

// PaidFields are written in one step on the pending -> paid transition.
type PaidFields struct {
	PaidDate      time.Time
	Method        Method
	TransactionID string
}

// Clock returns the current time. Tests pin it.
type Clock func() time.Time

// Service is the ledger store of one tenant session.
type Service struct {
	repo  Repository
	clock Clock

	mu         sync.Mutex
	lastMillis int64
}

func NewService(repo Repository, clock Clock) *Service {
	if clock == nil {
		clock = time.Now
	}

	return &Service{repo: repo, clock: clock}
}

func (s *Service) Now() time.Time {
	return s.clock()
}

// List returns a snapshot of the ledger in storage order.
func (s *Service) List(ctx context.Context) ([]*Record, error) {
	records, err := s.repo.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}

	out := make([]*Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}

	return out, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	r, err := s.repo.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	return r.Clone(), nil
}

// NextDue returns the earliest-deadline record that is pending or overdue at
// now, or nil when everything is paid or paid in advance.
func (s *Service) NextDue(ctx context.Context, now time.Time) (*Record, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	var eligible []*Record

	for _, r := range records {
		switch Derive(r, now) {
		case StatePending, StateOverdue:
			eligible = append(eligible, r)
		}
	}

	if len(eligible) == 0 {
		return nil, nil
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].DueDate.Before(eligible[j].DueDate)
	})

	return eligible[0], nil
}

// TotalPaid sums the amount of every paid record.
func (s *Service) TotalPaid(ctx context.Context) (int64, error) {
	records, err := s.repo.ListRecords(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing records: %w", err)
	}

	var total int64

	for _, r := range records {
		if r.IsPaid() {
			total += r.AmountDue
		}
	}

	return total, nil
}

func (s *Service) Summary(ctx context.Context, now time.Time) (Summary, error) {
	records, err := s.repo.ListRecords(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("listing records: %w", err)
	}

	return Summarize(records, now), nil
}

// ApplyPayment performs the one-way pending -> paid transition. A record that
// is already paid is left untouched and ErrAlreadyPaid is returned.
func (s *Service) ApplyPayment(ctx context.Context, id uuid.UUID, method Method) (*Record, error) {
	if !method.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}

	current, err := s.repo.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.IsPaid() {
		return current.Clone(), ErrAlreadyPaid
	}

	now := s.clock()
	fields := PaidFields{
		PaidDate:      dateOnly(now),
		Method:        method,
		TransactionID: s.transactionID(now, method),
	}

	paid, err := s.repo.MarkPaid(ctx, id, fields)
	if err != nil {
		if errors.Is(err, ErrAlreadyPaid) && paid != nil {
			return paid.Clone(), err
		}

		return nil, err
	}

	return paid.Clone(), nil
}

// Seed loads records into the ledger. A transaction id may appear only once,
// across the ledger and within records.
func (s *Service) Seed(ctx context.Context, records []*Record) error {
	existing, err := s.repo.ListRecords(ctx)
	if err != nil {
		return fmt.Errorf("listing records: %w", err)
	}

	used := make(map[string]string, len(existing)+len(records))
	for _, r := range existing {
		if r.TransactionID != "" {
			used[r.TransactionID] = r.Period
		}
	}

	var seededMillis int64

	for _, r := range records {
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}

		if err := Validate(r); err != nil {
			return fmt.Errorf("seeding %q: %w", r.Period, err)
		}

		if r.TransactionID == "" {
			continue
		}

		if period, ok := used[r.TransactionID]; ok {
			return fmt.Errorf("seeding %q: %w: %s is used by %q", r.Period, ErrDuplicateTransaction, r.TransactionID, period)
		}

		used[r.TransactionID] = r.Period

		if at, _, ok := ParseTransactionID(r.TransactionID); ok {
			seededMillis = max(seededMillis, at.UnixMilli())
		}
	}

	if err := s.repo.CreateRecords(ctx, records); err != nil {
		return fmt.Errorf("seeding records: %w", err)
	}

	// New ids must sort after every seeded one.
	s.mu.Lock()
	s.lastMillis = max(s.lastMillis, seededMillis)
	s.mu.Unlock()

	return nil
}

// ImportResult reports which records of an import were added to the ledger.
type ImportResult struct {
	Imported []*Record
	Skipped  []string
}

// Import seeds the records whose period is not yet in the ledger. Later
// duplicates within the same batch are skipped too.
func (s *Service) Import(ctx context.Context, records []*Record) (ImportResult, error) {
	existing, err := s.repo.ListRecords(ctx)
	if err != nil {
		return ImportResult{}, fmt.Errorf("listing records: %w", err)
	}

	known := make(map[string]bool, len(existing))
	for _, r := range existing {
		known[r.Period] = true
	}

	var result ImportResult

	for _, r := range records {
		if known[r.Period] {
			result.Skipped = append(result.Skipped, r.Period)
			continue
		}

		known[r.Period] = true
		result.Imported = append(result.Imported, r)
	}

	if len(result.Imported) == 0 {
		return result, nil
	}

	if err := s.Seed(ctx, result.Imported); err != nil {
		return ImportResult{}, err
	}

	return result, nil
}

// transactionID builds TX-<millis>-<CODE> with millis strictly increasing for
// the lifetime of the service.
func (s *Service) transactionID(now time.Time, method Method) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	millis := now.UnixMilli()
	if millis <= s.lastMillis {
		millis = s.lastMillis + 1
	}

	s.lastMillis = millis

	return fmt.Sprintf("TX-%d-%s", millis, method.Code())
}

// Validate checks the record invariants.
func Validate(r *Record) error {
	if r.AmountDue <= 0 {
		return errors.New("amount due must be positive")
	}

	if r.DueDate.IsZero() {
		return errors.New("due date is required")
	}

	switch r.Status {
	case StatusPending:
		if r.PaidDate != nil || r.Method != "" || r.TransactionID != "" {
			return errors.New("pending record carries paid fields")
		}
	case StatusPaid:
		if r.PaidDate == nil || !r.Method.Valid() || !ValidTransactionID(r.TransactionID) {
			return errors.New("paid record is missing paid fields")
		}

		if _, m, _ := ParseTransactionID(r.TransactionID); m != r.Method {
			return fmt.Errorf("transaction %s does not match method %s", r.TransactionID, r.Method)
		}
	default:
		return fmt.Errorf("unknown status %q", r.Status)
	}

	return nil
}
