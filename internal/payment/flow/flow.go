// Package flow drives one payment from method selection to a settled,
// receipted ledger record.
package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kushtati/kushtati-immo/internal/document"
	"github.com/kushtati/kushtati-immo/internal/lease"
	"github.com/kushtati/kushtati-immo/internal/payment"
)

// DefaultDelay is the simulated confirmation latency.
const DefaultDelay = 2 * time.Second

var (
	ErrNoMethodSelected  = errors.New("no payment method selected")
	ErrInvalidTransition = errors.New("invalid payment flow transition")
	ErrCancelled         = errors.New("payment cancelled")
)

type State int

const (
	StateIdle State = iota
	StateMethodSelection
	StateProcessing
	StateSettled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMethodSelection:
		return "method_selection"
	case StateProcessing:
		return "processing"
	case StateSettled:
		return "settled"
	}

	return "unknown"
}

// Ledger is the part of the ledger service the flow mutates.
type Ledger interface {
	ApplyPayment(ctx context.Context, id uuid.UUID, method payment.Method) (*payment.Record, error)
}

// Renderer turns a settled record into a downloadable receipt.
type Renderer interface {
	Receipt(rec *payment.Record) (*document.Artifact, error)
}

// Navigator opens an external page, e.g. a wallet checkout.
type Navigator interface {
	Open(ctx context.Context, url string) error
}

// Confirmer waits for the payment channel to accept the payment. It must
// return ctx.Err() when ctx ends first.
type Confirmer interface {
	Confirm(ctx context.Context, rec *payment.Record, method payment.Method) error
}

// DelayConfirmer accepts every payment after a fixed delay.
type DelayConfirmer struct {
	Delay time.Duration
}

func (d DelayConfirmer) Confirm(ctx context.Context, _ *payment.Record, _ payment.Method) error {
	t := time.NewTimer(d.Delay)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Result is delivered once per Submit.
type Result struct {
	Record      *payment.Record
	Receipt     *document.Artifact
	Message     string
	RedirectURL string
	AlreadyPaid bool
	Err         error
}

type Deps struct {
	Ledger    Ledger
	Renderer  Renderer
	Confirmer Confirmer
	Navigator Navigator
	Lease     lease.Lease
}

// Flow is the state machine behind one payment dialog. It is safe for use
// from several goroutines but drives a single payment at a time.
type Flow struct {
	deps Deps

	mu         sync.Mutex
	state      State
	record     *payment.Record
	method     payment.Method
	gen        uint64
	cancel     context.CancelFunc
	committing bool
}

func New(deps Deps) *Flow {
	if deps.Confirmer == nil {
		deps.Confirmer = DelayConfirmer{Delay: DefaultDelay}
	}

	return &Flow{deps: deps}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.state
}

// Selection returns the record and method currently held by the flow.
func (f *Flow) Selection() (*payment.Record, payment.Method) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.record == nil {
		return nil, f.method
	}

	return f.record.Clone(), f.method
}

// Select opens the flow for an unpaid record.
func (f *Flow) Select(rec *payment.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateIdle && f.state != StateSettled {
		return fmt.Errorf("%w: select from %s", ErrInvalidTransition, f.state)
	}

	if rec.IsPaid() {
		return payment.ErrAlreadyPaid
	}

	f.state = StateMethodSelection
	f.record = rec.Clone()
	f.method = ""

	return nil
}

// ChooseMethod records the method; it may be changed until Submit.
func (f *Flow) ChooseMethod(m payment.Method) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %q", payment.ErrUnknownMethod, m)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateMethodSelection {
		return fmt.Errorf("%w: choose method from %s", ErrInvalidTransition, f.state)
	}

	f.method = m

	return nil
}

// Submit starts processing and returns a channel that receives exactly one
// Result. Cancelling ctx before the confirmation completes aborts the payment
// without touching the ledger.
func (f *Flow) Submit(ctx context.Context) (<-chan Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateMethodSelection {
		return nil, fmt.Errorf("%w: submit from %s", ErrInvalidTransition, f.state)
	}

	if f.method == "" {
		return nil, ErrNoMethodSelected
	}

	ctx, cancel := context.WithCancel(ctx)

	f.state = StateProcessing
	f.gen++
	f.cancel = cancel

	out := make(chan Result, 1)
	go f.process(ctx, f.gen, f.record.Clone(), f.method, out)

	return out, nil
}

// Cancel closes the dialog. It is refused once the ledger mutation started.
func (f *Flow) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.committing {
		return fmt.Errorf("%w: payment is being recorded", ErrInvalidTransition)
	}

	if f.cancel != nil {
		f.cancel()
	}

	f.gen++
	f.resetLocked()

	return nil
}

// Reset returns a settled flow to idle.
func (f *Flow) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateSettled {
		return fmt.Errorf("%w: reset from %s", ErrInvalidTransition, f.state)
	}

	f.resetLocked()

	return nil
}

func (f *Flow) resetLocked() {
	f.state = StateIdle
	f.record = nil
	f.method = ""
	f.cancel = nil
}

func (f *Flow) process(ctx context.Context, gen uint64, rec *payment.Record, method payment.Method, out chan<- Result) {
	defer close(out)

	confirmErr := f.deps.Confirmer.Confirm(ctx, rec, method)

	f.mu.Lock()

	if gen != f.gen || confirmErr != nil {
		if gen == f.gen {
			f.cancel()
			f.resetLocked()
		}

		f.mu.Unlock()

		out <- Result{Err: fmt.Errorf("%w: %s", ErrCancelled, rec.Period)}

		return
	}

	f.committing = true
	f.mu.Unlock()

	res := f.commit(context.WithoutCancel(ctx), rec, method)

	f.mu.Lock()
	f.committing = false
	f.cancel()
	f.cancel = nil

	if res.Err != nil {
		f.resetLocked()
	} else {
		f.state = StateSettled
		f.record = res.Record.Clone()
	}

	f.mu.Unlock()

	out <- res
}

func (f *Flow) commit(ctx context.Context, rec *payment.Record, method payment.Method) Result {
	paid, err := f.deps.Ledger.ApplyPayment(ctx, rec.ID, method)

	var res Result

	switch {
	case errors.Is(err, payment.ErrAlreadyPaid) && paid != nil:
		res.AlreadyPaid = true
	case err != nil:
		return Result{Err: fmt.Errorf("applying payment: %w", err)}
	}

	res.Record = paid

	o := outcomeFor(paid.Method, paid, f.deps.Lease)
	res.Message = o.message
	res.RedirectURL = o.redirectURL

	if f.deps.Renderer != nil {
		receipt, err := f.deps.Renderer.Receipt(paid)
		if err != nil {
			slog.Error("failed to render receipt", "transaction_id", paid.TransactionID, "error", err)
		}

		res.Receipt = receipt
	}

	if o.redirectURL != "" && f.deps.Navigator != nil && !res.AlreadyPaid {
		if err := f.deps.Navigator.Open(ctx, o.redirectURL); err != nil {
			slog.Warn("failed to open payment page", "url", o.redirectURL, "error", err)
		}
	}

	return res
}
