package payment

import (
	"time"

	"github.com/google/uuid"
)

// Status is the stored paid/not-paid distinction of a record.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// DisplayState is the classification shown to the tenant. It is derived from
// the stored fields and the current date and never persisted.
type DisplayState string

const (
	StatePaid           DisplayState = "paid"
	StatePending        DisplayState = "pending"
	StateOverdue        DisplayState = "overdue"
	StateAdvancePayment DisplayState = "advance_payment"
)

func (s DisplayState) Label() string {
	switch s {
	case StatePaid:
		return "Payé"
	case StatePending:
		return "En attente"
	case StateOverdue:
		return "En retard"
	case StateAdvancePayment:
		return "Paiement anticipé"
	}

	return "Inconnu"
}

// Record is one billing period of a tenant's ledger.
type Record struct {
	ID        uuid.UUID
	Period    string
	AmountDue int64 // GNF, no minor unit
	DueDate   time.Time
	Status    Status

	// Populated together when the record is paid.
	PaidDate      *time.Time
	Method        Method
	TransactionID string
}

// IsPaid reports whether the record reached its terminal state.
func (r *Record) IsPaid() bool {
	return r.Status == StatusPaid
}

// Clone returns a deep copy so callers never alias ledger state.
func (r *Record) Clone() *Record {
	c := *r
	if r.PaidDate != nil {
		c.PaidDate = new(*r.PaidDate)
	}

	return &c
}

// Derive maps a record and the current time to its display state.
// Dates are compared at calendar-day granularity; a record due today is
// Pending rather than Overdue.
func Derive(r *Record, now time.Time) DisplayState {
	if r.IsPaid() {
		return StatePaid
	}

	due := dateOnly(r.DueDate)
	today := dateOnly(now)

	switch {
	case due.Before(today):
		return StateOverdue
	case due.After(today):
		return StateAdvancePayment
	default:
		return StatePending
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Date builds a calendar date in UTC.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Summary aggregates a ledger for dashboards and reports.
type Summary struct {
	Paid             int
	Pending          int
	Overdue          int
	Advance          int
	TotalPaid        int64
	TotalOutstanding int64
}

// Unpaid counts every record that still awaits payment.
func (s Summary) Unpaid() int {
	return s.Pending + s.Overdue + s.Advance
}

// Summarize counts records per display state at now.
func Summarize(records []*Record, now time.Time) Summary {
	var s Summary

	for _, r := range records {
		switch Derive(r, now) {
		case StatePaid:
			s.Paid++
			s.TotalPaid += r.AmountDue

			continue
		case StatePending:
			s.Pending++
		case StateOverdue:
			s.Overdue++
		case StateAdvancePayment:
			s.Advance++
		}

		s.TotalOutstanding += r.AmountDue
	}

	return s
}
