package payments

import (
	"time"

	"github.com/google/uuid"

	"github.com/kushtati/kushtati-immo/internal/format"
	"github.com/kushtati/kushtati-immo/internal/payment"
)

type recordResponse struct {
	ID            uuid.UUID            `json:"id"`
	Period        string               `json:"period"`
	AmountDue     int64                `json:"amount_due"`
	AmountLabel   string               `json:"amount_label"`
	DueDate       string               `json:"due_date"`
	Status        payment.Status       `json:"status"`
	State         payment.DisplayState `json:"state"`
	StateLabel    string               `json:"state_label"`
	PaidDate      string               `json:"paid_date,omitempty"`
	Method        payment.Method       `json:"method,omitempty"`
	MethodLabel   string               `json:"method_label,omitempty"`
	TransactionID string               `json:"transaction_id,omitempty"`
}

func toResponse(r *payment.Record, now time.Time) recordResponse {
	state := payment.Derive(r, now)

	resp := recordResponse{
		ID:            r.ID,
		Period:        r.Period,
		AmountDue:     r.AmountDue,
		AmountLabel:   format.Amount(r.AmountDue),
		DueDate:       r.DueDate.Format(time.DateOnly),
		Status:        r.Status,
		State:         state,
		StateLabel:    state.Label(),
		Method:        r.Method,
		MethodLabel:   r.Method.Label(),
		TransactionID: r.TransactionID,
	}

	if r.PaidDate != nil {
		resp.PaidDate = r.PaidDate.Format(time.DateOnly)
	}

	return resp
}

func toResponseList(records []*payment.Record, now time.Time) []recordResponse {
	out := make([]recordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toResponse(r, now))
	}

	return out
}

type summaryResponse struct {
	Paid             int             `json:"paid"`
	Pending          int             `json:"pending"`
	Overdue          int             `json:"overdue"`
	Advance          int             `json:"advance"`
	TotalPaid        int64           `json:"total_paid"`
	TotalPaidLabel   string          `json:"total_paid_label"`
	TotalOutstanding int64           `json:"total_outstanding"`
	NextDue          *recordResponse `json:"next_due"`
}

type payResponse struct {
	Record      recordResponse `json:"record"`
	Message     string         `json:"message"`
	RedirectURL string         `json:"redirect_url,omitempty"`
	ReceiptURL  string         `json:"receipt_url"`
	AlreadyPaid bool           `json:"already_paid"`
}
