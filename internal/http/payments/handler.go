package payments

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kushtati/kushtati-immo/internal/document"
	"github.com/kushtati/kushtati-immo/internal/format"
	"github.com/kushtati/kushtati-immo/internal/http/respond"
	"github.com/kushtati/kushtati-immo/internal/payment"
	"github.com/kushtati/kushtati-immo/internal/payment/flow"
)

type Handler struct {
	svc      *payment.Service
	renderer *document.Renderer
	newFlow  func() *flow.Flow
}

// NewHandler serves the ledger. newFlow builds the flow used for one
// payment request.
func NewHandler(svc *payment.Service, renderer *document.Renderer, newFlow func() *flow.Flow) *Handler {
	return &Handler{svc: svc, renderer: renderer, newFlow: newFlow}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/summary", h.summary)
	r.Get("/next", h.next)
	r.Get("/{id}", h.get)
	r.Post("/{id}/pay", h.pay)
	r.Get("/{id}/receipt", h.receipt)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.List(r.Context())
	if err != nil {
		slog.Error("failed to list records", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(records, h.svc.Now()))
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	now := h.svc.Now()

	s, err := h.svc.Summary(r.Context(), now)
	if err != nil {
		slog.Error("failed to summarize ledger", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	next, err := h.svc.NextDue(r.Context(), now)
	if err != nil {
		slog.Error("failed to find next due record", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	resp := summaryResponse{
		Paid:             s.Paid,
		Pending:          s.Pending,
		Overdue:          s.Overdue,
		Advance:          s.Advance,
		TotalPaid:        s.TotalPaid,
		TotalPaidLabel:   format.Amount(s.TotalPaid),
		TotalOutstanding: s.TotalOutstanding,
	}

	if next != nil {
		resp.NextDue = new(toResponse(next, now))
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) next(w http.ResponseWriter, r *http.Request) {
	now := h.svc.Now()

	next, err := h.svc.NextDue(r.Context(), now)
	if err != nil {
		slog.Error("failed to find next due record", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	if next == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(next, now))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.record(w, r)
	if !ok {
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(rec, h.svc.Now()))
}

type payRequest struct {
	Method string `json:"method" validate:"required"`
}

func (h *Handler) pay(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.record(w, r)
	if !ok {
		return
	}

	var req payRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	method, err := payment.ParseMethod(req.Method)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	now := h.svc.Now()
	f := h.newFlow()

	if err := f.Select(rec); err != nil {
		if errors.Is(err, payment.ErrAlreadyPaid) {
			respond.JSON(w, http.StatusOK, payResponse{
				Record:      toResponse(rec, now),
				ReceiptURL:  receiptURL(rec),
				AlreadyPaid: true,
			})

			return
		}

		slog.Error("failed to open payment", "id", rec.ID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	if err := f.ChooseMethod(method); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := f.Submit(r.Context())
	if err != nil {
		slog.Error("failed to submit payment", "id", rec.ID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	res := <-results

	switch {
	case errors.Is(res.Err, flow.ErrCancelled):
		slog.Info("payment cancelled by client", "id", rec.ID)
		respond.Error(w, http.StatusRequestTimeout, "payment cancelled")

		return
	case errors.Is(res.Err, payment.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "payment record not found")
		return
	case res.Err != nil:
		slog.Error("failed to apply payment", "id", rec.ID, "error", res.Err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	respond.JSON(w, http.StatusOK, payResponse{
		Record:      toResponse(res.Record, h.svc.Now()),
		Message:     res.Message,
		RedirectURL: res.RedirectURL,
		ReceiptURL:  receiptURL(res.Record),
		AlreadyPaid: res.AlreadyPaid,
	})
}

func (h *Handler) receipt(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.record(w, r)
	if !ok {
		return
	}

	a, err := h.renderer.Receipt(rec)
	if err != nil {
		if errors.Is(err, document.ErrNotPaid) {
			respond.Error(w, http.StatusConflict, "payment record is not paid")
			return
		}

		slog.Error("failed to render receipt", "id", rec.ID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	respond.Artifact(w, a)
}

// record loads the {id} record and writes the error response when it fails.
func (h *Handler) record(w http.ResponseWriter, r *http.Request) (*payment.Record, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return nil, false
	}

	rec, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, payment.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "payment record not found")
			return nil, false
		}

		slog.Error("failed to get record", "id", id, "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return nil, false
	}

	return rec, true
}

func receiptURL(rec *payment.Record) string {
	return "/api/v1/payments/" + rec.ID.String() + "/receipt"
}
