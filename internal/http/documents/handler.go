package documents

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kushtati/kushtati-immo/internal/document"
	"github.com/kushtati/kushtati-immo/internal/http/respond"
	"github.com/kushtati/kushtati-immo/internal/maintenance"
	"github.com/kushtati/kushtati-immo/internal/payment"
	"github.com/kushtati/kushtati-immo/internal/portfolio"
)

// Works lists the owner's maintenance interventions.
type Works interface {
	List(ctx context.Context) ([]*maintenance.Request, error)
}

type Handler struct {
	ledger     *payment.Service
	works      Works
	properties func() []portfolio.Property
	renderer   *document.Renderer
}

func NewHandler(ledger *payment.Service, works Works, properties func() []portfolio.Property, renderer *document.Renderer) *Handler {
	return &Handler{ledger: ledger, works: works, properties: properties, renderer: renderer}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/history.pdf", h.historyPDF)
	r.Get("/history.xlsx", h.historySheet)
	r.Get("/receipts.zip", h.receipts)
	r.Get("/monthly-report.pdf", h.monthlyReport)
	r.Get("/tax-declaration.pdf", h.taxDeclaration)
}

func (h *Handler) historyPDF(w http.ResponseWriter, r *http.Request) {
	h.fromLedger(w, r, h.renderer.PaymentHistory)
}

func (h *Handler) historySheet(w http.ResponseWriter, r *http.Request) {
	h.fromLedger(w, r, h.renderer.HistorySheet)
}

func (h *Handler) receipts(w http.ResponseWriter, r *http.Request) {
	records, err := h.ledger.List(r.Context())
	if err != nil {
		slog.Error("failed to list records", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	var paid []*payment.Record

	for _, rec := range records {
		if rec.IsPaid() {
			paid = append(paid, rec)
		}
	}

	if len(paid) == 0 {
		respond.Error(w, http.StatusNotFound, "no paid records")
		return
	}

	h.render(w, func() (*document.Artifact, error) { return h.renderer.Bundle(paid) })
}

func (h *Handler) monthlyReport(w http.ResponseWriter, r *http.Request) {
	works, err := h.works.List(r.Context())
	if err != nil {
		slog.Error("failed to list interventions", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	report := portfolio.BuildMonthlyReport(h.properties(), works, h.ledger.Now())

	h.render(w, func() (*document.Artifact, error) { return h.renderer.MonthlyReport(report) })
}

func (h *Handler) taxDeclaration(w http.ResponseWriter, r *http.Request) {
	year := h.ledger.Now().Year()

	if s := r.URL.Query().Get("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil || y < 2000 || y > 2100 {
			respond.Error(w, http.StatusBadRequest, "invalid year")
			return
		}

		year = y
	}

	works, err := h.works.List(r.Context())
	if err != nil {
		slog.Error("failed to list interventions", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	decl := portfolio.BuildTaxDeclaration(h.properties(), works, year)

	h.render(w, func() (*document.Artifact, error) { return h.renderer.TaxDeclaration(decl) })
}

func (h *Handler) fromLedger(w http.ResponseWriter, r *http.Request, build func([]*payment.Record) (*document.Artifact, error)) {
	records, err := h.ledger.List(r.Context())
	if err != nil {
		slog.Error("failed to list records", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	h.render(w, func() (*document.Artifact, error) { return build(records) })
}

func (h *Handler) render(w http.ResponseWriter, build func() (*document.Artifact, error)) {
	a, err := build()
	if err != nil {
		if errors.Is(err, document.ErrNotPaid) {
			respond.Error(w, http.StatusConflict, err.Error())
			return
		}

		slog.Error("failed to render document", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	respond.Artifact(w, a)
}
