package importcsv

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kushtati/kushtati-immo/internal/http/respond"
	"github.com/kushtati/kushtati-immo/internal/importer"
	"github.com/kushtati/kushtati-immo/internal/payment"
)

const maxUpload = 10 << 20

type Handler struct {
	importSvc *importer.Service
	ledger    *payment.Service
}

func NewHandler(importSvc *importer.Service, ledger *payment.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		ledger:    ledger,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importResponse struct {
	Imported int      `json:"imported"`
	Periods  []string `json:"periods"`
	Skipped  []string `json:"skipped"`
}

// importCSV adds the uploaded periods to the ledger. It answers 409 when every
// period of the file is already known or a transaction id is already used.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		respond.Error(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		format = importer.FormatLedgerCSV
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	records, err := h.importSvc.Import(format, file)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.ledger.Import(r.Context(), records)
	if err != nil {
		if errors.Is(err, payment.ErrDuplicateTransaction) {
			respond.Error(w, http.StatusConflict, err.Error())
			return
		}

		slog.Error("failed to import records", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	resp := importResponse{
		Imported: len(result.Imported),
		Periods:  make([]string, 0, len(result.Imported)),
		Skipped:  result.Skipped,
	}

	if resp.Skipped == nil {
		resp.Skipped = []string{}
	}

	for _, rec := range result.Imported {
		resp.Periods = append(resp.Periods, rec.Period)
	}

	status := http.StatusCreated
	if resp.Imported == 0 {
		status = http.StatusConflict
	}

	respond.JSON(w, status, resp)
}
