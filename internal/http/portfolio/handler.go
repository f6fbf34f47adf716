package portfolio

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kushtati/kushtati-immo/internal/format"
	"github.com/kushtati/kushtati-immo/internal/http/respond"
	"github.com/kushtati/kushtati-immo/internal/portfolio"
)

type Handler struct {
	properties func() []portfolio.Property
}

func NewHandler(properties func() []portfolio.Property) *Handler {
	return &Handler{properties: properties}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/stats", h.stats)
	r.Get("/properties", h.list)
}

type statsResponse struct {
	Total               int    `json:"total"`
	Rented              int    `json:"rented"`
	Available           int    `json:"available"`
	MonthlyRevenue      int64  `json:"monthly_revenue"`
	MonthlyRevenueLabel string `json:"monthly_revenue_label"`
	UnpaidAmount        int64  `json:"unpaid_amount"`
	OccupancyRate       string `json:"occupancy_rate"`
	CollectionRate      string `json:"collection_rate"`
}

func (h *Handler) stats(w http.ResponseWriter, _ *http.Request) {
	s := portfolio.ComputeStats(h.properties())

	respond.JSON(w, http.StatusOK, statsResponse{
		Total:               s.Total,
		Rented:              s.Rented,
		Available:           s.Available,
		MonthlyRevenue:      s.MonthlyRevenue,
		MonthlyRevenueLabel: format.Amount(s.MonthlyRevenue),
		UnpaidAmount:        s.UnpaidAmount,
		OccupancyRate:       s.OccupancyRate.StringFixed(1),
		CollectionRate:      s.CollectionRate.StringFixed(1),
	})
}

type propertyResponse struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Location     string           `json:"location"`
	Rent         int64            `json:"rent"`
	Status       portfolio.Status `json:"status"`
	Tenant       string           `json:"tenant,omitempty"`
	UnpaidMonths int              `json:"unpaid_months"`
	Arrears      int64            `json:"arrears"`
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	props := h.properties()

	out := make([]propertyResponse, 0, len(props))
	for _, p := range props {
		out = append(out, propertyResponse{
			ID:           p.ID,
			Title:        p.Title,
			Location:     p.Location,
			Rent:         p.Rent,
			Status:       p.Status,
			Tenant:       p.Tenant,
			UnpaidMonths: p.UnpaidMonths,
			Arrears:      p.Arrears(),
		})
	}

	if len(out) == 0 {
		slog.Warn("portfolio has no properties")
	}

	respond.JSON(w, http.StatusOK, out)
}
