package maintenance

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kushtati/kushtati-immo/internal/format"
	"github.com/kushtati/kushtati-immo/internal/http/respond"
	"github.com/kushtati/kushtati-immo/internal/maintenance"
)

type Handler struct {
	svc *maintenance.Service
}

func NewHandler(svc *maintenance.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Patch("/{id}/status", h.updateStatus)
}

type requestResponse struct {
	ID          uuid.UUID            `json:"id"`
	PropertyID  string               `json:"property_id,omitempty"`
	Property    string               `json:"property,omitempty"`
	Type        string               `json:"type,omitempty"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Priority    maintenance.Priority `json:"priority"`
	Status      maintenance.Status   `json:"status"`
	StatusLabel string               `json:"status_label"`
	Date        string               `json:"date"`
	Cost        int64                `json:"cost,omitempty"`
}

func toResponse(r *maintenance.Request) requestResponse {
	return requestResponse{
		ID:          r.ID,
		PropertyID:  r.PropertyID,
		Property:    r.Property,
		Type:        r.Type,
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Status:      r.Status,
		StatusLabel: r.Status.Label(),
		Date:        r.Date.Format(time.DateOnly),
		Cost:        r.Cost,
	}
}

type listResponse struct {
	Requests       []requestResponse `json:"requests"`
	Pending        int               `json:"pending"`
	TotalCost      int64             `json:"total_cost"`
	TotalCostLabel string            `json:"total_cost_label"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	requests, err := h.svc.List(r.Context())
	if err != nil {
		slog.Error("failed to list maintenance requests", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	resp := listResponse{Requests: make([]requestResponse, 0, len(requests))}

	for _, req := range requests {
		resp.Requests = append(resp.Requests, toResponse(req))

		if req.Open() {
			resp.Pending++
		}
	}

	resp.TotalCost = maintenance.Total(requests)
	resp.TotalCostLabel = format.Amount(resp.TotalCost)

	respond.JSON(w, http.StatusOK, resp)
}

type createRequest struct {
	PropertyID  string               `json:"property_id"`
	Property    string               `json:"property"`
	Type        string               `json:"type"`
	Title       string               `json:"title" validate:"required"`
	Description string               `json:"description"`
	Priority    maintenance.Priority `json:"priority" validate:"required"`
	Cost        int64                `json:"cost"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.svc.Create(r.Context(), maintenance.CreateParams{
		PropertyID:  req.PropertyID,
		Property:    req.Property,
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Cost:        req.Cost,
	})
	if err != nil {
		if errors.Is(err, maintenance.ErrInvalid) {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		slog.Error("failed to create maintenance request", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(created))
}

type updateStatusRequest struct {
	Status maintenance.Status `json:"status" validate:"required"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req updateStatusRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.svc.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, maintenance.ErrNotFound):
			respond.Error(w, http.StatusNotFound, "maintenance request not found")
		case errors.Is(err, maintenance.ErrInvalid):
			respond.Error(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("failed to update maintenance status", "id", id, "error", err)
			respond.Error(w, http.StatusInternalServerError, "internal error")
		}

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(updated))
}
