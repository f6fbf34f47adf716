package contact

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kushtati/kushtati-immo/internal/contact"
	"github.com/kushtati/kushtati-immo/internal/http/respond"
)

type Handler struct {
	svc *contact.Service
}

func NewHandler(svc *contact.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.submit)
}

type submitRequest struct {
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Phone   string          `json:"phone"`
	Subject contact.Subject `json:"subject"`
	Message string          `json:"message"`
}

type submitResponse struct {
	ID      uuid.UUID `json:"id"`
	Message string    `json:"message"`
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	lead, err := h.svc.Submit(r.Context(), contact.Params{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		if errors.Is(err, contact.ErrInvalid) {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		slog.Error("failed to save contact request", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	slog.Info("contact request received", "id", lead.ID, "subject", lead.Subject)

	respond.JSON(w, http.StatusCreated, submitResponse{
		ID:      lead.ID,
		Message: "Merci pour votre message ! Nous vous contacterons bientôt.",
	})
}
