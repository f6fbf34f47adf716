package advisor

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kushtati/kushtati-immo/internal/advisor"
	"github.com/kushtati/kushtati-immo/internal/http/respond"
)

type Handler struct {
	svc *advisor.Service
}

func NewHandler(svc *advisor.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/chat", h.chat)
}

type turn struct {
	Role string `json:"role" validate:"required,oneof=user model assistant"`
	Text string `json:"text" validate:"max=4000"`
}

type chatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
	History []turn `json:"history" validate:"max=50,dive"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func (h *Handler) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	history := make([]advisor.Turn, 0, len(req.History))
	for _, t := range req.History {
		history = append(history, advisor.Turn{Role: advisor.Role(t.Role), Text: t.Text})
	}

	respond.JSON(w, http.StatusOK, chatResponse{Reply: h.svc.Advise(r.Context(), req.Message, history)})
}
