package listings

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kushtati/kushtati-immo/internal/format"
	authmw "github.com/kushtati/kushtati-immo/internal/http/middleware"
	"github.com/kushtati/kushtati-immo/internal/http/respond"
	"github.com/kushtati/kushtati-immo/internal/listing"
)

type Handler struct {
	svc *listing.Service
}

func NewHandler(svc *listing.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes are open to anonymous visitors.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
}

// OwnerRoutes must be mounted behind authentication when it is enabled.
func (h *Handler) OwnerRoutes(r chi.Router) {
	r.Post("/", h.create)
}

type listingResponse struct {
	ID          uuid.UUID      `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Price       int64          `json:"price"`
	PriceLabel  string         `json:"price_label"`
	Location    string         `json:"location"`
	Beds        int            `json:"beds"`
	Baths       int            `json:"baths"`
	Area        int            `json:"sqft"`
	Kind        listing.Kind   `json:"kind"`
	Type        listing.Type   `json:"type"`
	TypeLabel   string         `json:"type_label"`
	Status      listing.Status `json:"status"`
	ImageURL    string         `json:"image_url,omitempty"`
	Featured    bool           `json:"featured"`
}

func toResponse(l *listing.Listing) listingResponse {
	return listingResponse{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Price:       l.Price,
		PriceLabel:  format.Amount(l.Price),
		Location:    l.Location,
		Beds:        l.Beds,
		Baths:       l.Baths,
		Area:        l.Area,
		Kind:        l.Kind,
		Type:        l.Type,
		TypeLabel:   l.Type.Label(),
		Status:      l.Status,
		ImageURL:    l.ImageURL,
		Featured:    l.Featured,
	}
}

type listResponse struct {
	Properties []listingResponse `json:"properties"`
	Count      int               `json:"count"`
}

func parseFilter(r *http.Request) (listing.Filter, error) {
	q := r.URL.Query()

	t, err := listing.ParseType(q.Get("type"))
	if err != nil {
		return listing.Filter{}, err
	}

	band, err := listing.ParsePriceBand(q.Get("price"))
	if err != nil {
		return listing.Filter{}, err
	}

	f := listing.Filter{Type: t, Location: q.Get("location"), Price: band}

	if beds := q.Get("beds"); beds != "" {
		n, err := strconv.Atoi(beds)
		if err != nil || n < 0 {
			return listing.Filter{}, errors.New("beds must be a non-negative integer")
		}

		f.MinBeds = n
	}

	return f, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	found, err := h.svc.List(r.Context(), f)
	if err != nil {
		slog.Error("failed to list properties", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	resp := listResponse{Properties: make([]listingResponse, 0, len(found)), Count: len(found)}
	for _, l := range found {
		resp.Properties = append(resp.Properties, toResponse(l))
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	l, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, listing.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "property not found")
			return
		}

		slog.Error("failed to get property", "id", id, "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(l))
}

type createRequest struct {
	Title       string       `json:"title" validate:"required"`
	Description string       `json:"description" validate:"required"`
	Location    string       `json:"location" validate:"required"`
	Kind        listing.Kind `json:"kind" validate:"required"`
	Type        listing.Type `json:"type" validate:"required"`
	Price       int64        `json:"price"`
	Beds        int          `json:"beds"`
	Baths       int          `json:"baths"`
	Area        int          `json:"sqft"`
	ImageURL    string       `json:"image_url"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	owner, _ := authmw.Subject(r.Context())

	created, err := h.svc.Create(r.Context(), listing.CreateParams{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Kind:        req.Kind,
		Type:        req.Type,
		Price:       req.Price,
		Beds:        req.Beds,
		Baths:       req.Baths,
		Area:        req.Area,
		ImageURL:    req.ImageURL,
		Owner:       owner,
	})
	if err != nil {
		if errors.Is(err, listing.ErrInvalid) {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		slog.Error("failed to create property", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	slog.Info("property published", "id", created.ID, "owner", owner)

	respond.JSON(w, http.StatusCreated, toResponse(created))
}
