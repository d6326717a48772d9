package sales

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Handler exposes sales HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/stores/{store_id}/sales", func(r chi.Router) {
		r.Post("/", h.checkout) // POST .../sales
		r.Get("/", h.list)      // GET  .../sales?page=&date_from=
		r.Get("/{id}", h.get)   // GET  .../sales/{id}
	})
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	storeID, ok := pathUUID(w, r, "store_id")
	if !ok {
		return
	}
	var input SaleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond(w, http.StatusBadRequest, errorBody(err))
		return
	}
	sale, err := h.service.Checkout(r.Context(), storeID, input)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, sale)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	storeID, ok := pathUUID(w, r, "store_id")
	if !ok {
		return
	}
	saleID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	sale, err := h.service.Get(r.Context(), storeID, saleID)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, sale)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	storeID, ok := pathUUID(w, r, "store_id")
	if !ok {
		return
	}
	q := r.URL.Query()
	filter := ListFilter{}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.PageSize, _ = strconv.Atoi(q.Get("page_size"))
	if v := q.Get("date_from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			respond(w, http.StatusBadRequest, errorBody(err))
			return
		}
		filter.DateFrom = &t
	}
	if v := q.Get("date_to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			respond(w, http.StatusBadRequest, errorBody(err))
			return
		}
		filter.DateTo = &t
	}
	page, err := h.service.List(r.Context(), storeID, filter)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, page)
}

func pathUUID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond(w, http.StatusNotFound, errorBody(err))
	case errors.Is(err, ErrInsufficientStock), errors.Is(err, ErrInvalidInput):
		respond(w, http.StatusBadRequest, errorBody(err))
	default:
		respond(w, http.StatusInternalServerError, errorBody(err))
	}
}

func errorBody(err error) map[string]string {
	return map[string]string{"error": err.Error()}
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
