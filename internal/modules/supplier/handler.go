package supplier

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Handler exposes supplier HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/stores/{store_id}/suppliers", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	storeID, ok := pathUUID(w, r, "store_id")
	if !ok {
		return
	}
	var input SupplierInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	sp, err := h.service.Create(r.Context(), storeID, input)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, sp)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	storeID, ok := pathUUID(w, r, "store_id")
	if !ok {
		return
	}
	suppliers, err := h.service.List(r.Context(), storeID, r.URL.Query().Get("search"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, suppliers)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	storeID, ok := pathUUID(w, r, "store_id")
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	sp, err := h.service.Get(r.Context(), storeID, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, sp)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	storeID, ok := pathUUID(w, r, "store_id")
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var input SupplierInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	sp, err := h.service.Update(r.Context(), storeID, id, input)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, sp)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	storeID, ok := pathUUID(w, r, "store_id")
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), storeID, id); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "supplier deleted"})
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
	if errors.Is(err, ErrNotFound) {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
