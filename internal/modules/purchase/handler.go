package purchase

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Handler exposes purchase-order HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/stores/{store_id}/purchase-orders", func(r chi.Router) {
		r.Post("/", h.create)                          // POST   .../purchase-orders
		r.Get("/", h.list)                             // GET    .../purchase-orders?page=&search=...
		r.Get("/total", h.total)                       // GET    .../purchase-orders/total?date_from=&date_to=
		r.Get("/supplier/{supplier_id}", h.bySupplier) // GET    .../purchase-orders/supplier/{supplier_id}
		r.Get("/{id}", h.get)                          // GET    .../purchase-orders/{id}
		r.Put("/{id}", h.update)                       // PUT    .../purchase-orders/{id}
		r.Delete("/{id}", h.delete)                    // DELETE .../purchase-orders/{id}
		r.Get("/{id}/can-delete", h.canDelete)         // GET    .../purchase-orders/{id}/can-delete
		r.Get("/{id}/items", h.items)                  // GET    .../purchase-orders/{id}/items
		r.Get("/{id}/lots", h.lots)                    // GET    .../purchase-orders/{id}/lots
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	storeID, ok := pathUUID(w, r, "store_id")
	if !ok {
		return
	}
	var input OrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond(w, http.StatusBadRequest, errorBody(err))
		return
	}
	order, err := h.service.Create(r.Context(), storeID, input)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, order)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	storeID, ok := pathUUID(w, r, "store_id")
	if !ok {
		return
	}
	orderID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	order, err := h.service.Get(r.Context(), storeID, orderID)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, order)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	storeID, ok := pathUUID(w, r, "store_id")
	if !ok {
		return
	}
	q := r.URL.Query()
	filter := ListFilter{
		OrderBy:        q.Get("order_by"),
		OrderDirection: q.Get("order_direction"),
		Search:         q.Get("search"),
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.PageSize, _ = strconv.Atoi(q.Get("page_size"))
	if v := q.Get("supplier_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			respond(w, http.StatusBadRequest, errorBody(err))
			return
		}
		filter.SupplierID = &id
	}
	var err error
	if filter.DateFrom, err = queryDate(q.Get("date_from")); err != nil {
		respond(w, http.StatusBadRequest, errorBody(err))
		return
	}
	if filter.DateTo, err = queryDate(q.Get("date_to")); err != nil {
		respond(w, http.StatusBadRequest, errorBody(err))
		return
	}

	page, err := h.service.List(r.Context(), storeID, filter)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, page)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	storeID, ok := pathUUID(w, r, "store_id")
	if !ok {
		return
	}
	orderID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var input OrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond(w, http.StatusBadRequest, errorBody(err))
		return
	}
	order, err := h.service.Update(r.Context(), storeID, orderID, input)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, order)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	storeID, ok := pathUUID(w, r, "store_id")
	if !ok {
		return
	}
	orderID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), storeID, orderID); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handler) canDelete(w http.ResponseWriter, r *http.Request) {
	storeID, ok := pathUUID(w, r, "store_id")
	if !ok {
		return
	}
	orderID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	can, err := h.service.CanDelete(r.Context(), storeID, orderID)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]bool{"can_delete": can})
}

func (h *Handler) items(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	items, err := h.service.Items(r.Context(), orderID)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, items)
}

func (h *Handler) lots(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	lots, err := h.service.Lots(r.Context(), orderID)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, lots)
}

func (h *Handler) bySupplier(w http.ResponseWriter, r *http.Request) {
	storeID, ok := pathUUID(w, r, "store_id")
	if !ok {
		return
	}
	supplierID, ok := pathUUID(w, r, "supplier_id")
	if !ok {
		return
	}
	orders, err := h.service.BySupplier(r.Context(), storeID, supplierID)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) total(w http.ResponseWriter, r *http.Request) {
	storeID, ok := pathUUID(w, r, "store_id")
	if !ok {
		return
	}
	q := r.URL.Query()
	dateFrom, err := queryDate(q.Get("date_from"))
	if err != nil {
		respond(w, http.StatusBadRequest, errorBody(err))
		return
	}
	dateTo, err := queryDate(q.Get("date_to"))
	if err != nil {
		respond(w, http.StatusBadRequest, errorBody(err))
		return
	}
	total, err := h.service.TotalAmount(r.Context(), storeID, dateFrom, dateTo)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"total_amount": total})
}

// ── helpers ──────────────────────────────────────────────────────────────────

func pathUUID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}

func queryDate(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond(w, http.StatusNotFound, errorBody(err))
	case errors.Is(err, ErrInventoryInUse), errors.Is(err, ErrInvalidInput):
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
