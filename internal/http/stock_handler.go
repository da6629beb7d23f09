package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/marawan13001/zmarketfr-sub000/internal/stock"
)

type StockHandler struct {
	registry *stock.Registry
}

func NewStockHandler(registry *stock.Registry) *StockHandler {
	return &StockHandler{registry: registry}
}

type availabilityResponse struct {
	ProductID int  `json:"productId"`
	Tracked   bool `json:"tracked"`
	InStock   bool `json:"inStock"`
	Quantity  int  `json:"quantity,omitempty"`
}

func (h *StockHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "productId"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	avail, tracked, err := h.registry.Lookup(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load stock")
		return
	}

	resp := availabilityResponse{ProductID: id, Tracked: tracked}
	if tracked {
		resp.InStock = avail.InStock
		resp.Quantity = avail.Quantity
	} else {
		// Untracked products are unlimited and in stock.
		resp.InStock = true
	}
	writeJSON(w, http.StatusOK, resp)
}

type adjustRequest struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	InStock  bool   `json:"inStock"`
	Quantity int    `json:"quantity"`
}

// Adjust is the admin upsert. The customer-facing flow never mutates stock.
func (h *StockHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	item, err := stock.NewItem(req.ID, req.Title, req.InStock, req.Quantity)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.registry.Adjust(ctx, item); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save stock")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
