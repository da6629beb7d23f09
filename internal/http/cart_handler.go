package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/marawan13001/zmarketfr-sub000/internal/cart"
	"github.com/marawan13001/zmarketfr-sub000/internal/stock"
	"github.com/marawan13001/zmarketfr-sub000/internal/storage"
)

type CartHandler struct {
	storage  storage.Store
	registry *stock.Registry
}

func NewCartHandler(st storage.Store, registry *stock.Registry) *CartHandler {
	return &CartHandler{storage: st, registry: registry}
}

func (h *CartHandler) store(w http.ResponseWriter, r *http.Request) *cart.Store {
	return cart.NewStore(sessionID(w, r), h.storage, h.registry)
}

type cartResponse struct {
	Items []cart.Item `json:"items"`
	cart.Totals
}

func respondCart(w http.ResponseWriter, items []cart.Item) {
	if items == nil {
		items = []cart.Item{}
	}
	writeJSON(w, http.StatusOK, cartResponse{Items: items, Totals: cart.ComputeTotals(items)})
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	// Refresh inStock flags so the client always renders against the
	// current registry snapshot.
	items, err := h.store(w, r).Reconcile(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}
	respondCart(w, items)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var p cart.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if p.ID <= 0 || p.Price < 0 {
		writeError(w, http.StatusBadRequest, "invalid product")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	items, err := h.store(w, r).AddItem(ctx, p)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrMaxAvailable):
			writeError(w, http.StatusConflict, "maximum available quantity reached")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update cart")
		}
		return
	}
	respondCart(w, items)
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "itemId"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	items, err := h.store(w, r).UpdateQuantity(ctx, id, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrItemNotFound):
			writeError(w, http.StatusNotFound, "item not in cart")
		case errors.Is(err, cart.ErrInsufficientStock):
			writeError(w, http.StatusConflict, "insufficient stock")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update cart")
		}
		return
	}
	respondCart(w, items)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "itemId"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	items, err := h.store(w, r).RemoveItem(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update cart")
		return
	}
	respondCart(w, items)
}
