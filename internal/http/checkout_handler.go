package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/marawan13001/zmarketfr-sub000/internal/cart"
	"github.com/marawan13001/zmarketfr-sub000/internal/checkout"
	"github.com/marawan13001/zmarketfr-sub000/internal/order"
	"github.com/marawan13001/zmarketfr-sub000/internal/stock"
	"github.com/marawan13001/zmarketfr-sub000/internal/storage"
)

type CheckoutHandler struct {
	storage   storage.Store
	registry  *stock.Registry
	sessions  *checkout.Manager
	processor *order.Processor
}

func NewCheckoutHandler(st storage.Store, registry *stock.Registry, sessions *checkout.Manager, processor *order.Processor) *CheckoutHandler {
	return &CheckoutHandler{storage: st, registry: registry, sessions: sessions, processor: processor}
}

func (h *CheckoutHandler) cartStore(id string) *cart.Store {
	return cart.NewStore(id, h.storage, h.registry)
}

type checkoutResponse struct {
	Session     checkout.Session `json:"session"`
	NextEnabled bool             `json:"nextEnabled"`
}

func (h *CheckoutHandler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	id := sessionID(w, r)
	sess := h.sessions.Get(id).Snapshot()

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	items, err := h.cartStore(id).Reconcile(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}
	writeJSON(w, http.StatusOK, checkoutResponse{
		Session:     sess,
		NextEnabled: checkout.NextEnabled(sess, items),
	})
}

type updateCheckoutRequest struct {
	Address       *string `json:"address"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	PaymentMethod *string `json:"paymentMethod"`
	DeliveryTime  *string `json:"deliveryTime"`
}

// UpdateCheckout records delivery and payment inputs as the customer fills
// them in. Fields absent from the body are left untouched; invalid input
// applies nothing.
func (h *CheckoutHandler) UpdateCheckout(w http.ResponseWriter, r *http.Request) {
	id := sessionID(w, r)

	var req updateCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	var method checkout.PaymentMethod
	if req.PaymentMethod != nil {
		m, err := checkout.ParsePaymentMethod(*req.PaymentMethod)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		method = m
	}
	var window checkout.DeliveryTime
	if req.DeliveryTime != nil {
		t, err := checkout.ParseDeliveryTime(*req.DeliveryTime)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		window = t
	}

	var snap checkout.Session
	h.sessions.Get(id).Apply(func(s *checkout.Session) {
		if req.Address != nil {
			s.Delivery.Address = *req.Address
		}
		if req.Phone != nil {
			s.Delivery.Phone = *req.Phone
		}
		if req.Email != nil {
			s.Delivery.Email = *req.Email
		}
		if req.PaymentMethod != nil {
			s.PaymentMethod = method
		}
		if req.DeliveryTime != nil {
			s.DeliveryTime = window
		}
		snap = *s
	})

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	items, err := h.cartStore(id).Get(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}
	writeJSON(w, http.StatusOK, checkoutResponse{
		Session:     snap,
		NextEnabled: checkout.NextEnabled(snap, items),
	})
}

type confirmResponse struct {
	Order    order.Order `json:"order"`
	Redirect string      `json:"redirect"`
}

// Next drives the generic next action: advance one step, or confirm the
// order when the payment step is reached with a card or cash method.
func (h *CheckoutHandler) Next(w http.ResponseWriter, r *http.Request) {
	id := sessionID(w, r)
	sess := h.sessions.Get(id)
	store := h.cartStore(id)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	items, err := store.Reconcile(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}

	next, disp, err := checkout.Advance(sess.Snapshot(), items)
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	if disp == checkout.Confirm {
		o, err := h.processor.Confirm(r.Context(), sess, store)
		if err != nil {
			h.writeConfirmError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, confirmResponse{Order: o, Redirect: "/"})
		return
	}

	sess.Apply(func(s *checkout.Session) { *s = next })
	writeJSON(w, http.StatusOK, checkoutResponse{
		Session:     next,
		NextEnabled: checkout.NextEnabled(next, items),
	})
}

type stripeRequest struct {
	Card checkout.Card `json:"card"`
}

// StripePay is the embedded payment form's own submit, the only terminal
// action when the stripe method is selected.
func (h *CheckoutHandler) StripePay(w http.ResponseWriter, r *http.Request) {
	id := sessionID(w, r)
	sess := h.sessions.Get(id)

	if snap := sess.Snapshot(); snap.Step != checkout.StepPayment || snap.PaymentMethod != checkout.PaymentStripe {
		writeError(w, http.StatusConflict, "stripe form is not active")
		return
	}

	var req stripeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := req.Card.Validate(); err != nil {
		// Declined input re-enables the form; the cart is untouched.
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	o, err := h.processor.Confirm(r.Context(), sess, h.cartStore(id))
	if err != nil {
		h.writeConfirmError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, confirmResponse{Order: o, Redirect: "/"})
}

func (h *CheckoutHandler) writeConfirmError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, checkout.ErrPaymentInFlight):
		writeError(w, http.StatusConflict, "payment already in progress")
	case errors.Is(err, checkout.ErrEmptyCart):
		writeError(w, http.StatusConflict, "cart is empty")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// Client went away mid-processing; nothing was committed.
		writeError(w, http.StatusRequestTimeout, "confirmation aborted")
	default:
		writeError(w, http.StatusInternalServerError, "failed to confirm order")
	}
}
