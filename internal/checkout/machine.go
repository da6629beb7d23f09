package checkout

import (
	"errors"

	"github.com/marawan13001/zmarketfr-sub000/internal/cart"
)

// Guard errors, surfaced to the customer as recoverable validation toasts.
var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrOutOfStockItems  = errors.New("remove out-of-stock items before continuing")
	ErrMissingAddress   = errors.New("delivery address is required")
	ErrMissingPhone     = errors.New("phone number is required")
	ErrMissingEmail     = errors.New("email is required")
	ErrPaymentInFlight  = errors.New("payment already in progress")
	ErrStripeSubmitOnly = errors.New("stripe payments are confirmed by the payment form")
)

// Disposition tells the caller what Advance decided.
type Disposition int

const (
	// Advanced means the session moved exactly one step forward.
	Advanced Disposition = iota
	// Confirm means the session is at the payment step with a directly
	// confirmable method (card or cash); the caller triggers order
	// confirmation.
	Confirm
)

// Advance is the transition function of the checkout flow. Guards are
// checked in a fixed precedence order and the first violated one wins; on
// failure the returned session equals the input.
func Advance(s Session, items []cart.Item) (Session, Disposition, error) {
	if s.InFlight {
		return s, Advanced, ErrPaymentInFlight
	}

	switch s.Step {
	case StepCart:
		if len(items) == 0 {
			return s, Advanced, ErrEmptyCart
		}
		if anyOutOfStock(items) {
			return s, Advanced, ErrOutOfStockItems
		}
		s.Step = StepDelivery
		return s, Advanced, nil

	case StepDelivery:
		if s.Delivery.Address == "" {
			return s, Advanced, ErrMissingAddress
		}
		if s.Delivery.Phone == "" {
			return s, Advanced, ErrMissingPhone
		}
		if s.Delivery.Email == "" {
			return s, Advanced, ErrMissingEmail
		}
		s.Step = StepPayment
		return s, Advanced, nil

	case StepPayment:
		if s.PaymentMethod == PaymentStripe {
			return s, Advanced, ErrStripeSubmitOnly
		}
		return s, Confirm, nil

	default:
		return s, Advanced, errors.New("unknown checkout step")
	}
}

// NextEnabled reports whether the generic next action is available at all,
// as opposed to merely guarded. It is off while any line is out of stock,
// while a payment is in flight, and at the payment step under stripe where
// the embedded form's submit is the only path forward.
func NextEnabled(s Session, items []cart.Item) bool {
	if anyOutOfStock(items) {
		return false
	}
	if s.InFlight {
		return false
	}
	if s.Step == StepPayment && s.PaymentMethod == PaymentStripe {
		return false
	}
	return true
}

func anyOutOfStock(items []cart.Item) bool {
	for _, it := range items {
		if !it.InStock {
			return true
		}
	}
	return false
}
