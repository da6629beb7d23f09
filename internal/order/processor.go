package order

import (
	"context"
	"log"
	"time"

	"github.com/marawan13001/zmarketfr-sub000/internal/cart"
	"github.com/marawan13001/zmarketfr-sub000/internal/checkout"
)

// Dispatcher sends the merchant-facing order summary. Delivery is best
// effort; a dispatch failure must never fail the order.
type Dispatcher interface {
	Notify(ctx context.Context, o Order) error
}

// Processor runs order confirmation: in-flight gating, a cancellable
// processing delay, notification dispatch, and cart teardown.
type Processor struct {
	delay      time.Duration
	dispatcher Dispatcher
	logger     *log.Logger
}

func NewProcessor(delay time.Duration, dispatcher Dispatcher, logger *log.Logger) *Processor {
	return &Processor{delay: delay, dispatcher: dispatcher, logger: logger}
}

// Confirm finalizes the session's purchase. Double submission is prevented
// only by the in-flight latch; there is no idempotency key. Cancelling ctx
// during the processing delay aborts cleanly: the cart stays intact, the
// latch is released, and nothing is dispatched.
func (p *Processor) Confirm(ctx context.Context, sess *checkout.Session, store *cart.Store) (Order, error) {
	// Take the latch before anything else so a concurrent submission is
	// rejected, not interleaved.
	if !sess.BeginPayment() {
		return Order{}, checkout.ErrPaymentInFlight
	}

	items, err := store.Get(ctx)
	if err != nil {
		sess.EndPayment(false)
		return Order{}, err
	}
	if len(items) == 0 {
		sess.EndPayment(false)
		return Order{}, checkout.ErrEmptyCart
	}

	o := Assemble(sess.Snapshot(), items)

	// Simulated processing window, cancellable by the caller's context.
	timer := time.NewTimer(p.delay)
	select {
	case <-ctx.Done():
		timer.Stop()
		sess.EndPayment(false)
		return Order{}, ctx.Err()
	case <-timer.C:
	}

	// Fire-and-forget on a detached context so the customer's redirect is
	// never held up by, or failed by, the notification transport.
	go func(o Order) {
		nctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := p.dispatcher.Notify(nctx, o); err != nil {
			p.logger.Printf("order %s: notify failed: %v", o.ID, err)
		}
	}(o)

	if err := store.Clear(ctx); err != nil {
		// The order is already confirmed from the customer's point of
		// view; log and keep going.
		p.logger.Printf("order %s: clear cart: %v", o.ID, err)
	}

	sess.EndPayment(true)

	p.logger.Printf("order %s confirmed: %d lines, total %.2f, %s/%s",
		o.ID, len(o.Items), o.Total, o.PaymentMethod, o.DeliveryTime)
	return o, nil
}
