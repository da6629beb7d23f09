package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Deps struct {
	Stock    *StockHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Me       *MeHandler
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/stock/{productId}", d.Stock.GetAvailability)
		r.Post("/admin/stock/adjust", d.Stock.Adjust)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", d.Cart.GetCart)
			r.Post("/items", d.Cart.AddItem)
			r.Put("/items/{itemId}", d.Cart.UpdateQuantity)
			r.Delete("/items/{itemId}", d.Cart.RemoveItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", d.Checkout.GetCheckout)
			r.Put("/", d.Checkout.UpdateCheckout)
			r.Post("/next", d.Checkout.Next)
			r.Post("/stripe", d.Checkout.StripePay)
		})

		r.Get("/me", d.Me.Me)
	})

	return r
}

func health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
