package order

import (
	"math/rand"
	"strconv"

	"github.com/marawan13001/zmarketfr-sub000/internal/cart"
	"github.com/marawan13001/zmarketfr-sub000/internal/checkout"
)

// Line is the merchant-facing view of one cart line.
type Line struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type Customer struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Order is the finalized summary of a confirmed purchase. It exists only to
// be handed to notification and echoed in the acknowledgment; it is never
// persisted.
type Order struct {
	ID            string                 `json:"orderId"`
	Items         []Line                 `json:"items"`
	Customer      Customer               `json:"customerInfo"`
	PaymentMethod checkout.PaymentMethod `json:"paymentMethod"`
	DeliveryTime  checkout.DeliveryTime  `json:"deliveryTime"`
	Total         float64                `json:"total"`
}

// NewID draws a uniform 5-digit numeric order id in [10000, 99999]. There
// is no dedup against prior orders; collisions are possible and accepted.
func NewID() string {
	return strconv.Itoa(10000 + rand.Intn(90000))
}

// Assemble builds the order record from the current cart and the collected
// delivery and payment fields.
func Assemble(s checkout.Session, items []cart.Item) Order {
	o := Order{
		ID: NewID(),
		Customer: Customer{
			Email:   s.Delivery.Email,
			Phone:   s.Delivery.Phone,
			Address: s.Delivery.Address,
		},
		PaymentMethod: s.PaymentMethod,
		DeliveryTime:  s.DeliveryTime,
		Total:         cart.ComputeTotals(items).Total,
	}
	for _, it := range items {
		o.Items = append(o.Items, Line{Name: it.Name, Quantity: it.Quantity, Price: it.Price})
	}
	return o
}
