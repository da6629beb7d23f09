package order

import (
	"strconv"
	"testing"

	"github.com/marawan13001/zmarketfr-sub000/internal/cart"
	"github.com/marawan13001/zmarketfr-sub000/internal/checkout"
)

func TestNewIDRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		id := NewID()
		if len(id) != 5 {
			t.Fatalf("id %q is not 5 characters", id)
		}
		n, err := strconv.Atoi(id)
		if err != nil {
			t.Fatalf("id %q is not numeric: %v", id, err)
		}
		if n < 10000 || n > 99999 {
			t.Fatalf("id %d out of range", n)
		}
	}
}

func TestAssemble(t *testing.T) {
	s := checkout.NewSession("sess-1")
	s.Step = checkout.StepPayment
	s.Delivery = checkout.Delivery{
		Address: "12 rue des Oliviers, Lille",
		Phone:   "+33612345678",
		Email:   "client@example.com",
	}
	s.PaymentMethod = checkout.PaymentCash
	s.DeliveryTime = checkout.DeliveryASAP

	items := []cart.Item{
		{ID: 1, Name: "Tajine", Price: 6.5, Quantity: 2, InStock: true},
	}

	o := Assemble(s, items)

	if len(o.ID) != 5 {
		t.Fatalf("unexpected order id %q", o.ID)
	}
	if len(o.Items) != 1 || o.Items[0].Name != "Tajine" || o.Items[0].Quantity != 2 || o.Items[0].Price != 6.5 {
		t.Fatalf("unexpected items: %+v", o.Items)
	}
	if o.Customer.Email != "client@example.com" || o.Customer.Phone != "+33612345678" {
		t.Fatalf("unexpected customer: %+v", o.Customer)
	}
	if o.PaymentMethod != checkout.PaymentCash || o.DeliveryTime != checkout.DeliveryASAP {
		t.Fatalf("unexpected payment fields: %+v", o)
	}
	// 13.00 subtotal plus 15.00 delivery fee.
	if o.Total != 28 {
		t.Fatalf("total = %v, want 28", o.Total)
	}
}
