package notify

import (
	"strings"
	"testing"

	"github.com/marawan13001/zmarketfr-sub000/internal/checkout"
	"github.com/marawan13001/zmarketfr-sub000/internal/order"
)

func sampleOrder() order.Order {
	return order.Order{
		ID: "12345",
		Items: []order.Line{
			{Name: "Tajine poulet", Quantity: 2, Price: 6.5},
			{Name: "Harira", Quantity: 1, Price: 4.5},
		},
		Customer: order.Customer{
			Email:   "client@example.com",
			Phone:   "+33612345678",
			Address: "12 rue des Oliviers, Lille",
		},
		PaymentMethod: checkout.PaymentCash,
		DeliveryTime:  checkout.DeliveryASAP,
		Total:         32.5,
	}
}

func TestFormat(t *testing.T) {
	got := Format(sampleOrder())

	for _, want := range []string{
		"Nouvelle commande #12345",
		"2x Tajine poulet à 6.50 €",
		"1x Harira à 4.50 €",
		"Total : 32.50 €",
		"Paiement : Espèces à la livraison",
		"Livraison : Dès que possible",
		"12 rue des Oliviers, Lille",
		"+33612345678",
		"client@example.com",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("formatted message missing %q:\n%s", want, got)
		}
	}
}

func TestFormatPaymentLabels(t *testing.T) {
	tests := map[checkout.PaymentMethod]string{
		checkout.PaymentCard:   "Carte à la livraison",
		checkout.PaymentCash:   "Espèces à la livraison",
		checkout.PaymentStripe: "Carte bancaire (en ligne)",
	}

	for method, label := range tests {
		o := sampleOrder()
		o.PaymentMethod = method
		if got := Format(o); !strings.Contains(got, label) {
			t.Fatalf("%s: missing label %q", method, label)
		}
	}
}
