package notify

import (
	"fmt"
	"strings"

	"github.com/marawan13001/zmarketfr-sub000/internal/checkout"
	"github.com/marawan13001/zmarketfr-sub000/internal/order"
)

func paymentLabel(m checkout.PaymentMethod) string {
	switch m {
	case checkout.PaymentCard:
		return "Carte à la livraison"
	case checkout.PaymentCash:
		return "Espèces à la livraison"
	case checkout.PaymentStripe:
		return "Carte bancaire (en ligne)"
	default:
		return string(m)
	}
}

func deliveryLabel(t checkout.DeliveryTime) string {
	switch t {
	case checkout.DeliveryASAP:
		return "Dès que possible"
	case checkout.DeliveryScheduled:
		return "Créneau programmé"
	default:
		return string(t)
	}
}

// Format renders the merchant-facing order summary sent on both channels.
func Format(o order.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Nouvelle commande #%s\n\n", o.ID)
	for _, it := range o.Items {
		fmt.Fprintf(&b, "%dx %s à %.2f €\n", it.Quantity, it.Name, it.Price)
	}
	fmt.Fprintf(&b, "\nTotal : %.2f €\n", o.Total)
	fmt.Fprintf(&b, "Paiement : %s\n", paymentLabel(o.PaymentMethod))
	fmt.Fprintf(&b, "Livraison : %s\n\n", deliveryLabel(o.DeliveryTime))
	fmt.Fprintf(&b, "Client :\n%s\n%s\n%s\n", o.Customer.Address, o.Customer.Phone, o.Customer.Email)

	return b.String()
}
