package cart

// Delivery pricing. Orders at or above the threshold ship free.
const (
	FreeDeliveryThreshold = 50.0
	StandardDeliveryFee   = 15.0
)

type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"deliveryFee"`
	Total       float64 `json:"total"`
}

// ComputeTotals is pure; totals are derived on demand and never stored.
func ComputeTotals(items []Item) Totals {
	var subtotal float64
	for _, it := range items {
		subtotal += it.Price * float64(it.Quantity)
	}

	fee := StandardDeliveryFee
	if subtotal >= FreeDeliveryThreshold {
		fee = 0
	}
	return Totals{Subtotal: subtotal, DeliveryFee: fee, Total: subtotal + fee}
}
