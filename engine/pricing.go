package engine

import "github.com/yeremiapane/smart-pos/models"

// Amounts are plain float64 and never rounded here; rounding is a display
// concern.

func Subtotal(lines []models.OrderLine) float64 {
	var sum float64
	for _, l := range lines {
		sum += l.LineTotal()
	}
	return sum
}

// Tax applies a percentage rate to subtotal.
func Tax(subtotal, rate float64) float64 {
	return subtotal * (rate / 100)
}

func Total(subtotal, tax float64) float64 {
	return subtotal + tax
}

// Change is what the cashier hands back; never negative.
func Change(received, total float64) float64 {
	if received < total {
		return 0
	}
	return received - total
}

// TotalPrepTime sums prep minutes per unit across all lines.
func TotalPrepTime(lines []models.OrderLine) int {
	minutes := 0
	for _, l := range lines {
		minutes += l.Product.PrepTimeInMinutes * l.Quantity
	}
	return minutes
}

// CanSettle reports whether a payment may be confirmed. Cash must cover the
// total; every other method is always accepted.
func CanSettle(method models.PaymentMethod, received *float64, total float64) bool {
	if method != models.PaymentMethodCash {
		return true
	}
	return received != nil && *received >= total
}

// Quote is the priced view of a cart before checkout.
type Quote struct {
	Subtotal      float64 `json:"subtotal"`
	Tax           float64 `json:"tax"`
	Total         float64 `json:"total"`
	TotalPrepTime int     `json:"total_prep_time"`
	ItemCount     int     `json:"item_count"`
}

func PriceLines(lines []models.OrderLine, taxRate float64) Quote {
	subtotal := Subtotal(lines)
	tax := Tax(subtotal, taxRate)
	q := Quote{
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         Total(subtotal, tax),
		TotalPrepTime: TotalPrepTime(lines),
	}
	for _, l := range lines {
		q.ItemCount += l.Quantity
	}
	return q
}
