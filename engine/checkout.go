package engine

import "github.com/yeremiapane/smart-pos/models"

// checkout turns the snapshot's cart into a ledger entry and decrements
// stock by each ordered quantity, never below zero. The cart itself is left untouched; the
// caller issues ClearCart once the receipt has been handed over.
func (e *Engine) checkout(s models.Snapshot, in Checkout) (models.Snapshot, bool) {
	if len(s.Cart) == 0 || s.CurrentUser == nil || !in.PaymentMethod.Valid() {
		return s, false
	}
	if e.strict && !withinStock(s) {
		return s, false
	}

	quote := PriceLines(s.Cart, s.Settings.TaxRate)
	if !CanSettle(in.PaymentMethod, in.ReceivedAmount, quote.Total) {
		return s, false
	}

	id, ok := e.newID("ORD", func(id string) bool {
		_, exists := s.FindOrder(id)
		return exists
	})
	if !ok {
		return s, false
	}

	next := s.Clone()
	order := models.Order{
		ID:            id,
		Lines:         append([]models.OrderLine(nil), s.Cart...),
		Subtotal:      quote.Subtotal,
		Tax:           quote.Tax,
		TaxRate:       s.Settings.TaxRate,
		Total:         quote.Total,
		PaymentMethod: in.PaymentMethod,
		CashierID:     s.CurrentUser.ID,
		CreatedAt:     e.clock(),
		TotalPrepTime: quote.TotalPrepTime,
		Status:        e.checkoutStatus,
	}
	if in.PaymentMethod == models.PaymentMethodCash {
		received := *in.ReceivedAmount
		order.ReceivedAmount = &received
		order.Change = Change(received, quote.Total)
	}

	ordered := make(map[string]int, len(order.Lines))
	for _, l := range order.Lines {
		ordered[l.Product.ID] += l.Quantity
	}
	for i := range next.Products {
		if qty, ok := ordered[next.Products[i].ID]; ok {
			next.Products[i].Stock = max(0, next.Products[i].Stock-qty)
		}
	}

	next.Orders = append(next.Orders, order)
	return next, true
}

// withinStock reports whether every cart line is still covered by the live
// catalog.
func withinStock(s models.Snapshot) bool {
	for _, l := range s.Cart {
		p, ok := s.FindProduct(l.Product.ID)
		if !ok || l.Quantity > p.Stock {
			return false
		}
	}
	return true
}
