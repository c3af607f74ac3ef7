package engine

import "github.com/yeremiapane/smart-pos/models"

func lineIndex(cart []models.OrderLine, productID string) int {
	for i, l := range cart {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}

// addToCart increments an existing line while it stays within stock, or
// starts a new line for an in-stock product.
func (e *Engine) addToCart(s models.Snapshot, in AddToCart) (models.Snapshot, bool) {
	product, ok := s.FindProduct(in.ProductID)
	if !ok {
		return s, false
	}

	if i := lineIndex(s.Cart, product.ID); i >= 0 {
		if s.Cart[i].Quantity >= product.Stock {
			return s, false
		}
		next := s.Clone()
		next.Cart[i].Quantity++
		return next, true
	}

	if product.Stock <= 0 {
		return s, false
	}
	next := s.Clone()
	next.Cart = append(next.Cart, models.OrderLine{Product: product, Quantity: 1})
	return next, true
}

func (e *Engine) removeFromCart(s models.Snapshot, in RemoveFromCart) (models.Snapshot, bool) {
	i := lineIndex(s.Cart, in.ProductID)
	if i < 0 {
		return s, false
	}
	next := s.Clone()
	next.Cart = append(next.Cart[:i], next.Cart[i+1:]...)
	return next, true
}

// setQuantity clamps against the live catalog stock, not the line's own
// product snapshot. A clamp that lands on zero removes the line.
func (e *Engine) setQuantity(s models.Snapshot, in SetQuantity) (models.Snapshot, bool) {
	if in.Quantity <= 0 {
		return e.removeFromCart(s, RemoveFromCart{ProductID: in.ProductID})
	}

	product, ok := s.FindProduct(in.ProductID)
	if !ok {
		return s, false
	}
	i := lineIndex(s.Cart, in.ProductID)
	if i < 0 {
		return s, false
	}

	qty := min(in.Quantity, product.Stock)
	if qty <= 0 {
		return e.removeFromCart(s, RemoveFromCart{ProductID: in.ProductID})
	}
	if qty == s.Cart[i].Quantity {
		return s, false
	}
	next := s.Clone()
	next.Cart[i].Quantity = qty
	return next, true
}

func (e *Engine) clearCart(s models.Snapshot) (models.Snapshot, bool) {
	if len(s.Cart) == 0 {
		return s, false
	}
	next := s.Clone()
	next.Cart = []models.OrderLine{}
	return next, true
}
