package engine

import "github.com/yeremiapane/smart-pos/models"

// forwardEdges is the intended order workflow. Served and Cancelled are
// terminal.
var forwardEdges = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusNew:       {models.OrderStatusPreparing, models.OrderStatusPaid, models.OrderStatusCancelled},
	models.OrderStatusPaid:      {models.OrderStatusPreparing, models.OrderStatusServed, models.OrderStatusCancelled},
	models.OrderStatusPreparing: {models.OrderStatusReady, models.OrderStatusCancelled},
	models.OrderStatusReady:     {models.OrderStatusServed, models.OrderStatusCancelled},
}

// CanTransition reports whether from -> to is an edge of the forward
// workflow.
func CanTransition(from, to models.OrderStatus) bool {
	for _, next := range forwardEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further status change is expected.
func IsTerminal(status models.OrderStatus) bool {
	return status == models.OrderStatusServed || status == models.OrderStatusCancelled
}

// advanceOrderStatus overwrites the status of an existing order. In the
// default permissive mode any known status may be assigned.
func (e *Engine) advanceOrderStatus(s models.Snapshot, in AdvanceOrderStatus) (models.Snapshot, bool) {
	if !in.Status.Valid() {
		return s, false
	}
	for i, o := range s.Orders {
		if o.ID != in.OrderID {
			continue
		}
		if o.Status == in.Status {
			return s, false
		}
		if e.strict && !CanTransition(o.Status, in.Status) {
			return s, false
		}
		next := s.Clone()
		next.Orders[i].Status = in.Status
		return next, true
	}
	return s, false
}
