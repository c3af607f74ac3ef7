// Package engine holds the point-of-sale state machine: a pure transition
// function over models.Snapshot plus the projections derived from it.
//
// Every transition is total. Intents that fail a precondition, reference an
// unknown id or are not permitted for the signed-in role leave the snapshot
// unchanged; nothing in this package returns an error or performs I/O.
package engine

import (
	"time"

	"github.com/yeremiapane/smart-pos/models"
)

// IDSource hands out identifiers for new orders, products and users.
type IDSource interface {
	NewID(prefix string) string
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source used to stamp new orders.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithIDSource replaces the default UUID based identifiers.
func WithIDSource(ids IDSource) Option {
	return func(e *Engine) {
		if ids != nil {
			e.ids = ids
		}
	}
}

// WithStrictTransitions enables the forward-only order status graph and
// refuses checkouts whose lines exceed live stock.
func WithStrictTransitions(strict bool) Option {
	return func(e *Engine) {
		e.strict = strict
	}
}

// WithCheckoutStatus sets the status given to orders created by Checkout.
// Only New and Paid are accepted.
func WithCheckoutStatus(status models.OrderStatus) Option {
	return func(e *Engine) {
		if status == models.OrderStatusNew || status == models.OrderStatusPaid {
			e.checkoutStatus = status
		}
	}
}

// Engine applies intents to snapshots. It keeps no business state of its
// own; callers own the current snapshot.
type Engine struct {
	clock          func() time.Time
	ids            IDSource
	strict         bool
	checkoutStatus models.OrderStatus
}

// maxIDAttempts bounds the retries when a generated id collides.
const maxIDAttempts = 8

func New(opts ...Option) *Engine {
	e := &Engine{
		clock:          time.Now,
		ids:            UUIDSource{},
		checkoutStatus: models.OrderStatusPaid,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Strict reports whether the forward-only status graph is enforced.
func (e *Engine) Strict() bool { return e.strict }

// CheckoutStatus is the status new orders start in.
func (e *Engine) CheckoutStatus() models.OrderStatus { return e.checkoutStatus }

// Transition returns the snapshot that results from applying in to s.
func (e *Engine) Transition(s models.Snapshot, in Intent) models.Snapshot {
	next, _ := e.Apply(s, in)
	return next
}

// Apply is Transition that also reports whether the intent took effect.
// When applied is false the returned snapshot is s itself.
func (e *Engine) Apply(s models.Snapshot, in Intent) (next models.Snapshot, applied bool) {
	if in == nil {
		return s, false
	}
	defer func() {
		if r := recover(); r != nil {
			next, applied = s, false
		}
	}()

	if !Permitted(s.CurrentUser, in.Kind()) {
		return s, false
	}

	switch in := in.(type) {
	case Authenticate:
		return e.authenticate(s, in)
	case SignOut:
		return e.signOut(s)
	case AddToCart:
		return e.addToCart(s, in)
	case RemoveFromCart:
		return e.removeFromCart(s, in)
	case SetQuantity:
		return e.setQuantity(s, in)
	case ClearCart:
		return e.clearCart(s)
	case Checkout:
		return e.checkout(s, in)
	case AdvanceOrderStatus:
		return e.advanceOrderStatus(s, in)
	case CreateProduct:
		return e.createProduct(s, in)
	case UpdateProduct:
		return e.updateProduct(s, in)
	case DeleteProduct:
		return e.deleteProduct(s, in)
	case ReplaceSettings:
		return e.replaceSettings(s, in)
	case CreateUser:
		return e.createUser(s, in)
	case DeleteUser:
		return e.deleteUser(s, in)
	}
	return s, false
}

// newID asks the id source for a fresh identifier that taken does not
// already contain.
func (e *Engine) newID(prefix string, taken func(string) bool) (string, bool) {
	for i := 0; i < maxIDAttempts; i++ {
		id := e.ids.NewID(prefix)
		if id != "" && !taken(id) {
			return id, true
		}
	}
	return "", false
}
