package engine

import "github.com/yeremiapane/smart-pos/models"

var cartIntents = []IntentKind{
	KindAddToCart,
	KindRemoveFromCart,
	KindSetQuantity,
	KindClearCart,
	KindCheckout,
}

// cashierIntents adds status changes so a cashier can settle orders left
// New at checkout.
var cashierIntents = append(append([]IntentKind(nil), cartIntents...), KindAdvanceOrderStatus)

var adminIntents = []IntentKind{
	KindAddToCart,
	KindRemoveFromCart,
	KindSetQuantity,
	KindClearCart,
	KindCheckout,
	KindAdvanceOrderStatus,
	KindCreateProduct,
	KindUpdateProduct,
	KindDeleteProduct,
	KindReplaceSettings,
	KindCreateUser,
	KindDeleteUser,
}

// AllowedIntents is the capability set of a role. Authenticate and SignOut
// are open to everyone and are not listed.
func AllowedIntents(role models.UserRole) map[IntentKind]bool {
	var kinds []IntentKind
	switch role {
	case models.RoleAdmin:
		kinds = adminIntents
	case models.RoleCashier:
		kinds = cashierIntents
	case models.RoleKitchen, models.RoleServer:
		kinds = []IntentKind{KindAdvanceOrderStatus}
	}
	set := make(map[IntentKind]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return set
}

// Permitted decides whether user may apply an intent of the given kind.
// A nil user may only authenticate or sign out.
func Permitted(user *models.User, kind IntentKind) bool {
	if kind == KindAuthenticate || kind == KindSignOut {
		return true
	}
	if user == nil {
		return false
	}
	return AllowedIntents(user.Role)[kind]
}

// View names a read-only projection of the snapshot.
type View string

const (
	ViewDashboard View = "dashboard"
	ViewSales     View = "sales"
	ViewKitchen   View = "kitchen"
	ViewServing   View = "serving"
	ViewProducts  View = "products"
	ViewSettings  View = "settings"
	ViewUsers     View = "users"
)

// AllowedViews lists the projections a role may read.
func AllowedViews(role models.UserRole) map[View]bool {
	switch role {
	case models.RoleAdmin:
		return map[View]bool{
			ViewDashboard: true, ViewSales: true, ViewKitchen: true, ViewServing: true,
			ViewProducts: true, ViewSettings: true, ViewUsers: true,
		}
	case models.RoleCashier:
		return map[View]bool{ViewSales: true}
	case models.RoleKitchen:
		return map[View]bool{ViewKitchen: true}
	case models.RoleServer:
		return map[View]bool{ViewServing: true}
	}
	return map[View]bool{}
}

// DefaultView is where a role lands after signing in.
func DefaultView(role models.UserRole) View {
	switch role {
	case models.RoleAdmin:
		return ViewDashboard
	case models.RoleKitchen:
		return ViewKitchen
	case models.RoleServer:
		return ViewServing
	}
	return ViewSales
}
