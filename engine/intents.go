package engine

import "github.com/yeremiapane/smart-pos/models"

// IntentKind names a request to change state.
type IntentKind string

const (
	KindAuthenticate       IntentKind = "authenticate"
	KindSignOut            IntentKind = "sign_out"
	KindAddToCart          IntentKind = "add_to_cart"
	KindRemoveFromCart     IntentKind = "remove_from_cart"
	KindSetQuantity        IntentKind = "set_quantity"
	KindClearCart          IntentKind = "clear_cart"
	KindCheckout           IntentKind = "checkout"
	KindAdvanceOrderStatus IntentKind = "advance_order_status"
	KindCreateProduct      IntentKind = "create_product"
	KindUpdateProduct      IntentKind = "update_product"
	KindDeleteProduct      IntentKind = "delete_product"
	KindReplaceSettings    IntentKind = "replace_settings"
	KindCreateUser         IntentKind = "create_user"
	KindDeleteUser         IntentKind = "delete_user"
)

// Intent is anything that can be applied to a snapshot. Implementations
// outside this package are accepted and treated as no-ops.
type Intent interface {
	Kind() IntentKind
}

type Authenticate struct {
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
}

type SignOut struct{}

type AddToCart struct {
	ProductID string `json:"product_id" yaml:"product_id"`
}

type RemoveFromCart struct {
	ProductID string `json:"product_id" yaml:"product_id"`
}

type SetQuantity struct {
	ProductID string `json:"product_id" yaml:"product_id"`
	Quantity  int    `json:"quantity" yaml:"quantity"`
}

type ClearCart struct{}

// Checkout finalizes the snapshot's cart. ReceivedAmount is only
// meaningful for cash.
type Checkout struct {
	PaymentMethod  models.PaymentMethod `json:"payment_method" yaml:"payment_method"`
	ReceivedAmount *float64             `json:"received_amount,omitempty" yaml:"received_amount,omitempty"`
}

type AdvanceOrderStatus struct {
	OrderID string             `json:"order_id" yaml:"order_id"`
	Status  models.OrderStatus `json:"status" yaml:"status"`
}

// CreateProduct inserts a product. An empty ID is generated by the engine.
type CreateProduct struct {
	Product models.Product `json:"product" yaml:"product"`
}

type UpdateProduct struct {
	Product models.Product `json:"product" yaml:"product"`
}

type DeleteProduct struct {
	ProductID string `json:"product_id" yaml:"product_id"`
}

type ReplaceSettings struct {
	Settings models.Settings `json:"settings" yaml:"settings"`
}

// CreateUser appends an account; the ID is always generated.
type CreateUser struct {
	Name     string          `json:"name" yaml:"name"`
	Username string          `json:"username" yaml:"username"`
	Password string          `json:"password" yaml:"password"`
	Role     models.UserRole `json:"role" yaml:"role"`
}

type DeleteUser struct {
	UserID string `json:"user_id" yaml:"user_id"`
}

func (Authenticate) Kind() IntentKind       { return KindAuthenticate }
func (SignOut) Kind() IntentKind            { return KindSignOut }
func (AddToCart) Kind() IntentKind          { return KindAddToCart }
func (RemoveFromCart) Kind() IntentKind     { return KindRemoveFromCart }
func (SetQuantity) Kind() IntentKind        { return KindSetQuantity }
func (ClearCart) Kind() IntentKind          { return KindClearCart }
func (Checkout) Kind() IntentKind           { return KindCheckout }
func (AdvanceOrderStatus) Kind() IntentKind { return KindAdvanceOrderStatus }
func (CreateProduct) Kind() IntentKind      { return KindCreateProduct }
func (UpdateProduct) Kind() IntentKind      { return KindUpdateProduct }
func (DeleteProduct) Kind() IntentKind      { return KindDeleteProduct }
func (ReplaceSettings) Kind() IntentKind    { return KindReplaceSettings }
func (CreateUser) Kind() IntentKind         { return KindCreateUser }
func (DeleteUser) Kind() IntentKind         { return KindDeleteUser }
