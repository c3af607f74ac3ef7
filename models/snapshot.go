package models

import (
	"errors"
	"fmt"
	"time"
)

type Settings struct {
	StoreName      string  `json:"store_name" yaml:"store_name"`
	Address        string  `json:"address" yaml:"address"`
	TaxRate        float64 `json:"tax_rate" yaml:"tax_rate"`
	CommissionRate float64 `json:"commission_rate" yaml:"commission_rate"`
}

// Snapshot is the complete state of the point of sale at one instant.
// Treat it as a value: use Clone before mutating anything reachable from it.
type Snapshot struct {
	Products    []Product   `json:"products" yaml:"products"`
	Users       []User      `json:"users" yaml:"users"`
	CurrentUser *User       `json:"current_user" yaml:"current_user"`
	Cart        []OrderLine `json:"cart" yaml:"cart"`
	Orders      []Order     `json:"orders" yaml:"orders"`
	Settings    Settings    `json:"settings" yaml:"settings"`
}

// Clone returns a deep copy that shares no memory with s.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Products: cloneSlice(s.Products),
		Users:    cloneSlice(s.Users),
		Cart:     cloneSlice(s.Cart),
		Settings: s.Settings,
	}
	if s.CurrentUser != nil {
		u := *s.CurrentUser
		out.CurrentUser = &u
	}
	if s.Orders != nil {
		out.Orders = make([]Order, len(s.Orders))
		for i, o := range s.Orders {
			out.Orders[i] = o.clone()
		}
	}
	return out
}

func (o Order) clone() Order {
	o.Lines = cloneSlice(o.Lines)
	if o.ReceivedAmount != nil {
		v := *o.ReceivedAmount
		o.ReceivedAmount = &v
	}
	return o
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// FindProduct returns the catalog record for id.
func (s Snapshot) FindProduct(id string) (Product, bool) {
	for _, p := range s.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// FindOrder returns the ledger entry for id.
func (s Snapshot) FindOrder(id string) (Order, bool) {
	for _, o := range s.Orders {
		if o.ID == id {
			return o.clone(), true
		}
	}
	return Order{}, false
}

// Validate checks the structural rules every reachable snapshot keeps.
func (s Snapshot) Validate() error {
	if len(s.Users) == 0 {
		return errors.New("no user accounts")
	}
	users := make(map[string]bool, len(s.Users))
	admin := false
	for _, u := range s.Users {
		if u.ID == "" || users[u.ID] {
			return fmt.Errorf("user id %q is empty or duplicated", u.ID)
		}
		if !u.Role.Valid() {
			return fmt.Errorf("user %s has unknown role %q", u.ID, u.Role)
		}
		users[u.ID] = true
		admin = admin || u.Role == RoleAdmin
	}
	if !admin {
		return errors.New("no Admin account")
	}
	if s.CurrentUser != nil && !users[s.CurrentUser.ID] {
		return fmt.Errorf("signed-in user %s does not exist", s.CurrentUser.ID)
	}

	products := make(map[string]bool, len(s.Products))
	for _, p := range s.Products {
		if p.ID == "" || products[p.ID] {
			return fmt.Errorf("product id %q is empty or duplicated", p.ID)
		}
		if p.Stock < 0 {
			return fmt.Errorf("product %s has negative stock %d", p.ID, p.Stock)
		}
		products[p.ID] = true
	}
	if err := validLines(s.Cart); err != nil {
		return fmt.Errorf("cart: %w", err)
	}
	for _, o := range s.Orders {
		if !o.Status.Valid() {
			return fmt.Errorf("order %s has unknown status %q", o.ID, o.Status)
		}
		if err := validLines(o.Lines); err != nil {
			return fmt.Errorf("order %s: %w", o.ID, err)
		}
	}
	return nil
}

func validLines(lines []OrderLine) error {
	for _, l := range lines {
		if l.Quantity < 1 {
			return fmt.Errorf("line %s has quantity %d", l.Product.ID, l.Quantity)
		}
	}
	return nil
}

// StoredSnapshot is the table row holding one persisted snapshot as JSON.
type StoredSnapshot struct {
	Key       string    `gorm:"column:snapshot_key;type:varchar(100);primaryKey"`
	Data      string    `gorm:"type:longtext;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (StoredSnapshot) TableName() string {
	return "pos_snapshots"
}
