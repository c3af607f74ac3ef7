package models

// Product is a catalog record. Stock is decremented on checkout.
type Product struct {
	ID                string  `json:"id" yaml:"id"`
	Name              string  `json:"name" yaml:"name"`
	Category          string  `json:"category" yaml:"category"`
	Price             float64 `json:"price" yaml:"price"`
	Stock             int     `json:"stock" yaml:"stock"`
	ImageURL          string  `json:"image_url" yaml:"image_url"`
	Description       string  `json:"description" yaml:"description"`
	PrepTimeInMinutes int     `json:"prep_time_in_minutes" yaml:"prep_time_in_minutes"`
}

// OrderLine is a product snapshot taken when the line was created plus the
// ordered quantity.
type OrderLine struct {
	Product  Product `json:"product" yaml:"product"`
	Quantity int     `json:"quantity" yaml:"quantity"`
}

// LineTotal returns price x quantity for the line.
func (l OrderLine) LineTotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}
