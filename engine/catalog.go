package engine

import (
	"strings"

	"github.com/yeremiapane/smart-pos/models"
	"golang.org/x/text/unicode/norm"
)

func validProduct(p models.Product) bool {
	return p.Price >= 0 && p.Stock >= 0 && p.PrepTimeInMinutes >= 0
}

func productIndex(products []models.Product, id string) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) createProduct(s models.Snapshot, in CreateProduct) (models.Snapshot, bool) {
	p := in.Product
	if !validProduct(p) {
		return s, false
	}
	if p.ID == "" {
		id, ok := e.newID("p", func(id string) bool {
			return productIndex(s.Products, id) >= 0
		})
		if !ok {
			return s, false
		}
		p.ID = id
	} else if productIndex(s.Products, p.ID) >= 0 {
		return s, false
	}

	next := s.Clone()
	next.Products = append(next.Products, p)
	return next, true
}

func (e *Engine) updateProduct(s models.Snapshot, in UpdateProduct) (models.Snapshot, bool) {
	i := productIndex(s.Products, in.Product.ID)
	if i < 0 || !validProduct(in.Product) || s.Products[i] == in.Product {
		return s, false
	}
	next := s.Clone()
	next.Products[i] = in.Product
	return next, true
}

// deleteProduct removes the catalog record. Orders and cart lines keep
// their own product snapshots, so nothing else is touched.
func (e *Engine) deleteProduct(s models.Snapshot, in DeleteProduct) (models.Snapshot, bool) {
	i := productIndex(s.Products, in.ProductID)
	if i < 0 {
		return s, false
	}
	next := s.Clone()
	next.Products = append(next.Products[:i], next.Products[i+1:]...)
	return next, true
}

func (e *Engine) replaceSettings(s models.Snapshot, in ReplaceSettings) (models.Snapshot, bool) {
	if s.Settings == in.Settings {
		return s, false
	}
	next := s.Clone()
	next.Settings = in.Settings
	return next, true
}

// AllCategories matches every category in FilterProducts.
const AllCategories = "all"

// FilterProducts returns the products in category whose name contains
// search, ignoring case. An empty category or AllCategories matches all.
// Both sides are NFC normalized so composed and decomposed Thai input match.
func FilterProducts(products []models.Product, category, search string) []models.Product {
	search = foldName(search)
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if category != "" && category != AllCategories && p.Category != category {
			continue
		}
		if search != "" && !strings.Contains(foldName(p.Name), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func foldName(s string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(s)))
}

// NewProductTemplate is the form default for a product being created.
func NewProductTemplate() models.Product {
	return models.Product{
		Category:          Categories[0],
		ImageURL:          "https://picsum.photos/300/200",
		PrepTimeInMinutes: 5,
	}
}
