package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/orderhub/order-admin/internal/entities"
)

// Catalog is the fixed set of purchasable products. There is no
// network call and no failure mode.
type Catalog struct {
	products []entities.Product
}

func New() *Catalog {
	return &Catalog{products: []entities.Product{
		{
			ID:       "22222222-2222-2222-2222-222222222221",
			Name:     "Keyboard",
			Price:    decimal.NewFromFloat(199.90),
			Currency: "BRL",
		},
		{
			ID:       "22222222-2222-2222-2222-222222222222",
			Name:     "Mouse",
			Price:    decimal.NewFromFloat(79.90),
			Currency: "BRL",
		},
		{
			ID:       "22222222-2222-2222-2222-222222222223",
			Name:     "Headset",
			Price:    decimal.NewFromFloat(249.90),
			Currency: "BRL",
		},
	}}
}

// List returns a copy so callers cannot mutate the catalog.
func (c *Catalog) List() []entities.Product {
	products := make([]entities.Product, len(c.products))
	copy(products, c.products)
	return products
}

// GetByID looks a product up by id. Absence is a normal result, not an
// error.
func (c *Catalog) GetByID(id string) (entities.Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return entities.Product{}, false
}
