package entities

import "github.com/shopspring/decimal"

// Product is a catalog entry. The catalog is static, products are
// never fetched from the API.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency,omitempty"`
}
