package entity

import (
	"strings"
	"time"
)

// Product is a catalog item identified by its SKU.
type Product struct {
	ID            string
	Name          string
	Description   string
	Price         float64
	Category      string
	StockQuantity int
	Supplier      string
	SKU           string
	Tags          []string
	ReleaseDate   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NormalizeSKU trims and upper-cases a SKU; stored SKUs are always in this form.
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}
