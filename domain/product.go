// Package domain defines core business types and interfaces.
package domain

import "math"

// Product is a catalog entry priced and stocked by weight.
// PriceKg is held rounded to 2 decimals, StockKg to 3 decimals (grams).
type Product struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	PriceKg float64 `json:"priceKg"`
	StockKg float64 `json:"stockKg"`
}

// ValidateProduct checks the invariants for a product about to be
// created or edited: non-empty name, finite price > 0, finite stock >= 0.
func ValidateProduct(p Product) error {
	if p.Name == "" {
		return NewValidationError("name", "cannot be empty", p.Name)
	}
	if math.IsNaN(p.PriceKg) || math.IsInf(p.PriceKg, 0) || p.PriceKg <= 0 {
		return NewValidationError("priceKg", "must be a finite value > 0", p.PriceKg)
	}
	if math.IsNaN(p.StockKg) || math.IsInf(p.StockKg, 0) || p.StockKg < 0 {
		return NewValidationError("stockKg", "must be a finite value >= 0", p.StockKg)
	}
	return nil
}

// SeedCatalog returns the built-in default catalog used when no persisted
// catalog exists or the persisted bytes cannot be parsed. IDs are assigned
// by the caller.
func SeedCatalog() []Product {
	return []Product{
		{Name: "Carne Molida", PriceKg: 25.00, StockKg: 40.000},
		{Name: "Bife", PriceKg: 60.00, StockKg: 20.000},
	}
}
