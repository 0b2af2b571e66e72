package domain

import "time"

// Sale is an append-only ledger record. Name and UnitBsPerKg are a
// denormalized snapshot of the product at the time of sale so historical
// reports stay accurate after catalog edits or deletions; ProductID is a
// weak reference and may point at a product that no longer exists.
type Sale struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"productId"`
	Name        string    `json:"name"`
	Kg          float64   `json:"kg"`
	UnitBsPerKg float64   `json:"unitBsPerKg"`
	TotalBs     float64   `json:"totalBs"`
	Date        time.Time `json:"dateISO"`
}
