package sales

import (
	"math"
	"slices"
)

// Known item types. Anything else is rejected at the boundary.
var ItemTypes = []string{
	"Dairy", "Soft Drinks", "Meat", "Fruits and Vegetables", "Household",
	"Baking Goods", "Snack Foods", "Frozen Foods", "Breakfast",
	"Health and Hygiene", "Hard Drinks", "Canned", "Breads",
	"Starchy Foods", "Others", "Seafood",
}

const (
	MinItemWeight = 1.0
	MaxItemWeight = 25.0
)

// RawItemRecord is one item/outlet pair as supplied by a caller.
// ItemWeight and OutletSize are nil when the caller wants the imputed default;
// an ItemVisibility of exactly 0 is treated the same way by the pipeline.
type RawItemRecord struct {
	ItemWeight              *float64 `json:"item_weight,omitempty"`
	ItemFatContent          string   `json:"item_fat_content"`
	ItemVisibility          float64  `json:"item_visibility"`
	ItemType                string   `json:"item_type"`
	ItemMRP                 float64  `json:"item_mrp"`
	OutletEstablishmentYear int      `json:"outlet_establishment_year"`
	OutletSize              *string  `json:"outlet_size,omitempty"`
	OutletLocationType      string   `json:"outlet_location_type"`
	OutletType              string   `json:"outlet_type"`
}

// Validate checks the input domain of a record before it reaches the pipeline.
// Categorical fields backed by a fitted encoder are left to the encoder.
func (r RawItemRecord) Validate() error {
	if (r.ItemWeight != nil && !isFinite(*r.ItemWeight)) || !isFinite(r.ItemVisibility) || !isFinite(r.ItemMRP) {
		return ErrNonFiniteValue
	}
	if r.ItemWeight != nil && (*r.ItemWeight < MinItemWeight || *r.ItemWeight > MaxItemWeight) {
		return ErrInvalidWeight
	}
	if r.ItemVisibility < 0 || r.ItemVisibility > 1 {
		return ErrInvalidVisibility
	}
	if r.ItemMRP <= 0 {
		return ErrInvalidMRP
	}
	if r.OutletEstablishmentYear <= 0 {
		return ErrInvalidYear
	}
	if r.ItemFatContent == "" || r.OutletLocationType == "" || r.OutletType == "" {
		return ErrMissingField
	}
	if !IsKnownItemType(r.ItemType) {
		return ErrUnknownItemType
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func IsKnownItemType(itemType string) bool {
	return slices.Contains(ItemTypes, itemType)
}
