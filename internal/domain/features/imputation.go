package features

// ImputationTable holds the fallback values computed offline from historical data.
type ImputationTable struct {
	ItemWeight     float64 `json:"Item_Weight"`
	OutletSize     string  `json:"Outlet_Size"`
	ItemVisibility float64 `json:"Item_Visibility"`
}

var fatContentVariants = map[string]string{
	"LF":      "Low Fat",
	"low fat": "Low Fat",
	"reg":     "Regular",
}

func ImputeWeight(weight *float64, table ImputationTable) float64 {
	if weight == nil {
		return table.ItemWeight
	}
	return *weight
}

func ImputeOutletSize(size *string, table ImputationTable) string {
	if size == nil {
		return table.OutletSize
	}
	return *size
}

// NormalizeFatContent maps abbreviated variants to their canonical label.
// Unrecognized values pass through unchanged.
func NormalizeFatContent(raw string) string {
	if canonical, ok := fatContentVariants[raw]; ok {
		return canonical
	}
	return raw
}

// ImputeVisibility treats an exact zero as missing.
func ImputeVisibility(visibility float64, table ImputationTable) float64 {
	if visibility == 0 {
		return table.ItemVisibility
	}
	return visibility
}

const (
	CategoryFood          = "Food"
	CategoryNonConsumable = "Non-Consumable"
	CategoryDrink         = "Drink"
)

var (
	foodItemTypes = map[string]struct{}{
		"Dairy": {}, "Meat": {}, "Breads": {}, "Baking Goods": {}, "Breakfast": {},
		"Fruits and Vegetables": {}, "Seafood": {}, "Starchy Foods": {}, "Soft Drinks": {},
	}
	nonConsumableItemTypes = map[string]struct{}{
		"Health and Hygiene": {}, "Household": {}, "Others": {},
	}
)

// DeriveItemCategory buckets an item type. Soft Drinks counts as Food and every
// type outside the two explicit sets falls back to Drink; trained artifacts depend on this.
func DeriveItemCategory(itemType string) string {
	if _, ok := foodItemTypes[itemType]; ok {
		return CategoryFood
	}
	if _, ok := nonConsumableItemTypes[itemType]; ok {
		return CategoryNonConsumable
	}
	return CategoryDrink
}

func OutletYears(currentYear, establishmentYear int) int {
	return currentYear - establishmentYear
}
