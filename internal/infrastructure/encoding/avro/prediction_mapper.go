package avro

import (
	"fmt"

	"store_sales/internal/domain/sales"
)

// ToPredictionEventNative converts a prediction to the goavro native form.
// goavro requires union values wrapped as map[string]interface{}{"<type>": value}.
func ToPredictionEventNative(p *sales.Prediction) (map[string]interface{}, error) {
	if p == nil {
		return nil, fmt.Errorf("prediction is nil")
	}
	rec := p.Record

	var weight interface{}
	if rec.ItemWeight != nil {
		weight = map[string]interface{}{"double": *rec.ItemWeight}
	}
	var size interface{}
	if rec.OutletSize != nil {
		size = map[string]interface{}{"string": *rec.OutletSize}
	}

	columns := make([]interface{}, len(p.Features.Columns))
	for i, c := range p.Features.Columns {
		columns[i] = c
	}
	values := make([]interface{}, len(p.Features.Values))
	for i, v := range p.Features.Values {
		values[i] = v
	}

	return map[string]interface{}{
		"id":         p.ID,
		"created_at": p.CreatedAt,

		"item_weight":               weight,
		"item_fat_content":          rec.ItemFatContent,
		"item_visibility":           rec.ItemVisibility,
		"item_type":                 rec.ItemType,
		"item_mrp":                  rec.ItemMRP,
		"outlet_establishment_year": int32(rec.OutletEstablishmentYear),
		"outlet_size":               size,
		"outlet_location_type":      rec.OutletLocationType,
		"outlet_type":               rec.OutletType,

		"feature_columns": columns,
		"feature_values":  values,

		"raw_output":      p.RawOutput,
		"predicted_sales": p.Sales.Float64(),
		"display":         p.Sales.String(),
	}, nil
}
