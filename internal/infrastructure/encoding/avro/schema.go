package avro

// PredictionEventSchema is the Avro schema for events published after each prediction.
// Optional inputs are ["null", T] unions; features keep model column order.
const PredictionEventSchema = `{
	"type": "record",
	"name": "PredictionEvent",
	"namespace": "com.store.sales",
	"fields": [
		{"name": "id", "type": "string"},
		{"name": "created_at", "type": {"type": "long", "logicalType": "timestamp-millis"}},

		{"name": "item_weight", "type": ["null", "double"], "default": null},
		{"name": "item_fat_content", "type": "string"},
		{"name": "item_visibility", "type": "double"},
		{"name": "item_type", "type": "string"},
		{"name": "item_mrp", "type": "double"},
		{"name": "outlet_establishment_year", "type": "int"},
		{"name": "outlet_size", "type": ["null", "string"], "default": null},
		{"name": "outlet_location_type", "type": "string"},
		{"name": "outlet_type", "type": "string"},

		{"name": "feature_columns", "type": {"type": "array", "items": "string"}},
		{"name": "feature_values", "type": {"type": "array", "items": "double"}},

		{"name": "raw_output", "type": "double"},
		{"name": "predicted_sales", "type": "double"},
		{"name": "display", "type": "string"}
	]
}`
