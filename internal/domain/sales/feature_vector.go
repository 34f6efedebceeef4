package sales

// FeatureVector is a single aligned model input row.
type FeatureVector struct {
	Columns []string
	Values  []float64
}

// Get returns the value of a named column.
func (v FeatureVector) Get(column string) (float64, bool) {
	for i, c := range v.Columns {
		if c == column {
			return v.Values[i], true
		}
	}
	return 0, false
}

// Map returns the vector keyed by column name.
func (v FeatureVector) Map() map[string]float64 {
	out := make(map[string]float64, len(v.Columns))
	for i, c := range v.Columns {
		out[c] = v.Values[i]
	}
	return out
}

// Regressor is a trained model with a scalar output.
type Regressor interface {
	Predict(features FeatureVector) (float64, error)
}
