package artifact

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"store_sales/internal/domain/sales"
)

// LinearModel is a fitted linear regressor: intercept + coefficients · features.
// Weights are stored in model column order.
type LinearModel struct {
	columns   []string
	weights   []float64
	intercept float64
}

// NewLinearModel resolves named coefficients against the model column order.
// Columns without a coefficient get weight 0; a coefficient for an unknown column is an error.
func NewLinearModel(columns []string, coefficients map[string]float64, intercept float64) (*LinearModel, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}

	weights := make([]float64, len(columns))
	for name, coef := range coefficients {
		i, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("coefficient for unknown column %q", name)
		}
		weights[i] = coef
	}

	return &LinearModel{
		columns:   append([]string(nil), columns...),
		weights:   weights,
		intercept: intercept,
	}, nil
}

func (m *LinearModel) Predict(fv sales.FeatureVector) (float64, error) {
	if len(fv.Values) != len(m.weights) || len(fv.Columns) != len(m.columns) {
		return 0, fmt.Errorf("feature count mismatch: model has %d, got %d", len(m.weights), len(fv.Values))
	}
	for i, c := range fv.Columns {
		if m.columns[i] != c {
			return 0, fmt.Errorf("feature %d is %q, model expects %q", i, c, m.columns[i])
		}
	}
	return m.intercept + floats.Dot(m.weights, fv.Values), nil
}
