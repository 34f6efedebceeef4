package features

import (
	"fmt"

	"store_sales/internal/domain/sales"
)

// CategoryEncoder maps the labels seen at fit time to contiguous integer codes.
// The code of a label is its position in Classes.
type CategoryEncoder struct {
	field   string
	classes []string
	index   map[string]int
}

func NewCategoryEncoder(field string, classes []string) (*CategoryEncoder, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("encoder %s: no classes", field)
	}
	index := make(map[string]int, len(classes))
	for i, c := range classes {
		if _, dup := index[c]; dup {
			return nil, fmt.Errorf("encoder %s: duplicate class %q", field, c)
		}
		index[c] = i
	}
	return &CategoryEncoder{
		field:   field,
		classes: append([]string(nil), classes...),
		index:   index,
	}, nil
}

func (e *CategoryEncoder) Field() string { return e.field }

func (e *CategoryEncoder) Classes() []string {
	return append([]string(nil), e.classes...)
}

// Encode returns the code of label, or an UnknownCategoryError.
func (e *CategoryEncoder) Encode(label string) (int, error) {
	code, ok := e.index[label]
	if !ok {
		return 0, &sales.UnknownCategoryError{Field: e.field, Value: label}
	}
	return code, nil
}

// OneHotEncoder expands a single categorical feature into indicator columns,
// one per category known at fit time, named "<feature>_<category>".
type OneHotEncoder struct {
	feature    string
	categories []string
}

func NewOneHotEncoder(feature string, categories []string) (*OneHotEncoder, error) {
	if feature == "" {
		return nil, fmt.Errorf("one-hot encoder: feature name is empty")
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("one-hot encoder %s: no categories", feature)
	}
	seen := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("one-hot encoder %s: duplicate category %q", feature, c)
		}
		seen[c] = struct{}{}
	}
	return &OneHotEncoder{
		feature:    feature,
		categories: append([]string(nil), categories...),
	}, nil
}

// FeatureNames returns the indicator column names in category order.
func (e *OneHotEncoder) FeatureNames() []string {
	names := make([]string, len(e.categories))
	for i, c := range e.categories {
		names[i] = e.feature + "_" + c
	}
	return names
}

// Transform returns the indicator vector for value, aligned with FeatureNames.
func (e *OneHotEncoder) Transform(value string) ([]float64, error) {
	out := make([]float64, len(e.categories))
	for i, c := range e.categories {
		if c == value {
			out[i] = 1
			return out, nil
		}
	}
	return nil, &sales.UnknownCategoryError{Field: e.feature, Value: value}
}
