package features

import "store_sales/internal/domain/sales"

// row is an ordered set of named numeric columns for a single record.
type row struct {
	names  []string
	values map[string]float64
}

func newRow() *row {
	return &row{values: make(map[string]float64)}
}

func (r *row) set(name string, value float64) {
	if _, ok := r.values[name]; !ok {
		r.names = append(r.names, name)
	}
	r.values[name] = value
}

func (r *row) drop(names ...string) {
	for _, name := range names {
		if _, ok := r.values[name]; !ok {
			continue
		}
		delete(r.values, name)
		for i, n := range r.names {
			if n == name {
				r.names = append(r.names[:i], r.names[i+1:]...)
				break
			}
		}
	}
}

func (r *row) columns() []string {
	return append([]string(nil), r.names...)
}

// reindex returns the row laid out exactly as columns: absent columns are 0,
// columns not listed are dropped.
func (r *row) reindex(columns []string) sales.FeatureVector {
	out := sales.FeatureVector{
		Columns: append([]string(nil), columns...),
		Values:  make([]float64, len(columns)),
	}
	for i, c := range columns {
		out.Values[i] = r.values[c]
	}
	return out
}

// Align reindexes an already produced vector to columns. It is idempotent.
func Align(v sales.FeatureVector, columns []string) sales.FeatureVector {
	r := newRow()
	for i, c := range v.Columns {
		r.set(c, v.Values[i])
	}
	return r.reindex(columns)
}
