package features

import (
	"fmt"

	"store_sales/internal/domain/sales"
)

const (
	ColumnItemWeight              = "Item_Weight"
	ColumnItemFatContent          = "Item_Fat_Content"
	ColumnItemVisibility          = "Item_Visibility"
	ColumnItemType                = "Item_Type"
	ColumnItemMRP                 = "Item_MRP"
	ColumnOutletEstablishmentYear = "Outlet_Establishment_Year"
	ColumnOutletSize              = "Outlet_Size"
	ColumnOutletLocationType      = "Outlet_Location_Type"
	ColumnOutletType              = "Outlet_Type"
	ColumnItemCategory            = "Item_Category"
	ColumnOutletYears             = "Outlet_Years"
)

// Artifacts are the frozen, fitted objects the pipeline reads. They are never mutated.
type Artifacts struct {
	Imputation         ImputationTable
	FatContent         *CategoryEncoder
	OutletSize         *CategoryEncoder
	OutletLocationType *CategoryEncoder
	OutletType         *CategoryEncoder
	ItemCategory       *OneHotEncoder
	Columns            []string
}

// Pipeline turns raw records into model-aligned feature vectors.
// It holds no mutable state and is safe for concurrent use.
type Pipeline struct {
	artifacts Artifacts
}

func NewPipeline(a Artifacts) (*Pipeline, error) {
	switch {
	case a.FatContent == nil:
		return nil, fmt.Errorf("fat content encoder is nil")
	case a.OutletSize == nil:
		return nil, fmt.Errorf("outlet size encoder is nil")
	case a.OutletLocationType == nil:
		return nil, fmt.Errorf("outlet location type encoder is nil")
	case a.OutletType == nil:
		return nil, fmt.Errorf("outlet type encoder is nil")
	case a.ItemCategory == nil:
		return nil, fmt.Errorf("item category one-hot encoder is nil")
	case len(a.Columns) == 0:
		return nil, fmt.Errorf("model column order is empty")
	}

	for column, enc := range map[string]*CategoryEncoder{
		ColumnItemFatContent:     a.FatContent,
		ColumnOutletSize:         a.OutletSize,
		ColumnOutletLocationType: a.OutletLocationType,
		ColumnOutletType:         a.OutletType,
	} {
		if enc.Field() != column {
			return nil, fmt.Errorf("encoder for %s was fitted on %s", column, enc.Field())
		}
	}

	seen := make(map[string]struct{}, len(a.Columns))
	for _, c := range a.Columns {
		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("model column %q listed twice", c)
		}
		seen[c] = struct{}{}
	}

	a.Columns = append([]string(nil), a.Columns...)
	return &Pipeline{artifacts: a}, nil
}

// Columns returns the model column order.
func (p *Pipeline) Columns() []string {
	return append([]string(nil), p.artifacts.Columns...)
}

// Transform runs the full preprocessing for one record. currentYear is used to derive
// outlet age, so the same record yields different vectors in different years.
func (p *Pipeline) Transform(record sales.RawItemRecord, currentYear int) (sales.FeatureVector, error) {
	a := p.artifacts

	weight := ImputeWeight(record.ItemWeight, a.Imputation)
	outletSize := ImputeOutletSize(record.OutletSize, a.Imputation)
	fatContent := NormalizeFatContent(record.ItemFatContent)
	visibility := ImputeVisibility(record.ItemVisibility, a.Imputation)
	category := DeriveItemCategory(record.ItemType)

	r := newRow()
	r.set(ColumnItemWeight, weight)
	r.set(ColumnItemVisibility, visibility)
	r.set(ColumnItemMRP, record.ItemMRP)
	r.set(ColumnOutletEstablishmentYear, float64(record.OutletEstablishmentYear))
	r.set(ColumnOutletYears, float64(OutletYears(currentYear, record.OutletEstablishmentYear)))

	encoded := []struct {
		column  string
		encoder *CategoryEncoder
		label   string
	}{
		{ColumnItemFatContent, a.FatContent, fatContent},
		{ColumnOutletSize, a.OutletSize, outletSize},
		{ColumnOutletLocationType, a.OutletLocationType, record.OutletLocationType},
		{ColumnOutletType, a.OutletType, record.OutletType},
	}
	for _, e := range encoded {
		code, err := e.encoder.Encode(e.label)
		if err != nil {
			return sales.FeatureVector{}, err
		}
		r.set(e.column, float64(code))
	}

	indicators, err := a.ItemCategory.Transform(category)
	if err != nil {
		return sales.FeatureVector{}, err
	}
	for i, name := range a.ItemCategory.FeatureNames() {
		r.set(name, indicators[i])
	}

	// Item_Type and Item_Category are never materialized as numeric columns.
	r.drop(ColumnItemType, ColumnOutletEstablishmentYear, ColumnItemCategory)

	return r.reindex(a.Columns), nil
}
