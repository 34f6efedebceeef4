package features

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"store_sales/internal/domain/sales"
)

func TestCategoryEncoder_Encode(t *testing.T) {
	enc, err := NewCategoryEncoder("Outlet_Size", []string{"High", "Medium", "Small"})
	require.NoError(t, err)
	assert.Equal(t, "Outlet_Size", enc.Field())

	for want, label := range enc.Classes() {
		got, err := enc.Encode(label)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err = enc.Encode("medium")
	var unknown *sales.UnknownCategoryError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "Outlet_Size", unknown.Field)
	assert.Equal(t, "medium", unknown.Value)
	assert.Contains(t, err.Error(), "Outlet_Size")
}

func TestNewCategoryEncoder_Invalid(t *testing.T) {
	_, err := NewCategoryEncoder("x", nil)
	assert.Error(t, err)

	_, err = NewCategoryEncoder("x", []string{"a", "a"})
	assert.Error(t, err)
}

func TestOneHotEncoder(t *testing.T) {
	enc, err := NewOneHotEncoder("Item_Category", []string{"Drink", "Food", "Non-Consumable"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Item_Category_Drink", "Item_Category_Food", "Item_Category_Non-Consumable",
	}, enc.FeatureNames())

	vec, err := enc.Transform("Non-Consumable")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 1}, vec)

	_, err = enc.Transform("Toys")
	var unknown *sales.UnknownCategoryError
	assert.True(t, errors.As(err, &unknown))
}
