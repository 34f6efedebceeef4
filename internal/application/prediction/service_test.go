package prediction

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"store_sales/internal/domain/sales"
	"store_sales/internal/infrastructure/artifact"
	"store_sales/pkg/logger"
)

type MockTransformer struct {
	mock.Mock
}

func (m *MockTransformer) Transform(record sales.RawItemRecord, currentYear int) (sales.FeatureVector, error) {
	args := m.Called(record, currentYear)
	return args.Get(0).(sales.FeatureVector), args.Error(1)
}

type MockRegressor struct {
	mock.Mock
}

func (m *MockRegressor) Predict(fv sales.FeatureVector) (float64, error) {
	args := m.Called(fv)
	return args.Get(0).(float64), args.Error(1)
}

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Save(ctx context.Context, p *sales.Prediction) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*sales.Prediction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Prediction), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishPrediction(ctx context.Context, p *sales.Prediction) error {
	return m.Called(ctx, p).Error(0)
}

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func validRecord() sales.RawItemRecord {
	return sales.RawItemRecord{
		ItemFatContent:          "Low Fat",
		ItemVisibility:          0.05,
		ItemType:                "Dairy",
		ItemMRP:                 150,
		OutletEstablishmentYear: 2000,
		OutletLocationType:      "Tier 1",
		OutletType:              "Supermarket Type1",
	}
}

var testVector = sales.FeatureVector{Columns: []string{"Item_MRP"}, Values: []float64{150}}

func TestService_Predict_Success(t *testing.T) {
	// Arrange
	tr := new(MockTransformer)
	model := new(MockRegressor)
	repo := new(MockRepository)
	pub := new(MockPublisher)
	svc := NewService(tr, model,
		WithRepository(repo),
		WithPublisher(pub),
		WithClock(func() time.Time { return fixedNow }),
	)
	ctx := context.Background()

	tr.On("Transform", validRecord(), 2026).Return(testVector, nil)
	model.On("Predict", testVector).Return(1234.5, nil)
	repo.On("Save", ctx, mock.AnythingOfType("*sales.Prediction")).Return(nil)
	pub.On("PublishPrediction", ctx, mock.AnythingOfType("*sales.Prediction")).Return(nil)

	// Act
	p, err := svc.Predict(ctx, validRecord())

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "$1234.50", p.Sales.String())
	assert.Equal(t, 1234.5, p.RawOutput)
	assert.Equal(t, fixedNow, p.CreatedAt)
	tr.AssertExpectations(t)
	model.AssertExpectations(t)
	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestService_Predict_ClampsNegative(t *testing.T) {
	tr := new(MockTransformer)
	model := new(MockRegressor)
	svc := NewService(tr, model, WithClock(func() time.Time { return fixedNow }))

	tr.On("Transform", validRecord(), 2026).Return(testVector, nil)
	model.On("Predict", testVector).Return(-5.0, nil)

	p, err := svc.Predict(context.Background(), validRecord())

	require.NoError(t, err)
	assert.Equal(t, "$0.00", p.Sales.String())
	assert.Equal(t, -5.0, p.RawOutput)
}

func TestService_Predict_UsesClockYear(t *testing.T) {
	tr := new(MockTransformer)
	model := new(MockRegressor)
	nextYear := fixedNow.AddDate(1, 0, 0)
	svc := NewService(tr, model, WithClock(func() time.Time { return nextYear }))

	tr.On("Transform", validRecord(), 2027).Return(testVector, nil)
	model.On("Predict", testVector).Return(10.0, nil)

	_, err := svc.Predict(context.Background(), validRecord())

	require.NoError(t, err)
	tr.AssertExpectations(t)
}

func TestService_Predict_UnknownItemTypeNeverTransformed(t *testing.T) {
	tr := new(MockTransformer)
	model := new(MockRegressor)
	svc := NewService(tr, model)

	rec := validRecord()
	rec.ItemType = "Toys"

	_, err := svc.Predict(context.Background(), rec)

	assert.ErrorIs(t, err, sales.ErrUnknownItemType)
	tr.AssertNotCalled(t, "Transform", mock.Anything, mock.Anything)
	model.AssertNotCalled(t, "Predict", mock.Anything)
}

func TestService_Predict_UnknownCategory(t *testing.T) {
	tr := new(MockTransformer)
	model := new(MockRegressor)
	repo := new(MockRepository)
	svc := NewService(tr, model, WithRepository(repo), WithClock(func() time.Time { return fixedNow }))

	unknown := &sales.UnknownCategoryError{Field: "Outlet_Type", Value: "Kiosk"}
	tr.On("Transform", validRecord(), 2026).Return(sales.FeatureVector{}, unknown)

	_, err := svc.Predict(context.Background(), validRecord())

	var target *sales.UnknownCategoryError
	require.True(t, errors.As(err, &target))
	assert.True(t, sales.IsRejected(err))
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_Predict_SaveError(t *testing.T) {
	tr := new(MockTransformer)
	model := new(MockRegressor)
	repo := new(MockRepository)
	pub := new(MockPublisher)
	svc := NewService(tr, model, WithRepository(repo), WithPublisher(pub), WithClock(func() time.Time { return fixedNow }))

	tr.On("Transform", validRecord(), 2026).Return(testVector, nil)
	model.On("Predict", testVector).Return(1.0, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("db down"))

	_, err := svc.Predict(context.Background(), validRecord())

	assert.ErrorContains(t, err, "save prediction")
	assert.False(t, sales.IsRejected(err))
	pub.AssertNotCalled(t, "PublishPrediction", mock.Anything, mock.Anything)
}

func TestService_Get(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(new(MockTransformer), new(MockRegressor), WithRepository(repo))
	ctx := context.Background()
	stored := &sales.Prediction{ID: "p-1"}

	repo.On("FindByID", ctx, "p-1").Return(stored, nil)
	repo.On("FindByID", ctx, "missing").Return(nil, nil)

	got, err := svc.Get(ctx, "p-1")
	require.NoError(t, err)
	assert.Same(t, stored, got)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, sales.ErrPredictionNotFound)
}

func TestService_Get_StorageDisabled(t *testing.T) {
	svc := NewService(new(MockTransformer), new(MockRegressor))

	_, err := svc.Get(context.Background(), "p-1")

	assert.ErrorIs(t, err, ErrStorageDisabled)
}

func TestService_HandleConsumedRequest(t *testing.T) {
	tr := new(MockTransformer)
	model := new(MockRegressor)
	svc := NewService(tr, model, WithClock(func() time.Time { return fixedNow }))
	ctx := context.Background()

	tr.On("Transform", validRecord(), 2026).Return(testVector, nil)
	model.On("Predict", testVector).Return(99.0, nil)

	payload := []byte(`{"item_fat_content":"Low Fat","item_visibility":0.05,"item_type":"Dairy",
		"item_mrp":150,"outlet_establishment_year":2000,"outlet_location_type":"Tier 1",
		"outlet_type":"Supermarket Type1"}`)

	assert.NoError(t, svc.HandleConsumedRequest(ctx, payload))
	assert.NoError(t, svc.HandleConsumedRequest(ctx, []byte(`{not json}`)))
	assert.NoError(t, svc.HandleConsumedRequest(ctx, []byte(`{"item_type":"Toys"}`)))
	model.AssertNumberOfCalls(t, "Predict", 1)
}

func TestService_HandleConsumedRequest_SystemError(t *testing.T) {
	tr := new(MockTransformer)
	model := new(MockRegressor)
	svc := NewService(tr, model, WithClock(func() time.Time { return fixedNow }))

	tr.On("Transform", validRecord(), 2026).Return(testVector, nil)
	model.On("Predict", testVector).Return(0.0, errors.New("feature count mismatch"))

	payload := []byte(`{"item_fat_content":"Low Fat","item_visibility":0.05,"item_type":"Dairy",
		"item_mrp":150,"outlet_establishment_year":2000,"outlet_location_type":"Tier 1",
		"outlet_type":"Supermarket Type1"}`)

	assert.Error(t, svc.HandleConsumedRequest(context.Background(), payload))
}

func TestService_Predict_NonFiniteOutput(t *testing.T) {
	for _, raw := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		tr := new(MockTransformer)
		model := new(MockRegressor)
		repo := new(MockRepository)
		svc := NewService(tr, model, WithRepository(repo), WithClock(func() time.Time { return fixedNow }))

		tr.On("Transform", validRecord(), 2026).Return(testVector, nil)
		model.On("Predict", testVector).Return(raw, nil)

		var (
			p   *sales.Prediction
			err error
		)
		require.NotPanics(t, func() { p, err = svc.Predict(context.Background(), validRecord()) })
		assert.Nil(t, p)
		assert.ErrorIs(t, err, sales.ErrNonFiniteOutput)
		assert.True(t, sales.IsRejected(err))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	}
}

func TestService_Predict_NonFiniteInputNeverTransformed(t *testing.T) {
	tr := new(MockTransformer)
	svc := NewService(tr, new(MockRegressor))

	record := validRecord()
	record.ItemMRP = math.NaN()

	_, err := svc.Predict(context.Background(), record)

	assert.ErrorIs(t, err, sales.ErrNonFiniteValue)
	tr.AssertNotCalled(t, "Transform", mock.Anything, mock.Anything)
}

func TestService_HandleConsumedRequest_OverflowingRecordSkipped(t *testing.T) {
	bundle, err := artifact.Load("../../../artifacts", logger.Nop())
	require.NoError(t, err)
	svc := NewService(bundle.Pipeline, bundle.Model, WithClock(func() time.Time { return fixedNow }))

	payload := []byte(`{"item_fat_content":"Low Fat","item_visibility":0.05,"item_type":"Dairy",
		"item_mrp":1e308,"outlet_establishment_year":2000,"outlet_location_type":"Tier 1",
		"outlet_type":"Supermarket Type1"}`)

	assert.NotPanics(t, func() {
		assert.NoError(t, svc.HandleConsumedRequest(context.Background(), payload))
	})

	_, err = svc.Predict(context.Background(), validRecordWithMRP(1e308))
	assert.ErrorIs(t, err, sales.ErrNonFiniteOutput)
}

func validRecordWithMRP(mrp float64) sales.RawItemRecord {
	r := validRecord()
	r.ItemMRP = mrp
	return r
}
