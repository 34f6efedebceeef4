package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	app "store_sales/internal/application/prediction"
	"store_sales/internal/domain/sales"
)

// PredictionService is implemented by prediction.Service.
type PredictionService interface {
	Predict(ctx context.Context, record sales.RawItemRecord) (*sales.Prediction, error)
	Get(ctx context.Context, id string) (*sales.Prediction, error)
}

type PredictionHandler struct {
	svc     PredictionService
	columns int
}

func NewPredictionHandler(svc PredictionService, columns int) *PredictionHandler {
	return &PredictionHandler{svc: svc, columns: columns}
}

type predictionResponse struct {
	ID             string             `json:"id"`
	PredictedSales float64            `json:"predicted_sales"`
	Display        string             `json:"display"`
	Features       map[string]float64 `json:"features"`
	CreatedAt      time.Time          `json:"created_at"`
}

func toResponse(p *sales.Prediction) predictionResponse {
	return predictionResponse{
		ID:             p.ID,
		PredictedSales: p.Sales.Float64(),
		Display:        p.Sales.String(),
		Features:       p.Features.Map(),
		CreatedAt:      p.CreatedAt,
	}
}

func (h *PredictionHandler) CreatePrediction(c *gin.Context) {
	var record sales.RawItemRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.svc.Predict(c.Request.Context(), record)
	if err != nil {
		var unknown *sales.UnknownCategoryError
		switch {
		case errors.As(err, &unknown):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": err.Error(),
				"field": unknown.Field,
				"value": unknown.Value,
			})
		case errors.Is(err, sales.ErrNonFiniteOutput):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case sales.IsInvalidInput(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "prediction failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, toResponse(p))
}

func (h *PredictionHandler) GetPrediction(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, sales.ErrPredictionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, app.ErrStorageDisabled):
			c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		}
		return
	}

	c.JSON(http.StatusOK, toResponse(p))
}

func (h *PredictionHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "columns": h.columns})
}
