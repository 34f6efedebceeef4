package router

import (
	"github.com/gin-gonic/gin"

	"store_sales/internal/interfaces/http/handler"
)

func RegisterRoutes(r *gin.Engine, predictionHandler *handler.PredictionHandler) {
	r.GET("/healthz", predictionHandler.Health)

	api := r.Group("/api")
	{
		api.POST("/predictions", predictionHandler.CreatePrediction)
		api.GET("/predictions/:id", predictionHandler.GetPrediction)
	}
}
