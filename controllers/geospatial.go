package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/barnaud18/AgriScienceCrop-API/middlewares"
	"github.com/barnaud18/AgriScienceCrop-API/models"
	"github.com/barnaud18/AgriScienceCrop-API/storage"
)

// GeoController serves the premium geospatial analysis feature.
type GeoController struct {
	store  storage.Storage
	logger *zap.Logger
}

func NewGeoController(store storage.Storage, logger *zap.Logger) *GeoController {
	return &GeoController{store: store, logger: logger}
}

// Analyze runs a geospatial analysis for a premium user and persists the
// result.
func (gc *GeoController) Analyze(c *gin.Context) {
	ctx := c.Request.Context()
	user, err := gc.store.GetUser(ctx, middlewares.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if user == nil || !user.IsPremium {
		c.JSON(http.StatusForbidden, gin.H{"message": "Premium subscription required"})
		return
	}

	var req models.CreateGeospatialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	results := gin.H{
		"soilType":      "Latossolo Vermelho",
		"elevation":     "550m",
		"slope":         "2-5%",
		"drainageClass": "Bem drenado",
		"recommendations": []string{
			"Área adequada para cultivos anuais",
			"Considerar terraçamento em áreas inclinadas",
			"Monitoramento de erosão necessário",
		},
	}
	resultsJSON, _ := json.Marshal(results)

	analysis, err := gc.store.CreateGeospatial(ctx, &models.GeospatialAnalysis{
		UserID:          user.ID,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		FileName:        req.FileName,
		FileType:        req.FileType,
		FileContent:     req.FileContent,
		AnalysisResults: string(resultsJSON),
		IsPremium:       true,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"analysis": analysis, "results": results})
}

func (gc *GeoController) ListAnalyses(c *gin.Context) {
	analyses, err := gc.store.GetGeospatialByUser(c.Request.Context(), middlewares.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, analyses)
}
