package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/barnaud18/AgriScienceCrop-API/middlewares"
	"github.com/barnaud18/AgriScienceCrop-API/models"
	"github.com/barnaud18/AgriScienceCrop-API/storage"
)

const defaultCalculationYear = 2023

// marketValuePerTon approximates crop market value for the estimate.
const marketValuePerTon = 5000

type ProductivityController struct {
	store        storage.Storage
	ibge         *IBGEService
	defaultYield float64
	logger       *zap.Logger
}

func NewProductivityController(store storage.Storage, ibge *IBGEService, defaultYield float64, logger *zap.Logger) *ProductivityController {
	return &ProductivityController{store: store, ibge: ibge, defaultYield: defaultYield, logger: logger}
}

// Calculate estimates production for a crop and area using external yield
// statistics, falling back to the configured default yield when the lookup
// fails or returns nothing usable. The calculation is always persisted.
func (pc *ProductivityController) Calculate(c *gin.Context) {
	var req models.CalculateProductivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Municipality, state, area, and crop required"})
		return
	}
	if req.Year == 0 {
		req.Year = defaultCalculationYear
	}

	ctx := c.Request.Context()
	crop, err := pc.store.GetCrop(ctx, req.CropID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if crop == nil || crop.IBGECode == "" {
		c.JSON(http.StatusNotFound, gin.H{"message": "Crop not found or no IBGE code available"})
		return
	}

	municipalityCode := pc.ibge.MunicipalityCode(ctx, req.Municipality, req.State)
	rows := pc.ibge.ProductivityData(ctx, crop.IBGECode, municipalityCode, req.Year)

	yieldValue := pc.defaultYield
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.Variable), "produtividade") && row.Value > 0 {
			yieldValue = row.Value
			break
		}
	}

	estimatedProduction := (yieldValue * req.Area) / 1000 // kg/ha * ha -> tons
	estimatedValue := estimatedProduction * marketValuePerTon

	calc, err := pc.store.CreateCalculation(ctx, &models.ProductivityCalculation{
		UserID:              middlewares.UserID(c),
		CropID:              req.CropID,
		Municipality:        req.Municipality,
		State:               req.State,
		Area:                req.Area,
		IBGEYield:           yieldValue,
		EstimatedProduction: estimatedProduction,
		EstimatedValue:      estimatedValue,
		Year:                req.Year,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"calculation": calc,
		"data": gin.H{
			"yield":           yieldValue,
			"totalProduction": estimatedProduction,
			"marketValue":     estimatedValue,
			"source":          "IBGE SIDRA API",
		},
	})
}

func (pc *ProductivityController) ListCalculations(c *gin.Context) {
	calcs, err := pc.store.GetCalculationsByUser(c.Request.Context(), middlewares.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, calcs)
}
