package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/barnaud18/AgriScienceCrop-API/middlewares"
	"github.com/barnaud18/AgriScienceCrop-API/models"
	"github.com/barnaud18/AgriScienceCrop-API/storage"
)

// CatalogController serves the crop/protocol catalogs, recommendations and
// the dashboard aggregate.
type CatalogController struct {
	store  storage.Storage
	logger *zap.Logger
}

func NewCatalogController(store storage.Storage, logger *zap.Logger) *CatalogController {
	return &CatalogController{store: store, logger: logger}
}

func (cc *CatalogController) ListCrops(c *gin.Context) {
	crops, err := cc.store.GetAllCrops(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, crops)
}

func (cc *CatalogController) ListProtocols(c *gin.Context) {
	protocols, err := cc.store.GetAllProtocols(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, protocols)
}

func (cc *CatalogController) ListRecommendations(c *gin.Context) {
	recs, err := cc.store.GetRecommendationsByUser(c.Request.Context(), middlewares.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (cc *CatalogController) CreateRecommendation(c *gin.Context) {
	var req models.CreateRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	rec, err := cc.store.CreateRecommendation(c.Request.Context(), &models.Recommendation{
		UserID:        middlewares.UserID(c),
		CropID:        req.CropID,
		ProtocolID:    req.ProtocolID,
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Status:        req.Status,
		Priority:      req.Priority,
		ScheduledDate: req.ScheduledDate,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (cc *CatalogController) UpdateRecommendation(c *gin.Context) {
	var req models.UpdateRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	rec, err := cc.store.UpdateRecommendation(c.Request.Context(), c.Param("id"), func(r *models.Recommendation) {
		if req.Title != nil {
			r.Title = *req.Title
		}
		if req.Description != nil {
			r.Description = *req.Description
		}
		if req.Category != nil {
			r.Category = *req.Category
		}
		if req.Status != nil {
			r.Status = *req.Status
		}
		if req.Priority != nil {
			r.Priority = *req.Priority
		}
		if req.ScheduledDate != nil {
			r.ScheduledDate = req.ScheduledDate
		}
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Recommendation not found"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (cc *CatalogController) DeleteRecommendation(c *gin.Context) {
	deleted, err := cc.store.DeleteRecommendation(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"message": "Recommendation not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// GenerateRecommendations creates the standard recommendation set for a
// crop and protocol pair.
func (cc *CatalogController) GenerateRecommendations(c *gin.Context) {
	var req struct {
		CropID     string `json:"cropId" binding:"required"`
		ProtocolID string `json:"protocolId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Crop and protocol required"})
		return
	}

	ctx := c.Request.Context()
	crop, err := cc.store.GetCrop(ctx, req.CropID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	protocol, err := cc.store.GetProtocol(ctx, req.ProtocolID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if crop == nil || protocol == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Crop or protocol not found"})
		return
	}

	base := []models.Recommendation{
		{
			Title:       fmt.Sprintf("Manejo de Solo - %s", crop.Name),
			Description: fmt.Sprintf("Análise de solo e correção para cultivo de %s com protocolo %s", crop.Name, protocol.Name),
			Category:    "soil_management",
			Status:      "active",
			Priority:    "high",
		},
		{
			Title:       fmt.Sprintf("Controle de Pragas - %s", crop.Name),
			Description: fmt.Sprintf("Monitoramento e controle integrado de pragas para %s", crop.Name),
			Category:    "pest_management",
			Status:      "pending",
			Priority:    "medium",
		},
		{
			Title:       fmt.Sprintf("Nutrição Foliar - %s", crop.Name),
			Description: fmt.Sprintf("Aplicação de micronutrientes para %s", crop.Name),
			Category:    "crop_management",
			Status:      "scheduled",
			Priority:    "medium",
		},
	}

	recs := make([]models.Recommendation, 0, len(base))
	for i := range base {
		base[i].UserID = middlewares.UserID(c)
		base[i].CropID = req.CropID
		base[i].ProtocolID = req.ProtocolID
		rec, err := cc.store.CreateRecommendation(ctx, &base[i])
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		recs = append(recs, *rec)
	}
	c.JSON(http.StatusOK, recs)
}

// DashboardStats aggregates the user's calculations and recommendations.
func (cc *CatalogController) DashboardStats(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middlewares.UserID(c)

	recs, err := cc.store.GetRecommendationsByUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	calcs, err := cc.store.GetCalculationsByUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	var avgProductivity, totalArea float64
	for _, calc := range calcs {
		avgProductivity += calc.IBGEYield
		totalArea += calc.Area
	}
	if len(calcs) > 0 {
		avgProductivity /= float64(len(calcs))
	}

	active := 0
	for _, rec := range recs {
		if rec.Status == "active" {
			active++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"cropsAnalyzed":         len(calcs),
		"avgProductivity":       avgProductivity,
		"activeRecommendations": active,
		"totalArea":             totalArea,
	})
}
