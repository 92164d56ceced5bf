package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/barnaud18/AgriScienceCrop-API/middlewares"
	"github.com/barnaud18/AgriScienceCrop-API/models"
	"github.com/barnaud18/AgriScienceCrop-API/storage"
)

// MonitoringController serves fields, sensor readings, alerts and alert
// subscriptions. The injected store is the notifying decorator, so reading
// and alert creation fan out to the realtime layer after persistence.
type MonitoringController struct {
	store  storage.Storage
	logger *zap.Logger
}

func NewMonitoringController(store storage.Storage, logger *zap.Logger) *MonitoringController {
	return &MonitoringController{store: store, logger: logger}
}

// Crop fields

func (mc *MonitoringController) ListFields(c *gin.Context) {
	fields, err := mc.store.GetCropFieldsByUser(c.Request.Context(), middlewares.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, fields)
}

func (mc *MonitoringController) CreateField(c *gin.Context) {
	var req models.CreateCropFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	field, err := mc.store.CreateCropField(c.Request.Context(), &models.CropField{
		UserID:              middlewares.UserID(c),
		Name:                req.Name,
		CropID:              req.CropID,
		Area:                req.Area,
		Latitude:            req.Latitude,
		Longitude:           req.Longitude,
		PlantingDate:        req.PlantingDate,
		ExpectedHarvestDate: req.ExpectedHarvestDate,
		GrowthStage:         req.GrowthStage,
		Status:              req.Status,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, field)
}

func (mc *MonitoringController) UpdateField(c *gin.Context) {
	var req models.UpdateCropFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	field, err := mc.store.UpdateCropField(c.Request.Context(), c.Param("id"), func(f *models.CropField) {
		if req.Name != nil {
			f.Name = *req.Name
		}
		if req.Area != nil {
			f.Area = *req.Area
		}
		if req.Latitude != nil {
			f.Latitude = req.Latitude
		}
		if req.Longitude != nil {
			f.Longitude = req.Longitude
		}
		if req.PlantingDate != nil {
			f.PlantingDate = req.PlantingDate
		}
		if req.ExpectedHarvestDate != nil {
			f.ExpectedHarvestDate = req.ExpectedHarvestDate
		}
		if req.GrowthStage != nil {
			f.GrowthStage = *req.GrowthStage
		}
		if req.Status != nil {
			f.Status = *req.Status
		}
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if field == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Field not found"})
		return
	}
	c.JSON(http.StatusOK, field)
}

func (mc *MonitoringController) DeleteField(c *gin.Context) {
	deleted, err := mc.store.DeleteCropField(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"message": "Field not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Field deleted successfully"})
}

// Monitoring readings

// GetFieldData returns readings for a field, newest-first. A sensorType
// query selects the latest-10 path for that sensor kind.
func (mc *MonitoringController) GetFieldData(c *gin.Context) {
	fieldID := c.Param("fieldId")
	sensorType := c.Query("sensorType")

	var (
		data []models.MonitoringData
		err  error
	)
	if sensorType != "" {
		data, err = mc.store.GetLatestMonitoringData(c.Request.Context(), fieldID, sensorType)
	} else {
		data, err = mc.store.GetMonitoringDataByField(c.Request.Context(), fieldID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, data)
}

func (mc *MonitoringController) CreateData(c *gin.Context) {
	var req models.CreateMonitoringDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	data, err := mc.store.CreateMonitoringData(c.Request.Context(), &models.MonitoringData{
		FieldID:    req.FieldID,
		SensorType: req.SensorType,
		Value:      req.Value,
		Unit:       req.Unit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, data)
}

// Alerts

func (mc *MonitoringController) ListAlerts(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middlewares.UserID(c)

	var (
		alerts []models.Alert
		err    error
	)
	if c.Query("unread") == "true" {
		alerts, err = mc.store.GetUnreadAlertsByUser(ctx, userID)
	} else {
		alerts, err = mc.store.GetAlertsByUser(ctx, userID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, alerts)
}

func (mc *MonitoringController) CreateAlert(c *gin.Context) {
	var req models.CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	alert, err := mc.store.CreateAlert(c.Request.Context(), &models.Alert{
		UserID:         middlewares.UserID(c),
		FieldID:        req.FieldID,
		Type:           req.Type,
		Severity:       req.Severity,
		Title:          req.Title,
		Message:        req.Message,
		ActionRequired: req.ActionRequired,
		TriggerValue:   req.TriggerValue,
		ThresholdValue: req.ThresholdValue,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, alert)
}

func (mc *MonitoringController) MarkAlertRead(c *gin.Context) {
	ok, err := mc.store.MarkAlertRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Alert not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Alert marked as read"})
}

func (mc *MonitoringController) MarkAlertResolved(c *gin.Context) {
	ok, err := mc.store.MarkAlertResolved(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Alert not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Alert resolved"})
}

// Alert subscriptions

func (mc *MonitoringController) ListSubscriptions(c *gin.Context) {
	subs, err := mc.store.GetSubscriptionsByUser(c.Request.Context(), middlewares.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, subs)
}

func (mc *MonitoringController) CreateSubscription(c *gin.Context) {
	var req models.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	enabled := true
	if req.IsEnabled != nil {
		enabled = *req.IsEnabled
	}

	sub, err := mc.store.CreateSubscription(c.Request.Context(), &models.AlertSubscription{
		UserID:             middlewares.UserID(c),
		AlertType:          req.AlertType,
		FieldID:            req.FieldID,
		IsEnabled:          enabled,
		NotificationMethod: req.NotificationMethod,
		ThresholdSettings:  req.ThresholdSettings,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (mc *MonitoringController) UpdateSubscription(c *gin.Context) {
	var req models.UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	sub, err := mc.store.UpdateSubscription(c.Request.Context(), c.Param("id"), func(s *models.AlertSubscription) {
		if req.AlertType != nil {
			s.AlertType = *req.AlertType
		}
		if req.FieldID != nil {
			s.FieldID = req.FieldID
		}
		if req.IsEnabled != nil {
			s.IsEnabled = *req.IsEnabled
		}
		if req.NotificationMethod != nil {
			s.NotificationMethod = *req.NotificationMethod
		}
		if req.ThresholdSettings != nil {
			s.ThresholdSettings = *req.ThresholdSettings
		}
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if sub == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Subscription not found"})
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (mc *MonitoringController) DeleteSubscription(c *gin.Context) {
	deleted, err := mc.store.DeleteSubscription(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"message": "Subscription not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subscription deleted successfully"})
}
