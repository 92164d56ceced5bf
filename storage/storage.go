package storage

import (
	"context"

	"github.com/barnaud18/AgriScienceCrop-API/models"
)

// Storage is the persistence contract for every entity kind. Implementations
// generate identifiers and stamp timestamps at the moment of the mutating
// call; callers never supply either.
//
// Lookups for a missing identifier return (nil, nil); updates on a missing
// identifier return (nil, nil); deletes return whether a record existed.
type Storage interface {
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error

	// Users
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	UpdateUser(ctx context.Context, id string, update func(*models.User)) (*models.User, error)

	// Crop catalog
	GetAllCrops(ctx context.Context) ([]models.Crop, error)
	GetCrop(ctx context.Context, id string) (*models.Crop, error)
	CreateCrop(ctx context.Context, crop *models.Crop) (*models.Crop, error)

	// Protocol catalog
	GetAllProtocols(ctx context.Context) ([]models.ManagementProtocol, error)
	GetProtocol(ctx context.Context, id string) (*models.ManagementProtocol, error)
	CreateProtocol(ctx context.Context, protocol *models.ManagementProtocol) (*models.ManagementProtocol, error)

	// Recommendations
	GetRecommendationsByUser(ctx context.Context, userID string) ([]models.Recommendation, error)
	GetRecommendation(ctx context.Context, id string) (*models.Recommendation, error)
	CreateRecommendation(ctx context.Context, rec *models.Recommendation) (*models.Recommendation, error)
	UpdateRecommendation(ctx context.Context, id string, update func(*models.Recommendation)) (*models.Recommendation, error)
	DeleteRecommendation(ctx context.Context, id string) (bool, error)

	// Productivity calculations
	GetCalculationsByUser(ctx context.Context, userID string) ([]models.ProductivityCalculation, error)
	CreateCalculation(ctx context.Context, calc *models.ProductivityCalculation) (*models.ProductivityCalculation, error)

	// Geospatial analyses
	GetGeospatialByUser(ctx context.Context, userID string) ([]models.GeospatialAnalysis, error)
	CreateGeospatial(ctx context.Context, analysis *models.GeospatialAnalysis) (*models.GeospatialAnalysis, error)

	// Crop fields
	GetCropFieldsByUser(ctx context.Context, userID string) ([]models.CropField, error)
	GetCropField(ctx context.Context, id string) (*models.CropField, error)
	CreateCropField(ctx context.Context, field *models.CropField) (*models.CropField, error)
	UpdateCropField(ctx context.Context, id string, update func(*models.CropField)) (*models.CropField, error)
	DeleteCropField(ctx context.Context, id string) (bool, error)

	// Monitoring readings. Lists are newest-first by timestamp; the latest
	// variant caps the result at the 10 most recent readings.
	GetMonitoringDataByField(ctx context.Context, fieldID string) ([]models.MonitoringData, error)
	GetLatestMonitoringData(ctx context.Context, fieldID, sensorType string) ([]models.MonitoringData, error)
	CreateMonitoringData(ctx context.Context, data *models.MonitoringData) (*models.MonitoringData, error)

	// Alerts. Lists are newest-first by creation time. MarkAlertResolved
	// sets the resolution timestamp only on the first call.
	GetAlertsByUser(ctx context.Context, userID string) ([]models.Alert, error)
	GetUnreadAlertsByUser(ctx context.Context, userID string) ([]models.Alert, error)
	GetAlert(ctx context.Context, id string) (*models.Alert, error)
	CreateAlert(ctx context.Context, alert *models.Alert) (*models.Alert, error)
	MarkAlertRead(ctx context.Context, id string) (bool, error)
	MarkAlertResolved(ctx context.Context, id string) (bool, error)

	// Alert subscriptions
	GetSubscriptionsByUser(ctx context.Context, userID string) ([]models.AlertSubscription, error)
	CreateSubscription(ctx context.Context, sub *models.AlertSubscription) (*models.AlertSubscription, error)
	UpdateSubscription(ctx context.Context, id string, update func(*models.AlertSubscription)) (*models.AlertSubscription, error)
	DeleteSubscription(ctx context.Context, id string) (bool, error)
}
