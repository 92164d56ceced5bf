package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/barnaud18/AgriScienceCrop-API/models"
)

// GormStorage implements Storage on PostgreSQL. Selected when DATABASE_URL
// is set; the contract is identical to MemStorage.
type GormStorage struct {
	db *gorm.DB
}

func NewGormStorage(dsn string) (*GormStorage, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Crop{},
		&models.ManagementProtocol{},
		&models.Recommendation{},
		&models.ProductivityCalculation{},
		&models.GeospatialAnalysis{},
		&models.CropField{},
		&models.MonitoringData{},
		&models.Alert{},
		&models.AlertSubscription{},
	); err != nil {
		return nil, err
	}

	s := &GormStorage{db: db}
	if err := s.seedCatalogs(); err != nil {
		return nil, err
	}
	return s, nil
}

// seedCatalogs inserts the crop and protocol catalogs on first boot.
func (s *GormStorage) seedCatalogs() error {
	var count int64
	if err := s.db.Model(&models.Crop{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		seeded := NewMemStorage()
		crops, _ := seeded.GetAllCrops(context.Background())
		for i := range crops {
			if err := s.db.Create(&crops[i]).Error; err != nil {
				return err
			}
		}
		protocols, _ := seeded.GetAllProtocols(context.Background())
		for i := range protocols {
			if err := s.db.Create(&protocols[i]).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *GormStorage) Ping(ctx context.Context) error {
	db, err := s.db.WithContext(ctx).DB()
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

func first[T any](db *gorm.DB, id string) (*T, error) {
	var record T
	if err := db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// Users

func (s *GormStorage) GetUser(ctx context.Context, id string) (*models.User, error) {
	return first[models.User](s.db.WithContext(ctx), id)
}

func (s *GormStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormStorage) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	now := time.Now()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *GormStorage) UpdateUser(ctx context.Context, id string, update func(*models.User)) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil || user == nil {
		return nil, err
	}
	update(user)
	user.UpdatedAt = time.Now()
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Crop catalog

func (s *GormStorage) GetAllCrops(ctx context.Context) ([]models.Crop, error) {
	var crops []models.Crop
	if err := s.db.WithContext(ctx).Order("name").Find(&crops).Error; err != nil {
		return nil, err
	}
	return crops, nil
}

func (s *GormStorage) GetCrop(ctx context.Context, id string) (*models.Crop, error) {
	return first[models.Crop](s.db.WithContext(ctx), id)
}

func (s *GormStorage) CreateCrop(ctx context.Context, crop *models.Crop) (*models.Crop, error) {
	crop.ID = uuid.NewString()
	crop.CreatedAt = time.Now()
	if err := s.db.WithContext(ctx).Create(crop).Error; err != nil {
		return nil, err
	}
	return crop, nil
}

// Protocol catalog

func (s *GormStorage) GetAllProtocols(ctx context.Context) ([]models.ManagementProtocol, error) {
	var protocols []models.ManagementProtocol
	if err := s.db.WithContext(ctx).Order("name").Find(&protocols).Error; err != nil {
		return nil, err
	}
	return protocols, nil
}

func (s *GormStorage) GetProtocol(ctx context.Context, id string) (*models.ManagementProtocol, error) {
	return first[models.ManagementProtocol](s.db.WithContext(ctx), id)
}

func (s *GormStorage) CreateProtocol(ctx context.Context, protocol *models.ManagementProtocol) (*models.ManagementProtocol, error) {
	protocol.ID = uuid.NewString()
	protocol.CreatedAt = time.Now()
	if err := s.db.WithContext(ctx).Create(protocol).Error; err != nil {
		return nil, err
	}
	return protocol, nil
}

// Recommendations

func (s *GormStorage) GetRecommendationsByUser(ctx context.Context, userID string) ([]models.Recommendation, error) {
	recs := make([]models.Recommendation, 0)
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (s *GormStorage) GetRecommendation(ctx context.Context, id string) (*models.Recommendation, error) {
	return first[models.Recommendation](s.db.WithContext(ctx), id)
}

func (s *GormStorage) CreateRecommendation(ctx context.Context, rec *models.Recommendation) (*models.Recommendation, error) {
	now := time.Now()
	rec.ID = uuid.NewString()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if rec.Status == "" {
		rec.Status = "pending"
	}
	if rec.Priority == "" {
		rec.Priority = "medium"
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *GormStorage) UpdateRecommendation(ctx context.Context, id string, update func(*models.Recommendation)) (*models.Recommendation, error) {
	rec, err := s.GetRecommendation(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}
	update(rec)
	rec.UpdatedAt = time.Now()
	if err := s.db.WithContext(ctx).Save(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *GormStorage) DeleteRecommendation(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&models.Recommendation{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

// Productivity calculations

func (s *GormStorage) GetCalculationsByUser(ctx context.Context, userID string) ([]models.ProductivityCalculation, error) {
	calcs := make([]models.ProductivityCalculation, 0)
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&calcs).Error; err != nil {
		return nil, err
	}
	return calcs, nil
}

func (s *GormStorage) CreateCalculation(ctx context.Context, calc *models.ProductivityCalculation) (*models.ProductivityCalculation, error) {
	calc.ID = uuid.NewString()
	calc.CreatedAt = time.Now()
	if err := s.db.WithContext(ctx).Create(calc).Error; err != nil {
		return nil, err
	}
	return calc, nil
}

// Geospatial analyses

func (s *GormStorage) GetGeospatialByUser(ctx context.Context, userID string) ([]models.GeospatialAnalysis, error) {
	analyses := make([]models.GeospatialAnalysis, 0)
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&analyses).Error; err != nil {
		return nil, err
	}
	return analyses, nil
}

func (s *GormStorage) CreateGeospatial(ctx context.Context, analysis *models.GeospatialAnalysis) (*models.GeospatialAnalysis, error) {
	analysis.ID = uuid.NewString()
	analysis.CreatedAt = time.Now()
	if err := s.db.WithContext(ctx).Create(analysis).Error; err != nil {
		return nil, err
	}
	return analysis, nil
}

// Crop fields

func (s *GormStorage) GetCropFieldsByUser(ctx context.Context, userID string) ([]models.CropField, error) {
	fields := make([]models.CropField, 0)
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}

func (s *GormStorage) GetCropField(ctx context.Context, id string) (*models.CropField, error) {
	return first[models.CropField](s.db.WithContext(ctx), id)
}

func (s *GormStorage) CreateCropField(ctx context.Context, field *models.CropField) (*models.CropField, error) {
	now := time.Now()
	field.ID = uuid.NewString()
	field.CreatedAt = now
	field.UpdatedAt = now
	if field.GrowthStage == "" {
		field.GrowthStage = "planted"
	}
	if field.Status == "" {
		field.Status = "active"
	}
	if err := s.db.WithContext(ctx).Create(field).Error; err != nil {
		return nil, err
	}
	return field, nil
}

func (s *GormStorage) UpdateCropField(ctx context.Context, id string, update func(*models.CropField)) (*models.CropField, error) {
	field, err := s.GetCropField(ctx, id)
	if err != nil || field == nil {
		return nil, err
	}
	update(field)
	field.UpdatedAt = time.Now()
	if err := s.db.WithContext(ctx).Save(field).Error; err != nil {
		return nil, err
	}
	return field, nil
}

func (s *GormStorage) DeleteCropField(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&models.CropField{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

// Monitoring readings

func (s *GormStorage) GetMonitoringDataByField(ctx context.Context, fieldID string) ([]models.MonitoringData, error) {
	data := make([]models.MonitoringData, 0)
	if err := s.db.WithContext(ctx).Where("field_id = ?", fieldID).Order("timestamp desc").Find(&data).Error; err != nil {
		return nil, err
	}
	return data, nil
}

func (s *GormStorage) GetLatestMonitoringData(ctx context.Context, fieldID, sensorType string) ([]models.MonitoringData, error) {
	data := make([]models.MonitoringData, 0)
	q := s.db.WithContext(ctx).Where("field_id = ?", fieldID)
	if sensorType != "" {
		q = q.Where("sensor_type = ?", sensorType)
	}
	if err := q.Order("timestamp desc").Limit(latestReadingsLimit).Find(&data).Error; err != nil {
		return nil, err
	}
	return data, nil
}

func (s *GormStorage) CreateMonitoringData(ctx context.Context, data *models.MonitoringData) (*models.MonitoringData, error) {
	now := time.Now()
	data.ID = uuid.NewString()
	data.Timestamp = now
	data.CreatedAt = now
	if err := s.db.WithContext(ctx).Create(data).Error; err != nil {
		return nil, err
	}
	return data, nil
}

// Alerts

func (s *GormStorage) GetAlertsByUser(ctx context.Context, userID string) ([]models.Alert, error) {
	alerts := make([]models.Alert, 0)
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

func (s *GormStorage) GetUnreadAlertsByUser(ctx context.Context, userID string) ([]models.Alert, error) {
	alerts := make([]models.Alert, 0)
	if err := s.db.WithContext(ctx).Where("user_id = ? AND is_read = ?", userID, false).Order("created_at desc").Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

func (s *GormStorage) GetAlert(ctx context.Context, id string) (*models.Alert, error) {
	return first[models.Alert](s.db.WithContext(ctx), id)
}

func (s *GormStorage) CreateAlert(ctx context.Context, alert *models.Alert) (*models.Alert, error) {
	alert.ID = uuid.NewString()
	alert.CreatedAt = time.Now()
	if err := s.db.WithContext(ctx).Create(alert).Error; err != nil {
		return nil, err
	}
	return alert, nil
}

func (s *GormStorage) MarkAlertRead(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.Alert{}).Where("id = ?", id).Update("is_read", true)
	return res.RowsAffected > 0, res.Error
}

func (s *GormStorage) MarkAlertResolved(ctx context.Context, id string) (bool, error) {
	alert, err := s.GetAlert(ctx, id)
	if err != nil {
		return false, err
	}
	if alert == nil {
		return false, nil
	}
	alert.IsResolved = true
	if alert.ResolvedAt == nil {
		now := time.Now()
		alert.ResolvedAt = &now
	}
	if err := s.db.WithContext(ctx).Save(alert).Error; err != nil {
		return false, err
	}
	return true, nil
}

// Alert subscriptions

func (s *GormStorage) GetSubscriptionsByUser(ctx context.Context, userID string) ([]models.AlertSubscription, error) {
	subs := make([]models.AlertSubscription, 0)
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *GormStorage) CreateSubscription(ctx context.Context, sub *models.AlertSubscription) (*models.AlertSubscription, error) {
	sub.ID = uuid.NewString()
	sub.CreatedAt = time.Now()
	if sub.NotificationMethod == "" {
		sub.NotificationMethod = "app"
	}
	if err := s.db.WithContext(ctx).Create(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *GormStorage) UpdateSubscription(ctx context.Context, id string, update func(*models.AlertSubscription)) (*models.AlertSubscription, error) {
	var sub models.AlertSubscription
	if err := s.db.WithContext(ctx).First(&sub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	update(&sub)
	if err := s.db.WithContext(ctx).Save(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *GormStorage) DeleteSubscription(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&models.AlertSubscription{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}
