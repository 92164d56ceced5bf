package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/barnaud18/AgriScienceCrop-API/models"
)

const latestReadingsLimit = 10

// MemStorage is the reference Storage implementation: one map per entity
// kind behind a single RWMutex. The crop and protocol catalogs are seeded
// at construction.
type MemStorage struct {
	mu sync.RWMutex

	users           map[string]models.User
	crops           map[string]models.Crop
	protocols       map[string]models.ManagementProtocol
	recommendations map[string]models.Recommendation
	calculations    map[string]models.ProductivityCalculation
	geospatial      map[string]models.GeospatialAnalysis
	cropFields      map[string]models.CropField
	monitoringData  map[string]models.MonitoringData
	alerts          map[string]models.Alert
	subscriptions   map[string]models.AlertSubscription
}

func NewMemStorage() *MemStorage {
	s := &MemStorage{
		users:           make(map[string]models.User),
		crops:           make(map[string]models.Crop),
		protocols:       make(map[string]models.ManagementProtocol),
		recommendations: make(map[string]models.Recommendation),
		calculations:    make(map[string]models.ProductivityCalculation),
		geospatial:      make(map[string]models.GeospatialAnalysis),
		cropFields:      make(map[string]models.CropField),
		monitoringData:  make(map[string]models.MonitoringData),
		alerts:          make(map[string]models.Alert),
		subscriptions:   make(map[string]models.AlertSubscription),
	}
	s.seed()
	return s
}

func (s *MemStorage) seed() {
	crops := []models.Crop{
		{Name: "Soja", ScientificName: "Glycine max", Category: "Grãos", IBGECode: "2713", Emoji: "🌱"},
		{Name: "Milho", ScientificName: "Zea mays", Category: "Grãos", IBGECode: "2707", Emoji: "🌽"},
		{Name: "Café", ScientificName: "Coffea arabica", Category: "Permanente", IBGECode: "2701", Emoji: "☕"},
		{Name: "Cana-de-açúcar", ScientificName: "Saccharum officinarum", Category: "Industrial", IBGECode: "2704", Emoji: "🍊"},
		{Name: "Trigo", ScientificName: "Triticum aestivum", Category: "Grãos", IBGECode: "2714", Emoji: "🌾"},
		{Name: "Amendoim", ScientificName: "Arachis hypogaea", Category: "Oleaginosa", IBGECode: "2699", Emoji: "🥜"},
		{Name: "Algodão", ScientificName: "Gossypium spp.", Category: "Fibra", IBGECode: "2700", Emoji: "☁️"},
		{Name: "Arroz", ScientificName: "Oryza sativa", Category: "Grãos", IBGECode: "2703", Emoji: "🌾"},
	}
	for i := range crops {
		crops[i].ID = uuid.NewString()
		crops[i].CreatedAt = time.Now()
		s.crops[crops[i].ID] = crops[i]
	}

	protocols := []models.ManagementProtocol{
		{Name: "Convencional", Description: "Manejo tradicional com agroquímicos", Type: "conventional"},
		{Name: "Orgânico", Description: "Sem uso de produtos sintéticos", Type: "organic"},
		{Name: "Biológico", Description: "Controle biológico integrado", Type: "biological"},
		{Name: "Convencional + Biológico", Description: "Manejo integrado híbrido", Type: "conventional_biological"},
	}
	for i := range protocols {
		protocols[i].ID = uuid.NewString()
		protocols[i].CreatedAt = time.Now()
		s.protocols[protocols[i].ID] = protocols[i]
	}
}

func (s *MemStorage) Ping(ctx context.Context) error {
	return nil
}

// Users

func (s *MemStorage) GetUser(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (s *MemStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemStorage) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = *user
	return user, nil
}

func (s *MemStorage) UpdateUser(ctx context.Context, id string, update func(*models.User)) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	update(&u)
	u.UpdatedAt = time.Now()
	s.users[id] = u
	return &u, nil
}

// Crop catalog

func (s *MemStorage) GetAllCrops(ctx context.Context) ([]models.Crop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	crops := make([]models.Crop, 0, len(s.crops))
	for _, c := range s.crops {
		crops = append(crops, c)
	}
	sort.Slice(crops, func(i, j int) bool { return crops[i].Name < crops[j].Name })
	return crops, nil
}

func (s *MemStorage) GetCrop(ctx context.Context, id string) (*models.Crop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.crops[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (s *MemStorage) CreateCrop(ctx context.Context, crop *models.Crop) (*models.Crop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	crop.ID = uuid.NewString()
	crop.CreatedAt = time.Now()
	s.crops[crop.ID] = *crop
	return crop, nil
}

// Protocol catalog

func (s *MemStorage) GetAllProtocols(ctx context.Context) ([]models.ManagementProtocol, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	protocols := make([]models.ManagementProtocol, 0, len(s.protocols))
	for _, p := range s.protocols {
		protocols = append(protocols, p)
	}
	sort.Slice(protocols, func(i, j int) bool { return protocols[i].Name < protocols[j].Name })
	return protocols, nil
}

func (s *MemStorage) GetProtocol(ctx context.Context, id string) (*models.ManagementProtocol, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.protocols[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (s *MemStorage) CreateProtocol(ctx context.Context, protocol *models.ManagementProtocol) (*models.ManagementProtocol, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	protocol.ID = uuid.NewString()
	protocol.CreatedAt = time.Now()
	s.protocols[protocol.ID] = *protocol
	return protocol, nil
}

// Recommendations

func (s *MemStorage) GetRecommendationsByUser(ctx context.Context, userID string) ([]models.Recommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := make([]models.Recommendation, 0)
	for _, r := range s.recommendations {
		if r.UserID == userID {
			recs = append(recs, r)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].CreatedAt.After(recs[j].CreatedAt) })
	return recs, nil
}

func (s *MemStorage) GetRecommendation(ctx context.Context, id string) (*models.Recommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.recommendations[id]; ok {
		return &r, nil
	}
	return nil, nil
}

func (s *MemStorage) CreateRecommendation(ctx context.Context, rec *models.Recommendation) (*models.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
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
	s.recommendations[rec.ID] = *rec
	return rec, nil
}

func (s *MemStorage) UpdateRecommendation(ctx context.Context, id string, update func(*models.Recommendation)) (*models.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.recommendations[id]
	if !ok {
		return nil, nil
	}
	update(&r)
	r.UpdatedAt = time.Now()
	s.recommendations[id] = r
	return &r, nil
}

func (s *MemStorage) DeleteRecommendation(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recommendations[id]; !ok {
		return false, nil
	}
	delete(s.recommendations, id)
	return true, nil
}

// Productivity calculations

func (s *MemStorage) GetCalculationsByUser(ctx context.Context, userID string) ([]models.ProductivityCalculation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	calcs := make([]models.ProductivityCalculation, 0)
	for _, c := range s.calculations {
		if c.UserID == userID {
			calcs = append(calcs, c)
		}
	}
	sort.Slice(calcs, func(i, j int) bool { return calcs[i].CreatedAt.After(calcs[j].CreatedAt) })
	return calcs, nil
}

func (s *MemStorage) CreateCalculation(ctx context.Context, calc *models.ProductivityCalculation) (*models.ProductivityCalculation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	calc.ID = uuid.NewString()
	calc.CreatedAt = time.Now()
	s.calculations[calc.ID] = *calc
	return calc, nil
}

// Geospatial analyses

func (s *MemStorage) GetGeospatialByUser(ctx context.Context, userID string) ([]models.GeospatialAnalysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	analyses := make([]models.GeospatialAnalysis, 0)
	for _, g := range s.geospatial {
		if g.UserID == userID {
			analyses = append(analyses, g)
		}
	}
	sort.Slice(analyses, func(i, j int) bool { return analyses[i].CreatedAt.After(analyses[j].CreatedAt) })
	return analyses, nil
}

func (s *MemStorage) CreateGeospatial(ctx context.Context, analysis *models.GeospatialAnalysis) (*models.GeospatialAnalysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	analysis.ID = uuid.NewString()
	analysis.CreatedAt = time.Now()
	s.geospatial[analysis.ID] = *analysis
	return analysis, nil
}

// Crop fields

func (s *MemStorage) GetCropFieldsByUser(ctx context.Context, userID string) ([]models.CropField, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fields := make([]models.CropField, 0)
	for _, f := range s.cropFields {
		if f.UserID == userID {
			fields = append(fields, f)
		}
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].CreatedAt.After(fields[j].CreatedAt) })
	return fields, nil
}

func (s *MemStorage) GetCropField(ctx context.Context, id string) (*models.CropField, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if f, ok := s.cropFields[id]; ok {
		return &f, nil
	}
	return nil, nil
}

func (s *MemStorage) CreateCropField(ctx context.Context, field *models.CropField) (*models.CropField, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
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
	s.cropFields[field.ID] = *field
	return field, nil
}

func (s *MemStorage) UpdateCropField(ctx context.Context, id string, update func(*models.CropField)) (*models.CropField, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.cropFields[id]
	if !ok {
		return nil, nil
	}
	update(&f)
	f.UpdatedAt = time.Now()
	s.cropFields[id] = f
	return &f, nil
}

func (s *MemStorage) DeleteCropField(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cropFields[id]; !ok {
		return false, nil
	}
	delete(s.cropFields, id)
	return true, nil
}

// Monitoring readings

func (s *MemStorage) GetMonitoringDataByField(ctx context.Context, fieldID string) ([]models.MonitoringData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data := make([]models.MonitoringData, 0)
	for _, d := range s.monitoringData {
		if d.FieldID == fieldID {
			data = append(data, d)
		}
	}
	sort.Slice(data, func(i, j int) bool { return data[i].Timestamp.After(data[j].Timestamp) })
	return data, nil
}

func (s *MemStorage) GetLatestMonitoringData(ctx context.Context, fieldID, sensorType string) ([]models.MonitoringData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data := make([]models.MonitoringData, 0)
	for _, d := range s.monitoringData {
		if d.FieldID != fieldID {
			continue
		}
		if sensorType != "" && d.SensorType != sensorType {
			continue
		}
		data = append(data, d)
	}
	sort.Slice(data, func(i, j int) bool { return data[i].Timestamp.After(data[j].Timestamp) })
	if len(data) > latestReadingsLimit {
		data = data[:latestReadingsLimit]
	}
	return data, nil
}

func (s *MemStorage) CreateMonitoringData(ctx context.Context, data *models.MonitoringData) (*models.MonitoringData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	data.ID = uuid.NewString()
	data.Timestamp = now
	data.CreatedAt = now
	s.monitoringData[data.ID] = *data
	return data, nil
}

// Alerts

func (s *MemStorage) GetAlertsByUser(ctx context.Context, userID string) ([]models.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	alerts := make([]models.Alert, 0)
	for _, a := range s.alerts {
		if a.UserID == userID {
			alerts = append(alerts, a)
		}
	}
	sort.Slice(alerts, func(i, j int) bool { return alerts[i].CreatedAt.After(alerts[j].CreatedAt) })
	return alerts, nil
}

func (s *MemStorage) GetUnreadAlertsByUser(ctx context.Context, userID string) ([]models.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	alerts := make([]models.Alert, 0)
	for _, a := range s.alerts {
		if a.UserID == userID && !a.IsRead {
			alerts = append(alerts, a)
		}
	}
	sort.Slice(alerts, func(i, j int) bool { return alerts[i].CreatedAt.After(alerts[j].CreatedAt) })
	return alerts, nil
}

func (s *MemStorage) GetAlert(ctx context.Context, id string) (*models.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.alerts[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (s *MemStorage) CreateAlert(ctx context.Context, alert *models.Alert) (*models.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	alert.ID = uuid.NewString()
	alert.CreatedAt = time.Now()
	s.alerts[alert.ID] = *alert
	return alert, nil
}

func (s *MemStorage) MarkAlertRead(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.alerts[id]
	if !ok {
		return false, nil
	}
	a.IsRead = true
	s.alerts[id] = a
	return true, nil
}

func (s *MemStorage) MarkAlertResolved(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.alerts[id]
	if !ok {
		return false, nil
	}
	a.IsResolved = true
	if a.ResolvedAt == nil {
		now := time.Now()
		a.ResolvedAt = &now
	}
	s.alerts[id] = a
	return true, nil
}

// Alert subscriptions

func (s *MemStorage) GetSubscriptionsByUser(ctx context.Context, userID string) ([]models.AlertSubscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	subs := make([]models.AlertSubscription, 0)
	for _, sub := range s.subscriptions {
		if sub.UserID == userID {
			subs = append(subs, sub)
		}
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].CreatedAt.After(subs[j].CreatedAt) })
	return subs, nil
}

func (s *MemStorage) CreateSubscription(ctx context.Context, sub *models.AlertSubscription) (*models.AlertSubscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub.ID = uuid.NewString()
	sub.CreatedAt = time.Now()
	if sub.NotificationMethod == "" {
		sub.NotificationMethod = "app"
	}
	s.subscriptions[sub.ID] = *sub
	return sub, nil
}

func (s *MemStorage) UpdateSubscription(ctx context.Context, id string, update func(*models.AlertSubscription)) (*models.AlertSubscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subscriptions[id]
	if !ok {
		return nil, nil
	}
	update(&sub)
	s.subscriptions[id] = sub
	return &sub, nil
}

func (s *MemStorage) DeleteSubscription(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subscriptions[id]; !ok {
		return false, nil
	}
	delete(s.subscriptions, id)
	return true, nil
}
