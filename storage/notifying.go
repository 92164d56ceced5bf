package storage

import (
	"context"

	"go.uber.org/zap"

	"github.com/barnaud18/AgriScienceCrop-API/models"
)

// Notifier is the push side of the realtime layer as seen from the store.
// Delivery is best-effort: implementations no-op when the target user has
// no live connection.
type Notifier interface {
	SendToUser(userID string, payload any)
}

// NotifyingStorage decorates a Storage so that the two writes that fan out
// in real time push to the owning user after persistence. Pushes run
// post-commit and never fail the write.
type NotifyingStorage struct {
	Storage
	notifier Notifier
	logger   *zap.Logger
}

func NewNotifyingStorage(inner Storage, notifier Notifier, logger *zap.Logger) *NotifyingStorage {
	return &NotifyingStorage{
		Storage:  inner,
		notifier: notifier,
		logger:   logger,
	}
}

// CreateMonitoringData persists the reading, then resolves field → owner and
// pushes a monitoring_data event. An unresolvable field skips the push.
func (s *NotifyingStorage) CreateMonitoringData(ctx context.Context, data *models.MonitoringData) (*models.MonitoringData, error) {
	created, err := s.Storage.CreateMonitoringData(ctx, data)
	if err != nil {
		return nil, err
	}

	field, err := s.Storage.GetCropField(ctx, created.FieldID)
	if err != nil || field == nil {
		if err != nil {
			s.logger.Warn("field lookup failed, skipping push",
				zap.String("field_id", created.FieldID),
				zap.Error(err))
		}
		return created, nil
	}

	s.notifier.SendToUser(field.UserID, map[string]any{
		"type": "monitoring_data",
		"data": created,
	})
	return created, nil
}

// CreateAlert persists the alert and pushes a new_alert event to its owner.
func (s *NotifyingStorage) CreateAlert(ctx context.Context, alert *models.Alert) (*models.Alert, error) {
	created, err := s.Storage.CreateAlert(ctx, alert)
	if err != nil {
		return nil, err
	}

	s.notifier.SendToUser(created.UserID, map[string]any{
		"type":  "new_alert",
		"alert": created,
	})
	return created, nil
}
