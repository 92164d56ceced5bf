package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/barnaud18/AgriScienceCrop-API/models"
)

type recordedPush struct {
	userID  string
	payload any
}

type fakeNotifier struct {
	pushes []recordedPush
}

func (f *fakeNotifier) SendToUser(userID string, payload any) {
	f.pushes = append(f.pushes, recordedPush{userID: userID, payload: payload})
}

func TestNotifyingStorage_ReadingPushesToFieldOwner(t *testing.T) {
	mem := NewMemStorage()
	notifier := &fakeNotifier{}
	s := NewNotifyingStorage(mem, notifier, zap.NewNop())
	ctx := context.Background()

	field, err := mem.CreateCropField(ctx, &models.CropField{
		UserID: "owner-1", Name: "Talhão", CropID: "c1", Area: 10,
	})
	require.NoError(t, err)

	created, err := s.CreateMonitoringData(ctx, &models.MonitoringData{
		FieldID: field.ID, SensorType: "soil_moisture", Value: 31.2, Unit: "%",
	})
	require.NoError(t, err)

	require.Len(t, notifier.pushes, 1)
	assert.Equal(t, "owner-1", notifier.pushes[0].userID)

	payload, ok := notifier.pushes[0].payload.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "monitoring_data", payload["type"])
	assert.Equal(t, created, payload["data"])
}

func TestNotifyingStorage_UnresolvableFieldSkipsPush(t *testing.T) {
	mem := NewMemStorage()
	notifier := &fakeNotifier{}
	s := NewNotifyingStorage(mem, notifier, zap.NewNop())

	created, err := s.CreateMonitoringData(context.Background(), &models.MonitoringData{
		FieldID: "no-such-field", SensorType: "ph", Value: 6.1, Unit: "pH",
	})
	require.NoError(t, err, "persistence must succeed even when the push is skipped")
	require.NotNil(t, created)
	assert.Empty(t, notifier.pushes)
}

func TestNotifyingStorage_AlertPushesToOwner(t *testing.T) {
	mem := NewMemStorage()
	notifier := &fakeNotifier{}
	s := NewNotifyingStorage(mem, notifier, zap.NewNop())

	created, err := s.CreateAlert(context.Background(), &models.Alert{
		UserID: "u-42", Type: "pest", Severity: "high", Title: "X", Message: "Y",
	})
	require.NoError(t, err)

	require.Len(t, notifier.pushes, 1)
	assert.Equal(t, "u-42", notifier.pushes[0].userID)

	payload := notifier.pushes[0].payload.(map[string]any)
	assert.Equal(t, "new_alert", payload["type"])
	assert.Equal(t, created, payload["alert"])
}

func TestNotifyingStorage_DelegatesEverythingElse(t *testing.T) {
	mem := NewMemStorage()
	s := NewNotifyingStorage(mem, &fakeNotifier{}, zap.NewNop())
	ctx := context.Background()

	crops, err := s.GetAllCrops(ctx)
	require.NoError(t, err)
	assert.Len(t, crops, 8)

	user, err := s.CreateUser(ctx, &models.User{Username: "u", Email: "u@x.com", Password: "p", Role: "farmer"})
	require.NoError(t, err)

	got, err := s.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
}
