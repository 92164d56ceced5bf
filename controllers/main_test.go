package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/barnaud18/AgriScienceCrop-API/middlewares"
	"github.com/barnaud18/AgriScienceCrop-API/models"
	"github.com/barnaud18/AgriScienceCrop-API/realtime"
	"github.com/barnaud18/AgriScienceCrop-API/storage"
)

const testSecret = "test-secret"
const testDefaultYield = 3000.0

type testEnv struct {
	router *gin.Engine
	mem    *storage.MemStorage
	hub    *realtime.Hub
}

// newTestEnv wires the full application the same way main does, with the
// in-memory store and an external statistics endpoint that cannot be
// reached, so productivity tests exercise the fallback path.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	mem := storage.NewMemStorage()
	hub := realtime.NewHub(testSecret, logger)
	store := storage.NewNotifyingStorage(mem, hub, logger)

	ibge := NewIBGEService("http://127.0.0.1:1", "http://127.0.0.1:1", logger)

	health := NewHealthController(store, "test")
	auth := NewAuthController(store, testSecret, logger)
	catalog := NewCatalogController(store, logger)
	productivity := NewProductivityController(store, ibge, testDefaultYield, logger)
	geo := NewGeoController(store, logger)
	monitoring := NewMonitoringController(store, logger)

	r := gin.New()
	r.GET("/health", health.Health)
	r.POST("/api/auth/register", auth.Register)
	r.POST("/api/auth/login", auth.Login)
	r.GET("/api/crops", catalog.ListCrops)
	r.GET("/api/protocols", catalog.ListProtocols)
	r.GET("/ws", hub.HandleWS)

	api := r.Group("/api")
	api.Use(middlewares.AuthRequired(testSecret))
	api.GET("/auth/me", auth.Me)
	api.GET("/recommendations", catalog.ListRecommendations)
	api.POST("/recommendations", catalog.CreateRecommendation)
	api.PUT("/recommendations/:id", catalog.UpdateRecommendation)
	api.DELETE("/recommendations/:id", catalog.DeleteRecommendation)
	api.POST("/recommendations/generate", catalog.GenerateRecommendations)
	api.POST("/productivity/calculate", productivity.Calculate)
	api.GET("/productivity/calculations", productivity.ListCalculations)
	api.POST("/professional/analyze", geo.Analyze)
	api.GET("/professional/analyses", geo.ListAnalyses)
	api.GET("/dashboard/stats", catalog.DashboardStats)
	api.GET("/monitoring/fields", monitoring.ListFields)
	api.POST("/monitoring/fields", monitoring.CreateField)
	api.PUT("/monitoring/fields/:id", monitoring.UpdateField)
	api.DELETE("/monitoring/fields/:id", monitoring.DeleteField)
	api.GET("/monitoring/data/:fieldId", monitoring.GetFieldData)
	api.POST("/monitoring/data", monitoring.CreateData)
	api.GET("/monitoring/alerts", monitoring.ListAlerts)
	api.POST("/monitoring/alerts", monitoring.CreateAlert)
	api.PUT("/monitoring/alerts/:id/read", monitoring.MarkAlertRead)
	api.PUT("/monitoring/alerts/:id/resolve", monitoring.MarkAlertResolved)
	api.GET("/monitoring/subscriptions", monitoring.ListSubscriptions)
	api.POST("/monitoring/subscriptions", monitoring.CreateSubscription)
	api.PUT("/monitoring/subscriptions/:id", monitoring.UpdateSubscription)
	api.DELETE("/monitoring/subscriptions/:id", monitoring.DeleteSubscription)

	return &testEnv{router: r, mem: mem, hub: hub}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// registerUser creates a user through the API and returns its id and token.
func (e *testEnv) registerUser(t *testing.T, email string) (string, string) {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{
		Username:        email,
		Email:           email,
		Password:        "secret123",
		ConfirmPassword: "secret123",
		Role:            "farmer",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string            `json:"token"`
		User  models.PublicUser `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.User.ID, resp.Token
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}
