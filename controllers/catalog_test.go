package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barnaud18/AgriScienceCrop-API/models"
)

func seededCatalog(t *testing.T, env *testEnv) ([]models.Crop, []models.ManagementProtocol) {
	t.Helper()
	w := env.do(t, http.MethodGet, "/api/crops", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	crops := decodeJSON[[]models.Crop](t, w)

	w = env.do(t, http.MethodGet, "/api/protocols", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	protocols := decodeJSON[[]models.ManagementProtocol](t, w)
	return crops, protocols
}

func TestCatalogsArePublic(t *testing.T) {
	env := newTestEnv(t)
	crops, protocols := seededCatalog(t, env)
	assert.Len(t, crops, 8)
	assert.Len(t, protocols, 4)
	for _, crop := range crops {
		assert.NotEmpty(t, crop.IBGECode, crop.Name)
	}
}

func TestRecommendationCRUD(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.registerUser(t, "rec@example.com")
	crops, protocols := seededCatalog(t, env)

	w := env.do(t, http.MethodPost, "/api/recommendations", token, models.CreateRecommendationRequest{
		CropID:      crops[0].ID,
		ProtocolID:  protocols[0].ID,
		Title:       "Adubação de cobertura",
		Description: "Aplicar nitrogênio em V4",
		Category:    "crop_management",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	rec := decodeJSON[models.Recommendation](t, w)
	assert.Equal(t, "pending", rec.Status)
	assert.Equal(t, "medium", rec.Priority)

	status := "completed"
	w = env.do(t, http.MethodPut, "/api/recommendations/"+rec.ID, token, models.UpdateRecommendationRequest{Status: &status})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeJSON[models.Recommendation](t, w)
	assert.Equal(t, "completed", updated.Status)

	w = env.do(t, http.MethodPut, "/api/recommendations/missing", token, models.UpdateRecommendationRequest{Status: &status})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodDelete, "/api/recommendations/"+rec.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = env.do(t, http.MethodDelete, "/api/recommendations/"+rec.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerateRecommendations(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.registerUser(t, "gen@example.com")
	crops, protocols := seededCatalog(t, env)

	body := map[string]string{"cropId": crops[0].ID, "protocolId": protocols[0].ID}
	w := env.do(t, http.MethodPost, "/api/recommendations/generate", token, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	recs := decodeJSON[[]models.Recommendation](t, w)
	require.Len(t, recs, 3)
	assert.Contains(t, recs[0].Title, crops[0].Name)

	w = env.do(t, http.MethodGet, "/api/recommendations", token, nil)
	listed := decodeJSON[[]models.Recommendation](t, w)
	assert.Len(t, listed, 3)
}

func TestGenerateRecommendations_UnknownCrop(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.registerUser(t, "gen2@example.com")
	_, protocols := seededCatalog(t, env)

	body := map[string]string{"cropId": "missing", "protocolId": protocols[0].ID}
	w := env.do(t, http.MethodPost, "/api/recommendations/generate", token, body)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDashboardStats(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.registerUser(t, "dash@example.com")
	crops, protocols := seededCatalog(t, env)

	body := map[string]string{"cropId": crops[0].ID, "protocolId": protocols[0].ID}
	w := env.do(t, http.MethodPost, "/api/recommendations/generate", token, body)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/productivity/calculate", token, models.CalculateProductivityRequest{
		Municipality: "Sorriso",
		State:        "MT",
		Area:         100,
		CropID:       crops[0].ID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/dashboard/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decodeJSON[map[string]float64](t, w)
	assert.Equal(t, float64(1), stats["cropsAnalyzed"])
	assert.Equal(t, testDefaultYield, stats["avgProductivity"])
	assert.Equal(t, float64(1), stats["activeRecommendations"])
	assert.Equal(t, float64(100), stats["totalArea"])
}
