package chargers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chargewatch-backend/lib/registry"
	"chargewatch-backend/lib/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, fetcher PageFetcher) (*gin.Engine, Service) {
	_, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name: "services/chargers/api",
	})
	t.Cleanup(cleanup)

	reg, err := registry.New(registry.Config{})
	require.NoError(t, err)

	service := NewService(Options{
		Registry: reg,
		Fetcher:  fetcher,
	})

	gin.SetMode(gin.TestMode)
	router := gin.New()
	service.RegisterRoutes(router)
	return router, service
}

func TestGetChargerStatus(t *testing.T) {
	router, _ := newTestRouter(t, &stubFetcher{html: availablePage(), live: true})

	res := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/charger-status?chargerId=DE*MDS*E006234", nil)
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	var record ChargerRecord
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &record))
	require.Equal(t, "DE*MDS*E006234", record.ChargerID)
	require.Equal(t, "available", string(record.Status))
	require.Equal(t, "Verfügbar", record.StatusText)
	require.True(t, record.IsRealTime)
}

func TestGetChargerStatusMissingIdDoesNotFetch(t *testing.T) {
	fetcher := &stubFetcher{html: availablePage(), live: true}
	router, _ := newTestRouter(t, fetcher)

	res := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/charger-status", nil)
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusBadRequest, res.Code)
	require.EqualValues(t, 0, fetcher.calls.Load())
}

func TestPostChargerStatus(t *testing.T) {
	router, _ := newTestRouter(t, &stubFetcher{html: availablePage(), live: true})

	res := httptest.NewRecorder()
	req := httptest.NewRequest(
		http.MethodPost,
		"/api/v1/charger-status",
		strings.NewReader(`{"chargerId": "DE*MDS*E006234", "status": "error"}`),
	)
	req.Header.Set("content-type", "application/json")
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	var body struct {
		Success bool          `json:"success"`
		Record  ChargerRecord `json:"record"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.Equal(t, "error", string(body.Record.Status))
	require.Equal(t, UpdatedByUser, body.Record.UpdatedBy)
}

func TestPostChargerStatusInvalid(t *testing.T) {
	router, service := newTestRouter(t, &stubFetcher{html: availablePage(), live: true})

	for _, body := range []string{
		`{"chargerId": "DE*MDS*E006234", "status": "bogus"}`,
		`{"status": "available"}`,
		`not json`,
	} {
		res := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/charger-status", strings.NewReader(body))
		req.Header.Set("content-type", "application/json")
		router.ServeHTTP(res, req)
		require.Equal(t, http.StatusBadRequest, res.Code, body)
	}

	_, ok := service.GetOverride("DE*MDS*E006234")
	require.False(t, ok)
}

func TestGetAllChargerStatus(t *testing.T) {
	router, service := newTestRouter(t, &stubFetcher{html: availablePage(), live: true})

	res := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/charger-status/all", nil)
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	var body struct {
		Records []ChargerRecord `json:"records"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	require.Len(t, body.Records, len(service.registry.IDs()))
}

func TestSearchChargers(t *testing.T) {
	router, _ := newTestRouter(t, &stubFetcher{html: availablePage(), live: true})

	res := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/chargers?q=rathaus", nil)
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	var body struct {
		Results []struct {
			ChargerID string `json:"chargerId"`
			Location  string `json:"location"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	require.NotEmpty(t, body.Results)
	require.Equal(t, "Rathaus Tiefgarage", body.Results[0].Location)

	res = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/chargers", nil)
	router.ServeHTTP(res, req)
	require.Equal(t, http.StatusBadRequest, res.Code)
}
