package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/custom-cars-api/internal/domain"
	"github.com/phrazzld/custom-cars-api/internal/mocks"
	"github.com/phrazzld/custom-cars-api/internal/platform/logger"
	"github.com/stretchr/testify/require"
)

const (
	featureExterior int64 = 1
	featureRoof     int64 = 2

	optPolarWhite   int64 = 1
	optVelocityRed  int64 = 3
	optStandardRoof int64 = 5
	optSoftTop      int64 = 7
)

var fixedCreatedAt = time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)

func testCatalog(t *testing.T) *domain.Catalog {
	t.Helper()

	catalog, err := domain.NewCatalog([]domain.Feature{
		{ID: featureExterior, Name: "Exterior", Options: []domain.Option{
			{ID: optPolarWhite, FeatureID: featureExterior, FeatureName: "Exterior", Name: "Polar White",
				PriceInCents: 0, ImageRef: "/images/car-white.png"},
			{ID: optVelocityRed, FeatureID: featureExterior, FeatureName: "Exterior", Name: "Velocity Red",
				PriceInCents: 75000, ImageRef: "/images/car-red.png"},
		}},
		{ID: featureRoof, Name: "Roof", Options: []domain.Option{
			{ID: optStandardRoof, FeatureID: featureRoof, FeatureName: "Roof", Name: "Standard Roof",
				PriceInCents: 0, ImageRef: "/images/roof-standard.png"},
			{ID: optSoftTop, FeatureID: featureRoof, FeatureName: "Roof", Name: "Convertible Soft Top",
				PriceInCents: 250000, ImageRef: "/images/roof-convertible.png", RequiresConvertible: true},
		}},
	})
	require.NoError(t, err)
	return catalog
}

// savedCar returns a materialized configuration built from testCatalog.
func savedCar(t *testing.T, id int64, name string, convertible bool, optionIDs ...int64) *domain.Configuration {
	t.Helper()

	catalog := testCatalog(t)
	cfg := &domain.Configuration{ID: id, Name: name, CreatedAt: fixedCreatedAt, IsConvertible: convertible}
	for _, optID := range optionIDs {
		o, ok := catalog.Option(optID)
		require.True(t, ok)
		cfg.Options = append(cfg.Options, o)
	}
	return cfg
}

// newTestRouter mounts the API handlers the same way the server does.
func newTestRouter(t *testing.T, cars *mocks.MockConfigurationService) http.Handler {
	t.Helper()

	log, _ := logger.GetTestLogger(t)
	catalogs := &mocks.MockCatalogService{Snapshot: testCatalog(t)}

	r := chi.NewRouter()
	r.Route("/api", Handlers{
		Features: NewFeatureHandler(catalogs, log),
		Cars:     NewCarHandler(cars, log),
	}.Mount)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}
