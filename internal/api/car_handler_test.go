package api

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/phrazzld/custom-cars-api/internal/domain"
	"github.com/phrazzld/custom-cars-api/internal/engine"
	"github.com/phrazzld/custom-cars-api/internal/mocks"
	"github.com/phrazzld/custom-cars-api/internal/service"
	"github.com/phrazzld/custom-cars-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIBanner(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestRouter(t, &mocks.MockConfigurationService{}), http.MethodGet, "/api", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/api works lets goo!", rec.Body.String())
}

func TestCarHandler_ListCars(t *testing.T) {
	t.Parallel()

	cars := &mocks.MockConfigurationService{
		ListFn: func(ctx context.Context) ([]*domain.Configuration, error) {
			return []*domain.Configuration{
				savedCar(t, 2, "Midnight Rider", true, optVelocityRed, optSoftTop),
				savedCar(t, 1, "Lightning McQueen", false, optPolarWhite, optStandardRoof),
			}, nil
		},
	}

	rec := doRequest(t, newTestRouter(t, cars), http.MethodGet, "/api/cars", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body []CarResponse
	decodeBody(t, rec, &body)
	require.Len(t, body, 2)

	assert.Equal(t, int64(2), body[0].ID)
	assert.Equal(t, "3250.00", body[0].TotalPrice)
	assert.Equal(t, int64(325000), body[0].TotalPriceInCents)
	assert.True(t, body[0].IsConvertible)
	require.NotNil(t, body[0].CreatedAt)
	assert.True(t, fixedCreatedAt.Equal(*body[0].CreatedAt))
	require.Len(t, body[0].Options, 2)
	assert.Equal(t, "Roof", body[0].Options[1].Feature)
	assert.Equal(t, "/images/roof-convertible.png", body[0].Options[1].Image)

	assert.Equal(t, "0.00", body[1].TotalPrice)
}

func TestCarHandler_ListCarsEmpty(t *testing.T) {
	t.Parallel()

	cars := &mocks.MockConfigurationService{
		ListFn: func(ctx context.Context) ([]*domain.Configuration, error) { return nil, nil },
	}
	rec := doRequest(t, newTestRouter(t, cars), http.MethodGet, "/api/cars", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCarHandler_GetCar(t *testing.T) {
	t.Parallel()

	cars := &mocks.MockConfigurationService{
		GetFn: func(ctx context.Context, id int64) (*domain.Configuration, error) {
			if id == 3 {
				return savedCar(t, 3, "White Fox", true, optPolarWhite), nil
			}
			return nil, store.ErrConfigurationNotFound
		},
	}
	router := newTestRouter(t, cars)

	testCases := []struct {
		name       string
		path       string
		wantStatus int
		wantError  string
	}{
		{"found", "/api/cars/3", http.StatusOK, ""},
		{"missing", "/api/cars/9999", http.StatusNotFound, "Custom item not found"},
		{"non-numeric id", "/api/cars/abc", http.StatusBadRequest, "Invalid ID"},
		{"zero id", "/api/cars/0", http.StatusBadRequest, "Invalid ID"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodGet, tc.path, nil)
			assert.Equal(t, tc.wantStatus, rec.Code)

			if tc.wantError == "" {
				var car CarResponse
				decodeBody(t, rec, &car)
				assert.Equal(t, "White Fox", car.Name)
				return
			}
			var body map[string]interface{}
			decodeBody(t, rec, &body)
			assert.Equal(t, tc.wantError, body["error"])
		})
	}
}

func TestCarHandler_CreateCar(t *testing.T) {
	t.Parallel()

	var got service.Proposal
	cars := &mocks.MockConfigurationService{
		CreateFn: func(ctx context.Context, p service.Proposal) (*domain.Configuration, error) {
			got = p
			cfg := savedCar(t, 11, p.Name, p.IsConvertible, optSoftTop, optPolarWhite)
			return cfg, nil
		},
	}

	rec := doRequest(t, newTestRouter(t, cars), http.MethodPost, "/api/cars", map[string]interface{}{
		"name":          "Roadster",
		"optionIds":     []int64{optSoftTop, optPolarWhite},
		"isConvertible": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, service.Proposal{
		Name:          "Roadster",
		OptionIDs:     []int64{optSoftTop, optPolarWhite},
		IsConvertible: true,
	}, got)

	assert.JSONEq(t, `{
		"message": "Custom item created successfully!",
		"data": {"id": 11, "name": "Roadster", "optionIds": [7, 1]}
	}`, rec.Body.String())
}

func TestCarHandler_CreateCarRejected(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		body       interface{}
		serviceErr error
		wantStatus int
		wantError  string
	}{
		{
			name:       "empty option list",
			body:       map[string]interface{}{"name": "Car", "optionIds": []int64{}},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid optionIds: must not be empty",
		},
		{
			name:       "missing name",
			body:       map[string]interface{}{"optionIds": []int64{1}},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid name: required field",
		},
		{
			name:       "negative option id",
			body:       map[string]interface{}{"name": "Car", "optionIds": []int64{1, -4}},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid optionIds[1]: must be a positive id",
		},
		{
			name:       "malformed json",
			body:       `{"name": "Car", "optionIds": [1,`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request format",
		},
		{
			name:       "empty body",
			body:       "",
			wantStatus: http.StatusBadRequest,
			wantError:  "Request body is required",
		},
		{
			name: "unknown option",
			body: map[string]interface{}{"name": "Car", "optionIds": []int64{999}},
			serviceErr: domain.NewValidationError("optionIds", "contains unknown option 999",
				domain.ErrUnknownOption),
			wantStatus: http.StatusBadRequest,
			wantError:  "optionIds contains unknown option 999",
		},
		{
			name:       "persistence failure",
			body:       map[string]interface{}{"name": "Car", "optionIds": []int64{1}},
			serviceErr: service.NewConfigurationServiceError("create", "failed", errors.New("INSERT INTO custom_items failed")),
			wantStatus: http.StatusInternalServerError,
			wantError:  "An unexpected error occurred",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cars := &mocks.MockConfigurationService{
				CreateFn: func(ctx context.Context, p service.Proposal) (*domain.Configuration, error) {
					if tc.serviceErr == nil {
						t.Fatal("service should not be called for an invalid request")
					}
					return nil, tc.serviceErr
				},
			}

			rec := doRequest(t, newTestRouter(t, cars), http.MethodPost, "/api/cars", tc.body)
			assert.Equal(t, tc.wantStatus, rec.Code)

			var body map[string]interface{}
			decodeBody(t, rec, &body)
			assert.Equal(t, tc.wantError, body["error"])
			assert.NotContains(t, rec.Body.String(), "custom_items")
		})
	}
}

func TestCarHandler_RuleViolation(t *testing.T) {
	t.Parallel()

	violation := &engine.RuleViolationError{
		FeatureID:   featureRoof,
		FeatureName: "Roof",
		OptionID:    optSoftTop,
		OptionName:  "Convertible Soft Top",
		Rule:        "requires-convertible",
		Reason:      "option is only available on convertible cars",
	}
	cars := &mocks.MockConfigurationService{
		CreateFn: func(ctx context.Context, p service.Proposal) (*domain.Configuration, error) {
			return nil, violation
		},
		ReplaceFn: func(ctx context.Context, id int64, p service.Proposal) (*domain.Configuration, error) {
			return nil, violation
		},
	}
	router := newTestRouter(t, cars)
	payload := map[string]interface{}{"name": "Roofless", "optionIds": []int64{optSoftTop}}

	for _, req := range []struct{ method, path string }{
		{http.MethodPost, "/api/cars"},
		{http.MethodPut, "/api/cars/4"},
	} {
		rec := doRequest(t, router, req.method, req.path, payload)
		assert.Equal(t, http.StatusBadRequest, rec.Code, req.method)

		var body struct {
			Error     string                 `json:"error"`
			Violation map[string]interface{} `json:"violation"`
		}
		decodeBody(t, rec, &body)
		assert.Contains(t, body.Error, "Convertible Soft Top")
		assert.Equal(t, "requires-convertible", body.Violation["rule"])
		assert.Equal(t, float64(optSoftTop), body.Violation["option_id"])
		assert.Equal(t, "Roof", body.Violation["feature"])
	}
}

func TestCarHandler_PreviewCar(t *testing.T) {
	t.Parallel()

	cars := &mocks.MockConfigurationService{
		PreviewFn: func(ctx context.Context, p service.Proposal) (*domain.Configuration, error) {
			cfg := savedCar(t, 0, p.Name, true, optSoftTop)
			cfg.CreatedAt = time.Time{}
			return cfg, nil
		},
		CreateFn: func(ctx context.Context, p service.Proposal) (*domain.Configuration, error) {
			t.Fatal("preview must not persist")
			return nil, nil
		},
	}

	rec := doRequest(t, newTestRouter(t, cars), http.MethodPost, "/api/cars/preview", map[string]interface{}{
		"name": "Draft", "optionIds": []int64{optSoftTop}, "isConvertible": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var car CarResponse
	decodeBody(t, rec, &car)
	assert.Zero(t, car.ID)
	assert.Nil(t, car.CreatedAt, "unsaved cars have no creation time")
	assert.Equal(t, "2500.00", car.TotalPrice)
}

func TestCarHandler_ReplaceCar(t *testing.T) {
	t.Parallel()

	var gotID int64
	cars := &mocks.MockConfigurationService{
		ReplaceFn: func(ctx context.Context, id int64, p service.Proposal) (*domain.Configuration, error) {
			gotID = id
			if id == 9999 {
				return nil, store.ErrConfigurationNotFound
			}
			return savedCar(t, id, p.Name, p.IsConvertible, p.OptionIDs...), nil
		},
	}
	router := newTestRouter(t, cars)
	payload := map[string]interface{}{"name": "Repainted", "optionIds": []int64{optVelocityRed}}

	rec := doRequest(t, router, http.MethodPut, "/api/cars/4", payload)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(4), gotID)
	assert.JSONEq(t, `{
		"message": "Custom item 4 updated successfully!",
		"data": {"id": 4, "name": "Repainted", "optionIds": [3]}
	}`, rec.Body.String())

	rec = doRequest(t, router, http.MethodPut, "/api/cars/9999", payload)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodPut, "/api/cars/four", payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCarHandler_DeleteCar(t *testing.T) {
	t.Parallel()

	cars := &mocks.MockConfigurationService{
		DeleteFn: func(ctx context.Context, id int64) error {
			if id == 9999 {
				return store.ErrConfigurationNotFound
			}
			return nil
		},
	}
	router := newTestRouter(t, cars)

	rec := doRequest(t, router, http.MethodDelete, "/api/cars/5", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Custom item 5 deleted successfully."}`, rec.Body.String())

	rec = doRequest(t, router, http.MethodDelete, "/api/cars/9999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Equal(t, "Custom item not found", body["error"])
}

func TestNewCarHandler_PanicsOnNilDependencies(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NewCarHandler(nil, nil) })
}
