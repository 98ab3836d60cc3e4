package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/custom-cars-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithErrorAndLog(t *testing.T) {
	t.Parallel()

	ctx, logs := logger.NewLogCaptureContext(t)
	ctx = WithTraceID(ctx, "trace-123")
	req := httptest.NewRequest(http.MethodPost, "/api/cars", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	dbErr := errors.New("insert failed: postgres://cars:secret@db:5432/cars")
	RespondWithErrorAndLog(rec, req, http.StatusInternalServerError, "An unexpected error occurred", dbErr)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "An unexpected error occurred", body["error"])
	assert.Equal(t, "trace-123", body["trace_id"])
	assert.NotContains(t, body, "violation")
	assert.NotContains(t, rec.Body.String(), "secret")

	logger.AssertLogContains(t, logs, "API error response")
	assert.NotContains(t, logs.String(), "cars:secret", "logged error must be redacted")

	entries, err := logs.GetLogEntries()
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "ERROR", entries[len(entries)-1]["level"])
}

func TestRespondWithErrorAndLog_Violation(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/api/cars", nil)
	rec := httptest.NewRecorder()

	violation := map[string]string{"rule": "requires-convertible"}
	RespondWithErrorAndLog(rec, req, http.StatusBadRequest, "not allowed", nil, WithViolation(violation))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not allowed", body.Error)
	assert.Equal(t, map[string]interface{}{"rule": "requires-convertible"}, body.Violation)
}

func TestRespondWithMessage(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	RespondWithMessage(rec, httptest.NewRequest(http.MethodDelete, "/api/cars/1", nil),
		http.StatusOK, "Custom item 1 deleted successfully.", nil)

	assert.JSONEq(t, `{"message":"Custom item 1 deleted successfully."}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name string `json:"name" validate:"required"`
	}

	testCases := []struct {
		name    string
		body    string
		wantErr bool
		isEmpty bool
	}{
		{"valid", `{"name":"Car"}`, false, false},
		{"unknown fields ignored", `{"name":"Car","color":"red"}`, false, false},
		{"empty body", ``, true, true},
		{"malformed", `{"name":`, true, false},
		{"two values", `{"name":"a"}{"name":"b"}`, true, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var p payload
			err := DecodeJSON(req, &p)
			if !tc.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "Car", p.Name)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tc.isEmpty, errors.Is(err, ErrEmptyBody))
		})
	}
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name string  `validate:"required"`
		IDs  []int64 `validate:"required,min=1"`
	}

	assert.NoError(t, ValidateRequest(&payload{Name: "a", IDs: []int64{1}}))
	assert.Error(t, ValidateRequest(&payload{Name: "a", IDs: []int64{}}))
	assert.Error(t, ValidateRequest(&payload{IDs: []int64{1}}))
}

func TestTraceID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, GetTraceID(req.Context()))

	ctx := SetTraceID(req.Context())
	first := GetTraceID(ctx)
	assert.Len(t, first, 36)
	assert.NotEqual(t, first, GetTraceID(SetTraceID(req.Context())))
}
