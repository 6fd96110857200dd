package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/escuela-horarios/attendance-backend/internal/domain/report"
	"github.com/escuela-horarios/attendance-backend/internal/domain/schedule"
	"github.com/escuela-horarios/attendance-backend/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) Response {
	t.Helper()
	var body Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return body
}

func TestSuccessWithMeta(t *testing.T) {
	rr := httptest.NewRecorder()

	SuccessWithMeta(rr, []string{"a", "b"}, &Meta{TotalItems: 2})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	body := decodeBody(t, rr)
	assert.True(t, body.Success)
	require.NotNil(t, body.Meta)
	assert.Equal(t, int64(2), body.Meta.TotalItems)
	assert.Nil(t, body.Error)
}

func TestSuccessOmitsMeta(t *testing.T) {
	rr := httptest.NewRecorder()

	Success(rr, map[string]int{"n": 1})

	assert.NotContains(t, rr.Body.String(), "meta")
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"validation", validator.ValidationErrors{{Field: "start", Message: "start is required"}}, http.StatusUnprocessableEntity, CodeValidation},
		{"wrapped validation", fmt.Errorf("create slot: %w", validator.ValidationErrors{{Field: "day", Message: "bad"}}), http.StatusUnprocessableEntity, CodeValidation},
		{"double booked", schedule.ErrTeacherDoubleBooked, http.StatusConflict, CodeConflict},
		{"scope", report.ErrForbiddenScope, http.StatusForbidden, CodeForbidden},
		{"data access", fmt.Errorf("%w: list slots: %w", report.ErrDataAccess, errors.New("timeout")), http.StatusInternalServerError, CodeInternal},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()

			HandleError(rr, tt.err)

			assert.Equal(t, tt.wantCode, rr.Code)
			body := decodeBody(t, rr)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantErr, body.Error.Code)
		})
	}
}

func TestHandleError_ValidationDetails(t *testing.T) {
	rr := httptest.NewRecorder()

	HandleError(rr, validator.ValidationErrors{{Field: "end", Message: "end must not be before start"}})

	body := decodeBody(t, rr)
	require.NotNil(t, body.Error)
	assert.Equal(t, map[string]string{"end": "end must not be before start"}, body.Error.Details)
}
