package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hrsuite/hr-backend-go/internal/domain/absence"
	"github.com/hrsuite/hr-backend-go/internal/domain/auth"
	"github.com/hrsuite/hr-backend-go/internal/domain/leave"
	"github.com/hrsuite/hr-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		page      int
		limit     int
		total     int64
		wantPages int
	}{
		{"exact multiple", 1, 20, 40, 2},
		{"partial last page", 1, 20, 41, 3},
		{"empty result", 1, 20, 0, 0},
		{"single row", 3, 50, 1, 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := NewPagination(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.limit, p.Limit)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.wantPages, p.Pages)
		})
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var body Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestSuccessEnvelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	Success(rec, map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeBody(t, rec)
	assert.Equal(t, "success", body.Status)
	assert.NotNil(t, body.Data)
}

func TestHandleError_ValidationErrorsCarryDetails(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	HandleError(rec, validator.ValidationErrors{
		{Field: "email", Message: "email is required"},
		{Field: "password", Message: "password must be at least 8 characters long"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, "Validation failed", body.Message)
	assert.Equal(t, "email is required", body.Details["email"])
	assert.Equal(t, "password must be at least 8 characters long", body.Details["password"])
}

func TestHandleError_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"inactive account", auth.ErrAccountInactive, http.StatusForbidden},
		{"business conflict is 400", leave.ErrOverlappingRequest, http.StatusBadRequest},
		{"duplicate absence is 400", absence.ErrAbsenceExists, http.StatusBadRequest},
		{"missing entity", leave.ErrLeaveRequestNotFound, http.StatusNotFound},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)
			assert.Equal(t, tt.wantCode, rec.Code)

			body := decodeBody(t, rec)
			assert.Equal(t, "error", body.Status)
		})
	}
}
