package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/alexanderdross/V0-Desiree/pkg/errors"
	"github.com/alexanderdross/V0-Desiree/pkg/logger"
	"github.com/alexanderdross/V0-Desiree/pkg/validator"
)

func bufLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, nil))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestWriteJSON_SetsContentTypeAndStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusTeapot, map[string]bool{"success": true})

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestWriteData_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteData(rec, http.StatusCreated, map[string]int{"total_items": 3})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"total_items":3}}`, rec.Body.String())
}

func TestWriteError_AppError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/carts/nope", nil)

	WriteError(rec, req, apperrors.NotFound("carts", "nope"), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decode(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "nope")
}

func TestWriteError_SessionCreationHidesCauseButLogsIt(t *testing.T) {
	var buf bytes.Buffer
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/sessions", nil)

	WriteError(rec, req, apperrors.SessionCreation(errors.New("stripe: api key invalid")), bufLogger(&buf))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, "Failed to create checkout session", resp.Error.Message)
	assert.NotContains(t, rec.Body.String(), "api key")
	assert.Contains(t, buf.String(), "api key invalid")
}

func TestWriteError_Sentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
		status   int
	}{
		{"not found", fmt.Errorf("slot: %w", apperrors.ErrNotFound), "NOT_FOUND", http.StatusNotFound},
		{"invalid", fmt.Errorf("quantity: %w", apperrors.ErrInvalidInput), "INVALID_INPUT", http.StatusBadRequest},
		{"unavailable", fmt.Errorf("breaker: %w", apperrors.ErrServiceUnavail), "SERVICE_UNAVAILABLE", http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			WriteError(rec, req, tt.err, bufLogger(&bytes.Buffer{}))

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.wantCode, decode(t, rec).Error.Code)
		})
	}
}

func TestWriteError_UnknownErrorIsNotLeaked(t *testing.T) {
	var buf bytes.Buffer
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)

	WriteError(rec, req, errors.New("redis: connection refused"), bufLogger(&buf))

	assert.NotContains(t, rec.Body.String(), "connection refused")
	assert.Contains(t, buf.String(), "connection refused")
}

func TestWriteError_ValidationErrorCarriesFields(t *testing.T) {
	type dto struct {
		Email string `json:"email" validate:"required,email"`
	}
	verr := validator.Validate(dto{Email: "x"})
	require.Error(t, verr)

	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodPost, "/", nil), verr, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "must be a valid email address", resp.Error.Fields["email"])
}

func TestWriteError_IncludesRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(logger.WithCorrelationID(context.Background(), "corr-42"))

	WriteError(rec, req, apperrors.InvalidInput("cart is empty"), nil)

	assert.Equal(t, "corr-42", decode(t, rec).Error.RequestID)
}

func TestWriteValidationError_PlainError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteValidationError(rec, httptest.NewRequest(http.MethodPost, "/", nil), errors.New("decode request body: EOF"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "EOF")
}

func TestResponse_OmitsEmptyFields(t *testing.T) {
	b, err := json.Marshal(Response{Data: "x"})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "error")

	b, err = json.Marshal(Response{Error: &ErrorResponse{Code: "C", Message: "m"}})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "data")
	assert.NotContains(t, string(b), "request_id")
}
