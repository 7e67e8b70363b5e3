package httpclient

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/alexanderdross/V0-Desiree/pkg/errors"
)

func response(status int, body string) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(body))}
}

func TestParseResponseError_Envelope(t *testing.T) {
	tests := []struct {
		name   string
		status int
		target error
	}{
		{"not found", http.StatusNotFound, apperrors.ErrNotFound},
		{"bad request", http.StatusBadRequest, apperrors.ErrInvalidInput},
		{"unprocessable", http.StatusUnprocessableEntity, apperrors.ErrInvalidInput},
		{"conflict", http.StatusConflict, apperrors.ErrConflict},
		{"rate limited", http.StatusTooManyRequests, apperrors.ErrRateLimited},
		{"unavailable", http.StatusServiceUnavailable, apperrors.ErrServiceUnavail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ParseResponseError(response(tt.status, `{"error":{"code":"X","message":"nope"}}`), "payments")
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestParseResponseError_CloudflareErrorCodes(t *testing.T) {
	err := ParseResponseError(response(http.StatusBadRequest,
		`{"success":false,"error-codes":["missing-input-secret","invalid-input-response"]}`), "turnstile")

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "missing-input-secret,invalid-input-response")
}

func TestParseResponseError_ServerErrorIsPlain(t *testing.T) {
	err := ParseResponseError(response(http.StatusBadGateway, `{"error":{"code":"UPSTREAM","message":"down"}}`), "turnstile")

	var appErr *apperrors.AppError
	assert.NotErrorAs(t, err, &appErr)
	assert.Contains(t, err.Error(), "502")
}

func TestParseResponseError_UnstructuredBody(t *testing.T) {
	err := ParseResponseError(response(http.StatusForbidden, `<html>denied</html>`), "turnstile")
	assert.Contains(t, err.Error(), "turnstile returned status 403")
	assert.Contains(t, err.Error(), "denied")
}

func TestParseResponseError_OtherStatusKeepsCode(t *testing.T) {
	err := ParseResponseError(response(http.StatusPaymentRequired, `{"error":{"code":"CARD","message":"declined"}}`), "payments")

	var appErr *apperrors.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CARD", appErr.Code)
	assert.Equal(t, http.StatusPaymentRequired, appErr.Status)
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(400))
	assert.True(t, IsClientError(499))
	assert.False(t, IsClientError(500))
	assert.False(t, IsClientError(204))
}
