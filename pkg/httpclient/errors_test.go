package httpclient

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/MisakSofoyan1/product-app/pkg/errors"
)

func makeResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestParseResponseError_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
		code     int
	}{
		{"not found", http.StatusNotFound, `{"error":{"code":"NOT_FOUND","message":"no route"}}`, apperrors.ErrNotFound, http.StatusNotFound},
		{"bad request", http.StatusBadRequest, `{"error":{"code":"INVALID_INPUT","message":"bad limit"}}`, apperrors.ErrInvalidInput, http.StatusBadRequest},
		{"rate limited", http.StatusTooManyRequests, `slow down`, apperrors.ErrRateLimited, http.StatusTooManyRequests},
		{"unavailable", http.StatusServiceUnavailable, ``, apperrors.ErrServiceUnavail, http.StatusServiceUnavailable},
		{"server error", http.StatusInternalServerError, `<html>oops</html>`, apperrors.ErrUpstream, http.StatusBadGateway},
		{"teapot", http.StatusTeapot, `{}`, apperrors.ErrUpstream, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ParseResponseError(makeResponse(tt.status, tt.body), "catalog-api")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.code, apperrors.HTTPStatus(err))
		})
	}
}

func TestParseResponseError_KeepsStructuredMessage(t *testing.T) {
	err := ParseResponseError(makeResponse(http.StatusBadRequest,
		`{"error":{"code":"VALIDATION_ERROR","message":"limit must be one of: 6 10 20 50"}}`), "catalog-api")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "catalog-api: limit must be one of: 6 10 20 50", appErr.Message)
}

func TestParseResponseError_NullErrorFallsBackToBody(t *testing.T) {
	err := ParseResponseError(makeResponse(http.StatusBadRequest, `{"error":null}`), "catalog-api")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, `catalog-api: {"error":null}`, appErr.Message)
}

