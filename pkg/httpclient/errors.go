package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/MisakSofoyan1/product-app/pkg/errors"
)

// upstreamErrorResponse matches the error envelope written by httputil.
type upstreamErrorResponse struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ParseResponseError consumes and closes the body of a non-2xx response and
// maps it to an AppError. Structured envelopes keep their message.
func ParseResponseError(resp *http.Response, serviceName string) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apperrors.Upstream(
			fmt.Sprintf("%s returned status %d", serviceName, resp.StatusCode),
			fmt.Errorf("read body: %w", err),
		)
	}

	message := string(body)
	var envelope upstreamErrorResponse
	if json.Unmarshal(body, &envelope) == nil && envelope.Error != nil {
		message = envelope.Error.Message
	}

	return mapStatus(resp.StatusCode, message, serviceName)
}

func mapStatus(status int, message, serviceName string) error {
	qualified := fmt.Sprintf("%s: %s", serviceName, message)

	switch {
	case status == http.StatusNotFound:
		return apperrors.NotFound(serviceName, message)
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(qualified)
	case status == http.StatusTooManyRequests:
		return &apperrors.AppError{
			Code:    "RATE_LIMITED",
			Message: qualified,
			Status:  http.StatusTooManyRequests,
			Err:     apperrors.ErrRateLimited,
		}
	case status == http.StatusServiceUnavailable:
		return apperrors.ServiceUnavailable(qualified)
	default:
		return apperrors.Upstream(
			fmt.Sprintf("%s returned status %d", serviceName, status),
			fmt.Errorf("%s", message),
		)
	}
}

