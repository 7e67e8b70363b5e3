package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/alexanderdross/V0-Desiree/pkg/errors"
)

// upstreamErrorBody covers the two error shapes seen from upstreams: our own
// envelope ({"error":{"code","message"}}) and Cloudflare style
// ({"success":false,"error-codes":[...]}).
type upstreamErrorBody struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	ErrorCodes []string `json:"error-codes"`
}

// ParseResponseError reads a non-2xx response and translates it into an
// error. The body is consumed and closed.
func ParseResponseError(resp *http.Response, upstream string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", upstream, resp.StatusCode, err)
	}

	var body upstreamErrorBody
	if json.Unmarshal(bodyBytes, &body) == nil {
		switch {
		case body.Error != nil:
			return mapUpstreamError(resp.StatusCode, body.Error.Code, body.Error.Message, upstream)
		case len(body.ErrorCodes) > 0:
			return mapUpstreamError(resp.StatusCode, "UPSTREAM_ERROR", strings.Join(body.ErrorCodes, ","), upstream)
		}
	}

	return fmt.Errorf("%s returned status %d: %s", upstream, resp.StatusCode, string(bodyBytes))
}

func mapUpstreamError(status int, code, message, upstream string) error {
	qualifiedMsg := fmt.Sprintf("%s: %s", upstream, message)

	switch {
	case status == http.StatusNotFound:
		return apperrors.NotFound(upstream, message)
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return apperrors.InvalidInput(qualifiedMsg)
	case status == http.StatusConflict:
		return apperrors.Conflict(qualifiedMsg)
	case status == http.StatusTooManyRequests:
		return apperrors.RateLimited()
	case status == http.StatusServiceUnavailable:
		return apperrors.ServiceUnavailable(qualifiedMsg)
	case status >= 500:
		return fmt.Errorf("%s server error (%d/%s): %s", upstream, status, code, message)
	default:
		return &apperrors.AppError{Code: code, Message: qualifiedMsg, Status: status}
	}
}

// IsClientError reports whether status is a 4xx.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
