package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/caffeinepub/e-commerce-web-application-25/pkg/errors"
)

// RemoteErrorResponse is the error envelope returned by the commerce
// backend on non-2xx responses.
type RemoteErrorResponse struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ParseResponseError reads the body of a non-2xx response and translates it
// into an AppError. Structured error bodies keep their code and message;
// anything else becomes a generic error carrying the status and raw body.
// The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response, operation string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err != nil {
		return fmt.Errorf("%s: backend returned status %d (failed to read body: %w)", operation, resp.StatusCode, err)
	}

	var remote RemoteErrorResponse
	if json.Unmarshal(bodyBytes, &remote) == nil && remote.Error != nil {
		return mapRemoteError(resp.StatusCode, remote.Error.Code, remote.Error.Message, operation)
	}

	if resp.StatusCode >= 500 {
		return apperrors.Upstream(fmt.Errorf("%s: backend returned status %d: %s", operation, resp.StatusCode, string(bodyBytes)))
	}

	return fmt.Errorf("%s: backend returned status %d: %s", operation, resp.StatusCode, string(bodyBytes))
}

// mapRemoteError translates a backend status and error code into an AppError
// that preserves the error semantics for the storefront's own callers.
func mapRemoteError(status int, code, message, operation string) error {
	qualified := fmt.Sprintf("%s: %s", operation, message)

	switch {
	case status == http.StatusNotFound:
		return apperrors.NotFound(operation, message)
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(qualified)
	case status == http.StatusUnauthorized:
		return apperrors.Unauthorized(qualified)
	case status == http.StatusForbidden:
		return apperrors.Forbidden(qualified)
	case status == http.StatusConflict:
		return apperrors.Conflict(qualified)
	case status >= 500:
		// Backend 5xx is the retryable category; the detail stays in the
		// wrapped cause for logs, the caller sees a generic retry message.
		return apperrors.Upstream(fmt.Errorf("%s: backend error (%d/%s): %s", operation, status, code, message))
	default:
		return &apperrors.AppError{
			Code:    code,
			Message: qualified,
			Status:  status,
		}
	}
}
