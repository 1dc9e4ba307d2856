package httpclient

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/caffeinepub/e-commerce-web-application-25/pkg/errors"
)

func respWithBody(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestParseResponseError_StructuredNotFound(t *testing.T) {
	resp := respWithBody(http.StatusNotFound, `{"error":{"code":"NOT_FOUND","message":"product p-1 not found"}}`)

	err := ParseResponseError(resp, "GET /products/p-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestParseResponseError_StructuredMappings(t *testing.T) {
	tests := []struct {
		status   int
		sentinel error
	}{
		{http.StatusBadRequest, apperrors.ErrInvalidInput},
		{http.StatusUnauthorized, apperrors.ErrUnauthorized},
		{http.StatusForbidden, apperrors.ErrForbidden},
		{http.StatusConflict, apperrors.ErrConflict},
	}

	for _, tt := range tests {
		resp := respWithBody(tt.status, `{"error":{"code":"X","message":"nope"}}`)
		err := ParseResponseError(resp, "op")
		assert.ErrorIs(t, err, tt.sentinel, "status %d", tt.status)
	}
}

func TestParseResponseError_UnknownStatusKeepsCode(t *testing.T) {
	resp := respWithBody(http.StatusTeapot, `{"error":{"code":"TEAPOT","message":"short and stout"}}`)

	err := ParseResponseError(resp, "op")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "TEAPOT", appErr.Code)
	assert.Equal(t, http.StatusTeapot, appErr.Status)
}

func TestParseResponseError_StructuredServerError(t *testing.T) {
	resp := respWithBody(http.StatusInternalServerError, `{"error":{"code":"DB_DOWN","message":"storage offline"}}`)

	err := ParseResponseError(resp, "GET /products")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
	assert.Equal(t, http.StatusBadGateway, apperrors.HTTPStatus(err))

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UPSTREAM_UNAVAILABLE", appErr.Code)
	// The backend's detail survives in the cause for logging.
	assert.Contains(t, appErr.Err.Error(), "storage offline")
}

func TestParseResponseError_UnstructuredBody(t *testing.T) {
	resp := respWithBody(http.StatusBadGateway, "upstream exploded")

	err := ParseResponseError(resp, "GET /products")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "upstream exploded")
}

func TestParseResponseError_EmptyErrorObject(t *testing.T) {
	// A JSON body without an error object falls back to the raw form.
	resp := respWithBody(http.StatusInternalServerError, `{"data":null}`)

	err := ParseResponseError(resp, "op")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
	assert.Contains(t, err.Error(), "500")
}
