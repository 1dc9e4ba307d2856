package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors_SentinelMatching(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		sentinel error
		status   int
		code     string
	}{
		{"not found", NotFound("product", "p-1"), ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"invalid input", InvalidInput("bad quantity"), ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT"},
		{"unauthorized", Unauthorized("sign in"), ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", Forbidden("admins only"), ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"conflict", Conflict("duplicate"), ErrConflict, http.StatusConflict, "CONFLICT"},
		{"empty cart", EmptyCart(), ErrEmptyCart, http.StatusUnprocessableEntity, "EMPTY_CART"},
		{"payment not configured", PaymentNotConfigured(), ErrPaymentNotConfigured, http.StatusUnprocessableEntity, "PAYMENT_NOT_CONFIGURED"},
		{"checkout in progress", CheckoutInProgress(), ErrCheckoutInProgress, http.StatusConflict, "CHECKOUT_IN_PROGRESS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestUpstream_WrapsBothSentinelAndCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Upstream(cause)

	assert.ErrorIs(t, err, ErrUpstream)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusBadGateway, err.Status)
}

func TestHTTPStatus_WrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("load cart: %w", NotFound("cart", "sess-1"))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(wrapped))

	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(fmt.Errorf("checkout: %w", ErrEmptyCart)))
	assert.Equal(t, http.StatusConflict, HTTPStatus(fmt.Errorf("checkout: %w", ErrCheckoutInProgress)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestAppError_ErrorString(t *testing.T) {
	err := &AppError{Code: "NOT_FOUND", Message: "gone"}
	assert.Equal(t, "NOT_FOUND: gone", err.Error())

	withCause := &AppError{Code: "INTERNAL_ERROR", Message: "oops", Err: errors.New("root cause")}
	assert.Contains(t, withCause.Error(), "root cause")
}

func TestWrap(t *testing.T) {
	base := ErrNotFound
	wrapped := Wrap(base, "fetch product")
	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.Contains(t, wrapped.Error(), "fetch product")
}
