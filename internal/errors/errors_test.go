package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/inkwell/billing/internal/billing"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func respond(t *testing.T, err error) (int, BillingErrorResponse) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/billing/upgrade", nil)

	BillingError(c, err)

	var body BillingErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	return w.Code, body
}

func TestBillingError_Mapping(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		status    int
		code      string
		retryable bool
	}{
		{"validation", billing.Validation(billing.OpVerifyPayment, "missing orderId"), http.StatusBadRequest, CodeValidationError, false},
		{"signature", billing.InvalidSignature(billing.OpVerifyPayment), http.StatusBadRequest, CodeInvalidSignature, false},
		{"gateway", billing.Gateway(billing.OpCreateOrder, fmt.Errorf("BAD_REQUEST_ERROR")), http.StatusInternalServerError, CodeGatewayError, true},
		{"store", billing.StoreUnavailable(billing.OpVerifyPayment, context.DeadlineExceeded), http.StatusInternalServerError, CodeStoreUnavailable, true},
		{"foreign", fmt.Errorf("boom"), http.StatusInternalServerError, CodeServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := respond(t, tt.err)

			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Error)
			assert.Equal(t, tt.retryable, body.Retryable)
			assert.False(t, body.Success)
		})
	}
}

func TestBillingError_ValidationReasonInDetails(t *testing.T) {
	_, body := respond(t, billing.Validation(billing.OpVerifyPayment, "missing orderId"))

	assert.Equal(t, "missing orderId", body.Details)
}

func TestBillingError_MessagesPerOperation(t *testing.T) {
	_, body := respond(t, billing.StoreUnavailable(billing.OpVerifyPayment, fmt.Errorf("dial tcp")))
	assert.Equal(t, "error upgrading plan", body.Message)

	_, body = respond(t, billing.Gateway(billing.OpCreateOrder, fmt.Errorf("dial tcp")))
	assert.Equal(t, "failed to create order", body.Message)
}

func TestBillingError_SanitizedInProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	_, body := respond(t, billing.Gateway(billing.OpCreateOrder, fmt.Errorf("key rzp_live_abc rejected")))

	assert.Equal(t, "payment provider error", body.Details)
}

func TestClassifyError(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	tests := []struct {
		err      error
		category string
	}{
		{&pgconn.PgError{Code: "23505"}, CategoryDatabase},
		{fmt.Errorf("wrapped: %w", context.DeadlineExceeded), CategoryTimeout},
		{billing.Gateway(billing.OpCreateOrder, fmt.Errorf("upstream")), CategoryGateway},
		{fmt.Errorf("dial tcp 127.0.0.1:5432: connection refused"), CategoryNetwork},
		{fmt.Errorf("something odd"), CategoryUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.category, classifyError(tt.err).category, tt.err.Error())
	}
}

func TestServiceUnavailable(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/usage", nil)

	ServiceUnavailable(c, "", fmt.Errorf("store down"))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "5", w.Header().Get("Retry-After"))
}

func TestForbidden(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/billing/payments", nil)

	Forbidden(c, "")

	assert.Equal(t, http.StatusForbidden, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, CodeForbidden, body.Error)
	assert.Equal(t, "access denied", body.Message)
}
