package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"codeberg.org/inkwell/billing/internal/billing"
	"codeberg.org/inkwell/billing/internal/logger"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use errors.BillingError() for anything returned by the meter or the reconciler
//   - Use errors.InternalError(), errors.BadRequest(), etc. for other failures
//     These functions handle both logging and HTTP response automatically
//   - Never call both logger.ErrorErr() and errors.InternalError() for the same error
//
// For services/repositories/internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Billing operations return *billing.Error so handlers can map kind to status
//   - Do not log errors in non-handler code (avoid double logging), except
//     for failures that are deliberately swallowed such as ledger writes

// returns a 404 not found error
func NotFound(c *gin.Context, resource string) {
	message := "resource not found"

	if resource != "" {
		message = resource + " not found"
	}

	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   CodeNotFound,
		Message: message,
	})
}

// returns a 403 forbidden error
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "access denied"
	}

	c.JSON(http.StatusForbidden, ErrorResponse{
		Error:   CodeForbidden,
		Message: message,
	})
}

// returns a 400 bad request error
func BadRequest(c *gin.Context, message string, err error) {
	if message == "" {
		message = "invalid request"
	}

	response := ErrorResponse{
		Error:   CodeBadRequest,
		Message: message,
	}

	// add details if error provided
	if err != nil {
		response.Details = sanitizeError(err)
	}

	c.JSON(http.StatusBadRequest, response)
}

// returns a 400 bad request error for validation failures
func ValidationError(c *gin.Context, err error) {
	message := "validation failed"
	details := ""

	if err != nil {
		details = sanitizeError(err)
		if strings.Contains(err.Error(), "binding") || strings.Contains(err.Error(), "validation") {
			message = "request validation failed"
		}
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   CodeValidationError,
		Message: message,
		Details: details,
	})
}

// returns a 500 internal server error
func InternalError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "an error occurred"
	}

	// log full error server-side with context
	logger.ErrorErr(err, message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"category", classifyError(err).category,
	)

	// return sanitized error to client
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   CodeServerError,
		Message: message,
		Details: sanitizeError(err),
	})
}

// returns a 503 when a dependency is down and the caller should retry
func ServiceUnavailable(c *gin.Context, message string, err error) {
	if message == "" {
		message = "service temporarily unavailable"
	}

	logger.ErrorErr(err, message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)

	c.Header("Retry-After", "5")
	c.JSON(http.StatusServiceUnavailable, ErrorResponse{
		Error:   CodeServiceUnavailable,
		Message: message,
		Details: sanitizeError(err),
	})
}

// maps a meter or reconciler failure to a response. Validation and
// signature failures are 400s; everything else is a 500 that says whether
// the request may be retried.
func BillingError(c *gin.Context, err error) {
	status, code, message := billingStatus(err)

	response := BillingErrorResponse{
		Success: false,
		ErrorResponse: ErrorResponse{
			Error:   code,
			Message: message,
		},
		Retryable: billing.IsRetryable(err),
	}

	var be *billing.Error
	if errors.As(err, &be) && be.Reason != "" {
		response.Details = be.Reason
	}

	if status >= http.StatusInternalServerError {
		logger.ErrorErr(err, message,
			"path", c.Request.URL.Path,
			"op", billing.OpOf(err),
			"retryable", response.Retryable,
			"category", classifyError(err).category,
		)

		response.Details = sanitizeError(err)
	}

	c.JSON(status, response)
}

func billingStatus(err error) (int, string, string) {
	switch {
	case errors.Is(err, billing.ErrValidation):
		return http.StatusBadRequest, CodeValidationError, "invalid request"
	case errors.Is(err, billing.ErrInvalidSignature):
		return http.StatusBadRequest, CodeInvalidSignature, "invalid payment signature"
	case errors.Is(err, billing.ErrGateway):
		return http.StatusInternalServerError, CodeGatewayError, "failed to create order"
	case errors.Is(err, billing.ErrStoreUnavailable):
		return http.StatusInternalServerError, CodeStoreUnavailable, failureMessage(billing.OpOf(err))
	default:
		return http.StatusInternalServerError, CodeServerError, failureMessage(billing.OpOf(err))
	}
}

func failureMessage(op string) string {
	switch op {
	case billing.OpCreateOrder:
		return "failed to create order"
	case billing.OpVerifyPayment:
		return "error upgrading plan"
	case billing.OpComputeUsage:
		return "usage is unavailable"
	case billing.OpRecordUsage:
		return "failed to record usage"
	default:
		return "an error occurred"
	}
}

// sanitizes error messages for production
func sanitizeError(err error) string {
	return classifyError(err).sanitized
}
