package usage

import (
	"context"
	goerrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"codeberg.org/inkwell/billing/inkwell/usage"
	"codeberg.org/inkwell/billing/internal/auth"
	"codeberg.org/inkwell/billing/internal/billing"
	"codeberg.org/inkwell/billing/internal/errors"
	"codeberg.org/inkwell/billing/internal/logger"
	"codeberg.org/inkwell/billing/internal/meter"
)

// computes and records usage
type Meter interface {
	ComputeUsage(ctx context.Context, ownerEmail string) (*meter.Usage, error)
	Record(ctx context.Context, rec usage.NewRecord) (*usage.Record, error)
}

// GetUsageHandler godoc
// @Summary Get an owner's credit usage
// @Description Sums the owner's recorded usage and compares it with their credit ceiling
// @Tags usage
// @Produce json
// @Param email query string false "owner email (defaults to the token email)"
// @Success 200 {object} UsageResponse
// @Failure 400 {object} errors.BillingErrorResponse
// @Failure 500 {object} errors.BillingErrorResponse
// @Router /api/v1/usage [get]
func GetUsageHandler(m Meter, failOpen bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := ownerEmail(c, c.Query("email"))

		u, err := m.ComputeUsage(c.Request.Context(), email)
		if err != nil {
			if failOpen && goerrors.Is(err, billing.ErrStoreUnavailable) {
				logger.Warn("usage unknown, failing open", "email", email, "error", err)

				c.JSON(http.StatusOK, UsageResponse{Email: email, Available: true, Known: false})
				return
			}

			errors.BillingError(c, err)
			return
		}

		c.JSON(http.StatusOK, UsageResponse{
			Email:     u.OwnerEmail,
			Total:     u.Total,
			Ceiling:   u.Ceiling,
			Remaining: u.Remaining,
			Available: u.Available,
			Band:      u.Band,
			Plan:      u.Plan,
			Known:     true,
		})
	}
}

// RecordUsageHandler godoc
// @Summary Record one generation event
// @Description Appends a usage record; the response length is the number of credits consumed
// @Tags usage
// @Accept json
// @Produce json
// @Param request body RecordRequest true "usage record"
// @Success 201 {object} RecordResponse
// @Failure 400 {object} errors.BillingErrorResponse
// @Failure 500 {object} errors.BillingErrorResponse
// @Router /api/v1/usage/records [post]
func RecordUsageHandler(m Meter) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RecordRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		rec, err := m.Record(c.Request.Context(), usage.NewRecord{
			OwnerEmail:   ownerEmail(c, req.Email),
			TemplateSlug: strings.TrimSpace(req.TemplateSlug),
			Response:     req.Response,
		})
		if err != nil {
			errors.BillingError(c, err)
			return
		}

		c.JSON(http.StatusCreated, RecordResponse{
			ID:        rec.ID,
			Email:     rec.OwnerEmail,
			Length:    rec.Length(),
			CreatedAt: rec.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
}

func ownerEmail(c *gin.Context, fromRequest string) string {
	if email := strings.TrimSpace(fromRequest); email != "" {
		return email
	}

	email, _ := auth.GetEmail(c)
	return email
}
