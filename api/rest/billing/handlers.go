package billing

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"codeberg.org/inkwell/billing/api/rest/pagination"
	"codeberg.org/inkwell/billing/inkwell/payments"
	"codeberg.org/inkwell/billing/internal/auth"
	bill "codeberg.org/inkwell/billing/internal/billing"
	"codeberg.org/inkwell/billing/internal/errors"
	"codeberg.org/inkwell/billing/internal/plans"
	"codeberg.org/inkwell/billing/internal/reconciler"
)

// op name for failures before the action is known
const opUpgrade = "upgrade"

// the two upgrade operations
type Reconciler interface {
	CreateOrder(ctx context.Context, req reconciler.OrderRequest) (*reconciler.Order, error)
	VerifyPayment(ctx context.Context, p reconciler.PaymentConfirmation) (*reconciler.Upgrade, error)
}

// reads ledger history
type PaymentLister interface {
	ListByPayer(ctx context.Context, email string, limit int) ([]payments.Entry, error)
}

// UpgradeHandler godoc
// @Summary Create a payment order or apply a verified payment
// @Description action=create_order asks the payment gateway for an order; action=verify_payment checks the checkout signature and adds the plan's credits to the owner's ceiling
// @Tags billing
// @Accept json
// @Produce json
// @Param request body UpgradeRequest true "upgrade action"
// @Success 200 {object} UpgradeResponse
// @Failure 400 {object} errors.BillingErrorResponse
// @Failure 500 {object} errors.BillingErrorResponse
// @Router /api/billing/upgrade [post]
func UpgradeHandler(rec Reconciler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpgradeRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.BillingError(c, bill.Validation(opUpgrade, "malformed request body: "+err.Error()))
			return
		}

		fillIdentity(c, &req)

		switch req.Action {
		case ActionCreateOrder:
			createOrder(c, rec, req)
		case ActionVerifyPayment:
			verifyPayment(c, rec, req)
		default:
			errors.BillingError(c, bill.Validation(opUpgrade, "invalid action"))
		}
	}
}

func createOrder(c *gin.Context, rec Reconciler, req UpgradeRequest) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		errors.BillingError(c, bill.Validation(bill.OpCreateOrder, err.Error()))
		return
	}

	order, err := rec.CreateOrder(c.Request.Context(), reconciler.OrderRequest{
		OwnerID: req.UserID,
		Amount:  amount,
	})
	if err != nil {
		errors.BillingError(c, err)
		return
	}

	c.JSON(http.StatusOK, OrderResponse{
		Success:  true,
		OrderID:  order.OrderID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Receipt:  order.Receipt,
	})
}

func verifyPayment(c *gin.Context, rec Reconciler, req UpgradeRequest) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		errors.BillingError(c, bill.Validation(bill.OpVerifyPayment, err.Error()))
		return
	}

	upgrade, err := rec.VerifyPayment(c.Request.Context(), reconciler.PaymentConfirmation{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
		OwnerID:   req.UserID,
		Email:     req.Email,
		PlanName:  req.PlanName,
		Credits:   string(req.Credits),
		Amount:    amount,
	})
	if err != nil {
		errors.BillingError(c, err)
		return
	}

	c.JSON(http.StatusOK, UpgradeResponse{
		Success:        true,
		Message:        "Plan upgraded successfully",
		Credits:        upgrade.Credits,
		Plan:           upgrade.Plan,
		Ceiling:        upgrade.Ceiling,
		LedgerRecorded: upgrade.LedgerRecorded,
		Replayed:       upgrade.Replayed,
	})
}

// body identity wins; a bearer token fills what the body left out
func fillIdentity(c *gin.Context, req *UpgradeRequest) {
	if strings.TrimSpace(req.UserID) == "" {
		if userID, ok := auth.GetUserID(c); ok {
			req.UserID = userID
		}
	}

	if strings.TrimSpace(req.Email) == "" {
		if email, ok := auth.GetEmail(c); ok {
			req.Email = email
		}
	}
}

// ListPlansHandler godoc
// @Summary List purchasable plans
// @Tags billing
// @Produce json
// @Success 200 {object} PlansResponse
// @Router /api/billing/plans [get]
func ListPlansHandler(catalog *plans.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, PlansResponse{Plans: catalog.All()})
	}
}

// ListPaymentsHandler godoc
// @Summary List recorded payments of an owner
// @Description With a bearer token only the token owner's history is readable
// @Tags billing
// @Produce json
// @Security BearerAuth
// @Param email query string false "owner email (defaults to the token email)"
// @Param limit query int false "max entries (default 20, max 100)"
// @Success 200 {object} PaymentsResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/billing/payments [get]
func ListPaymentsHandler(ledger PaymentLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := strings.TrimSpace(c.Query("email"))

		if tokenEmail, ok := auth.GetEmail(c); ok && tokenEmail != "" {
			if email != "" && !strings.EqualFold(email, tokenEmail) {
				errors.Forbidden(c, "payment history of another owner")
				return
			}

			email = tokenEmail
		}

		if email == "" {
			errors.BadRequest(c, "email is required", nil)
			return
		}

		limit := pagination.ParseLimit(c, 20, 100)

		entries, err := ledger.ListByPayer(c.Request.Context(), email, limit)
		if err != nil {
			errors.InternalError(c, "failed to list payments", err)
			return
		}

		c.JSON(http.StatusOK, PaymentsResponse{
			Payments: entries,
			Count:    len(entries),
		})
	}
}
