package billing

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/inkwell/billing/internal/auth"
	"codeberg.org/inkwell/billing/internal/plans"
)

// registers billing routes under router
func RegisterRoutes(router *gin.RouterGroup, rec Reconciler, ledger PaymentLister, catalog *plans.Catalog, authn *auth.Authenticator, limit gin.HandlerFunc) {
	router.GET("/plans", ListPlansHandler(catalog))
	router.GET("/payments", authn.OptionalAuthMiddleware(), ListPaymentsHandler(ledger))
	router.POST("/upgrade", limit, authn.OptionalAuthMiddleware(), UpgradeHandler(rec))
}
