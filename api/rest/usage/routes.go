package usage

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/inkwell/billing/internal/auth"
)

// registers usage routes under router
func RegisterRoutes(router *gin.RouterGroup, m Meter, authn *auth.Authenticator, failOpen bool) {
	usageGroup := router.Group("/usage")
	usageGroup.Use(authn.OptionalAuthMiddleware())
	{
		usageGroup.GET("", GetUsageHandler(m, failOpen))
		usageGroup.POST("/records", RecordUsageHandler(m))
	}
}
