package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// reads the limit query parameter, applying defaultLimit when absent or
// invalid and capping at maxLimit
func ParseLimit(c *gin.Context, defaultLimit, maxLimit int) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}

	if limit > maxLimit {
		limit = maxLimit
	}

	return limit
}
