package middlewares

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mapleledger/cashbook_backend/utils"
)

// SessionMiddleware resolves the acting user for the request. Authentication
// itself happens upstream at the gateway, which forwards the session as
// trusted headers; requests reaching app endpoints without them are rejected.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rawUserId := c.Request.Header.Get("x-user-id")
		if rawUserId == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		userId, err := strconv.Atoi(rawUserId)
		if err != nil || userId <= 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		ctx := utils.SetUserIdInContext(c.Request.Context(), userId)
		if userName := c.Request.Header.Get("x-user-name"); userName != "" {
			ctx = utils.SetUserNameInContext(ctx, userName)
		}
		if token := c.Request.Header.Get("token"); token != "" {
			ctx = utils.SetTokenInContext(ctx, token)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
