package middlewares

import (
	"crypto/subtle"
	"os"

	apperrors "clockedin.io/application/appErrors"
	"github.com/gin-gonic/gin"
)

// AdminAuthenticationMiddleware guards operator endpoints with the shared
// admin key. Policy edits change admission behavior for every device, so they
// never ride on an ordinary user token.
func AdminAuthenticationMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		adminKey := os.Getenv("ADMIN_API_KEY")
		provided := ctx.Request.Header.Get("X-Admin-Key")
		if adminKey == "" || subtle.ConstantTimeCompare([]byte(adminKey), []byte(provided)) != 1 {
			apperrors.AuthenticationError(ctx, "unauthorized access")
			return
		}
		ctx.Next()
	}
}
