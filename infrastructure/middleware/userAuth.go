package middlewares

import (
	"strings"

	apperrors "clockedin.io/application/appErrors"
	"clockedin.io/infrastructure/auth"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

// UserAuthenticationMiddleware resolves the bearer token into a user identity.
// Controllers later compare this identity against the claimed user_id in the
// payload; a mismatch is a 403, never a silent override.
func UserAuthenticationMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.Request.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.AuthenticationError(ctx, "provide an auth token")
			return
		}
		token, err := auth.DecodeAuthToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			apperrors.AuthenticationError(ctx, "this session has expired. sign in again.")
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			apperrors.AuthenticationError(ctx, "this session has expired. sign in again.")
			return
		}
		userID, ok := claims["userID"].(string)
		if !ok || userID == "" {
			apperrors.AuthenticationError(ctx, "this session has expired. sign in again.")
			return
		}
		ctx.Set("UserID", userID)
		if deviceID, ok := claims["deviceID"].(string); ok {
			ctx.Set("DeviceID", deviceID)
		}
		ctx.Next()
	}
}
