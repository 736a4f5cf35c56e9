package middleware

import (
	"net/http"
	"strings"

	"healthmate/backend/common"
	"healthmate/backend/service"

	"github.com/gin-gonic/gin"
)

// Context keys set by JWTAuth.
const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
	CtxRole   = "role"
	CtxToken  = "token"
	CtxClaims = "claims"
)

// JWTAuth is a middleware that validates JWT tokens
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.AbortWithError(c, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			common.AbortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}

		tokenString := parts[1]
		claims, err := service.ValidateToken(tokenString)
		if err != nil {
			common.AbortWithError(c, http.StatusUnauthorized, err.Error())
			return
		}

		if service.IsTokenBlacklisted(c.Request.Context(), tokenString) {
			common.AbortWithError(c, http.StatusUnauthorized, "Token has been invalidated")
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxToken, tokenString)
		c.Set(CtxClaims, claims)

		c.Next()
	}
}

// CurrentUserID returns the authenticated user id set by JWTAuth.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(CtxUserID)
}

// CurrentClaims returns the validated claims set by JWTAuth.
func CurrentClaims(c *gin.Context) *service.JWTClaims {
	v, ok := c.Get(CtxClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*service.JWTClaims)
	return claims
}
