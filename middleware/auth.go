package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tharoon321/event-attendance/utils"
)

// ClaimsKey is the gin context key holding the verified *utils.AdminClaims.
const ClaimsKey = "admin"

// AdminAuth verifies the Authorization: Bearer <token> header and rejects
// tokens that do not assert isAdmin.
func AdminAuth(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := utils.BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			msg := "No token provided"
			if errors.Is(err, utils.ErrMalformedToken) {
				msg = "Malformed token"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		claims, err := tokens.Parse(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		if !claims.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: Admins only"})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// AdminClaims returns the claims stored by AdminAuth, if any.
func AdminClaims(c *gin.Context) (*utils.AdminClaims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.AdminClaims)
	return claims, ok
}
