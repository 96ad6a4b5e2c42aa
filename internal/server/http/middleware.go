package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jkuschner/Document-Storage-App/internal/common"
	"github.com/jkuschner/Document-Storage-App/internal/server/auth"
)

const (
	userIDContextKey = "auth_user_id"
	emailContextKey  = "auth_email"
)

// bearerAuth validates the Authorization header and stores the authenticated
// principal in the gin context.
func bearerAuth(secretKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		claims, err := auth.ParseToken(token, secretKey)
		if err != nil {
			msg := "invalid token"
			if err == common.ErrTokenExpired {
				msg = "token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}
		c.Set(userIDContextKey, claims.UserID)
		c.Set(emailContextKey, claims.Email)
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader(common.AuthorizationHeaderName)
	if strings.HasPrefix(strings.ToLower(header), strings.ToLower(common.BearerPrefix)) {
		return strings.TrimSpace(header[len(common.BearerPrefix):])
	}
	return ""
}

// principalID retrieves the authenticated user id set by bearerAuth.
func principalID(c *gin.Context) (string, bool) {
	val, ok := c.Get(userIDContextKey)
	if !ok {
		return "", false
	}
	id, ok := val.(string)
	return id, ok && id != ""
}

// scopedUserID resolves the userId the request claims to act for and rejects
// it when it disagrees with the authenticated principal. An absent claim
// falls back to the principal.
func scopedUserID(c *gin.Context, claimed string) (string, bool) {
	principal, ok := principalID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
		return "", false
	}
	if claimed != "" && claimed != principal {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "user mismatch"})
		return "", false
	}
	return principal, true
}
