package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"teamboard.backend/internal/domain/entities"
	"teamboard.backend/pkg/jwt"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// IdentityKey is the context key for the authenticated identity
	IdentityKey = "identity"
)

// AuthMiddleware validates the identity token and attaches the caller's
// identity to the request context.
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header is required",
			})
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization format. Use: Bearer <token>",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			if err == jwt.ErrExpiredToken {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Token has expired",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
			})
			return
		}

		c.Set(IdentityKey, entities.Identity{
			UserID:    claims.Subject,
			Email:     claims.Email,
			FullName:  claims.FullName,
			AvatarURL: claims.AvatarURL,
		})

		c.Next()
	}
}

// GetIdentity gets the authenticated identity from context. The zero
// identity comes back on unauthenticated routes; usecases reject it.
func GetIdentity(c *gin.Context) entities.Identity {
	if v, exists := c.Get(IdentityKey); exists {
		if identity, ok := v.(entities.Identity); ok {
			return identity
		}
	}
	return entities.Identity{}
}
