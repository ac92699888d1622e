// File: internal/middleware/auth.go
package middleware

import (
	"strings"

	"slate_backend/internal/common"
	"slate_backend/internal/firebase"
	"slate_backend/internal/identity"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// AuthorizationHeader is the header name for authorization token
	AuthorizationHeader = "Authorization"
	// AuthorizationTypeBearer is the prefix for Bearer tokens
	AuthorizationTypeBearer = "Bearer"
)

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader(AuthorizationHeader)
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], AuthorizationTypeBearer) {
		return ""
	}
	return parts[1]
}

// AuthMiddleware verifies the Firebase ID token on the Authorization header
// and stores the resolved identity in the context. Requests without a valid
// token are rejected.
func AuthMiddleware(fb *firebase.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			logger.Debug("Authorization header missing or malformed")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header format must be 'Bearer <token>'."))
			return
		}

		token, err := fb.VerifyIDToken(c.Request.Context(), tokenString)
		if err != nil {
			logger.Warn("Token verification failed", zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails(err.Error()))
			return
		}

		ident := identity.FromToken(token)
		c.Set(identity.ContextKey, ident)
		logger.Debug("User authenticated successfully", zap.String("uid", ident.UID))

		c.Next()
	}
}

// OptionalAuthMiddleware resolves the identity when a valid token is present
// but lets unauthenticated requests through. Post creation uses this: absent
// an identity, the post is attributed to the Anonymous placeholder.
func OptionalAuthMiddleware(fb *firebase.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString != "" {
			if token, err := fb.VerifyIDToken(c.Request.Context(), tokenString); err == nil {
				c.Set(identity.ContextKey, identity.FromToken(token))
			} else {
				logger.Debug("Ignoring invalid token on optional-auth route", zap.Error(err))
			}
		}
		c.Next()
	}
}

// GetIdentityFromContext retrieves the authenticated identity from the Gin
// context. Returns nil when unauthenticated.
func GetIdentityFromContext(c *gin.Context) *identity.Identity {
	return identity.FromContext(c)
}
