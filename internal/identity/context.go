// File: internal/identity/context.go
package identity

import "github.com/gin-gonic/gin"

// ContextKey is the gin context key under which the auth middleware stores
// the resolved identity for the request.
const ContextKey = "identity"

// FromContext retrieves the authenticated identity from the gin context.
// Returns nil when the request is unauthenticated.
func FromContext(c *gin.Context) *Identity {
	val, exists := c.Get(ContextKey)
	if !exists {
		return nil
	}
	ident, ok := val.(*Identity)
	if !ok {
		return nil
	}
	return ident
}
