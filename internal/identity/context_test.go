// File: internal/identity/context_test.go
package identity

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestFromContext_ReturnsStoredIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	ident := &Identity{UID: "user-1"}
	c.Set(ContextKey, ident)

	assert.Same(t, ident, FromContext(c))
}

func TestFromContext_NilWhenUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Nil(t, FromContext(c))
}

func TestFromContext_NilOnUnexpectedValue(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	c.Set(ContextKey, "not an identity")

	assert.Nil(t, FromContext(c))
}
