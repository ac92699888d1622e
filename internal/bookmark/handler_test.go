// File: internal/bookmark/handler_test.go
package bookmark

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"slate_backend/internal/identity"
	"slate_backend/internal/store"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := NewService(store.NewMemory(), zap.NewNop())
	h := NewHandler(svc, zap.NewNop())

	router := gin.New()
	authMW := func(c *gin.Context) {
		c.Set(identity.ContextKey, &identity.Identity{UID: "user-1"})
		c.Next()
	}
	h.RegisterRoutes(router.Group("/api/v1"), authMW)
	return router
}

func TestUnsavePost_RespondsNoContent(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/saved-posts/post-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestSavePost_RespondsCreated(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/saved-posts/post-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}
