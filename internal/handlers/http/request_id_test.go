package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	handlers "github.com/Nazarious-ucu/weather-lookup/internal/handlers/http"
)

func newRequestIDRouter(seen *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(handlers.RequestID())
	router.GET("/ping", func(c *gin.Context) {
		*seen = handlers.RequestIDFrom(c)
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestRequestID(t *testing.T) {
	t.Run("generates when missing", func(t *testing.T) {
		var seen string
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)

		newRequestIDRouter(&seen).ServeHTTP(w, req)

		id := w.Header().Get(handlers.RequestIDHeader)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, seen)
	})

	t.Run("keeps a valid client id", func(t *testing.T) {
		var seen string
		clientID := uuid.NewString()
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(handlers.RequestIDHeader, clientID)

		newRequestIDRouter(&seen).ServeHTTP(w, req)

		assert.Equal(t, clientID, w.Header().Get(handlers.RequestIDHeader))
		assert.Equal(t, clientID, seen)
	})

	t.Run("replaces garbage", func(t *testing.T) {
		var seen string
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(handlers.RequestIDHeader, "not-an-id")

		newRequestIDRouter(&seen).ServeHTTP(w, req)

		assert.NotEqual(t, "not-an-id", seen)
		assert.Equal(t, seen, w.Header().Get(handlers.RequestIDHeader))
	})
}
