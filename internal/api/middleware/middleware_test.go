package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketmint/ticket-indexer/internal/api/middleware"
)

func TestRequestID_AssignsHeaderAndContextKey(t *testing.T) {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(middleware.REQUEST_ID_KEY))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	id := w.Header().Get(middleware.REQUEST_ID_KEY)
	assert.Len(t, id, 26)
	assert.Equal(t, id, w.Body.String())
}

func TestRequestID_ConcurrentRequests(t *testing.T) {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	const requests = 64

	ids := make([]string, requests)

	var wg sync.WaitGroup
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			ids[i] = w.Header().Get(middleware.REQUEST_ID_KEY)
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, requests)
	for _, id := range ids {
		require.Len(t, id, 26)
		assert.False(t, seen[id], "duplicate request id %s", id)
		seen[id] = true
	}
}

func TestRecovery_ConvertsPanicTo500(t *testing.T) {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.GET("/boom", func(c *gin.Context) {
		panic("handler blew up")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
