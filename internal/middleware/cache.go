package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

// CacheMiddleware caches GET responses for public, rarely-changing
// resources such as tour listings. Notification reads are never cached:
// unread counts must reflect committed state at call time.
type CacheMiddleware struct {
	store *cache.Cache
}

func NewCacheMiddleware(ttl, cleanupInterval time.Duration) *CacheMiddleware {
	return &CacheMiddleware{
		store: cache.New(ttl, cleanupInterval),
	}
}

type cachedResponse struct {
	status int
	body   []byte
}

type cacheWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *cacheWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Cache serves a stored copy when present, otherwise records the response.
func (m *CacheMiddleware) Cache() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.URL.RequestURI()
		if entry, found := m.store.Get(key); found {
			resp := entry.(cachedResponse)
			c.Data(resp.status, "application/json", resp.body)
			c.Abort()
			return
		}

		w := &cacheWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = w

		c.Next()

		if c.Writer.Status() == http.StatusOK {
			m.store.Set(key, cachedResponse{
				status: c.Writer.Status(),
				body:   w.body.Bytes(),
			}, cache.DefaultExpiration)
		}
	}
}

// Invalidate drops all cached entries, called after admin writes.
func (m *CacheMiddleware) Invalidate() {
	m.store.Flush()
}
