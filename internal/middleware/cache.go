package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Context key for the per-request response metadata bag. Handlers and
// middleware write to the same map so cache and timing annotations land
// in one envelope.
const metaContextKey = "response.meta"

// WithResponseMeta seeds every request with a metadata bag and stamps the
// total processing time once the handler chain returns, unless a handler
// already recorded a more precise value.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Set(metaContextKey, map[string]interface{}{})
		c.Next()
		bag := metaBag(c, true)
		if _, ok := bag["processing_time_ms"]; !ok {
			bag["processing_time_ms"] = time.Since(started).Milliseconds()
		}
	}
}

// SetCacheHit annotates the response with whether it was served from cache.
func SetCacheHit(c *gin.Context, hit bool) {
	metaBag(c, true)["cache_hit"] = hit
}

// ExtractMeta returns the request's metadata bag, or nil when none exists.
func ExtractMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	return metaBag(c, false)
}

// metaBag fetches the metadata map from the context. With create set it
// installs an empty bag when the request has none yet.
func metaBag(c *gin.Context, create bool) map[string]interface{} {
	if c == nil {
		if create {
			return map[string]interface{}{}
		}
		return nil
	}
	if v, ok := c.Get(metaContextKey); ok {
		if m, ok := v.(map[string]interface{}); ok {
			return m
		}
	}
	if !create {
		return nil
	}
	m := map[string]interface{}{}
	c.Set(metaContextKey, m)
	return m
}
