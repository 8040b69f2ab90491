package middleware

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parkgrid/parkgrid-api/internal/models"
	"github.com/parkgrid/parkgrid-api/internal/repository"
	"github.com/parkgrid/parkgrid-api/pkg/middleware/requestid"
)

// Audit writes an audit log entry once the wrapped handler finishes below
// status 400. Audit write failures are dropped; auditing never fails a
// request that already succeeded.
func Audit(repo *repository.ActionLogRepository, action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now().UTC()
		c.Next()

		if c.Writer.Status() >= 400 {
			return
		}

		entry := models.AuditLog{
			Action:    action,
			Resource:  resource,
			IPAddress: c.ClientIP(),
			UserAgent: c.GetHeader("User-Agent"),
		}
		if claims, ok := c.Get(ContextUserKey); ok {
			if user, ok := claims.(*models.JWTClaims); ok {
				entry.UserID = &user.UserID
			}
		}
		if id := c.Param("id"); id != "" {
			entry.ResourceID = &id
		}

		payload := map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     c.Writer.Status(),
			"elapsed_ms": time.Since(start).Milliseconds(),
		}
		if rid := requestid.Value(c); rid != "" {
			payload["request_id"] = rid
		}
		if q := c.Request.URL.RawQuery; q != "" {
			payload["query"] = q
		}
		entry.NewValues, _ = json.Marshal(payload)

		_ = repo.CreateAuditLog(c.Request.Context(), &entry)
	}
}
