package middleware

import (
	"fmt"
	"net/http"
	"time"

	"sports-federation-backend/app/model"
	"sports-federation-backend/app/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ActivityLogger mencatat request yang mengubah data (POST/PUT/PATCH/DELETE)
// dan semua request yang berakhir 5xx ke log aktivitas.
// Format: [ACTIVITY] METHOD path - status - latency.
func ActivityLogger(activity service.ActivityLogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		if c.Request.Method == http.MethodGet && status < http.StatusInternalServerError {
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		level := model.LogLevelInfo
		if status >= http.StatusInternalServerError {
			level = model.LogLevelError
		}
		latency := time.Since(start)

		entry := model.ActivityLog{
			Level:     level,
			Action:    fmt.Sprintf("%s %s", c.Request.Method, path),
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			Status:    status,
			UserID:    CurrentUserID(c).String(),
			LatencyMs: latency.Milliseconds(),
			Message:   c.Errors.String(),
			CreatedAt: start,
		}
		if entry.UserID == uuid.Nil.String() {
			entry.UserID = ""
		}
		activity.Record(c.Request.Context(), entry)
	}
}

// CurrentUserID mengembalikan userID dari AuthMiddleware (uuid.Nil bila tidak ada).
func CurrentUserID(c *gin.Context) uuid.UUID {
	v, ok := c.Get("userID")
	if !ok {
		return uuid.Nil
	}
	id, _ := v.(uuid.UUID)
	return id
}
