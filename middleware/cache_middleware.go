package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/4GeeksAcademy/Place-Between-Daniel/cache"
	"github.com/4GeeksAcademy/Place-Between-Daniel/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CacheMiddleware caches successful GET responses per user. Entries live under
// cache.UserKeyPrefix so a user's writes can drop them all at once.
func CacheMiddleware(duration time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || !cache.Enabled() || duration <= 0 {
			c.Next()
			return
		}

		userID := CurrentUserID(c)
		if userID == 0 {
			c.Next()
			return
		}
		cacheKey := fmt.Sprintf("%s%s?%s", cache.UserKeyPrefix(userID), c.Request.URL.Path, c.Request.URL.RawQuery)
		ctx := c.Request.Context()

		var cached CachedResponse
		if err := cache.Get(ctx, cacheKey, &cached); err == nil {
			utils.Logger.Debug("cache_hit", zap.String("key", cacheKey))
			c.Header("X-Cache", "HIT")
			c.Data(cached.Status, cached.ContentType, cached.Body)
			c.Abort()
			return
		}

		c.Header("X-Cache", "MISS")
		blw := &bodyLogWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		if c.Writer.Status() != http.StatusOK {
			return
		}
		resp := CachedResponse{
			Status:      c.Writer.Status(),
			ContentType: c.Writer.Header().Get("Content-Type"),
			Body:        blw.body.Bytes(),
		}
		if err := cache.Set(ctx, cacheKey, resp, duration); err != nil {
			utils.Logger.Warn("cache_set_failed",
				zap.Error(err),
				zap.String("key", cacheKey),
			)
		}
	}
}

type CachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type bodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyLogWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w bodyLogWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
