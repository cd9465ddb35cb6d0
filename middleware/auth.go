package middleware

import (
	"strings"

	"github.com/4GeeksAcademy/Place-Between-Daniel/models"
	"github.com/gin-gonic/gin"
)

const (
	ctxUser      = "user"
	ctxUserID    = "userID"
	ctxRequestID = "requestID"
)

// BearerToken extracts the token from "Authorization: Bearer <token>".
func BearerToken(c *gin.Context) (string, bool) {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	return token, token != ""
}

func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(ctxUser)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}

// CurrentUserID returns 0 when the request is anonymous.
func CurrentUserID(c *gin.Context) uint {
	return c.GetUint(ctxUserID)
}

func RequestID(c *gin.Context) string {
	return c.GetString(ctxRequestID)
}
