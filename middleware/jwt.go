package middleware

import (
	"errors"
	"net/http"

	"github.com/4GeeksAcademy/Place-Between-Daniel/models"
	"github.com/4GeeksAcademy/Place-Between-Daniel/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthMiddleware accepts only access-purpose bearer tokens and loads the user.
func AuthMiddleware(secret []byte, database *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := BearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}
		claims, err := utils.ParseToken(secret, tokenStr, utils.PurposeAccess)
		if err != nil {
			utils.Logger.Debug("token_rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		var user models.User
		if err := database.WithContext(c.Request.Context()).First(&user, claims.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
				return
			}
			utils.Logger.Error("auth_user_load_failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.Set(ctxUser, user)
		c.Set(ctxUserID, user.ID)
		c.Next()
	}
}
