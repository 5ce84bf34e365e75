package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sxtnflur/ar-api/internal/domain"
)

const tokenDataKey = "token_data"

// AuthMiddleware валидирует bearer-токен и кладет клеймы в контекст запроса.
// telegram_id берется только из токена, никогда из полей клиента.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		tokenData, err := h.tokens.ValidateToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.Set(tokenDataKey, tokenData)
		c.Next()
	}
}

func currentUser(c *gin.Context) domain.TokenData {
	return c.MustGet(tokenDataKey).(domain.TokenData)
}
