package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sxtnflur/ar-api/internal/domain"
	"github.com/sxtnflur/ar-api/internal/service"
)

func newTestContext(authorization string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/collections/my", nil)
	if authorization != "" {
		c.Request.Header.Set("Authorization", authorization)
	}
	return c, w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := service.NewAuthService("test-secret-key")
	h := NewHandler(nil, nil, tokens, zap.NewNop())

	pair, err := tokens.CreateTokens(domain.TokenData{UserID: 7, TelegramID: 99})
	require.NoError(t, err)

	c, _ := newTestContext("Bearer " + pair.AccessToken)
	h.AuthMiddleware()(c)

	assert.False(t, c.IsAborted())
	assert.Equal(t, domain.TokenData{UserID: 7, TelegramID: 99}, currentUser(c))
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	h := NewHandler(nil, nil, service.NewAuthService("test-secret-key"), zap.NewNop())

	c, w := newTestContext("")
	h.AuthMiddleware()(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	h := NewHandler(nil, nil, service.NewAuthService("test-secret-key"), zap.NewNop())

	c, w := newTestContext("Bearer not.a.token")
	h.AuthMiddleware()(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
}
