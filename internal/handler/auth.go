package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreateTokens godoc
// @Summary Выпуск токенов по telegram init_data
// @Tags auth
// @Accept json
// @Produce json
// @Param input body CreateTokensRequest true "init_data из Telegram WebApp"
// @Success 200 {object} TokensResponse
// @Failure 403 {object} ErrorMessage
// @Router /auth/create_tokens [post]
func (h *Handler) CreateTokens(c *gin.Context) {
	var input CreateTokensRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	tokens, err := h.auth.CreateTokensByInitData(c.Request.Context(), input.InitData)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, TokensResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

// RefreshTokens godoc
// @Summary Перевыпуск пары токенов по refresh-токену
// @Tags auth
// @Accept json
// @Produce json
// @Param input body RefreshRequest true "refresh токен"
// @Success 200 {object} TokensResponse
// @Failure 403 {object} ErrorMessage
// @Router /auth/refresh_token [put]
func (h *Handler) RefreshTokens(c *gin.Context) {
	var input RefreshRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	tokens, err := h.tokens.RefreshTokens(input.RefreshToken)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, TokensResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}
