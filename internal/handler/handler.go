package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sxtnflur/ar-api/internal/domain"
	"github.com/sxtnflur/ar-api/internal/service"
)

type Handler struct {
	auth   *service.AuthUseCase
	media  *service.MediaUseCase
	tokens domain.TokenService
	log    *zap.Logger
}

func NewHandler(auth *service.AuthUseCase, media *service.MediaUseCase,
	tokens domain.TokenService, log *zap.Logger) *Handler {
	return &Handler{auth: auth, media: media, tokens: tokens, log: log}
}

// respondError транслирует доменные ошибки в статусы:
// NotFound -> 404, ошибки токенов и init_data -> 403, остальное -> 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	var notFound *domain.NotFoundError
	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{
			"message": notFound.Error(),
			"entity":  notFound.Entity,
			"byField": notFound.Field,
		})
	case errors.Is(err, domain.ErrInvalidInitData),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrExpiredToken):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		h.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
