package handler

import (
	"github.com/google/uuid"

	"github.com/sxtnflur/ar-api/internal/domain"
)

// ErrorMessage представляет сообщение об ошибке
type ErrorMessage struct {
	Error string `json:"error" example:"token is invalid"`
}

type BaseResponse struct {
	Message string `json:"message" example:"ok"`
}

type CreateTokensRequest struct {
	InitData string `json:"init_data" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type TokensResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type CreateCollectionRequest struct {
	Name string `json:"name" binding:"required" example:"Trip"`
}

type UpdateCollectionNameRequest struct {
	Name string `json:"name" binding:"required" example:"Trip 2026"`
}

// CollectionResponse: startup_url и qr_code_url могут быть null, пока
// коллекция не финализирована вторым шагом создания.
type CollectionResponse struct {
	ID         uuid.UUID            `json:"id"`
	Name       string               `json:"name"`
	StartupURL *string              `json:"startup_url"`
	QRCodeURL  *string              `json:"qr_code_url"`
	Blocks     []MediaBlockResponse `json:"blocks,omitempty"`
}

type MediaBlockResponse struct {
	ID       uuid.UUID `json:"id"`
	PhotoURL string    `json:"photo_url"`
	VideoURL string    `json:"video_url"`
}

func toCollectionResponse(c *domain.Collection) CollectionResponse {
	resp := CollectionResponse{
		ID:         c.ID,
		Name:       c.Name,
		StartupURL: c.StartupURL,
		QRCodeURL:  c.QRCodeURL,
	}
	for _, b := range c.Blocks {
		resp.Blocks = append(resp.Blocks, toMediaBlockResponse(&b))
	}
	return resp
}

func toMediaBlockResponse(b *domain.MediaBlock) MediaBlockResponse {
	return MediaBlockResponse{
		ID:       b.ID,
		PhotoURL: b.PhotoURL,
		VideoURL: b.VideoURL,
	}
}
