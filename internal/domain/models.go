package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID         int64     `db:"id"`
	TelegramID int64     `db:"telegram_id"`
	Username   string    `db:"username"`
	FullName   string    `db:"full_name"`
	CreatedAt  time.Time `db:"created_at"`
}

type Collection struct {
	ID             uuid.UUID    `json:"id"`
	Name           string       `json:"name"`
	StartupURL     *string      `json:"startup_url"`
	QRCodeURL      *string      `json:"qr_code_url"`
	TelegramUserID int64        `json:"telegram_user_id"`
	CreatedAt      time.Time    `json:"created_at"`
	Blocks         []MediaBlock `json:"blocks,omitempty"`
}

type MediaBlock struct {
	ID           uuid.UUID `json:"id"`
	PhotoURL     string    `json:"photo_url"`
	VideoURL     string    `json:"video_url"`
	CollectionID uuid.UUID `json:"collection_id,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// CollectionPatch описывает частичное обновление коллекции:
// nil — поле не трогаем, не-nil — записываем новое значение.
type CollectionPatch struct {
	Name       *string
	StartupURL *string
	QRCodeURL  *string
}

// MediaBlockPatch — частичное обновление медиа-блока.
type MediaBlockPatch struct {
	PhotoURL *string
	VideoURL *string
}

// TelegramUser — профиль пользователя из поля user в init_data.
type TelegramUser struct {
	ID              int64  `json:"id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Username        string `json:"username"`
	LanguageCode    string `json:"language_code"`
	IsPremium       bool   `json:"is_premium"`
	AllowsWriteToPM bool   `json:"allows_write_to_pm"`
}

// TokenData — идентичность, зашитая в sub токена.
type TokenData struct {
	UserID     int64 `json:"user_id"`
	TelegramID int64 `json:"telegram_id"`
}

type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type FileType string

const (
	FileTypePhoto FileType = "photo"
	FileTypeVideo FileType = "video"
)
