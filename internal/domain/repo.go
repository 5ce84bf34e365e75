package domain

import (
	"context"

	"github.com/google/uuid"
)

type UsersRepository interface {
	// UpsertUser создает пользователя либо обновляет username и full_name
	// по telegram_id. Возвращает внутренний id.
	UpsertUser(ctx context.Context, telegramID int64, username, fullName string) (int64, error)
	GetUser(ctx context.Context, telegramID int64) (*User, error)
}

type MediaCollectionsRepository interface {
	CreateCollection(ctx context.Context, name string, telegramUserID int64, startupURL, qrCodeURL *string) (uuid.UUID, error)
	GetCollection(ctx context.Context, collectionID uuid.UUID, blocksOffset int, blocksLimit *int) (*Collection, error)
	// GetCollectionsByUser: nil limit — без ограничения по количеству.
	GetCollectionsByUser(ctx context.Context, telegramUserID int64, offset int, limit *int) ([]Collection, error)
	GetCollectionMediaBlocks(ctx context.Context, collectionID uuid.UUID) ([]MediaBlock, error)
	GetMediaBlock(ctx context.Context, blockID uuid.UUID) (*MediaBlock, error)
	AddMediaBlock(ctx context.Context, collectionID uuid.UUID, photoURL, videoURL string) (uuid.UUID, error)
	UpdateCollection(ctx context.Context, collectionID uuid.UUID, telegramUserID int64, patch CollectionPatch) error
	UpdateCollectionName(ctx context.Context, collectionID uuid.UUID, telegramUserID int64, name string) error
	UpdateMediaBlock(ctx context.Context, blockID uuid.UUID, telegramUserID int64, patch MediaBlockPatch) error
	DeleteCollection(ctx context.Context, collectionID uuid.UUID, telegramUserID int64) error
	DeleteMediaBlock(ctx context.Context, blockID uuid.UUID, telegramUserID int64) error
}

// Repos — репозитории, привязанные к одной транзакции.
type Repos struct {
	Users            UsersRepository
	MediaCollections MediaCollectionsRepository
}

// UnitOfWork выполняет fn в рамках одной транзакции: commit при nil,
// rollback при любой ошибке. Соединение освобождается в любом случае.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(r Repos) error) error
}
