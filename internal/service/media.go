package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sxtnflur/ar-api/internal/domain"
)

type StartupURLBuilder interface {
	CreateStartupURL(payload string) string
}

type QRCodeGenerator interface {
	CreateQRCode(payload string) ([]byte, error)
}

// MediaUseCase оркестрирует коллекции и медиа-блоки: БД через unit-of-work,
// блоб-хранилище и QR-генерация — вне транзакций.
type MediaUseCase struct {
	uow         domain.UnitOfWork
	fileStorage domain.FileStorage
	startupURLs StartupURLBuilder
	qrCodes     QRCodeGenerator
	log         *zap.Logger
}

func NewMediaUseCase(uow domain.UnitOfWork, fileStorage domain.FileStorage,
	startupURLs StartupURLBuilder, qrCodes QRCodeGenerator, log *zap.Logger) *MediaUseCase {
	return &MediaUseCase{
		uow:         uow,
		fileStorage: fileStorage,
		startupURLs: startupURLs,
		qrCodes:     qrCodes,
		log:         log,
	}
}

// CreateCollection создает коллекцию в два шага: сначала временная запись без
// ссылок, затем отдельной транзакцией дописываются startup_url и qr_code_url.
// Id коллекции должен существовать до того, как попадет в собственный QR.
func (u *MediaUseCase) CreateCollection(ctx context.Context, telegramUserID int64, name string) (*domain.Collection, error) {
	var collectionID uuid.UUID
	err := u.uow.Do(ctx, func(r domain.Repos) error {
		var err error
		collectionID, err = r.MediaCollections.CreateCollection(ctx, name, telegramUserID, nil, nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	startupURL := u.startupURLs.CreateStartupURL(fmt.Sprintf("collection|%s", collectionID))

	qrCodeBytes, err := u.qrCodes.CreateQRCode(startupURL)
	if err != nil {
		return nil, err
	}

	qrCodeURL, err := u.fileStorage.SaveFile(ctx, qrCodeBytes,
		fmt.Sprintf("%d-%s-qrcode", telegramUserID, url.QueryEscape(name)))
	if err != nil {
		return nil, err
	}

	err = u.uow.Do(ctx, func(r domain.Repos) error {
		return r.MediaCollections.UpdateCollection(ctx, collectionID, telegramUserID, domain.CollectionPatch{
			StartupURL: &startupURL,
			QRCodeURL:  &qrCodeURL,
		})
	})
	if err != nil {
		return nil, err
	}

	return &domain.Collection{
		ID:             collectionID,
		Name:           name,
		StartupURL:     &startupURL,
		QRCodeURL:      &qrCodeURL,
		TelegramUserID: telegramUserID,
	}, nil
}

// AddMediaBlock сохраняет оба блоба до открытия транзакции. Если вставка
// упадет, загруженные файлы не подчищаются.
func (u *MediaUseCase) AddMediaBlock(ctx context.Context, collectionID uuid.UUID, telegramUserID int64,
	photo, video []byte) (*domain.MediaBlock, error) {

	photoURL, err := u.fileStorage.SaveFile(ctx, photo,
		u.fileStorage.FormatFilename(telegramUserID, domain.FileTypePhoto))
	if err != nil {
		return nil, err
	}
	videoURL, err := u.fileStorage.SaveFile(ctx, video,
		u.fileStorage.FormatFilename(telegramUserID, domain.FileTypeVideo))
	if err != nil {
		return nil, err
	}

	var blockID uuid.UUID
	err = u.uow.Do(ctx, func(r domain.Repos) error {
		blockID, err = r.MediaCollections.AddMediaBlock(ctx, collectionID, photoURL, videoURL)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &domain.MediaBlock{
		ID:       blockID,
		PhotoURL: photoURL,
		VideoURL: videoURL,
	}, nil
}

// PatchMediaBlock заменяет фото и/или видео. Старые блобы удаляются только
// после коммита обновления: иначе при падении посередине не останется ни
// старой, ни новой ссылки.
func (u *MediaUseCase) PatchMediaBlock(ctx context.Context, blockID uuid.UUID, telegramUserID int64,
	photo, video []byte) error {

	patch := domain.MediaBlockPatch{}
	if len(photo) > 0 {
		photoURL, err := u.fileStorage.SaveFile(ctx, photo,
			u.fileStorage.FormatFilename(telegramUserID, domain.FileTypePhoto))
		if err != nil {
			return err
		}
		patch.PhotoURL = &photoURL
	}
	if len(video) > 0 {
		videoURL, err := u.fileStorage.SaveFile(ctx, video,
			u.fileStorage.FormatFilename(telegramUserID, domain.FileTypeVideo))
		if err != nil {
			return err
		}
		patch.VideoURL = &videoURL
	}

	var oldBlock *domain.MediaBlock
	err := u.uow.Do(ctx, func(r domain.Repos) error {
		var err error
		oldBlock, err = r.MediaCollections.GetMediaBlock(ctx, blockID)
		if err != nil {
			return err
		}
		return r.MediaCollections.UpdateMediaBlock(ctx, blockID, telegramUserID, patch)
	})
	if err != nil {
		return err
	}

	if patch.PhotoURL != nil {
		if err := u.fileStorage.DeleteFileByURL(ctx, oldBlock.PhotoURL); err != nil {
			u.log.Warn("delete old photo", zap.String("url", oldBlock.PhotoURL), zap.Error(err))
		}
	}
	if patch.VideoURL != nil {
		if err := u.fileStorage.DeleteFileByURL(ctx, oldBlock.VideoURL); err != nil {
			u.log.Warn("delete old video", zap.String("url", oldBlock.VideoURL), zap.Error(err))
		}
	}
	return nil
}

func (u *MediaUseCase) DeleteCollection(ctx context.Context, collectionID uuid.UUID, telegramUserID int64) error {
	return u.uow.Do(ctx, func(r domain.Repos) error {
		return r.MediaCollections.DeleteCollection(ctx, collectionID, telegramUserID)
	})
}

func (u *MediaUseCase) DeleteMediaBlock(ctx context.Context, blockID uuid.UUID, telegramUserID int64) error {
	return u.uow.Do(ctx, func(r domain.Repos) error {
		return r.MediaCollections.DeleteMediaBlock(ctx, blockID, telegramUserID)
	})
}

func (u *MediaUseCase) UpdateCollectionName(ctx context.Context, collectionID uuid.UUID, telegramUserID int64, name string) error {
	return u.uow.Do(ctx, func(r domain.Repos) error {
		return r.MediaCollections.UpdateCollectionName(ctx, collectionID, telegramUserID, name)
	})
}

func (u *MediaUseCase) GetCollection(ctx context.Context, collectionID uuid.UUID,
	blocksOffset int, blocksLimit *int) (*domain.Collection, error) {

	var collection *domain.Collection
	err := u.uow.Do(ctx, func(r domain.Repos) error {
		var err error
		collection, err = r.MediaCollections.GetCollection(ctx, collectionID, blocksOffset, blocksLimit)
		return err
	})
	return collection, err
}

func (u *MediaUseCase) GetUserCollections(ctx context.Context, telegramUserID int64,
	offset int, limit *int) ([]domain.Collection, error) {

	var collections []domain.Collection
	err := u.uow.Do(ctx, func(r domain.Repos) error {
		var err error
		collections, err = r.MediaCollections.GetCollectionsByUser(ctx, telegramUserID, offset, limit)
		return err
	})
	return collections, err
}

func (u *MediaUseCase) GetCollectionMediaBlocks(ctx context.Context, collectionID uuid.UUID) ([]domain.MediaBlock, error) {
	var blocks []domain.MediaBlock
	err := u.uow.Do(ctx, func(r domain.Repos) error {
		var err error
		blocks, err = r.MediaCollections.GetCollectionMediaBlocks(ctx, collectionID)
		return err
	})
	return blocks, err
}
