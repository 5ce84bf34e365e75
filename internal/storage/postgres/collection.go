package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sxtnflur/ar-api/internal/domain"
)

type MediaCollectionsRepo struct {
	db querier
}

var _ domain.MediaCollectionsRepository = (*MediaCollectionsRepo)(nil)

func (r *MediaCollectionsRepo) CreateCollection(ctx context.Context, name string, telegramUserID int64,
	startupURL, qrCodeURL *string) (uuid.UUID, error) {

	row := r.db.QueryRow(ctx,
		`INSERT INTO collections (name, telegram_user_id, startup_url, qr_code_url)
		 VALUES ($1, $2, $3, $4)
		 RETURNING uuid`,
		name, telegramUserID, startupURL, qrCodeURL)

	var id uuid.UUID
	if err := row.Scan(&id); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *MediaCollectionsRepo) GetCollection(ctx context.Context, collectionID uuid.UUID,
	blocksOffset int, blocksLimit *int) (*domain.Collection, error) {

	row := r.db.QueryRow(ctx,
		`SELECT uuid, name, startup_url, qr_code_url, telegram_user_id, created_at
		 FROM collections
		 WHERE uuid = $1`,
		collectionID)

	var c domain.Collection
	err := row.Scan(&c.ID, &c.Name, &c.StartupURL, &c.QRCodeURL, &c.TelegramUserID, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewNotFound("collection", "id")
	}
	if err != nil {
		return nil, err
	}

	query := `SELECT uuid, photo_url, video_url, collection_uuid, created_at
		 FROM media_blocks
		 WHERE collection_uuid = $1
		 ORDER BY created_at DESC
		 OFFSET $2`
	args := []any{collectionID, blocksOffset}
	if blocksLimit != nil {
		query += " LIMIT $3"
		args = append(args, *blocksLimit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var b domain.MediaBlock
		if err := rows.Scan(&b.ID, &b.PhotoURL, &b.VideoURL, &b.CollectionID, &b.CreatedAt); err != nil {
			return nil, err
		}
		c.Blocks = append(c.Blocks, b)
	}
	return &c, rows.Err()
}

func (r *MediaCollectionsRepo) GetCollectionsByUser(ctx context.Context, telegramUserID int64,
	offset int, limit *int) ([]domain.Collection, error) {

	query := `SELECT uuid, name, startup_url, qr_code_url, telegram_user_id, created_at
		 FROM collections
		 WHERE telegram_user_id = $1
		 ORDER BY created_at ASC
		 OFFSET $2`
	args := []any{telegramUserID, offset}
	if limit != nil {
		query += " LIMIT $3"
		args = append(args, *limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var collections []domain.Collection
	for rows.Next() {
		var c domain.Collection
		if err := rows.Scan(&c.ID, &c.Name, &c.StartupURL, &c.QRCodeURL, &c.TelegramUserID, &c.CreatedAt); err != nil {
			return nil, err
		}
		collections = append(collections, c)
	}
	return collections, rows.Err()
}

// GetCollectionMediaBlocks отдает только uuid и ссылки, без полной строки.
func (r *MediaCollectionsRepo) GetCollectionMediaBlocks(ctx context.Context, collectionID uuid.UUID) ([]domain.MediaBlock, error) {
	rows, err := r.db.Query(ctx,
		`SELECT uuid, photo_url, video_url
		 FROM media_blocks
		 WHERE collection_uuid = $1
		 ORDER BY created_at DESC`,
		collectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []domain.MediaBlock
	for rows.Next() {
		var b domain.MediaBlock
		if err := rows.Scan(&b.ID, &b.PhotoURL, &b.VideoURL); err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

func (r *MediaCollectionsRepo) GetMediaBlock(ctx context.Context, blockID uuid.UUID) (*domain.MediaBlock, error) {
	row := r.db.QueryRow(ctx,
		`SELECT uuid, photo_url, video_url, collection_uuid, created_at
		 FROM media_blocks
		 WHERE uuid = $1`,
		blockID)

	var b domain.MediaBlock
	err := row.Scan(&b.ID, &b.PhotoURL, &b.VideoURL, &b.CollectionID, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewNotFound("media_block", "id")
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *MediaCollectionsRepo) AddMediaBlock(ctx context.Context, collectionID uuid.UUID,
	photoURL, videoURL string) (uuid.UUID, error) {

	row := r.db.QueryRow(ctx,
		`INSERT INTO media_blocks (collection_uuid, photo_url, video_url)
		 VALUES ($1, $2, $3)
		 RETURNING uuid`,
		collectionID, photoURL, videoURL)

	var id uuid.UUID
	if err := row.Scan(&id); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// collectionPatchSet собирает SET-часть из заполненных полей патча.
func collectionPatchSet(patch domain.CollectionPatch) ([]string, []any) {
	var set []string
	var args []any
	if patch.Name != nil {
		args = append(args, *patch.Name)
		set = append(set, fmt.Sprintf("name = $%d", len(args)))
	}
	if patch.StartupURL != nil {
		args = append(args, *patch.StartupURL)
		set = append(set, fmt.Sprintf("startup_url = $%d", len(args)))
	}
	if patch.QRCodeURL != nil {
		args = append(args, *patch.QRCodeURL)
		set = append(set, fmt.Sprintf("qr_code_url = $%d", len(args)))
	}
	return set, args
}

// UpdateCollection меняет только заполненные поля патча. Владение проверяется
// тем же предикатом, что и само обновление: ноль строк — NotFound.
func (r *MediaCollectionsRepo) UpdateCollection(ctx context.Context, collectionID uuid.UUID,
	telegramUserID int64, patch domain.CollectionPatch) error {

	set, args := collectionPatchSet(patch)
	if len(set) == 0 {
		// Пустой патч не обходит проверку владения
		return r.checkCollectionOwned(ctx, collectionID, telegramUserID)
	}
	args = append(args, collectionID, telegramUserID)

	res, err := r.db.Exec(ctx, fmt.Sprintf(
		`UPDATE collections SET %s WHERE uuid = $%d AND telegram_user_id = $%d`,
		strings.Join(set, ", "), len(args)-1, len(args)),
		args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFound("collection", "id")
	}
	return nil
}

func (r *MediaCollectionsRepo) UpdateCollectionName(ctx context.Context, collectionID uuid.UUID,
	telegramUserID int64, name string) error {

	res, err := r.db.Exec(ctx,
		`UPDATE collections
		 SET name = $1
		 WHERE uuid = $2 AND telegram_user_id = $3`,
		name, collectionID, telegramUserID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFound("collection", "id")
	}
	return nil
}

func mediaBlockPatchSet(patch domain.MediaBlockPatch) ([]string, []any) {
	var set []string
	var args []any
	if patch.PhotoURL != nil {
		args = append(args, *patch.PhotoURL)
		set = append(set, fmt.Sprintf("photo_url = $%d", len(args)))
	}
	if patch.VideoURL != nil {
		args = append(args, *patch.VideoURL)
		set = append(set, fmt.Sprintf("video_url = $%d", len(args)))
	}
	return set, args
}

// UpdateMediaBlock: владение блоком проверяется транзитивно через владельца
// родительской коллекции.
func (r *MediaCollectionsRepo) UpdateMediaBlock(ctx context.Context, blockID uuid.UUID,
	telegramUserID int64, patch domain.MediaBlockPatch) error {

	set, args := mediaBlockPatchSet(patch)
	if len(set) == 0 {
		// Пустой патч не обходит проверку владения
		return r.checkMediaBlockOwned(ctx, blockID, telegramUserID)
	}
	args = append(args, blockID, telegramUserID)

	res, err := r.db.Exec(ctx, fmt.Sprintf(
		`UPDATE media_blocks SET %s
		 FROM collections
		 WHERE media_blocks.uuid = $%d
		   AND media_blocks.collection_uuid = collections.uuid
		   AND collections.telegram_user_id = $%d`,
		strings.Join(set, ", "), len(args)-1, len(args)),
		args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFound("media_block", "id")
	}
	return nil
}

// checkCollectionOwned выполняет тот же предикат uuid+владелец, что и мутации:
// ноль строк — NotFound, независимо от того, существует ли коллекция.
func (r *MediaCollectionsRepo) checkCollectionOwned(ctx context.Context, collectionID uuid.UUID, telegramUserID int64) error {
	row := r.db.QueryRow(ctx,
		`SELECT uuid
		 FROM collections
		 WHERE uuid = $1 AND telegram_user_id = $2`,
		collectionID, telegramUserID)

	var id uuid.UUID
	err := row.Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NewNotFound("collection", "id")
	}
	return err
}

func (r *MediaCollectionsRepo) checkMediaBlockOwned(ctx context.Context, blockID uuid.UUID, telegramUserID int64) error {
	row := r.db.QueryRow(ctx,
		`SELECT media_blocks.uuid
		 FROM media_blocks
		 JOIN collections ON media_blocks.collection_uuid = collections.uuid
		 WHERE media_blocks.uuid = $1 AND collections.telegram_user_id = $2`,
		blockID, telegramUserID)

	var id uuid.UUID
	err := row.Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NewNotFound("media_block", "id")
	}
	return err
}

func (r *MediaCollectionsRepo) DeleteCollection(ctx context.Context, collectionID uuid.UUID, telegramUserID int64) error {
	res, err := r.db.Exec(ctx,
		`DELETE FROM collections
		 WHERE uuid = $1 AND telegram_user_id = $2`,
		collectionID, telegramUserID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFound("collection", "id")
	}
	return nil
}

func (r *MediaCollectionsRepo) DeleteMediaBlock(ctx context.Context, blockID uuid.UUID, telegramUserID int64) error {
	res, err := r.db.Exec(ctx,
		`DELETE FROM media_blocks
		 USING collections
		 WHERE media_blocks.uuid = $1
		   AND media_blocks.collection_uuid = collections.uuid
		   AND collections.telegram_user_id = $2`,
		blockID, telegramUserID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFound("media_block", "id")
	}
	return nil
}
