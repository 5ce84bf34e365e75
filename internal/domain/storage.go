package domain

import "context"

// FileStorage — внешнее блоб-хранилище. Запись и удаление не транзакционны
// и не компенсируются автоматически.
type FileStorage interface {
	// SaveFile сохраняет байты и возвращает публичный URL вида
	// https://{domain}/cdn/{filename}. Имя файла дополняется unix-меткой
	// времени, чтобы избежать коллизий.
	SaveFile(ctx context.Context, file []byte, filename string) (string, error)
	DeleteFileByURL(ctx context.Context, url string) error
	FormatFilename(telegramUserID int64, fileType FileType) string
}
