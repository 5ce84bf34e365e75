package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/sxtnflur/ar-api/internal/domain"
)

// Фейки для тестов воркфлоу: uow без настоящей транзакции,
// репозитории и блоб-хранилище в памяти с общим журналом событий.

type fakeUoW struct {
	repos domain.Repos
}

func (f *fakeUoW) Do(_ context.Context, fn func(r domain.Repos) error) error {
	return fn(f.repos)
}

type fakeFileStorage struct {
	saved   map[string][]byte
	deleted []string
	events  *[]string
	seq     int
}

func newFakeFileStorage(events *[]string) *fakeFileStorage {
	return &fakeFileStorage{saved: map[string][]byte{}, events: events}
}

func (f *fakeFileStorage) SaveFile(_ context.Context, file []byte, filename string) (string, error) {
	f.seq++
	url := fmt.Sprintf("https://test.example/cdn/%d_%s", f.seq, filename)
	f.saved[url] = file
	*f.events = append(*f.events, "save:"+filename)
	return url, nil
}

func (f *fakeFileStorage) DeleteFileByURL(_ context.Context, url string) error {
	delete(f.saved, url)
	f.deleted = append(f.deleted, url)
	*f.events = append(*f.events, "delete:"+url)
	return nil
}

func (f *fakeFileStorage) FormatFilename(telegramUserID int64, fileType domain.FileType) string {
	return fmt.Sprintf("%d_%s", telegramUserID, fileType)
}

type fakeMediaRepo struct {
	collections map[uuid.UUID]*domain.Collection
	blocks      map[uuid.UUID]*domain.MediaBlock
	events      *[]string
	clock       time.Time

	failAddBlock    bool
	failUpdateBlock bool
}

func newFakeMediaRepo(events *[]string) *fakeMediaRepo {
	return &fakeMediaRepo{
		collections: map[uuid.UUID]*domain.Collection{},
		blocks:      map[uuid.UUID]*domain.MediaBlock{},
		events:      events,
		clock:       time.Unix(1726000000, 0),
	}
}

func (f *fakeMediaRepo) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeMediaRepo) CreateCollection(_ context.Context, name string, telegramUserID int64,
	startupURL, qrCodeURL *string) (uuid.UUID, error) {

	id := uuid.New()
	f.collections[id] = &domain.Collection{
		ID:             id,
		Name:           name,
		StartupURL:     startupURL,
		QRCodeURL:      qrCodeURL,
		TelegramUserID: telegramUserID,
		CreatedAt:      f.tick(),
	}
	*f.events = append(*f.events, "create-collection")
	return id, nil
}

func (f *fakeMediaRepo) GetCollection(_ context.Context, collectionID uuid.UUID,
	blocksOffset int, blocksLimit *int) (*domain.Collection, error) {

	c, ok := f.collections[collectionID]
	if !ok {
		return nil, domain.NewNotFound("collection", "id")
	}
	out := *c
	out.Blocks = nil
	blocks := f.collectionBlocks(collectionID, false)
	if blocksOffset < len(blocks) {
		blocks = blocks[blocksOffset:]
	} else {
		blocks = nil
	}
	if blocksLimit != nil && *blocksLimit < len(blocks) {
		blocks = blocks[:*blocksLimit]
	}
	out.Blocks = blocks
	return &out, nil
}

func (f *fakeMediaRepo) GetCollectionsByUser(_ context.Context, telegramUserID int64,
	offset int, limit *int) ([]domain.Collection, error) {

	var collections []domain.Collection
	for _, c := range f.collections {
		if c.TelegramUserID == telegramUserID {
			collections = append(collections, *c)
		}
	}
	sort.Slice(collections, func(i, j int) bool {
		return collections[i].CreatedAt.Before(collections[j].CreatedAt)
	})
	if offset < len(collections) {
		collections = collections[offset:]
	} else {
		collections = nil
	}
	if limit != nil && *limit < len(collections) {
		collections = collections[:*limit]
	}
	return collections, nil
}

func (f *fakeMediaRepo) collectionBlocks(collectionID uuid.UUID, projected bool) []domain.MediaBlock {
	var blocks []domain.MediaBlock
	for _, b := range f.blocks {
		if b.CollectionID != collectionID {
			continue
		}
		out := *b
		if projected {
			out = domain.MediaBlock{ID: b.ID, PhotoURL: b.PhotoURL, VideoURL: b.VideoURL}
		}
		blocks = append(blocks, out)
	}
	sort.Slice(blocks, func(i, j int) bool {
		return f.blocks[blocks[i].ID].CreatedAt.After(f.blocks[blocks[j].ID].CreatedAt)
	})
	return blocks
}

func (f *fakeMediaRepo) GetCollectionMediaBlocks(_ context.Context, collectionID uuid.UUID) ([]domain.MediaBlock, error) {
	return f.collectionBlocks(collectionID, true), nil
}

func (f *fakeMediaRepo) GetMediaBlock(_ context.Context, blockID uuid.UUID) (*domain.MediaBlock, error) {
	b, ok := f.blocks[blockID]
	if !ok {
		return nil, domain.NewNotFound("media_block", "id")
	}
	out := *b
	*f.events = append(*f.events, "get-block")
	return &out, nil
}

func (f *fakeMediaRepo) AddMediaBlock(_ context.Context, collectionID uuid.UUID,
	photoURL, videoURL string) (uuid.UUID, error) {

	if f.failAddBlock {
		return uuid.Nil, fmt.Errorf("insert failed")
	}
	if _, ok := f.collections[collectionID]; !ok {
		return uuid.Nil, fmt.Errorf("fk violation: collection %s", collectionID)
	}
	id := uuid.New()
	f.blocks[id] = &domain.MediaBlock{
		ID:           id,
		PhotoURL:     photoURL,
		VideoURL:     videoURL,
		CollectionID: collectionID,
		CreatedAt:    f.tick(),
	}
	*f.events = append(*f.events, "add-block")
	return id, nil
}

func (f *fakeMediaRepo) owned(collectionID uuid.UUID, telegramUserID int64) bool {
	c, ok := f.collections[collectionID]
	return ok && c.TelegramUserID == telegramUserID
}

func (f *fakeMediaRepo) UpdateCollection(_ context.Context, collectionID uuid.UUID,
	telegramUserID int64, patch domain.CollectionPatch) error {

	if !f.owned(collectionID, telegramUserID) {
		return domain.NewNotFound("collection", "id")
	}
	c := f.collections[collectionID]
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.StartupURL != nil {
		c.StartupURL = patch.StartupURL
	}
	if patch.QRCodeURL != nil {
		c.QRCodeURL = patch.QRCodeURL
	}
	*f.events = append(*f.events, "update-collection")
	return nil
}

func (f *fakeMediaRepo) UpdateCollectionName(ctx context.Context, collectionID uuid.UUID,
	telegramUserID int64, name string) error {
	return f.UpdateCollection(ctx, collectionID, telegramUserID, domain.CollectionPatch{Name: &name})
}

func (f *fakeMediaRepo) UpdateMediaBlock(_ context.Context, blockID uuid.UUID,
	telegramUserID int64, patch domain.MediaBlockPatch) error {

	if f.failUpdateBlock {
		return fmt.Errorf("update failed")
	}
	b, ok := f.blocks[blockID]
	if !ok || !f.owned(b.CollectionID, telegramUserID) {
		return domain.NewNotFound("media_block", "id")
	}
	if patch.PhotoURL != nil {
		b.PhotoURL = *patch.PhotoURL
	}
	if patch.VideoURL != nil {
		b.VideoURL = *patch.VideoURL
	}
	*f.events = append(*f.events, "update-block")
	return nil
}

func (f *fakeMediaRepo) DeleteCollection(_ context.Context, collectionID uuid.UUID, telegramUserID int64) error {
	if !f.owned(collectionID, telegramUserID) {
		return domain.NewNotFound("collection", "id")
	}
	delete(f.collections, collectionID)
	for id, b := range f.blocks {
		if b.CollectionID == collectionID {
			delete(f.blocks, id)
		}
	}
	*f.events = append(*f.events, "delete-collection")
	return nil
}

func (f *fakeMediaRepo) DeleteMediaBlock(_ context.Context, blockID uuid.UUID, telegramUserID int64) error {
	b, ok := f.blocks[blockID]
	if !ok || !f.owned(b.CollectionID, telegramUserID) {
		return domain.NewNotFound("media_block", "id")
	}
	delete(f.blocks, blockID)
	*f.events = append(*f.events, "delete-block")
	return nil
}

type fakeUsersRepo struct {
	nextID  int64
	byTG    map[int64]*domain.User
	upserts int
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byTG: map[int64]*domain.User{}}
}

func (f *fakeUsersRepo) UpsertUser(_ context.Context, telegramID int64, username, fullName string) (int64, error) {
	f.upserts++
	if u, ok := f.byTG[telegramID]; ok {
		u.Username = username
		u.FullName = fullName
		return u.ID, nil
	}
	f.nextID++
	f.byTG[telegramID] = &domain.User{
		ID:         f.nextID,
		TelegramID: telegramID,
		Username:   username,
		FullName:   fullName,
		CreatedAt:  time.Now(),
	}
	return f.nextID, nil
}

func (f *fakeUsersRepo) GetUser(_ context.Context, telegramID int64) (*domain.User, error) {
	u, ok := f.byTG[telegramID]
	if !ok {
		return nil, domain.NewNotFound("user", "telegram_id")
	}
	out := *u
	return &out, nil
}
