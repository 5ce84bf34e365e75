package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/sxtnflur/ar-api/internal/domain"
)

type UsersRepo struct {
	db querier
}

var _ domain.UsersRepository = (*UsersRepo)(nil)

func (r *UsersRepo) UpsertUser(ctx context.Context, telegramID int64, username, fullName string) (int64, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO users (telegram_id, username, full_name)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (telegram_id) DO UPDATE SET
		   username = EXCLUDED.username,
		   full_name = EXCLUDED.full_name
		 RETURNING id`,
		telegramID, username, fullName)

	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *UsersRepo) GetUser(ctx context.Context, telegramID int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, telegram_id, username, full_name, created_at
		 FROM users
		 WHERE telegram_id = $1`,
		telegramID)

	var u domain.User
	err := row.Scan(&u.ID, &u.TelegramID, &u.Username, &u.FullName, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewNotFound("user", "telegram_id")
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
