package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sxtnflur/ar-api/internal/domain"
)

// querier — общая часть pgxpool.Pool и pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type UnitOfWork struct {
	pool interface {
		Begin(ctx context.Context) (pgx.Tx, error)
	}
}

var _ domain.UnitOfWork = (*UnitOfWork)(nil)

func NewUnitOfWork(s *Storage) *UnitOfWork {
	return &UnitOfWork{pool: s.Pool}
}

// Do выполняет fn в одной транзакции. Репозитории внутри разделяют один tx,
// так что все операции одного вызова атомарны как группа.
func (u *UnitOfWork) Do(ctx context.Context, fn func(r domain.Repos) error) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return err
	}
	// Rollback после Commit — no-op; соединение освобождается всегда.
	defer tx.Rollback(ctx)

	repos := domain.Repos{
		Users:            &UsersRepo{db: tx},
		MediaCollections: &MediaCollectionsRepo{db: tx},
	}
	if err := fn(repos); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
