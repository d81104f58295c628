package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-user-post-api/internal/domain/entity"
	"github.com/oksasatya/go-user-post-api/internal/domain/repository"
	"github.com/oksasatya/go-user-post-api/pkg/apperror"
)

const (
	userColumns     = "id, email, password, is_active"
	errUserNotFound = "user not found"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.IsActive); err != nil {
		return nil, err
	}
	return u, nil
}

func collectUser(row pgx.CollectableRow) (entity.User, error) {
	u, err := scanUser(row)
	if err != nil {
		return entity.User{}, err
	}
	return *u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	err := inTx(ctx, r.pool, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, `
			INSERT INTO users (email, password, is_active)
			VALUES ($1, $2, $3)
			RETURNING id
		`, u.Email, u.Password, u.IsActive).Scan(&u.ID)
	})
	return classify(err, errUserNotFound)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, classify(err, errUserNotFound)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, classify(err, errUserNotFound)
	}
	users, err := pgx.CollectRows(rows, collectUser)
	if err != nil {
		return nil, classify(err, errUserNotFound)
	}
	return users, nil
}

func (r *UserRepository) UpdateEmail(ctx context.Context, id int64, email string) (*entity.User, error) {
	var u *entity.User
	err := inTx(ctx, r.pool, func(tx pgx.Tx) error {
		var err error
		u, err = scanUser(tx.QueryRow(ctx, `
			UPDATE users SET email = $1
			WHERE id = $2
			RETURNING `+userColumns, email, id))
		return err
	})
	if err != nil {
		return nil, classify(err, errUserNotFound)
	}
	return u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) ([]int64, error) {
	var removed []int64
	err := inTx(ctx, r.pool, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `DELETE FROM posts WHERE user_id = $1 RETURNING id`, id)
		if err != nil {
			return err
		}
		removed, err = pgx.CollectRows(rows, pgx.RowTo[int64])
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperror.NotFound(errUserNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, classify(err, errUserNotFound)
	}
	return removed, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
