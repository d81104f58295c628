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
	postColumns     = "id, content, created_at, user_id"
	errPostNotFound = "post not found"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func scanPost(row pgx.Row) (*entity.Post, error) {
	p := &entity.Post{}
	if err := row.Scan(&p.ID, &p.Content, &p.CreatedAt, &p.UserID); err != nil {
		return nil, err
	}
	return p, nil
}

func collectPost(row pgx.CollectableRow) (entity.Post, error) {
	p, err := scanPost(row)
	if err != nil {
		return entity.Post{}, err
	}
	return *p, nil
}

// Create inserts p; a user_id with no matching user surfaces as NotFound
// through the foreign key.
func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	err := inTx(ctx, r.pool, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, `
			INSERT INTO posts (content, created_at, user_id)
			VALUES ($1, $2, $3)
			RETURNING id
		`, p.Content, p.CreatedAt, p.UserID).Scan(&p.ID)
	})
	return classify(err, errUserNotFound)
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*entity.Post, error) {
	p, err := scanPost(r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
	if err != nil {
		return nil, classify(err, errPostNotFound)
	}
	return p, nil
}

func (r *PostRepository) List(ctx context.Context) ([]entity.Post, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+postColumns+` FROM posts ORDER BY id`)
	if err != nil {
		return nil, classify(err, errPostNotFound)
	}
	posts, err := pgx.CollectRows(rows, collectPost)
	if err != nil {
		return nil, classify(err, errPostNotFound)
	}
	return posts, nil
}

func (r *PostRepository) ListByUser(ctx context.Context, userID int64) ([]entity.Post, error) {
	var posts []entity.Post
	err := inReadTx(ctx, r.pool, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return apperror.NotFound(errUserNotFound)
		}
		rows, err := tx.Query(ctx, `SELECT `+postColumns+` FROM posts WHERE user_id = $1 ORDER BY id`, userID)
		if err != nil {
			return err
		}
		posts, err = pgx.CollectRows(rows, collectPost)
		return err
	})
	if err != nil {
		return nil, classify(err, errUserNotFound)
	}
	return posts, nil
}

func (r *PostRepository) UpdateContent(ctx context.Context, id int64, content string) (*entity.Post, error) {
	var p *entity.Post
	err := inTx(ctx, r.pool, func(tx pgx.Tx) error {
		var err error
		p, err = scanPost(tx.QueryRow(ctx, `
			UPDATE posts SET content = $1
			WHERE id = $2
			RETURNING `+postColumns, content, id))
		return err
	})
	if err != nil {
		return nil, classify(err, errPostNotFound)
	}
	return p, nil
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	err := inTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperror.NotFound(errPostNotFound)
		}
		return nil
	})
	return classify(err, errPostNotFound)
}

var _ repository.PostRepository = (*PostRepository)(nil)
