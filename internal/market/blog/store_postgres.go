package blog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lekhoa/reloop/internal/platform/apperr"
	"github.com/lekhoa/reloop/internal/platform/dberr"
	"github.com/lekhoa/reloop/internal/platform/identifier"
)

// PostgresStore implements [Store] using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates the PostgreSQL blog store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Insert creates a post with a generated id.
func (store *PostgresStore) Insert(ctx context.Context, post *Post) (*Post, error) {
	const query = `
		INSERT INTO market.blog_post (id, title, content, createdat)
		VALUES ($1, $2, $3, now())
		RETURNING id, createdat`

	if post.Content == nil {
		post.Content = map[string]any{}
	}

	err := store.pool.QueryRow(ctx, query, identifier.New(), post.Title, post.Content).
		Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "blog_insert")
	}

	return post, nil
}

// List returns every post, newest first.
func (store *PostgresStore) List(ctx context.Context) ([]*Post, error) {
	const query = `
		SELECT id, title, content, createdat
		FROM market.blog_post
		ORDER BY createdat DESC`

	rows, err := store.pool.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "blog_list")
	}
	defer rows.Close()

	var posts []*Post
	for rows.Next() {
		post := &Post{}
		if err := rows.Scan(&post.ID, &post.Title, &post.Content, &post.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "blog_scan")
		}
		posts = append(posts, post)
	}

	return posts, rows.Err()
}

// FindByID returns the post with the given id.
func (store *PostgresStore) FindByID(ctx context.Context, id string) (*Post, error) {
	const query = `
		SELECT id, title, content, createdat
		FROM market.blog_post
		WHERE id = $1`

	post := &Post{}
	err := store.pool.QueryRow(ctx, query, id).
		Scan(&post.ID, &post.Title, &post.Content, &post.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Blog post")
		}
		return nil, dberr.Wrap(err, "blog_find_by_id")
	}

	return post, nil
}
