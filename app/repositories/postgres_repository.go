package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"firstblog/app/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createPostsTable = `CREATE TABLE IF NOT EXISTS posts (
	id  BIGSERIAL PRIMARY KEY,
	doc JSONB NOT NULL
)`

// PostgresPostRepository keeps each post as a JSONB document keyed by a
// BIGSERIAL id.
type PostgresPostRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresPostRepository creates the posts table if needed.
func NewPostgresPostRepository(ctx context.Context, pool *pgxpool.Pool) (*PostgresPostRepository, error) {
	if _, err := pool.Exec(ctx, createPostsTable); err != nil {
		return nil, fmt.Errorf("create posts table: %w", err)
	}
	return &PostgresPostRepository{pool: pool}, nil
}

func (r *PostgresPostRepository) Create(ctx context.Context, post *models.Post) error {
	doc := *post
	doc.ID = ""
	data, err := marshalEntity(&doc)
	if err != nil {
		return err
	}

	var id int64
	if err := r.pool.QueryRow(ctx, `INSERT INTO posts (doc) VALUES ($1) RETURNING id`, data).Scan(&id); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	post.ID = strconv.FormatInt(id, 10)
	return nil
}

func (r *PostgresPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var data []byte
	err = r.pool.QueryRow(ctx, `SELECT doc FROM posts WHERE id = $1`, int64(n)).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("post %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select post %q: %w", id, err)
	}

	var post models.Post
	if err := unmarshalEntity(data, &post); err != nil {
		return nil, err
	}
	post.ID = id
	return &post, nil
}

func (r *PostgresPostRepository) List(ctx context.Context) ([]*models.Post, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, doc FROM posts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select posts: %w", err)
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		var (
			id   int64
			data []byte
		)
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		var post models.Post
		if err := unmarshalEntity(data, &post); err != nil {
			return nil, err
		}
		post.ID = strconv.FormatInt(id, 10)
		posts = append(posts, &post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}
