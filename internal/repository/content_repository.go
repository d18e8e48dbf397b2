package repository

import (
	"context"
	"errors"

	"staff-directory/internal/database"
	"staff-directory/internal/tenant"

	"github.com/jackc/pgx/v5"
)

var ErrPostNotFound = errors.New("post not found")

// PostStatusPublished is the only status bookmark enrichment surfaces.
const PostStatusPublished = "publish"

type Post struct {
	ID        int64
	Tenant    tenant.ID
	Title     string
	URL       string
	Excerpt   string
	Thumbnail string
	Status    string
	Type      string
}

func (p Post) Published() bool {
	return p.Status == PostStatusPublished
}

// ContentRepository resolves (tenant, post_id) to the live post.
type ContentRepository interface {
	GetPost(ctx context.Context, t tenant.ID, postID int64) (Post, error)
}

type PostgresContentRepository struct {
	db database.DB
}

func NewPostgresContentRepository(db database.DB) *PostgresContentRepository {
	return &PostgresContentRepository{db: db}
}

func (r *PostgresContentRepository) GetPost(ctx context.Context, t tenant.ID, postID int64) (Post, error) {
	p := Post{Tenant: t}
	err := r.db.QueryRow(ctx,
		`SELECT id, title, url, excerpt, thumbnail, status, post_type
		 FROM posts
		 WHERE tenant = $1 AND id = $2`,
		t.String(), postID,
	).Scan(&p.ID, &p.Title, &p.URL, &p.Excerpt, &p.Thumbnail, &p.Status, &p.Type)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Post{}, ErrPostNotFound
		}
		return Post{}, err
	}
	return p, nil
}
