package store

import (
	"context"

	"github.com/Goodidea-backend-camp/medium-blog-backend/internal/db"
)

// PostStore is the data-store collaborator behind the blog routes. Every
// blog operation issues exactly one call on it.
//
// GetPost and UpdatePost return pgx.ErrNoRows when no post has the given id.
type PostStore interface {
	CreatePost(ctx context.Context, arg db.CreatePostParams) (db.Post, error)
	GetPost(ctx context.Context, id int32) (db.Post, error)
	ListPosts(ctx context.Context) ([]db.Post, error)
	UpdatePost(ctx context.Context, arg db.UpdatePostParams) (db.Post, error)
}

type SQLPostStore struct {
	*db.Queries
}

func NewPostStore(db *db.Queries) PostStore {
	return &SQLPostStore{
		Queries: db,
	}
}
