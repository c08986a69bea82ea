package store

import (
	"context"

	"github.com/Goodidea-backend-camp/medium-blog-backend/internal/db"
)

// UserStore backs the developer tooling that provisions identities.
// The request path never reads it.
type UserStore interface {
	CreateUser(ctx context.Context, arg db.CreateUserParams) (db.User, error)
	GetUserByUsername(ctx context.Context, username string) (db.User, error)
}

type SQLUserStore struct {
	*db.Queries
}

func NewUserStore(db *db.Queries) UserStore {
	return &SQLUserStore{
		Queries: db,
	}
}
