package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Goodidea-backend-camp/medium-blog-backend/internal/auth"
	"github.com/Goodidea-backend-camp/medium-blog-backend/internal/store"
	"github.com/jackc/pgx/v5"
)

// MakeToken 為既有使用者簽發本機測試用的 token
func MakeToken(ctx context.Context, userStore store.UserStore, username, secret string, out io.Writer) error {
	user, err := userStore.GetUserByUsername(ctx, username)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("user '%s' not found", username)
	}
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	token, err := auth.GenerateToken(user.ID, secret)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, token)
	return nil
}
