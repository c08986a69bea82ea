package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Goodidea-backend-camp/medium-blog-backend/internal/config"
	"github.com/Goodidea-backend-camp/medium-blog-backend/internal/db"
	"github.com/Goodidea-backend-camp/medium-blog-backend/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// TestUser represents a test user to be seeded into the database.
type TestUser struct {
	Username string
	Password string
	Posts    []TestPost
}

// TestPost is a sample post owned by a TestUser.
type TestPost struct {
	Title   string
	Content string
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	testUsers := []TestUser{
		{
			Username: "test",
			Password: "test",
			Posts: []TestPost{
				{Title: "Hello, world", Content: "The first post on this blog."},
				{Title: "Second thoughts", Content: "A follow-up to the first post."},
			},
		},
	}

	dsn, err := config.LoadDatabaseURL(config.New())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, dsn, database.Options{MaxConns: 2})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	fmt.Println("Seeding database...")

	for _, user := range testUsers {
		if err := seedUser(ctx, pool, user); err != nil {
			fmt.Printf("ERROR: %s: %v\n", user.Username, err)
		} else {
			fmt.Printf("SUCCESS: %s\n", user.Username)
		}
	}

	fmt.Println("Seed completed")
	return nil
}

// seedUser upserts the user and adds its sample posts unless it already has some.
func seedUser(ctx context.Context, pool *pgxpool.Pool, user TestUser) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash generation failed: %w", err)
	}

	const upsertUser = `
		INSERT INTO users (username, password, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (username) DO UPDATE
			SET password = EXCLUDED.password,
			    updated_at = NOW()
		RETURNING id
	`

	var userID int32
	if err := pool.QueryRow(ctx, upsertUser, user.Username, string(hash)).Scan(&userID); err != nil {
		return fmt.Errorf("database insert failed: %w", err)
	}

	var hasPosts bool
	if err := pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE author_id = $1)`, userID).Scan(&hasPosts); err != nil {
		return fmt.Errorf("check existing posts: %w", err)
	}
	if hasPosts {
		return nil
	}

	queries := db.New(pool)
	for _, p := range user.Posts {
		if _, err := queries.CreatePost(ctx, db.CreatePostParams{
			Title:    p.Title,
			Content:  p.Content,
			AuthorID: userID,
		}); err != nil {
			return fmt.Errorf("create post %q: %w", p.Title, err)
		}
	}

	return nil
}
