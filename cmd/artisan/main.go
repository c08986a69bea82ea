package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/Goodidea-backend-camp/medium-blog-backend/cmd/artisan/commands"
	"github.com/Goodidea-backend-camp/medium-blog-backend/internal/config"
	"github.com/Goodidea-backend-camp/medium-blog-backend/internal/db"
	"github.com/Goodidea-backend-camp/medium-blog-backend/internal/store"
	"github.com/Goodidea-backend-camp/medium-blog-backend/pkg/database"
)

func run() error {
	if len(os.Args) < 2 {
		printHelp()
		return nil
	}

	v := config.New()
	dsn, err := config.LoadDatabaseURL(v)
	if err != nil {
		return err
	}

	ctx := context.Background()

	dbpool, err := database.NewPool(ctx, dsn, database.Options{MaxConns: 2})
	if err != nil {
		return err
	}
	defer dbpool.Close()

	userStore := store.NewUserStore(db.New(dbpool))

	command := os.Args[1]

	switch command {
	case "make:user":
		return commands.MakeUser(ctx, userStore, commands.TerminalPrompter(os.Stdin, os.Stdout), os.Stdout)
	case "make:token":
		if len(os.Args) < 3 {
			return fmt.Errorf("usage: make:token <username>")
		}
		secret, err := config.LoadJWTSecret(v)
		if err != nil {
			return err
		}
		return commands.MakeToken(ctx, userStore, os.Args[2], secret, os.Stdout)
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printHelp()
		return nil
	}
}

func printHelp() {
	fmt.Println("If you in Container Usage: go run cmd/artisan/main.go [command]")
	fmt.Println("If you in Local Usage: make artisan [command]")
	fmt.Println("Now Available commands:")
	fmt.Println("  make:user              Create a new user")
	fmt.Println("  make:token <username>  Print a credential for an existing user (local testing only)")
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
