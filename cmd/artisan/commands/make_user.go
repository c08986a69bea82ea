package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Goodidea-backend-camp/medium-blog-backend/internal/db"
	"github.com/Goodidea-backend-camp/medium-blog-backend/internal/store"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

// Prompter collects interactive input.
type Prompter interface {
	ReadLine(prompt string) (string, error)
	ReadSecret(prompt string) (string, error)
}

type terminalPrompter struct {
	in     *os.File
	out    io.Writer
	reader *bufio.Reader
}

// TerminalPrompter reads plain lines from in and hides secrets when in is a terminal.
func TerminalPrompter(in *os.File, out io.Writer) Prompter {
	return &terminalPrompter{in: in, out: out, reader: bufio.NewReader(in)}
}

func (p *terminalPrompter) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *terminalPrompter) ReadSecret(prompt string) (string, error) {
	fd := int(p.in.Fd()) // #nosec G115 -- file descriptors fit in int
	if !term.IsTerminal(fd) {
		return p.ReadLine(prompt)
	}

	fmt.Fprint(p.out, prompt)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(secret), nil
}

// bcryptCost is a variable so tests can lower it.
var bcryptCost = bcrypt.DefaultCost

// MakeUser 互動式創建使用者
func MakeUser(ctx context.Context, userStore store.UserStore, prompter Prompter, out io.Writer) error {
	// 1. 輸入 username
	username, err := prompter.ReadLine("Enter username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	// 驗證 username
	if username == "" {
		return errors.New("username cannot be empty")
	}
	if len(username) < 3 {
		return errors.New("username must be at least 3 characters")
	}

	// 檢查 username 是否已存在
	_, err = userStore.GetUserByUsername(ctx, username)
	if err == nil {
		return fmt.Errorf("username '%s' already exists", username)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to check username: %w", err)
	}

	// 2. 輸入 password（隱藏輸入）
	password, err := prompter.ReadSecret("Enter password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	// 驗證 password
	if password == "" {
		return errors.New("password cannot be empty")
	}
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	// 3. 確認 password
	confirmPassword, err := prompter.ReadSecret("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read password confirmation: %w", err)
	}

	if password != confirmPassword {
		return errors.New("passwords do not match")
	}

	// 4. 加密密碼
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// 5. 創建使用者
	user, err := userStore.CreateUser(ctx, db.CreateUserParams{
		Username: username,
		Password: string(hashedPassword),
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	// 6. 顯示成功訊息
	fmt.Fprintln(out, "\nUser created successfully!")
	fmt.Fprintf(out, "   ID: %d\n", user.ID)
	fmt.Fprintf(out, "   Username: %s\n", user.Username)
	fmt.Fprintf(out, "   Created at: %v\n", user.CreatedAt.Time)

	return nil
}
