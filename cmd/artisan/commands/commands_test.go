package commands

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Goodidea-backend-camp/medium-blog-backend/internal/auth"
	"github.com/Goodidea-backend-camp/medium-blog-backend/internal/db"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key-with-sufficient-length"

func init() {
	bcryptCost = bcrypt.MinCost
}

type mockUserStore struct {
	users       map[string]db.User
	lookupErr   error
	createErr   error
	createdWith *db.CreateUserParams
}

func (m *mockUserStore) GetUserByUsername(ctx context.Context, username string) (db.User, error) {
	if m.lookupErr != nil {
		return db.User{}, m.lookupErr
	}
	u, ok := m.users[username]
	if !ok {
		return db.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (m *mockUserStore) CreateUser(ctx context.Context, arg db.CreateUserParams) (db.User, error) {
	m.createdWith = &arg
	if m.createErr != nil {
		return db.User{}, m.createErr
	}
	return db.User{ID: 10, Username: arg.Username, Password: arg.Password}, nil
}

type scriptedPrompter struct {
	answers []string
}

func (p *scriptedPrompter) next() (string, error) {
	if len(p.answers) == 0 {
		return "", errors.New("no more input")
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

func (p *scriptedPrompter) ReadLine(string) (string, error)   { return p.next() }
func (p *scriptedPrompter) ReadSecret(string) (string, error) { return p.next() }

func TestMakeUser(t *testing.T) {
	tests := []struct {
		name       string
		answers    []string
		existing   map[string]db.User
		lookupErr  error
		wantErr    string
		wantCreate bool
	}{
		{
			name:       "creates user",
			answers:    []string{"alice", "password123", "password123"},
			wantCreate: true,
		},
		{
			name:    "empty username",
			answers: []string{""},
			wantErr: "username cannot be empty",
		},
		{
			name:    "short username",
			answers: []string{"al"},
			wantErr: "at least 3 characters",
		},
		{
			name:     "duplicate username",
			answers:  []string{"alice"},
			existing: map[string]db.User{"alice": {ID: 1, Username: "alice"}},
			wantErr:  "already exists",
		},
		{
			name:      "lookup failure",
			answers:   []string{"alice"},
			lookupErr: errors.New("db down"),
			wantErr:   "failed to check username",
		},
		{
			name:    "short password",
			answers: []string{"alice", "short"},
			wantErr: "at least 8 characters",
		},
		{
			name:    "mismatched confirmation",
			answers: []string{"alice", "password123", "password124"},
			wantErr: "passwords do not match",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &mockUserStore{users: tt.existing, lookupErr: tt.lookupErr}
			var out bytes.Buffer

			err := MakeUser(context.Background(), s, &scriptedPrompter{answers: tt.answers}, &out)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, s.createdWith)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, s.createdWith)
			assert.Equal(t, "alice", s.createdWith.Username)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(s.createdWith.Password), []byte("password123")))
			assert.Contains(t, out.String(), "User created successfully!")
		})
	}
}

func TestMakeToken(t *testing.T) {
	s := &mockUserStore{users: map[string]db.User{"alice": {ID: 12, Username: "alice"}}}
	var out bytes.Buffer

	require.NoError(t, MakeToken(context.Background(), s, "alice", testSecret, &out))

	claims, err := auth.ValidateToken(strings.TrimSpace(out.String()), testSecret)
	require.NoError(t, err)
	id, err := claims.UserID.Int32()
	require.NoError(t, err)
	assert.Equal(t, int32(12), id)
}

func TestMakeToken_UnknownUser(t *testing.T) {
	s := &mockUserStore{}
	var out bytes.Buffer

	err := MakeToken(context.Background(), s, "ghost", testSecret, &out)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Empty(t, out.String())
}
