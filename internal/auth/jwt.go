package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// JWTExpiration is the JWT token expiration time
	JWTExpiration = 7 * 24 * time.Hour // 7 days
	// MinSecretLength is the minimum recommended length for JWT secret
	MinSecretLength = 32

	bearerPrefix = "bearer "
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrEmptySecret    = errors.New("secret key cannot be empty")
	ErrSecretTooShort = errors.New("secret key must be at least 32 characters")
)

// Subject identifies the user a token was issued for. Issuers encode it
// either as a JSON number or as a string; both decode to the same value.
type Subject string

// UnmarshalJSON accepts numbers, strings and null.
func (s *Subject) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*s = Subject(n)
		return nil
	}

	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return fmt.Errorf("subject must be a number or a string: %w", err)
	}
	*s = Subject(str)
	return nil
}

// MarshalJSON writes numeric subjects as JSON numbers.
func (s Subject) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(s), 10, 64); err == nil {
		return []byte(s), nil
	}
	return json.Marshal(string(s))
}

// Int32 returns the numeric form of the subject.
func (s Subject) Int32() (int32, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(string(s)), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("subject %q is not a numeric user id: %w", string(s), err)
	}
	return int32(id), nil
}

// Claims represents JWT claims with user identification.
type Claims struct {
	UserID Subject `json:"id"`
	jwt.RegisteredClaims
}

// ValidateSecret validates the strength of the JWT secret.
func ValidateSecret(secret string) error {
	if secret == "" {
		return ErrEmptySecret
	}
	if len(secret) < MinSecretLength {
		return ErrSecretTooShort
	}
	return nil
}

// ExtractToken returns the credential carried by an Authorization header.
// The header may hold the raw token or a "Bearer <token>" pair.
func ExtractToken(authHeader string) string {
	token := strings.TrimSpace(authHeader)
	if len(token) >= len(bearerPrefix) && strings.EqualFold(token[:len(bearerPrefix)], bearerPrefix) {
		token = strings.TrimSpace(token[len(bearerPrefix):])
	}
	return token
}

// GenerateToken creates a signed JWT token for the given user.
func GenerateToken(userID int32, secret string) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}

	now := time.Now()

	claims := &Claims{
		UserID: Subject(strconv.FormatInt(int64(userID), 10)),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(JWTExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken parses and validates a JWT token string.
// Malformed tokens, foreign signing methods and bad signatures all yield
// ErrInvalidToken; an elapsed exp claim yields ErrTokenExpired.
func ValidateToken(tokenString string, secret string) (*Claims, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
