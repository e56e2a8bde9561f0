// Package session keeps the CLI's login state: a single JWT persisted in the
// state directory. The token is stored as issued by the server and is never
// verified locally; expiry is read from the payload only to decide whether a
// login prompt is needed before talking to the server.
package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenFileName = "id_token"

type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) tokenPath() string {
	return filepath.Join(s.dir, tokenFileName)
}

// Login persists the token. The state directory is created on first use.
func (s *Store) Login(token string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.tokenPath(), []byte(token), 0o600)
}

// Logout removes the persisted token. A missing token file is not an error.
func (s *Store) Logout() error {
	err := os.Remove(s.tokenPath())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Token returns the persisted token, or "" when none is stored.
func (s *Store) Token() string {
	data, err := os.ReadFile(s.tokenPath())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// LoggedIn reports whether a non-expired token is stored.
func (s *Store) LoggedIn() bool {
	token := s.Token()
	return token != "" && !IsExpired(token)
}

// IsExpired decodes the JWT payload locally, without signature verification,
// and checks the exp claim against the current time. Tokens that cannot be
// decoded are treated as expired, so a corrupt token file forces a fresh
// login rather than a failing request.
func IsExpired(token string) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return time.Now().After(claims.ExpiresAt.Time)
}
