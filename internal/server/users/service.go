// Package users contains the server-side identity and saved-book logic:
// registration, login, token issuance, and the idempotent add/remove
// operations on a user's saved list.
package users

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/sieke13/bookshelf/internal/common"
	"github.com/sieke13/bookshelf/internal/models"
	"github.com/sieke13/bookshelf/internal/server/auth"
	"github.com/sieke13/bookshelf/internal/server/config"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the salt rounds used by earlier deployments, so
// existing password hashes keep verifying.
const bcryptCost = 10

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthResult bundles a freshly signed token with the user it identifies.
type AuthResult struct {
	Token string
	User  *User
}

type Service struct {
	repo               Repository
	jwtSecret          []byte
	tokenValidDuration time.Duration
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:               repo,
		jwtSecret:          []byte(cfg.SecretKey),
		tokenValidDuration: cfg.TokenValidityDuration,
	}
}

// Register validates the input, hashes the password, creates the user, and
// signs a session token. Duplicate username or email surfaces as a
// validation failure, not an internal error.
func (s *Service) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	if err := validateRegistration(username, email, password); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		var ve common.ValidationError
		return nil, ve.Add("username", "already taken")
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		var ve common.ValidationError
		return nil, ve.Add("email", "already registered")
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user, err := s.repo.Create(ctx, &User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.authResult(user)
}

// Login verifies credentials and mints a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthenticated
		}
		return nil, common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrorUnauthenticated
	}

	return s.authResult(user)
}

// Me resolves the user behind a verified identity. An empty userID means the
// caller is anonymous; transports translate the (nil, nil) result into a
// null payload rather than an error.
func (s *Service) Me(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, nil
	}
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// SaveBook normalizes and validates the incoming book, then set-inserts it
// into the user's saved list. Saving a bookId that is already present is a
// no-op returning the unchanged list.
func (s *Service) SaveBook(ctx context.Context, userID string, book models.Book) (*User, error) {
	if userID == "" {
		return nil, common.ErrorUnauthenticated
	}

	book.Normalize()
	if err := book.Validate(); err != nil {
		return nil, err
	}

	user, err := s.repo.AddBook(ctx, userID, book)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// RemoveBook pulls any entry matching bookId from the user's saved list.
// An absent bookId is a no-op, not an error.
func (s *Service) RemoveBook(ctx context.Context, userID string, bookID string) (*User, error) {
	if userID == "" {
		return nil, common.ErrorUnauthenticated
	}

	user, err := s.repo.RemoveBook(ctx, userID, bookID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// CountUsers reports the total user count for the heartbeat job.
func (s *Service) CountUsers(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *Service) authResult(user *User) (*AuthResult, error) {
	token, err := auth.GenerateToken(user.Username, user.Email, user.ID, s.jwtSecret, s.tokenValidDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &AuthResult{Token: token, User: user}, nil
}

func validateRegistration(username, email, password string) error {
	var ve common.ValidationError
	if username == "" {
		ve.Add("username", "must not be empty")
	}
	if !emailPattern.MatchString(email) {
		ve.Add("email", "must be a valid email address")
	}
	if len(password) < 8 {
		ve.Add("password", "must be at least 8 characters")
	}
	return ve.OrNil()
}
