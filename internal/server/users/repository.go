package users

import (
	"context"

	"github.com/sieke13/bookshelf/internal/models"
)

// Repository is the persistence contract for user documents.
//
// AddBook and RemoveBook are atomic, targeted array mutations on the user's
// savedBooks collection. Implementations must never rewrite the whole
// document for these operations: concurrent saves and removes of different
// books must not lose each other's updates.
type Repository interface {
	// Create inserts a new user and returns it with the server-assigned ID.
	Create(ctx context.Context, user *User) (*User, error)

	// GetByID returns common.ErrorNotFound when no user has this ID.
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByEmail returns common.ErrorNotFound when no user has this email.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByUsername returns common.ErrorNotFound when no user has this name.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// AddBook set-inserts a book keyed by bookId. Inserting an already-saved
	// bookId is a no-op, not an error. Returns the updated user, or
	// common.ErrorNotFound when the user no longer exists.
	AddBook(ctx context.Context, userID string, book models.Book) (*User, error)

	// RemoveBook pulls any entry matching bookId. An absent bookId is a
	// no-op. Returns the updated user, or common.ErrorNotFound when the user
	// no longer exists.
	RemoveBook(ctx context.Context, userID string, bookID string) (*User, error)

	// Count reports the number of user documents (used by the heartbeat job).
	Count(ctx context.Context) (int64, error)
}
