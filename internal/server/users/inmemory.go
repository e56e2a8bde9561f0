package users

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sieke13/bookshelf/internal/common"
	"github.com/sieke13/bookshelf/internal/models"
)

// InMemoryRepository is a map-backed Repository used by tests and local
// development. Mutations take a single lock, so it provides the same
// lost-update-free semantics as the Mongo implementation.
type InMemoryRepository struct {
	mu    sync.Mutex
	users map[string]*User
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{users: make(map[string]*User)}
}

// clone guards callers against aliasing the stored document.
func clone(u *User) *User {
	c := *u
	c.SavedBooks = make([]models.Book, len(u.SavedBooks))
	copy(c.SavedBooks, u.SavedBooks)
	return &c
}

func (r *InMemoryRepository) Create(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			var ve common.ValidationError
			ve.Add("username", "username or email already taken")
			return nil, &ve
		}
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.SavedBooks == nil {
		user.SavedBooks = []models.Book{}
	}

	r.users[user.ID] = clone(user)
	return clone(user), nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(user), nil
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			return clone(user), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *InMemoryRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Username == username {
			return clone(user), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *InMemoryRepository) AddBook(ctx context.Context, userID string, book models.Book) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}

	for _, saved := range user.SavedBooks {
		if saved.BookID == book.BookID {
			return clone(user), nil
		}
	}

	user.SavedBooks = append(user.SavedBooks, book)
	return clone(user), nil
}

func (r *InMemoryRepository) RemoveBook(ctx context.Context, userID string, bookID string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}

	kept := user.SavedBooks[:0]
	for _, saved := range user.SavedBooks {
		if saved.BookID != bookID {
			kept = append(kept, saved)
		}
	}
	user.SavedBooks = kept
	return clone(user), nil
}

func (r *InMemoryRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}
