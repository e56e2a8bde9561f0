package users

import (
	"context"
	"errors"
	"testing"

	"github.com/sieke13/bookshelf/internal/common"
	"github.com/sieke13/bookshelf/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemory_Create_AssignsID(t *testing.T) {
	repo := NewInMemoryRepository()
	u, err := repo.Create(context.Background(), &User{Username: "a", Email: "a@b.co"})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.NotNil(t, u.SavedBooks)
}

func TestInMemory_AddBook_ReturnsDetachedCopy(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	u, err := repo.Create(ctx, &User{Username: "a", Email: "a@b.co"})
	require.NoError(t, err)

	got, err := repo.AddBook(ctx, u.ID, models.Book{BookID: "b1", Title: "T"})
	require.NoError(t, err)

	// Mutating the returned snapshot must not affect the stored document.
	got.SavedBooks[0].Title = "mutated"

	stored, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "T", stored.SavedBooks[0].Title)
}

func TestInMemory_UnknownUser(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	_, err := repo.AddBook(ctx, "missing", models.Book{BookID: "b1", Title: "T"})
	assert.True(t, errors.Is(err, common.ErrorNotFound))

	_, err = repo.RemoveBook(ctx, "missing", "b1")
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}
