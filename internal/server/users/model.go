package users

import "github.com/sieke13/bookshelf/internal/models"

// User is the persisted identity record. SavedBooks is an embedded,
// bookId-keyed collection with set semantics on insert. The password hash
// never leaves the server: it is excluded from JSON serialization.
type User struct {
	ID           string        `bson:"_id" json:"_id"`
	Username     string        `bson:"username" json:"username"`
	Email        string        `bson:"email" json:"email"`
	PasswordHash string        `bson:"passwordHash" json:"-"`
	SavedBooks   []models.Book `bson:"savedBooks" json:"savedBooks"`
}
