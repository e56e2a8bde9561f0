package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sieke13/bookshelf/internal/common"
	"github.com/sieke13/bookshelf/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository stores user documents in a single collection with the
// savedBooks list embedded, mirroring the document shape of the original
// data model.
type MongoRepository struct {
	collection *mongo.Collection
}

// NewMongoRepository wires the repository to the "users" collection and
// ensures the unique indexes on username and email.
func NewMongoRepository(ctx context.Context, db *mongo.Database) (*MongoRepository, error) {
	collection := db.Collection("users")

	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return nil, fmt.Errorf("creating user indexes: %w", err)
	}

	return &MongoRepository{collection: collection}, nil
}

func (r *MongoRepository) Create(ctx context.Context, user *User) (*User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.SavedBooks == nil {
		user.SavedBooks = []models.Book{}
	}

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			var ve common.ValidationError
			ve.Add("username", "username or email already taken")
			return nil, &ve
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (*User, error) {
	user := &User{}
	err := r.collection.FindOne(ctx, filter).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

// AddBook performs a guarded push: the filter only matches when the bookId
// is not yet present, making the insert a set-insert. When the filter misses
// we distinguish "already saved" (idempotent no-op) from "user gone".
func (r *MongoRepository) AddBook(ctx context.Context, userID string, book models.Book) (*User, error) {
	filter := bson.M{
		"_id":               userID,
		"savedBooks.bookId": bson.M{"$ne": book.BookID},
	}
	update := bson.M{"$push": bson.M{"savedBooks": book}}

	user := &User{}
	err := r.collection.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(user)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("db error: %w", err)
	}

	// Filter missed: either the book is already saved or the user vanished.
	return r.GetByID(ctx, userID)
}

func (r *MongoRepository) RemoveBook(ctx context.Context, userID string, bookID string) (*User, error) {
	filter := bson.M{"_id": userID}
	update := bson.M{"$pull": bson.M{"savedBooks": bson.M{"bookId": bookID}}}

	user := &User{}
	err := r.collection.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *MongoRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
