// Package models holds wire-level data types shared by the Bookshelf client
// and server.
package models

import "github.com/sieke13/bookshelf/internal/common"

// Book is a catalog record as stored in a user's saved list and exchanged
// over the API. BookID is the stable identifier assigned by the catalog
// source and is unique within a user's list.
type Book struct {
	BookID      string   `json:"bookId" bson:"bookId"`
	Title       string   `json:"title" bson:"title"`
	Authors     []string `json:"authors" bson:"authors"`
	Description string   `json:"description" bson:"description"`
	Image       string   `json:"image" bson:"image"`
	Link        string   `json:"link" bson:"link"`
}

// Normalize applies the defaulting rules used everywhere a book enters the
// system: an empty authors list becomes a one-element placeholder, and
// optional string fields never stay unset. Downstream code may assume a
// normalized book has no nil or missing fields.
func (b *Book) Normalize() {
	if len(b.Authors) == 0 {
		b.Authors = []string{common.NoAuthorPlaceholder}
	}
	// Description, Image and Link default to the empty string, which is
	// already their zero value.
}

// Validate checks required fields, returning field-level failures.
// Normalization does not satisfy validation: a book with no bookId or title
// is rejected, not defaulted.
func (b *Book) Validate() error {
	var ve common.ValidationError
	if b.BookID == "" {
		ve.Add("bookId", "required")
	}
	if b.Title == "" {
		ve.Add("title", "required")
	}
	return ve.OrNil()
}
