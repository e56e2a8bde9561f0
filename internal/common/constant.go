// Package common contains shared constants and sentinel errors used across
// Bookshelf components.
package common

// AuthHeaderName is the HTTP header carrying the bearer token on
// authenticated requests.
const AuthHeaderName = "Authorization"

// BearerPrefix precedes the token value in the Authorization header.
const BearerPrefix = "Bearer "

// NoAuthorPlaceholder is substituted for the authors list when the catalog
// source provides none. The exact string is part of the wire contract with
// existing clients.
const NoAuthorPlaceholder = "No author to display"
