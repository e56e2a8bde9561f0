// Package graph exposes the Bookshelf operations over a single GraphQL
// endpoint. The schema mirrors the wire contract of the original API:
// query me, mutations login / addUser / saveBook / removeBook.
package graph

import (
	"errors"

	"github.com/sieke13/bookshelf/internal/common"
)

// Error codes carried in the GraphQL error extensions, so clients can branch
// on kind (prompt for login vs. offer a retry) instead of parsing messages.
const (
	CodeUnauthenticated     = "UNAUTHENTICATED"
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeNotFound            = "NOT_FOUND"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeInternal            = "INTERNAL"
)

// apiError implements gqlerrors.ExtendedError so graphql-go surfaces the
// code under extensions.code.
type apiError struct {
	msg  string
	code string
}

func (e *apiError) Error() string { return e.msg }

func (e *apiError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

// wrapError translates service sentinels into coded transport errors.
// Internal details never reach the client.
func wrapError(err error) error {
	switch {
	case errors.Is(err, common.ErrorUnauthenticated):
		return &apiError{msg: "you need to be logged in", code: CodeUnauthenticated}
	case errors.Is(err, common.ErrorValidation):
		return &apiError{msg: err.Error(), code: CodeValidationFailed}
	case errors.Is(err, common.ErrorNotFound):
		return &apiError{msg: "not found", code: CodeNotFound}
	case errors.Is(err, common.ErrorUpstreamUnavailable):
		return &apiError{msg: "upstream unavailable", code: CodeUpstreamUnavailable}
	default:
		return &apiError{msg: "internal server error", code: CodeInternal}
	}
}
