// Package api is the CLI's client for the Bookshelf server. All operations go
// through the GraphQL endpoint; a plain REST call to the profile route is
// kept as a fallback. Server-side error codes are mapped back to the shared
// sentinel errors so callers branch with errors.Is on either transport.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sieke13/bookshelf/internal/common"
	"github.com/sieke13/bookshelf/internal/models"
)

// Profile is the server's view of the logged-in user.
type Profile struct {
	ID         string        `json:"_id"`
	Username   string        `json:"username"`
	Email      string        `json:"email"`
	SavedBooks []models.Book `json:"savedBooks"`
}

// AuthResult is the result of login and addUser.
type AuthResult struct {
	Token string   `json:"token"`
	User  *Profile `json:"user"`
}

// TokenSource supplies the current bearer token, or "" when logged out.
type TokenSource func() string

// authTransport injects the bearer token into every outgoing request.
type authTransport struct {
	base  http.RoundTripper
	token TokenSource
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token := t.token(); token != "" {
		req = req.Clone(req.Context())
		req.Header.Set(common.AuthHeaderName, common.BearerPrefix+token)
	}
	return t.base.RoundTrip(req)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, token TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   15 * time.Second,
			Transport: &authTransport{base: http.DefaultTransport, token: token},
		},
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// do posts a GraphQL request and decodes the named field of the response data
// into out. A nil out skips decoding.
func (c *Client) do(ctx context.Context, query string, vars map[string]any, field string, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/graphql", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", common.ErrorUpstreamUnavailable, resp.StatusCode)
	}

	var gr graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorUpstreamUnavailable, err)
	}

	if len(gr.Errors) > 0 {
		return mapError(gr.Errors[0])
	}

	if out == nil {
		return nil
	}

	var data map[string]json.RawMessage
	if err := json.Unmarshal(gr.Data, &data); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorUpstreamUnavailable, err)
	}

	raw, ok := data[field]
	if !ok || string(raw) == "null" {
		return common.ErrorNotFound
	}
	return json.Unmarshal(raw, out)
}

// mapError converts a GraphQL error with an extensions code back into the
// matching sentinel, preserving the server message.
func mapError(e graphQLError) error {
	var sentinel error
	switch e.Extensions.Code {
	case "UNAUTHENTICATED":
		sentinel = common.ErrorUnauthenticated
	case "VALIDATION_FAILED":
		sentinel = common.ErrorValidation
	case "NOT_FOUND":
		sentinel = common.ErrorNotFound
	case "UPSTREAM_UNAVAILABLE":
		sentinel = common.ErrorUpstreamUnavailable
	default:
		sentinel = common.ErrorInternal
	}
	return fmt.Errorf("%w: %s", sentinel, e.Message)
}

const (
	loginMutation = `mutation Login($email: String!, $password: String!) {
  login(email: $email, password: $password) { token user { _id username email savedBooks { bookId title authors description image link } } }
}`
	addUserMutation = `mutation AddUser($username: String!, $email: String!, $password: String!) {
  addUser(username: $username, email: $email, password: $password) { token user { _id username email savedBooks { bookId title authors description image link } } }
}`
	meQuery = `query Me {
  me { _id username email savedBooks { bookId title authors description image link } }
}`
	saveBookMutation = `mutation SaveBook($bookData: BookInput!) {
  saveBook(bookData: $bookData) { _id username email savedBooks { bookId title authors description image link } }
}`
	removeBookMutation = `mutation RemoveBook($bookId: String!) {
  removeBook(bookId: $bookId) { _id username email savedBooks { bookId title authors description image link } }
}`
)

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var res AuthResult
	vars := map[string]any{"email": email, "password": password}
	if err := c.do(ctx, loginMutation, vars, "login", &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	var res AuthResult
	vars := map[string]any{"username": username, "email": email, "password": password}
	if err := c.do(ctx, addUserMutation, vars, "addUser", &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Me returns the logged-in user's profile. The server answers a null profile
// for anonymous callers; that is surfaced as ErrorUnauthenticated here. On a
// transport-level failure of the GraphQL call the same read is retried over
// the REST binding before giving up.
func (c *Client) Me(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, meQuery, nil, "me", &p); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthenticated
		}
		if errors.Is(err, common.ErrorUpstreamUnavailable) {
			return c.MeREST(ctx)
		}
		return nil, err
	}
	return &p, nil
}

func (c *Client) SaveBook(ctx context.Context, book models.Book) (*Profile, error) {
	bookData := map[string]any{
		"bookId":      book.BookID,
		"title":       book.Title,
		"authors":     book.Authors,
		"description": book.Description,
		"image":       book.Image,
		"link":        book.Link,
	}

	var p Profile
	if err := c.do(ctx, saveBookMutation, map[string]any{"bookData": bookData}, "saveBook", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) RemoveBook(ctx context.Context, bookID string) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, removeBookMutation, map[string]any{"bookId": bookID}, "removeBook", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// MeREST fetches the profile over the REST binding. It exists as a fallback
// for servers running with the GraphQL endpoint disabled.
func (c *Client) MeREST(ctx context.Context) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/users/me", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, common.ErrorUnauthenticated
	case http.StatusNotFound:
		return nil, common.ErrorNotFound
	default:
		return nil, fmt.Errorf("%w: unexpected status %d", common.ErrorUpstreamUnavailable, resp.StatusCode)
	}

	var p Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorUpstreamUnavailable, err)
	}
	return &p, nil
}
