package auth

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sieke13/bookshelf/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func resolveIdentity(t *testing.T, authHeader string) (*Claims, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	logger := logging.NewSlogLogger(slog.New(slog.DiscardHandler))

	var gotClaims *Claims
	var gotOK bool
	handler := Middleware(testSecret, logger)(func(c echo.Context) error {
		gotClaims, gotOK = ClaimsFrom(c.Request().Context())
		return nil
	})

	require.NoError(t, handler(c))
	return gotClaims, gotOK
}

func TestMiddleware_NoHeader_Anonymous(t *testing.T) {
	_, ok := resolveIdentity(t, "")
	assert.False(t, ok)
}

func TestMiddleware_ValidToken_Authenticated(t *testing.T) {
	tok, err := GenerateToken("alice", "alice@example.com", "u-1", testSecret, time.Hour)
	require.NoError(t, err)

	claims, ok := resolveIdentity(t, "Bearer "+tok)
	require.True(t, ok)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestMiddleware_MalformedHeader_Anonymous(t *testing.T) {
	_, ok := resolveIdentity(t, "Bearer ")
	assert.False(t, ok)

	_, ok = resolveIdentity(t, "Bearer not.a.jwt")
	assert.False(t, ok)
}

func TestMiddleware_ExpiredToken_Anonymous(t *testing.T) {
	tok, err := GenerateToken("alice", "alice@example.com", "u-1", testSecret, -time.Minute)
	require.NoError(t, err)

	_, ok := resolveIdentity(t, "Bearer "+tok)
	assert.False(t, ok)
}

func TestMiddleware_WrongSecret_Anonymous(t *testing.T) {
	tok, err := GenerateToken("alice", "alice@example.com", "u-1", []byte("other"), time.Hour)
	require.NoError(t, err)

	_, ok := resolveIdentity(t, "Bearer "+tok)
	assert.False(t, ok)
}

func TestClaimsFrom_EmptyContext(t *testing.T) {
	_, ok := ClaimsFrom(context.Background())
	assert.False(t, ok)
}
