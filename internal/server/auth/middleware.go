package auth

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sieke13/bookshelf/internal/common"
	"github.com/sieke13/bookshelf/internal/logging"
)

type ctxKey string

const claimsKey ctxKey = "authClaims"

// Middleware resolves the request identity from the Authorization header and
// stores it in the request context. Resolution is strictly best-effort:
//
//   - no header            -> anonymous
//   - malformed or invalid -> anonymous, warning logged
//   - verifies             -> authenticated claims in context
//
// The middleware never rejects a request; operations that require identity
// fail later with common.ErrorUnauthenticated, which transports translate
// into their own unauthenticated error kind.
func Middleware(secretKey []byte, logger logging.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(common.AuthHeaderName)
			if header == "" {
				return next(c)
			}

			token := strings.TrimSpace(strings.TrimPrefix(header, common.BearerPrefix))
			if token == "" {
				logger.Warn(c.Request().Context(), "malformed authorization header")
				return next(c)
			}

			claims, err := ParseToken(token, secretKey)
			if err != nil {
				logger.Warn(c.Request().Context(), "token rejected, continuing as anonymous", "reason", err.Error())
				return next(c)
			}

			ctx := WithClaims(c.Request().Context(), claims)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// WithClaims returns a context carrying the resolved identity.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFrom extracts the resolved identity, if any. The second return value
// is false for anonymous requests.
func ClaimsFrom(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}
