package graph

import (
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/labstack/echo/v4"
	"github.com/sieke13/bookshelf/internal/logging"
)

// request is the standard GraphQL-over-HTTP POST body.
type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler serves the GraphQL endpoint. Identity resolution has already
// happened in the auth middleware; resolvers read it from the request
// context.
type Handler struct {
	schema graphql.Schema
	logger logging.Logger
}

func NewHandler(schema graphql.Schema, logger logging.Logger) *Handler {
	return &Handler{schema: schema, logger: logger.With("module", "graphql")}
}

// Serve handles POST /graphql. Resolver failures are reported inside the
// GraphQL response envelope with HTTP 200; only an unreadable request body
// is a transport-level error.
func (h *Handler) Serve(c echo.Context) error {
	var req request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        c.Request().Context(),
	})

	if len(result.Errors) > 0 {
		h.logger.Debug(c.Request().Context(), "graphql operation returned errors",
			"operation", req.OperationName, "count", len(result.Errors))
	}

	return c.JSON(http.StatusOK, result)
}
