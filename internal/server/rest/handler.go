// Package rest is the REST binding of the Bookshelf operations. It exposes
// the same users-service methods as the GraphQL endpoint over conventional
// routes; it is a second transport for the same capability, not a second
// source of truth.
package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sieke13/bookshelf/internal/common"
	"github.com/sieke13/bookshelf/internal/models"
	"github.com/sieke13/bookshelf/internal/server/auth"
	"github.com/sieke13/bookshelf/internal/server/users"
)

type Handler struct {
	svc *users.Service
}

func NewHandler(svc *users.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the REST routes on the given group (typically /api).
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/users", h.CreateUser)
	g.POST("/users/login", h.Login)
	g.GET("/users/me", h.Me)
	g.PUT("/users/books", h.SaveBook)
	g.DELETE("/users/books/:bookId", h.RemoveBook)
}

type credentials struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  *users.User `json:"user"`
}

type errorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (h *Handler) CreateUser(c echo.Context) error {
	var in credentials
	if err := c.Bind(&in); err != nil {
		return writeError(c, common.ErrorValidation)
	}

	res, err := h.svc.Register(c.Request().Context(), in.Username, in.Email, in.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, authResponse{Token: res.Token, User: res.User})
}

func (h *Handler) Login(c echo.Context) error {
	var in credentials
	if err := c.Bind(&in); err != nil {
		return writeError(c, common.ErrorValidation)
	}

	res, err := h.svc.Login(c.Request().Context(), in.Email, in.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, authResponse{Token: res.Token, User: res.User})
}

func (h *Handler) Me(c echo.Context) error {
	userID := userIDFrom(c)
	if userID == "" {
		return writeError(c, common.ErrorUnauthenticated)
	}

	user, err := h.svc.Me(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *Handler) SaveBook(c echo.Context) error {
	var book models.Book
	if err := c.Bind(&book); err != nil {
		return writeError(c, common.ErrorValidation)
	}

	user, err := h.svc.SaveBook(c.Request().Context(), userIDFrom(c), book)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *Handler) RemoveBook(c echo.Context) error {
	user, err := h.svc.RemoveBook(c.Request().Context(), userIDFrom(c), c.Param("bookId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func userIDFrom(c echo.Context) string {
	claims, ok := auth.ClaimsFrom(c.Request().Context())
	if !ok {
		return ""
	}
	return claims.UserID
}

// writeError maps service sentinels to HTTP statuses. The code field matches
// the GraphQL extensions codes so clients branch the same way on either
// transport.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorUnauthenticated):
		return c.JSON(http.StatusUnauthorized, errorResponse{Message: "you need to be logged in", Code: "UNAUTHENTICATED"})
	case errors.Is(err, common.ErrorValidation):
		return c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error(), Code: "VALIDATION_FAILED"})
	case errors.Is(err, common.ErrorNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Message: "not found", Code: "NOT_FOUND"})
	case errors.Is(err, common.ErrorUpstreamUnavailable):
		return c.JSON(http.StatusBadGateway, errorResponse{Message: "upstream unavailable", Code: "UPSTREAM_UNAVAILABLE"})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{Message: "internal server error", Code: "INTERNAL"})
	}
}
