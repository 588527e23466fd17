// Package handler contains the Echo HTTP handlers. Each handler binds
// a request DTO, calls repositories or services under a bounded
// context, and maps sentinel errors to HTTP status codes.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cphva/cphva-connect/internal/repository"
)

// reqCtx bounds every storage call made by a handler.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// userID returns the authenticated user's id stored by the JWT
// middleware; empty when the route is unprotected.
func userID(c echo.Context) string {
	v, _ := c.Get("user_id").(string)
	return v
}

// storeErr maps repository sentinels to a JSON error response. msg is
// used for the generic 500 case.
func storeErr(c echo.Context, err error, msg string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, repository.ErrEmailExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
	case errors.Is(err, repository.ErrAlreadyVoted):
		return c.JSON(http.StatusConflict, echo.Map{"error": "already voted"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "conflict"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msg})
	}
}
