package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v3"

	"poliza-service/internal/apiutil"
)

// TokenValidator is the slice of the auth collaborator the middleware needs.
type TokenValidator interface {
	IsValid(ctx context.Context, token string) (bool, error)
}

// AuthMiddleware validates the bearer token once per request. Token
// lifecycle belongs to the auth service; we only gate on its answer.
func AuthMiddleware(validator TokenValidator) fiber.Handler {
	return func(c fiber.Ctx) error {
		header := c.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			return c.Status(http.StatusUnauthorized).JSON(
				apiutil.CreateErrorResponse("UNAUTHORIZED", "Bearer token is required"))
		}

		valid, err := validator.IsValid(c.Context(), token)
		if err != nil {
			slog.Error("Token validation failed", "error", err)
			return c.Status(http.StatusBadGateway).JSON(
				apiutil.CreateErrorResponse("AUTH_UNAVAILABLE", "could not validate token"))
		}
		if !valid {
			return c.Status(http.StatusUnauthorized).JSON(
				apiutil.CreateErrorResponse("UNAUTHORIZED", "token is invalid or expired"))
		}
		return c.Next()
	}
}
