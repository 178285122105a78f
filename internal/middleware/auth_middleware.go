package middleware

import (
	"errors"
	"strings"

	"go-mesinkasir/internal/model"
	"go-mesinkasir/internal/repository"
	"go-mesinkasir/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// userFinder is the part of the user repository RequireAuth reads.
type userFinder interface {
	FindByID(id uint) (*model.User, error)
}

// RequireAuth validates the bearer token, checks it against the user row and
// stores the actor in the request locals:
//
//	user_id   uint
//	username  string
//	user_name string
//	user_role string
func RequireAuth(users userFinder, tokens *jwt.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing authorization token")
		}

		// "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid authorization format. Use: Bearer <token>")
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		user, err := users.FindByID(claims.UserID)
		if errors.Is(err, repository.ErrNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "User not found")
		}
		if err != nil {
			return err
		}

		if !user.Active {
			return fiber.NewError(fiber.StatusUnauthorized, "User account is inactive")
		}
		if user.TokenVersion != claims.TokenVersion {
			return fiber.NewError(fiber.StatusUnauthorized, "Session expired (logged in on another device)")
		}

		// role comes from the row, so a demoted admin loses access immediately
		c.Locals("user_id", user.ID)
		c.Locals("username", user.Username)
		c.Locals("user_name", user.Name)
		c.Locals("user_role", user.Role)

		return c.Next()
	}
}
