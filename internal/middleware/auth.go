package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/arizona-prime/community-api/internal/models"
	"github.com/arizona-prime/community-api/internal/repository"
	"github.com/arizona-prime/community-api/internal/utils"
	"github.com/arizona-prime/community-api/pkg/token"
)

const currentUserKey = "current_user"

// Authenticate validates the bearer token and resolves it to a live user
// record, which downstream handlers read via CurrentUser. A token whose user
// has since been deleted is rejected: possession of a signed token is not
// enough, the account must still exist.
func Authenticate(tokens *token.Manager, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get(fiber.HeaderAuthorization)
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		}

		const bearer = "Bearer "
		if len(authorization) < len(bearer) || !strings.EqualFold(authorization[:len(bearer)], bearer) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		userID, err := tokens.Verify(strings.TrimSpace(authorization[len(bearer):]))
		if err != nil {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		user, err := users.GetByID(c.Context(), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.SendError(c, fiber.StatusUnauthorized, "user not found")
			}
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to resolve session")
		}

		c.Locals(currentUserKey, user)
		return c.Next()
	}
}

// CurrentUser returns the authenticated user attached by Authenticate.
func CurrentUser(c *fiber.Ctx) (models.User, bool) {
	user, ok := c.Locals(currentUserKey).(models.User)
	return user, ok
}
