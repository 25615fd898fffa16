package auth

import (
	"github.com/gofiber/fiber/v2"

	helper "safetrack_backend/internals/helpers"
	"safetrack_backend/internals/locale"
)

// OnlyAdmin gates admin-only routes. Must run after AuthMiddleware.
func OnlyAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		isAdmin, ok := c.Locals("is_admin").(bool)
		if !ok {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized: missing role information")
		}
		if !isAdmin {
			return helper.JsonError(c, fiber.StatusForbidden, locale.T(locale.FromCtx(c), locale.KeyAdminRequired))
		}
		return c.Next()
	}
}
