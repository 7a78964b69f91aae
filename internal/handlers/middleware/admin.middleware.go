package middleware

import (
	"slices"

	"estatehub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// RequireAdmin gates moderation routes: status decisions, update approval,
// reason reports and catalog writes. Must run after RequireAuth.
func (m *Middleware) RequireAdmin() fiber.Handler {
	return m.RequireRole(models.RoleAdmin)
}

func (m *Middleware) RequireRole(roles ...models.Role) fiber.Handler {
	log := m.log.Function("RequireRole")

	return func(c *fiber.Ctx) error {
		user := GetUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		if !slices.Contains(roles, user.Role) {
			log.TraceFromContext(c.UserContext()).
				Info("role not permitted", "userID", user.ID, "role", user.Role, "path", c.Path())
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Admin access required",
			})
		}

		return c.Next()
	}
}
