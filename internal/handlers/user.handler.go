package handlers

import (
	"estatehub/internal/app"
	userController "estatehub/internal/controllers/users"
	"estatehub/internal/resources"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	Handler
	userController userController.UserControllerInterface
}

func NewUserHandler(app app.App, router fiber.Router) *UserHandler {
	log := logger.New("handlers").File("user_handler")
	return &UserHandler{
		userController: app.Controllers.User,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *UserHandler) Register() {
	users := h.router.Group("/users")
	auth := h.middleware.RequireAuth()

	users.Get("", auth, h.middleware.RequireAdmin(), h.getUsers)
	users.Put("/me", auth, h.updateProfile)
	users.Put("/me/password", auth, h.updatePassword)
	users.Delete("/:id", auth, h.deleteUser)
}

func (h *UserHandler) getUsers(c *fiber.Ctx) error {
	user := h.requireUser(c)
	if user == nil {
		return nil
	}

	users, err := h.userController.GetAll(c.UserContext(), user)
	if err != nil {
		return h.handleError(c, err, "Failed to get users")
	}

	return c.JSON(fiber.Map{
		"users": resources.NewUserCollection(users),
	})
}

func (h *UserHandler) updateProfile(c *fiber.Ctx) error {
	user := h.requireUser(c)
	if user == nil {
		return nil
	}

	var req userController.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	updated, err := h.userController.UpdateProfile(c.UserContext(), user, &req)
	if err != nil {
		return h.handleError(c, err, "Failed to update profile")
	}

	return c.JSON(fiber.Map{
		"user": resources.NewUserResource(updated),
	})
}

func (h *UserHandler) updatePassword(c *fiber.Ctx) error {
	user := h.requireUser(c)
	if user == nil {
		return nil
	}

	var req userController.UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.userController.UpdatePassword(c.UserContext(), user, &req); err != nil {
		return h.handleError(c, err, "Failed to update password")
	}

	return c.JSON(fiber.Map{
		"message": "Password updated",
	})
}

func (h *UserHandler) deleteUser(c *fiber.Ctx) error {
	user := h.requireUser(c)
	if user == nil {
		return nil
	}

	userID, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid user ID")
	}

	if err := h.userController.DeleteUser(c.UserContext(), user, userID); err != nil {
		return h.handleError(c, err, "Failed to delete user")
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}
