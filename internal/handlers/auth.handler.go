package handlers

import (
	"estatehub/internal/app"
	authController "estatehub/internal/controllers/auth"
	"estatehub/internal/resources"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Handler
	authController authController.AuthControllerInterface
}

func NewAuthHandler(app app.App, router fiber.Router) *AuthHandler {
	log := logger.New("handlers").File("auth_handler")
	return &AuthHandler{
		authController: app.Controllers.Auth,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AuthHandler) Register() {
	auth := h.router.Group("/auth")
	auth.Post("/register", h.register)
	auth.Post("/login", h.login)
	auth.Get("/me", h.middleware.RequireAuth(), h.getCurrentUser)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	var req authController.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	response, err := h.authController.Register(c.UserContext(), &req)
	if err != nil {
		return h.handleError(c, err, "Failed to register user")
	}

	return c.Status(fiber.StatusCreated).JSON(authPayload(response))
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var req authController.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	response, err := h.authController.Login(c.UserContext(), &req)
	if err != nil {
		return h.handleError(c, err, "Failed to log in")
	}

	return c.JSON(authPayload(response))
}

func (h *AuthHandler) getCurrentUser(c *fiber.Ctx) error {
	user := h.requireUser(c)
	if user == nil {
		return nil
	}

	return c.JSON(fiber.Map{
		"user": resources.NewUserResource(user),
	})
}

func authPayload(response *authController.AuthResponse) fiber.Map {
	return fiber.Map{
		"access_token": response.AccessToken,
		"token_type":   response.TokenType,
		"expires_in":   response.ExpiresIn,
		"user":         resources.NewUserResource(response.User),
	}
}
