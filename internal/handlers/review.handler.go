package handlers

import (
	"estatehub/internal/app"
	reviewController "estatehub/internal/controllers/reviews"
	"estatehub/internal/resources"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type ReviewHandler struct {
	Handler
	reviewController reviewController.ReviewControllerInterface
}

func NewReviewHandler(app app.App, router fiber.Router) *ReviewHandler {
	log := logger.New("handlers").File("review_handler")
	return &ReviewHandler{
		reviewController: app.Controllers.Review,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ReviewHandler) Register() {
	auth := h.middleware.RequireAuth()

	h.router.Get("/properties/:id/reviews", h.getPropertyReviews)
	h.router.Post("/properties/:id/reviews", auth, h.createReview)

	reviews := h.router.Group("/reviews")
	reviews.Get("/mine", auth, h.getMyReviews)
	reviews.Delete("/:id", auth, h.deleteReview)
}

func (h *ReviewHandler) getPropertyReviews(c *fiber.Ctx) error {
	propertyID, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid property ID")
	}

	reviews, err := h.reviewController.GetPropertyReviews(c.UserContext(), propertyID)
	if err != nil {
		return h.handleError(c, err, "Failed to get reviews")
	}

	return c.JSON(fiber.Map{
		"reviews": resources.NewReviewCollection(reviews),
	})
}

func (h *ReviewHandler) createReview(c *fiber.Ctx) error {
	user := h.requireUser(c)
	if user == nil {
		return nil
	}

	propertyID, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid property ID")
	}

	var req reviewController.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	review, err := h.reviewController.CreateReview(c.UserContext(), user, propertyID, &req)
	if err != nil {
		return h.handleError(c, err, "Failed to create review")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"review": resources.NewReviewResource(review),
	})
}

func (h *ReviewHandler) getMyReviews(c *fiber.Ctx) error {
	user := h.requireUser(c)
	if user == nil {
		return nil
	}

	reviews, err := h.reviewController.GetUserReviews(c.UserContext(), user)
	if err != nil {
		return h.handleError(c, err, "Failed to get reviews")
	}

	return c.JSON(fiber.Map{
		"reviews": resources.NewReviewCollection(reviews),
	})
}

func (h *ReviewHandler) deleteReview(c *fiber.Ctx) error {
	user := h.requireUser(c)
	if user == nil {
		return nil
	}

	reviewID, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid review ID")
	}

	if err := h.reviewController.DeleteReview(c.UserContext(), user, reviewID); err != nil {
		return h.handleError(c, err, "Failed to delete review")
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}
