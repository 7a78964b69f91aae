package handlers

import (
	"estatehub/internal/app"
	reasonReportController "estatehub/internal/controllers/reasonReports"
	. "estatehub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type ReasonReportHandler struct {
	Handler
	reasonReportController reasonReportController.ReasonReportControllerInterface
}

func NewReasonReportHandler(app app.App, router fiber.Router) *ReasonReportHandler {
	log := logger.New("handlers").File("reason_report_handler")
	return &ReasonReportHandler{
		reasonReportController: app.Controllers.ReasonReport,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ReasonReportHandler) Register() {
	auth := h.middleware.RequireAuth()
	admin := h.middleware.RequireAdmin()

	reports := h.router.Group("/reason-reports")
	reports.Get("", h.getReasons)
	reports.Post("", auth, admin, h.createReason)
	reports.Delete("/:id", auth, admin, h.deleteReason)
}

func (h *ReasonReportHandler) getReasons(c *fiber.Ctx) error {
	var (
		reasons []ReasonReport
		err     error
	)

	if reportType := c.Query("type"); reportType != "" {
		reasons, err = h.reasonReportController.GetByType(c.UserContext(), ReasonReportType(reportType))
	} else {
		reasons, err = h.reasonReportController.GetAll(c.UserContext())
	}
	if err != nil {
		return h.handleError(c, err, "Failed to get report reasons")
	}

	return c.JSON(fiber.Map{
		"reasons": reasons,
	})
}

func (h *ReasonReportHandler) createReason(c *fiber.Ctx) error {
	user := h.requireUser(c)
	if user == nil {
		return nil
	}

	var req reasonReportController.CreateReasonRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	reason, err := h.reasonReportController.Create(c.UserContext(), user, &req)
	if err != nil {
		return h.handleError(c, err, "Failed to create report reason")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"reason": reason,
	})
}

func (h *ReasonReportHandler) deleteReason(c *fiber.Ctx) error {
	user := h.requireUser(c)
	if user == nil {
		return nil
	}

	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid report reason ID")
	}

	if err := h.reasonReportController.Delete(c.UserContext(), user, id); err != nil {
		return h.handleError(c, err, "Failed to delete report reason")
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}
