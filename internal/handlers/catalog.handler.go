package handlers

import (
	"estatehub/internal/app"
	catalogController "estatehub/internal/controllers/catalog"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	Handler
	catalogController catalogController.CatalogControllerInterface
}

type createNameRequest struct {
	Name string `json:"name"`
}

func NewCatalogHandler(app app.App, router fiber.Router) *CatalogHandler {
	log := logger.New("handlers").File("catalog_handler")
	return &CatalogHandler{
		catalogController: app.Controllers.Catalog,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *CatalogHandler) Register() {
	auth := h.middleware.RequireAuth()
	admin := h.middleware.RequireAdmin()

	h.router.Get("/amenities", h.getAmenities)
	h.router.Post("/amenities", auth, admin, h.createAmenity)
	h.router.Get("/property-types", h.getPropertyTypes)
	h.router.Post("/property-types", auth, admin, h.createPropertyType)
	h.router.Get("/locations", h.getLocations)
}

func (h *CatalogHandler) getAmenities(c *fiber.Ctx) error {
	amenities, err := h.catalogController.GetAmenities(c.UserContext())
	if err != nil {
		return h.handleError(c, err, "Failed to get amenities")
	}

	return c.JSON(fiber.Map{"amenities": amenities})
}

func (h *CatalogHandler) getPropertyTypes(c *fiber.Ctx) error {
	propertyTypes, err := h.catalogController.GetPropertyTypes(c.UserContext())
	if err != nil {
		return h.handleError(c, err, "Failed to get property types")
	}

	return c.JSON(fiber.Map{"property_types": propertyTypes})
}

func (h *CatalogHandler) getLocations(c *fiber.Ctx) error {
	locations, err := h.catalogController.GetLocations(c.UserContext())
	if err != nil {
		return h.handleError(c, err, "Failed to get locations")
	}

	return c.JSON(fiber.Map{"locations": locations})
}

func (h *CatalogHandler) createAmenity(c *fiber.Ctx) error {
	user := h.requireUser(c)
	if user == nil {
		return nil
	}

	var req createNameRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	amenity, err := h.catalogController.CreateAmenity(c.UserContext(), user, req.Name)
	if err != nil {
		return h.handleError(c, err, "Failed to create amenity")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"amenity": amenity})
}

func (h *CatalogHandler) createPropertyType(c *fiber.Ctx) error {
	user := h.requireUser(c)
	if user == nil {
		return nil
	}

	var req createNameRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	propertyType, err := h.catalogController.CreatePropertyType(c.UserContext(), user, req.Name)
	if err != nil {
		return h.handleError(c, err, "Failed to create property type")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"property_type": propertyType})
}
