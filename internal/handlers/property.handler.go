package handlers

import (
	"cmp"
	"errors"
	"io"
	"slices"
	"strconv"
	"strings"

	"estatehub/internal/app"
	propertyController "estatehub/internal/controllers/properties"
	. "estatehub/internal/models"
	"estatehub/internal/resources"
	"estatehub/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

const MAX_IMAGES_PER_PROPERTY = 20

type PropertyHandler struct {
	Handler
	propertyController propertyController.PropertyControllerInterface
}

func NewPropertyHandler(app app.App, router fiber.Router) *PropertyHandler {
	log := logger.New("handlers").File("property_handler")
	return &PropertyHandler{
		propertyController: app.Controllers.Property,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *PropertyHandler) Register() {
	auth := h.middleware.RequireAuth()
	admin := h.middleware.RequireAdmin()

	properties := h.router.Group("/properties")
	properties.Get("", h.getProperties)
	properties.Get("/latest", h.getLatest)
	properties.Get("/search", h.search)
	properties.Get("/mine", auth, h.getMine)
	properties.Get("/status/:status", auth, admin, h.getByStatus)
	properties.Get("/:slug", h.getBySlug)
	properties.Post("", auth, h.createProperty)
	properties.Patch("/:id/status", auth, admin, h.updateStatus)
	properties.Post("/:id/updates", auth, h.proposeUpdate)
	properties.Delete("/:id", auth, h.deleteProperty)

	updates := h.router.Group("/property-updates")
	updates.Get("", auth, admin, h.getUpdates)
	updates.Post("/:id/approve", auth, admin, h.approveUpdate)
}

func (h *PropertyHandler) getProperties(c *fiber.Ctx) error {
	properties, err := h.propertyController.GetAll(c.UserContext())
	if err != nil {
		return h.handleError(c, err, "Failed to get properties")
	}

	return c.JSON(fiber.Map{
		"properties": resources.NewPropertyCollection(properties),
	})
}

func (h *PropertyHandler) getLatest(c *fiber.Ctx) error {
	listingType := ListingType(c.Query("listing_type"))

	properties, err := h.propertyController.GetLatest(c.UserContext(), listingType)
	if err != nil {
		return h.handleError(c, err, "Failed to get latest properties")
	}

	return c.JSON(fiber.Map{
		"properties": resources.NewPropertyCollection(properties),
	})
}

func (h *PropertyHandler) search(c *fiber.Ctx) error {
	var req propertyController.SearchRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "Invalid search parameters")
	}

	properties, err := h.propertyController.Search(c.UserContext(), req)
	if err != nil {
		return h.handleError(c, err, "Failed to search properties")
	}

	return c.JSON(fiber.Map{
		"properties": resources.NewPropertyCollection(properties),
	})
}

func (h *PropertyHandler) getMine(c *fiber.Ctx) error {
	user := h.requireUser(c)
	if user == nil {
		return nil
	}

	properties, err := h.propertyController.GetByUser(c.UserContext(), user)
	if err != nil {
		return h.handleError(c, err, "Failed to get properties")
	}

	return c.JSON(fiber.Map{
		"properties": resources.NewPropertyCollection(properties),
	})
}

// getByStatus answers an empty status with a null list rather than a 404.
func (h *PropertyHandler) getByStatus(c *fiber.Ctx) error {
	status := PropertyStatus(c.Params("status"))

	properties, err := h.propertyController.GetByStatus(c.UserContext(), status)
	if errors.Is(err, ErrNotFound) {
		return c.JSON(fiber.Map{
			"properties": nil,
		})
	}
	if err != nil {
		return h.handleError(c, err, "Failed to get properties")
	}

	return c.JSON(fiber.Map{
		"properties": resources.NewPropertyCollection(properties),
	})
}

func (h *PropertyHandler) getBySlug(c *fiber.Ctx) error {
	property, err := h.propertyController.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return h.handleError(c, err, "Failed to get property")
	}

	return c.JSON(fiber.Map{
		"property": resources.NewPropertyResource(property),
	})
}

func (h *PropertyHandler) createProperty(c *fiber.Ctx) error {
	user := h.requireUser(c)
	if user == nil {
		return nil
	}

	var req propertyController.CreatePropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	amenities, err := formAmenities(c)
	if err != nil {
		return h.handleError(c, err, "Failed to create property")
	}
	if amenities != nil {
		req.Amenities = amenities
	}

	uploads, closeUploads, err := openUploads(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	defer closeUploads()
	req.Images = uploads

	property, err := h.propertyController.CreateProperty(c.UserContext(), user, &req)
	if err != nil {
		return h.handleError(c, err, "Failed to create property")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"property": resources.NewPropertyResource(property),
	})
}

type updateStatusRequest struct {
	Status PropertyStatus `json:"status"`
}

func (h *PropertyHandler) updateStatus(c *fiber.Ctx) error {
	user := h.requireUser(c)
	if user == nil {
		return nil
	}

	propertyID, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid property ID")
	}

	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	property, err := h.propertyController.UpdateStatus(c.UserContext(), user, propertyID, req.Status)
	if err != nil {
		return h.handleError(c, err, "Failed to update property status")
	}

	return c.JSON(fiber.Map{
		"property": resources.NewPropertyResource(property),
	})
}

func (h *PropertyHandler) proposeUpdate(c *fiber.Ctx) error {
	user := h.requireUser(c)
	if user == nil {
		return nil
	}

	propertyID, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid property ID")
	}

	var data map[string]any
	if err := c.BodyParser(&data); err != nil {
		return badRequest(c, "Invalid request body")
	}

	update, err := h.propertyController.ProposeUpdate(c.UserContext(), user, propertyID, data)
	if err != nil {
		return h.handleError(c, err, "Failed to submit property update")
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message":         propertyController.UPDATE_REQUEST_MESSAGE,
		"property_update": resources.NewPropertyUpdateResource(update),
	})
}

func (h *PropertyHandler) getUpdates(c *fiber.Ctx) error {
	user := h.requireUser(c)
	if user == nil {
		return nil
	}

	status := PropertyUpdateStatus(c.Query("status"))

	updates, err := h.propertyController.ListUpdates(c.UserContext(), user, status)
	if err != nil {
		return h.handleError(c, err, "Failed to get property updates")
	}

	return c.JSON(fiber.Map{
		"property_updates": resources.NewPropertyUpdateCollection(updates),
	})
}

func (h *PropertyHandler) approveUpdate(c *fiber.Ctx) error {
	user := h.requireUser(c)
	if user == nil {
		return nil
	}

	updateID, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid property update ID")
	}

	property, err := h.propertyController.ApproveUpdate(c.UserContext(), user, updateID)
	if err != nil {
		return h.handleError(c, err, "Failed to approve property update")
	}

	return c.JSON(fiber.Map{
		"property": resources.NewPropertyResource(property),
	})
}

func (h *PropertyHandler) deleteProperty(c *fiber.Ctx) error {
	user := h.requireUser(c)
	if user == nil {
		return nil
	}

	propertyID, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid property ID")
	}

	if err := h.propertyController.DeleteProperty(c.UserContext(), user, propertyID); err != nil {
		return h.handleError(c, err, "Failed to delete property")
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

// openUploads opens the multipart "images" files. JSON requests carry no images.
func openUploads(c *fiber.Ctx) ([]services.Upload, func(), error) {
	noop := func() {}

	contentType := string(c.Request().Header.ContentType())
	if !strings.HasPrefix(contentType, fiber.MIMEMultipartForm) {
		return nil, noop, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, noop, errors.New("invalid multipart form")
	}

	files := indexedFormField(form.File, "images")
	if len(files) > MAX_IMAGES_PER_PROPERTY {
		return nil, noop, errors.New("too many images")
	}

	uploads := make([]services.Upload, 0, len(files))
	closers := make([]io.Closer, 0, len(files))
	closeAll := func() {
		for _, closer := range closers {
			_ = closer.Close()
		}
	}

	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			closeAll()
			return nil, noop, errors.New("could not read image " + header.Filename)
		}
		closers = append(closers, file)

		uploads = append(uploads, services.Upload{
			Name:        header.Filename,
			ContentType: header.Header.Get(fiber.HeaderContentType),
			Size:        header.Size,
			Reader:      file,
		})
	}

	return uploads, closeAll, nil
}

// indexedFormField gathers a repeated form field in every encoding clients send:
// "name", "name[]" and "name[0]", "name[1]", ... (the latter ordered by index).
func indexedFormField[T any](fields map[string][]T, name string) []T {
	values := append([]T{}, fields[name]...)
	values = append(values, fields[name+"[]"]...)

	type indexed struct {
		index  int
		values []T
	}
	var numbered []indexed
	for key, vals := range fields {
		rest, ok := strings.CutPrefix(key, name+"[")
		if !ok {
			continue
		}
		digits, ok := strings.CutSuffix(rest, "]")
		if !ok {
			continue
		}
		index, err := strconv.Atoi(digits)
		if err != nil || index < 0 {
			continue
		}
		numbered = append(numbered, indexed{index: index, values: vals})
	}
	slices.SortFunc(numbered, func(a, b indexed) int { return cmp.Compare(a.index, b.index) })

	for _, entry := range numbered {
		values = append(values, entry.values...)
	}
	return values
}

// formAmenities reads amenity ids from a form body. It returns nil when the
// request is not a form or carries no amenities, leaving BodyParser's result.
func formAmenities(c *fiber.Ctx) ([]uint, error) {
	var fields map[string][]string

	contentType := string(c.Request().Header.ContentType())
	switch {
	case strings.HasPrefix(contentType, fiber.MIMEMultipartForm):
		form, err := c.MultipartForm()
		if err != nil {
			return nil, ValidationErrors{"body": "invalid multipart form"}
		}
		fields = form.Value
	case strings.HasPrefix(contentType, fiber.MIMEApplicationForm):
		fields = map[string][]string{}
		c.Request().PostArgs().VisitAll(func(key, value []byte) {
			fields[string(key)] = append(fields[string(key)], string(value))
		})
	default:
		return nil, nil
	}

	raw := indexedFormField(fields, "amenities")
	if len(raw) == 0 {
		return nil, nil
	}

	ids := make([]uint, 0, len(raw))
	for _, value := range raw {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseUint(part, 10, 64)
			if err != nil || id == 0 {
				return nil, ValidationErrors{"amenities": "must be a list of ids"}
			}
			ids = append(ids, uint(id))
		}
	}
	return ids, nil
}
