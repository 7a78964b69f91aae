package propertyController

import (
	"context"

	. "estatehub/internal/models"
	"estatehub/internal/services"
	"estatehub/internal/utils"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const UPDATE_REQUEST_MESSAGE = "Property update requires approval"

// ProposeUpdate stages an edit for admin approval and notifies the first admin.
// Only the owner (or an admin) may propose changes to a listing.
func (c *PropertyController) ProposeUpdate(
	ctx context.Context,
	user *User,
	propertyID uint,
	data map[string]any,
) (*PropertyUpdate, error) {
	log := c.log.TraceFromContext(ctx).Function("ProposeUpdate")

	fields := EditableFields(data)
	if len(fields) == 0 {
		return nil, ErrEmptyUpdate
	}
	if err := validateUpdateFields(fields); err != nil {
		return nil, err
	}

	outbox := &services.Outbox{}
	update := &PropertyUpdate{
		PropertyID: propertyID,
		UserID:     user.ID,
		Data:       datatypes.JSONMap(data),
		Status:     PropertyUpdateStatusPending,
	}

	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		property, err := c.propertyRepo.GetByID(ctx, tx, propertyID)
		if err != nil {
			return err
		}

		if !user.Owns(property) && !user.IsAdmin() {
			return ErrForbidden
		}

		if err := c.updateRepo.Create(ctx, tx, update); err != nil {
			return err
		}

		admin, err := c.userRepo.GetFirstAdmin(ctx, tx)
		if err != nil {
			return err
		}

		return c.notifier.Notify(ctx, tx, outbox, &Notification{
			FromUserID: user.ID,
			ToUserID:   admin.ID,
			PropertyID: &property.ID,
			Message:    UPDATE_REQUEST_MESSAGE,
			Type:       NotificationTypeUpdateRequest,
		})
	})
	if err != nil {
		return nil, err
	}

	c.notifier.Dispatch(ctx, outbox)

	log.Info("Property update proposed", "propertyID", propertyID, "updateID", update.ID, "userID", user.ID)
	return update, nil
}

// ApproveUpdate merges a staged update onto its property. Only columns present in the
// staged data change, and an update can be approved once.
func (c *PropertyController) ApproveUpdate(
	ctx context.Context,
	user *User,
	propertyUpdateID uint,
) (*Property, error) {
	log := c.log.TraceFromContext(ctx).Function("ApproveUpdate")

	if !user.IsAdmin() {
		return nil, ErrForbidden
	}

	var update *PropertyUpdate
	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		update, err = c.updateRepo.GetByID(ctx, tx, propertyUpdateID)
		if err != nil {
			return err
		}

		if update.Status == PropertyUpdateStatusApproved {
			return ErrAlreadyApproved
		}

		if err := c.propertyRepo.ApplyUpdate(ctx, tx, update.PropertyID, EditableFields(update.Data)); err != nil {
			return err
		}

		return c.updateRepo.MarkApproved(ctx, tx, update)
	})
	if err != nil {
		return nil, err
	}

	c.metrics.UpdateApproved()
	if update.Property != nil {
		c.clearSlugCache(ctx, update.Property.Slug)
	}

	log.Info("Property update approved", "updateID", update.ID, "propertyID", update.PropertyID, "adminID", user.ID)

	return c.propertyRepo.GetByID(ctx, c.db.SQL, update.PropertyID)
}

func (c *PropertyController) ListUpdates(
	ctx context.Context,
	user *User,
	status PropertyUpdateStatus,
) ([]PropertyUpdate, error) {
	if !user.IsAdmin() {
		return nil, ErrForbidden
	}

	switch status {
	case "":
		status = PropertyUpdateStatusPending
	case PropertyUpdateStatusPending, PropertyUpdateStatusApproved:
	default:
		return nil, ErrInvalidStatus
	}

	return c.updateRepo.GetByStatus(ctx, c.db.SQL, status)
}

// validateUpdateFields checks the values of editable columns in a proposed diff.
func validateUpdateFields(fields map[string]any) error {
	errs := ValidationErrors{}

	for key, value := range fields {
		switch key {
		case "title":
			title, ok := value.(string)
			if !ok {
				errs.Add(key, "must be a string")
				continue
			}
			utils.ValidateVar(errs, key, utils.CleanText(title), "required,max=255")
		case "description":
			description, ok := value.(string)
			if !ok {
				errs.Add(key, "must be a string")
				continue
			}
			utils.ValidateVar(errs, key, description, "max=5000")
		case "listing_type":
			listingType, ok := value.(string)
			if !ok {
				errs.Add(key, "must be a string")
				continue
			}
			utils.ValidateVar(errs, key, listingType, "oneof=rent buy")
		case "availability":
			availability, ok := value.(string)
			if !ok {
				errs.Add(key, "must be a string")
				continue
			}
			utils.ValidateVar(errs, key, availability, "oneof=available unavailable")
		case "price":
			if !isNonNegativeNumber(value) {
				errs.Add(key, "must be a non-negative number")
			}
		case "num_of_rooms", "num_of_bathrooms", "area":
			if !isNonNegativeNumber(value) {
				errs.Add(key, "must be a non-negative number")
			}
		case "property_type_id":
			if value != nil && !isNonNegativeNumber(value) {
				errs.Add(key, "must be an id")
			}
		}
	}

	return errs.OrNil()
}

func isNonNegativeNumber(value any) bool {
	switch v := value.(type) {
	case float64:
		return v >= 0
	case int:
		return v >= 0
	case int64:
		return v >= 0
	case uint:
		return true
	case string:
		number, err := decimal.NewFromString(v)
		return err == nil && !number.IsNegative()
	}
	return false
}
