package models

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidTransition  = errors.New("status transition not allowed")
	ErrAlreadyApproved    = errors.New("property update already approved")
	ErrNoAdmin            = errors.New("no admin user available")
	ErrForbidden          = errors.New("forbidden")
	ErrUnknownAmenity     = errors.New("unknown amenity")
	ErrReviewExists       = errors.New("review already exists for this property")
	ErrEmptyUpdate        = errors.New("property update contains no editable fields")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrStorageDisabled    = errors.New("image storage is not configured")
	ErrImmutable          = errors.New("record is append-only")
)

// ValidationErrors maps a request field to the reason it was rejected.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+v[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v ValidationErrors) Add(field, message string) {
	if _, exists := v[field]; !exists {
		v[field] = message
	}
}

// OrNil returns nil when no field failed, so callers can `return errs.OrNil()`.
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}
