package utils

import (
	"strings"
	"testing"

	"estatehub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listingForm struct {
	Title    string  `json:"title"            validate:"required,max=10"`
	Type     string  `json:"listing_type"     validate:"required,oneof=rent buy"`
	Rooms    int     `json:"num_of_rooms"     validate:"gte=0"`
	Contact  *string `json:"contact,omitempty" validate:"omitempty,email"`
	Password string  `json:"password"         validate:"min=8,maxbytes=72"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		form := listingForm{Title: "Flat", Type: "rent", Password: "long-enough"}
		assert.NoError(t, ValidateStruct(&form))
	})

	t.Run("errors use json names", func(t *testing.T) {
		contact := "not-an-email"
		form := listingForm{
			Title:    "A very long listing title",
			Type:     "lease",
			Rooms:    -1,
			Contact:  &contact,
			Password: "short",
		}

		var validation models.ValidationErrors
		require.ErrorAs(t, ValidateStruct(&form), &validation)
		assert.Equal(t, models.ValidationErrors{
			"title":        "must be at most 10 characters",
			"listing_type": "must be one of: rent, buy",
			"num_of_rooms": "must not be negative",
			"contact":      "must be a valid email address",
			"password":     "must be at least 8 characters",
		}, validation)
	})

	t.Run("password byte limit", func(t *testing.T) {
		// 40 runes, 80 bytes.
		form := listingForm{Title: "Flat", Type: "buy", Password: strings.Repeat("é", 40)}

		var validation models.ValidationErrors
		require.ErrorAs(t, ValidateStruct(&form), &validation)
		assert.Equal(t, "must be at most 72 bytes", validation["password"])
	})
}

func TestValidateVar(t *testing.T) {
	errs := models.ValidationErrors{}

	ValidateVar(errs, "email", "lina@example.com", "required,email")
	assert.Empty(t, errs)

	ValidateVar(errs, "email", "nope", "required,email")
	ValidateVar(errs, "first_name", "", "required")
	assert.Equal(t, models.ValidationErrors{
		"email":      "must be a valid email address",
		"first_name": "is required",
	}, errs)
}
