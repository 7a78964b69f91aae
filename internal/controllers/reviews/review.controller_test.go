package reviewController

import (
	"context"
	"testing"

	"estatehub/config"
	"estatehub/internal/database"
	. "estatehub/internal/models"
	"estatehub/internal/repositories"
	"estatehub/internal/services"
	"estatehub/internal/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func text(s string) *string { return &s }

func TestCreateReviewRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request CreateReviewRequest
		fields  []string
	}{
		{name: "rate only", request: CreateReviewRequest{Rate: 5}},
		{name: "with content", request: CreateReviewRequest{Rate: 3, Content: text("Lovely view")}},
		{name: "blank content is dropped", request: CreateReviewRequest{Rate: 1, Content: text("   ")}},
		{name: "rate too low", request: CreateReviewRequest{Rate: 0}, fields: []string{"rate"}},
		{name: "rate too high", request: CreateReviewRequest{Rate: 6}, fields: []string{"rate"}},
		{name: "short content", request: CreateReviewRequest{Rate: 4, Content: text("ok")}, fields: []string{"content"}},
		{name: "content starts with digit", request: CreateReviewRequest{Rate: 4, Content: text("5 stars")}, fields: []string{"content"}},
		{name: "both invalid", request: CreateReviewRequest{Rate: 9, Content: text("1")}, fields: []string{"rate", "content"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}

			var validation ValidationErrors
			require.ErrorAs(t, err, &validation)
			assert.Len(t, validation, len(tt.fields))
			for _, field := range tt.fields {
				assert.Contains(t, validation, field)
			}
		})
	}
}

func TestReviewController(t *testing.T) {
	ctx := context.Background()
	sql := testdb.New(t)
	db := database.NewWithSQL(sql)
	controller := New(repositories.New(db), services.Service{}, config.Config{}, db)

	owner := testdb.User(t, sql, "Lina", "Landlord", RoleLandlord)
	guest := testdb.User(t, sql, "Gus", "Guest", RoleLandlord)
	stranger := testdb.User(t, sql, "Sam", "Stranger", RoleLandlord)
	property := testdb.Property(t, sql, testdb.PropertyFixture{Title: "Sea View Flat", Price: 500, Owner: owner})

	review, err := controller.CreateReview(ctx, guest, property.ID, &CreateReviewRequest{Rate: 4, Content: text("Great spot")})
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rate)
	assert.False(t, review.Date.IsZero())

	_, err = controller.CreateReview(ctx, guest, property.ID, &CreateReviewRequest{Rate: 2})
	require.ErrorIs(t, err, ErrReviewExists)

	_, err = controller.CreateReview(ctx, guest, 999, &CreateReviewRequest{Rate: 2})
	require.ErrorIs(t, err, ErrNotFound)

	reviews, err := controller.GetPropertyReviews(ctx, property.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	require.NotNil(t, reviews[0].User)
	assert.Equal(t, "Gus", reviews[0].User.FirstName)

	mine, err := controller.GetUserReviews(ctx, guest)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	require.ErrorIs(t, controller.DeleteReview(ctx, stranger, review.ID), ErrForbidden)
	require.NoError(t, controller.DeleteReview(ctx, guest, review.ID))
	require.ErrorIs(t, controller.DeleteReview(ctx, guest, review.ID), ErrNotFound)
}
