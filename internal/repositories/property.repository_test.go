package repositories_test

import (
	"context"
	"fmt"
	"testing"

	. "estatehub/internal/models"
	"estatehub/internal/repositories"
	"estatehub/internal/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyRepository_GetBySlug(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	repo := repositories.NewPropertyRepository(nil)
	owner := testdb.User(t, db, "Sam", "Owner", RoleLandlord)

	first := testdb.Property(t, db, testdb.PropertyFixture{Title: "Sea View Flat", Owner: owner})
	testdb.Property(t, db, testdb.PropertyFixture{Title: "Sea View Flat", Owner: owner})

	t.Run("duplicate slug resolves to the first row", func(t *testing.T) {
		property, err := repo.GetBySlug(ctx, db, "sea-view-flat")
		require.NoError(t, err)
		assert.Equal(t, first.ID, property.ID)
		assert.NotNil(t, property.Location)
	})

	t.Run("missing slug is not found", func(t *testing.T) {
		property, err := repo.GetBySlug(ctx, db, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, property)
	})
}

func TestPropertyRepository_GetLatest(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	repo := repositories.NewPropertyRepository(nil)
	owner := testdb.User(t, db, "Sam", "Owner", RoleLandlord)

	for i := 1; i <= 8; i++ {
		testdb.Property(t, db, testdb.PropertyFixture{Title: fmt.Sprintf("Rent %d", i), Owner: owner})
	}
	testdb.Property(t, db, testdb.PropertyFixture{Title: "Buy 1", ListingType: ListingTypeBuy, Owner: owner})

	rent, err := repo.GetLatest(ctx, db, ListingTypeRent)
	require.NoError(t, err)
	require.Len(t, rent, repositories.LATEST_PROPERTIES_LIMIT)
	assert.Equal(t, "Rent 8", rent[0].Title)
	for _, property := range rent {
		assert.Equal(t, ListingTypeRent, property.ListingType)
	}

	buy, err := repo.GetLatest(ctx, db, ListingTypeBuy)
	require.NoError(t, err)
	assert.Len(t, buy, 1)
}

func TestPropertyRepository_GetByStatus(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	repo := repositories.NewPropertyRepository(nil)
	owner := testdb.User(t, db, "Sam", "Owner", RoleLandlord)

	testdb.Property(t, db, testdb.PropertyFixture{Title: "Pending One", Owner: owner})

	pending, err := repo.GetByStatus(ctx, db, PropertyStatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	accepted, err := repo.GetByStatus(ctx, db, PropertyStatusAccepted)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, accepted)
}

func TestPropertyRepository_AttachAmenities(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	repo := repositories.NewPropertyRepository(nil)
	owner := testdb.User(t, db, "Sam", "Owner", RoleLandlord)
	amenities := testdb.Amenities(t, db, "Pool", "Garage")
	property := testdb.Property(t, db, testdb.PropertyFixture{Title: "Flat", Owner: owner})

	t.Run("unknown amenity attaches nothing", func(t *testing.T) {
		err := repo.AttachAmenities(ctx, db, property.ID, []uint{amenities[0].ID, 999})
		assert.ErrorIs(t, err, ErrUnknownAmenity)

		var count int64
		require.NoError(t, db.Model(&PropertyAmenity{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("duplicate ids attach once", func(t *testing.T) {
		err := repo.AttachAmenities(ctx, db, property.ID, []uint{amenities[0].ID, amenities[1].ID, amenities[0].ID})
		require.NoError(t, err)

		loaded, err := repo.GetByID(ctx, db, property.ID)
		require.NoError(t, err)
		assert.Len(t, loaded.Amenities, 2)
	})
}

func TestPropertyRepository_UpdateStatusAndDelete(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	repo := repositories.NewPropertyRepository(nil)
	owner := testdb.User(t, db, "Sam", "Owner", RoleLandlord)
	property := testdb.Property(t, db, testdb.PropertyFixture{Title: "Flat", Owner: owner})

	_, err := repo.AddImages(ctx, db, property.ID, []string{"http://img/1.jpg", "http://img/2.jpg"})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, db, property, PropertyStatusAccepted))
	assert.Equal(t, PropertyStatusAccepted, property.Status)

	loaded, err := repo.GetByID(ctx, db, property.ID)
	require.NoError(t, err)
	assert.Equal(t, PropertyStatusAccepted, loaded.Status)
	require.Len(t, loaded.Images, 2)
	assert.Equal(t, "http://img/1.jpg", loaded.Images[0].URL)

	err = repo.UpdateStatus(ctx, db, &Property{BaseModel: BaseModel{ID: 999}}, PropertyStatusRejected)
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.UpdateStatus(ctx, db, property, PropertyStatusRejected)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	deleted, err := repo.Delete(ctx, db, property.ID)
	require.NoError(t, err)
	assert.Len(t, deleted.Images, 2)

	var images int64
	require.NoError(t, db.Model(&PropertyImage{}).Count(&images).Error)
	assert.Zero(t, images)

	_, err = repo.Delete(ctx, db, property.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPropertyRepository_ApplyUpdate(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	repo := repositories.NewPropertyRepository(nil)
	owner := testdb.User(t, db, "Sam", "Owner", RoleLandlord)
	property := testdb.Property(t, db, testdb.PropertyFixture{Title: "Flat", Price: 400, Rooms: 2, Owner: owner})

	require.NoError(t, repo.ApplyUpdate(ctx, db, property.ID, map[string]any{"num_of_rooms": 4}))

	loaded, err := repo.GetByID(ctx, db, property.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.NumOfRooms)
	assert.Equal(t, "Flat", loaded.Title)
	assert.True(t, loaded.Price.Equal(property.Price))

	assert.ErrorIs(t, repo.ApplyUpdate(ctx, db, property.ID, map[string]any{}), ErrEmptyUpdate)
	assert.ErrorIs(t, repo.ApplyUpdate(ctx, db, 999, map[string]any{"area": 5}), ErrNotFound)
}

func TestPropertyRepository_UpdateStatusStaleDecision(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	repo := repositories.NewPropertyRepository(nil)
	owner := testdb.User(t, db, "Sam", "Owner", RoleLandlord)
	property := testdb.Property(t, db, testdb.PropertyFixture{Title: "Harbour Loft", Owner: owner})

	first, err := repo.GetByID(ctx, db, property.ID)
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, db, property.ID)
	require.NoError(t, err)
	require.Equal(t, PropertyStatusPending, second.Status)

	require.NoError(t, repo.UpdateStatus(ctx, db, first, PropertyStatusAccepted))

	err = repo.UpdateStatus(ctx, db, second, PropertyStatusRejected)
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, PropertyStatusPending, second.Status)

	loaded, err := repo.GetByID(ctx, db, property.ID)
	require.NoError(t, err)
	assert.Equal(t, PropertyStatusAccepted, loaded.Status)
}
