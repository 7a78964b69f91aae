package catalogController

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

func TestCatalogController(t *testing.T) {
	ctx := context.Background()
	sql := testdb.New(t)
	db := database.NewWithSQL(sql)
	controller := New(repositories.New(db), services.Service{}, config.Config{}, db)

	admin := testdb.User(t, sql, "Ada", "Admin", RoleAdmin)
	landlord := testdb.User(t, sql, "Lina", "Landlord", RoleLandlord)

	_, err := controller.CreateAmenity(ctx, landlord, "Pool")
	require.ErrorIs(t, err, ErrForbidden)

	_, err = controller.CreateAmenity(ctx, admin, "  ")
	var validation ValidationErrors
	require.ErrorAs(t, err, &validation)

	for _, name := range []string{"Pool", "Elevator"} {
		_, err := controller.CreateAmenity(ctx, admin, name)
		require.NoError(t, err)
	}
	_, err = controller.CreatePropertyType(ctx, admin, " Villa ")
	require.NoError(t, err)

	amenities, err := controller.GetAmenities(ctx)
	require.NoError(t, err)
	require.Len(t, amenities, 2)
	assert.Equal(t, "Elevator", amenities[0].Name, "sorted by name")

	types, err := controller.GetPropertyTypes(ctx)
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, "Villa", types[0].Name)

	testdb.Property(t, sql, testdb.PropertyFixture{Title: "Sea View Flat", Price: 500, City: "Tunis", Owner: landlord})
	locations, err := controller.GetLocations(ctx)
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, "Tunis", locations[0].City)
}
