package repositories_test

import (
	"context"
	"testing"

	. "estatehub/internal/models"
	"estatehub/internal/repositories"
	"estatehub/internal/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go"
	"github.com/valkey-io/valkey-go/mock"
	"go.uber.org/mock/gomock"
)

func TestPropertyRepository_GetBySlugCache(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	cache := mock.NewClient(gomock.NewController(t))
	repo := repositories.NewPropertyRepository(cache)

	owner := testdb.User(t, db, "Sam", "Owner", RoleLandlord)
	amenities := testdb.Amenities(t, db, "Pool", "Parking")
	property := testdb.Property(t, db, testdb.PropertyFixture{
		Title:      "Harbour Loft",
		Price:      950,
		Rooms:      3,
		Owner:      owner,
		AmenityIDs: []uint{amenities[0].ID, amenities[1].ID},
	})
	_, err := repo.AddImages(ctx, db, property.ID, []string{
		"http://storage.local/properties/front.jpg",
		"http://storage.local/properties/kitchen.jpg",
	})
	require.NoError(t, err)

	key := repositories.PROPERTY_SLUG_CACHE_PREFIX + ":harbour-loft"
	var stored string

	gomock.InOrder(
		cache.EXPECT().
			Do(gomock.Any(), mock.Match("GET", key)).
			Return(mock.Result(mock.ValkeyNil())),
		cache.EXPECT().
			Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
				return len(cmd) == 5 && cmd[0] == "SET" && cmd[1] == key && cmd[3] == "EX" && cmd[4] == "3600"
			}, "SET "+key+" <json> EX 3600")).
			DoAndReturn(func(_ context.Context, cmd valkey.Completed) valkey.ValkeyResult {
				stored = cmd.Commands()[2]
				return mock.Result(mock.ValkeyString("OK"))
			}),
		cache.EXPECT().
			Do(gomock.Any(), mock.Match("GET", key)).
			DoAndReturn(func(context.Context, valkey.Completed) valkey.ValkeyResult {
				return mock.Result(mock.ValkeyString(stored))
			}),
	)

	fromDB, err := repo.GetBySlug(ctx, db, "harbour-loft")
	require.NoError(t, err)
	require.NotEmpty(t, stored)

	// The next read must come from the cache alone.
	require.NoError(t, db.Exec("DELETE FROM property_images").Error)
	require.NoError(t, db.Exec("DELETE FROM property_amenities").Error)
	require.NoError(t, db.Exec("DELETE FROM properties WHERE id = ?", property.ID).Error)

	cached, err := repo.GetBySlug(ctx, db, "harbour-loft")
	require.NoError(t, err)

	assert.Equal(t, fromDB.ID, cached.ID)
	assert.Equal(t, "Harbour Loft", cached.Title)
	assert.True(t, fromDB.Price.Equal(cached.Price))
	assert.Equal(t, 3, cached.NumOfRooms)

	require.NotNil(t, cached.Location)
	assert.Equal(t, "Casablanca", cached.Location.City)
	require.NotNil(t, cached.User)
	assert.Equal(t, "Sam", cached.User.FirstName)
	require.Len(t, cached.Images, 2)
	assert.Equal(t, "http://storage.local/properties/front.jpg", cached.Images[0].URL)
	require.Len(t, cached.Amenities, 2)
	assert.ElementsMatch(t, []string{"Pool", "Parking"}, []string{cached.Amenities[0].Name, cached.Amenities[1].Name})
}

func TestPropertyRepository_ClearSlugCache(t *testing.T) {
	ctx := context.Background()
	cache := mock.NewClient(gomock.NewController(t))
	repo := repositories.NewPropertyRepository(cache)

	cache.EXPECT().
		Do(gomock.Any(), mock.Match("DEL", repositories.PROPERTY_SLUG_CACHE_PREFIX+":harbour-loft")).
		Return(mock.Result(mock.ValkeyInt64(1)))

	assert.NoError(t, repo.ClearSlugCache(ctx, "harbour-loft"))
}
