// Package testdb opens migrated in-memory sqlite databases and seeds fixtures for tests.
package testdb

import (
	"strings"
	"testing"

	"estatehub/internal/database"
	"estatehub/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func New(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	config := database.GormConfig()
	config.PrepareStmt = false

	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), config)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func User(t *testing.T, db *gorm.DB, firstName, lastName string, role models.Role) *models.User {
	t.Helper()

	user := &models.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     strings.ToLower(firstName+"."+lastName) + "@example.com",
		Password:  "$2a$10$abcdefghijklmnopqrstuuMmH0Yk2r1nY6v8l5mJz3xkU9gS7bq",
		Role:      role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func Amenities(t *testing.T, db *gorm.DB, names ...string) []models.Amenity {
	t.Helper()

	amenities := make([]models.Amenity, 0, len(names))
	for _, name := range names {
		amenity := models.Amenity{Name: name}
		require.NoError(t, db.Create(&amenity).Error)
		amenities = append(amenities, amenity)
	}
	return amenities
}

// PropertyFixture describes a listing to insert directly, bypassing the controller.
type PropertyFixture struct {
	Title          string
	Price          int64
	ListingType    models.ListingType
	Status         models.PropertyStatus
	Rooms          int
	Bathrooms      int
	City           string
	PropertyTypeID *uint
	AmenityIDs     []uint
	Owner          *models.User
}

func Property(t *testing.T, db *gorm.DB, fixture PropertyFixture) *models.Property {
	t.Helper()

	if fixture.ListingType == "" {
		fixture.ListingType = models.ListingTypeRent
	}
	if fixture.Status == "" {
		fixture.Status = models.PropertyStatusPending
	}
	if fixture.City == "" {
		fixture.City = "Casablanca"
	}

	location := models.Location{City: fixture.City, State: "State", Street: fixture.Title + " street"}
	require.NoError(t, db.Create(&location).Error)

	property := &models.Property{
		Title:          fixture.Title,
		Description:    fixture.Title + " description",
		Price:          decimal.NewFromInt(fixture.Price),
		Status:         fixture.Status,
		ListingType:    fixture.ListingType,
		NumOfRooms:     fixture.Rooms,
		NumOfBathrooms: fixture.Bathrooms,
		Area:           80,
		Slug:           strings.ToLower(strings.ReplaceAll(fixture.Title, " ", "-")),
		LocationID:     location.ID,
		UserID:         fixture.Owner.ID,
		PropertyTypeID: fixture.PropertyTypeID,
	}
	require.NoError(t, db.Omit("Images", "Amenities").Create(property).Error)

	for _, id := range fixture.AmenityIDs {
		require.NoError(t, db.Create(&models.PropertyAmenity{PropertyID: property.ID, AmenityID: id}).Error)
	}

	return property
}
