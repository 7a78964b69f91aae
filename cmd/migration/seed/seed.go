package seed

import (
	"estatehub/config"
	. "estatehub/internal/models"
	"estatehub/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const SEED_PASSWORD = "password"

type seedProperty struct {
	Title       string
	Description string
	Price       int64
	ListingType ListingType
	Rooms       int
	Bathrooms   int
	Area        int
	Status      PropertyStatus
	City        string
	State       string
	Street      string
	Amenities   []string
}

var seedProperties = []seedProperty{
	{
		Title:       "Sea View Flat",
		Description: "Bright two bedroom flat overlooking the bay.",
		Price:       1200,
		ListingType: ListingTypeRent,
		Rooms:       2,
		Bathrooms:   1,
		Area:        85,
		Status:      PropertyStatusAccepted,
		City:        "Tunis",
		State:       "Tunis",
		Street:      "Avenue Habib Bourguiba",
		Amenities:   []string{"Balcony", "Wi-Fi"},
	},
	{
		Title:       "Family House With Garden",
		Description: "Quiet street, close to schools.",
		Price:       320000,
		ListingType: ListingTypeBuy,
		Rooms:       5,
		Bathrooms:   3,
		Area:        240,
		Status:      PropertyStatusAccepted,
		City:        "Sousse",
		State:       "Sousse",
		Street:      "Rue de la Plage",
		Amenities:   []string{"Garden", "Parking", "Heating"},
	},
	{
		Title:       "Downtown Studio",
		Price:       450,
		ListingType: ListingTypeRent,
		Rooms:       1,
		Bathrooms:   1,
		Area:        30,
		Status:      PropertyStatusPending,
		City:        "Tunis",
		State:       "Tunis",
		Street:      "Rue de Marseille",
		Amenities:   []string{"Furnished"},
	},
}

// Seed creates development users and listings. It expects the reference data
// from initialize to be present.
func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	password, err := services.HashPassword(SEED_PASSWORD)
	if err != nil {
		return log.Err("failed to hash seed password", err)
	}

	users := []User{
		{FirstName: "Admin", LastName: "User", Email: "admin@example.com", Password: password, Role: RoleAdmin},
		{FirstName: "Lina", LastName: "Landlord", Email: "landlord@example.com", Password: password, Role: RoleLandlord},
	}

	for i := range users {
		if err := db.Where(User{Email: users[i].Email}).FirstOrCreate(&users[i]).Error; err != nil {
			return log.Err("failed to create user", err, "email", users[i].Email)
		}
		log.Info("Seeded user", "email", users[i].Email, "role", users[i].Role)
	}
	landlord := users[1]

	for _, seeded := range seedProperties {
		if err := seedListing(db, landlord, seeded); err != nil {
			return log.Err("failed to seed property", err, "title", seeded.Title)
		}
		log.Info("Seeded property", "title", seeded.Title, "status", seeded.Status)
	}

	return nil
}

func seedListing(db *gorm.DB, owner User, seeded seedProperty) error {
	return db.Transaction(func(tx *gorm.DB) error {
		location := Location{City: seeded.City, State: seeded.State, Street: seeded.Street}
		if err := tx.Where(location).FirstOrCreate(&location).Error; err != nil {
			return err
		}

		var amenities []Amenity
		if err := tx.Where("name IN ?", seeded.Amenities).Find(&amenities).Error; err != nil {
			return err
		}

		property := Property{
			Title:          seeded.Title,
			Description:    seeded.Description,
			Price:          decimal.NewFromInt(seeded.Price),
			Status:         seeded.Status,
			ListingType:    seeded.ListingType,
			NumOfRooms:     seeded.Rooms,
			NumOfBathrooms: seeded.Bathrooms,
			Area:           seeded.Area,
			Availability:   AvailabilityAvailable,
			Slug:           slug.Make(seeded.Title),
			LocationID:     location.ID,
			UserID:         owner.ID,
			Amenities:      amenities,
		}

		return tx.Create(&property).Error
	})
}
