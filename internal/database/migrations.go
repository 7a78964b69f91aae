package database

import (
	"estatehub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

// Models lists every table in dependency order.
func Models() []any {
	return []any{
		&models.User{},
		&models.Location{},
		&models.PropertyType{},
		&models.Amenity{},
		&models.Property{},
		&models.PropertyImage{},
		&models.PropertyAmenity{},
		&models.PropertyUpdate{},
		&models.Notification{},
		&models.EmailDelivery{},
		&models.ReasonReport{},
		&models.Review{},
	}
}

// AutoMigrate creates or updates all tables on the given connection.
func AutoMigrate(db *gorm.DB) error {
	if err := models.SetupJoinTables(db); err != nil {
		return err
	}

	for _, model := range Models() {
		if err := db.AutoMigrate(model); err != nil {
			return err
		}
	}

	return nil
}

func (db *DB) MigrateModels() error {
	log := logger.New("database").Function("MigrateModels")
	log.Info("Starting database migration")

	if err := AutoMigrate(db.SQL); err != nil {
		return log.Err("Failed to migrate models", err)
	}

	log.Info("Database migration completed successfully")
	return nil
}

// CreateIndexes creates indexes GORM tags cannot express.
func (db *DB) CreateIndexes() error {
	log := logger.New("database").Function("CreateIndexes")
	log.Info("Creating additional database indexes")

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_properties_listing_type_created_at ON properties(listing_type, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_properties_price ON properties(price)",
		"CREATE INDEX IF NOT EXISTS idx_notifications_to_user_date ON notifications(to_user_id, date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_email_deliveries_status_attempts ON email_deliveries(status, attempts)",
	}

	for _, indexSQL := range indexes {
		if err := db.SQL.Exec(indexSQL).Error; err != nil {
			log.Warn("Failed to create index", "sql", indexSQL, "error", err)
		}
	}

	log.Info("Additional database indexes created")
	return nil
}
