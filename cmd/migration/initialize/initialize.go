package initialize

import (
	"estatehub/config"
	. "estatehub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

var AMENITIES = []string{
	"Air conditioning",
	"Balcony",
	"Elevator",
	"Furnished",
	"Garden",
	"Heating",
	"Parking",
	"Swimming pool",
	"Wi-Fi",
}

var PROPERTY_TYPES = []string{
	"Apartment",
	"House",
	"Studio",
	"Villa",
	"Office",
	"Land",
}

var REASON_REPORTS = []ReasonReport{
	{Reason: "Misleading description", Type: ReasonReportTypeProperty},
	{Reason: "Wrong price", Type: ReasonReportTypeProperty},
	{Reason: "Property no longer available", Type: ReasonReportTypeProperty},
	{Reason: "Duplicate listing", Type: ReasonReportTypeProperty},
	{Reason: "Spam or scam", Type: ReasonReportTypeUser},
	{Reason: "Inappropriate behaviour", Type: ReasonReportTypeUser},
}

// InitializeTables inserts the reference data every environment needs. Rows that
// already exist are left alone.
func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Initializing essential production data")

	for _, name := range AMENITIES {
		amenity := Amenity{Name: name}
		if err := db.Where(Amenity{Name: name}).FirstOrCreate(&amenity).Error; err != nil {
			return log.Err("failed to initialize amenity", err, "name", name)
		}
	}
	log.Info("Amenities initialized", "count", len(AMENITIES))

	for _, name := range PROPERTY_TYPES {
		propertyType := PropertyType{Name: name}
		if err := db.Where(PropertyType{Name: name}).FirstOrCreate(&propertyType).Error; err != nil {
			return log.Err("failed to initialize property type", err, "name", name)
		}
	}
	log.Info("Property types initialized", "count", len(PROPERTY_TYPES))

	for _, report := range REASON_REPORTS {
		existing := report
		if err := db.Where(ReasonReport{Reason: report.Reason, Type: report.Type}).
			FirstOrCreate(&existing).Error; err != nil {
			return log.Err("failed to initialize report reason", err, "reason", report.Reason)
		}
	}
	log.Info("Report reasons initialized", "count", len(REASON_REPORTS))

	log.Info("Table initialization complete")
	return nil
}
