package services

import (
	"fmt"

	"github.com/propertyflow/propertyflow/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound is the sentinel services return when a record does not
// exist for the requesting user.
var ErrNotFound = fmt.Errorf("not found")

// ListProperties returns all properties for a user with units and rent
// history preloaded, ordered by creation time.
func ListProperties(db *gorm.DB, userID string) ([]models.Property, error) {
	var properties []models.Property
	err := db.
		Preload("Units", func(tx *gorm.DB) *gorm.DB { return tx.Order("units.unit_name") }).
		Preload("Units.RentHistory", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("monthly_rent_history.year, monthly_rent_history.month")
		}).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&properties).Error
	if err != nil {
		return nil, err
	}
	return properties, nil
}

// GetProperty returns one property with its full unit and rent-history
// tree, or ErrNotFound.
func GetProperty(db *gorm.DB, id, userID string) (*models.Property, error) {
	var property models.Property
	err := db.
		Preload("Units", func(tx *gorm.DB) *gorm.DB { return tx.Order("units.unit_name") }).
		Preload("Units.RentHistory", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("monthly_rent_history.year, monthly_rent_history.month")
		}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&property).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &property, nil
}

// CreateProperty inserts a new property owned by the user.
func CreateProperty(db *gorm.DB, property *models.Property) error {
	return db.Create(property).Error
}

// propertyUpdateColumns are the caller-settable property fields;
// ownership and timestamps are never mass-assigned.
var propertyUpdateColumns = []string{
	"property_name", "full_address", "city", "state", "zip", "property_type",
	"square_footage", "acquisition_price", "acquisition_date", "notes",
	"external_id", "street_view_image_url",
}

// UpdateProperty overwrites the property's editable fields.
func UpdateProperty(db *gorm.DB, id, userID string, updates *models.Property) (*models.Property, error) {
	result := db.Model(&models.Property{}).
		Where("id = ? AND user_id = ?", id, userID).
		Select(propertyUpdateColumns).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return GetProperty(db, id, userID)
}

// DeleteProperty removes a property and, through the cascade, its units
// and rent history. Deletion only happens through this explicit path,
// never through the importer.
func DeleteProperty(db *gorm.DB, id, userID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var property models.Property
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&property).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("unit_id IN (?)",
			tx.Model(&models.Unit{}).Select("id").Where("property_id = ?", id),
		).Delete(&models.MonthlyRentRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&models.Unit{}).Error; err != nil {
			return err
		}
		return tx.Delete(&property).Error
	})
}
