package services

import (
	"github.com/propertyflow/propertyflow/internal/models"
	"gorm.io/gorm"
)

// ListUnits returns the units of a property the user owns, ordered by
// unit name, with rent history attached.
func ListUnits(db *gorm.DB, propertyID, userID string) ([]models.Unit, error) {
	if _, err := propertyOwned(db, propertyID, userID); err != nil {
		return nil, err
	}
	var units []models.Unit
	err := db.
		Preload("RentHistory", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("monthly_rent_history.year, monthly_rent_history.month")
		}).
		Where("property_id = ?", propertyID).
		Order("unit_name").
		Find(&units).Error
	if err != nil {
		return nil, err
	}
	return units, nil
}

// GetUnit fetches one unit, checking the parent property belongs to the
// user.
func GetUnit(db *gorm.DB, id, userID string) (*models.Unit, error) {
	var unit models.Unit
	err := db.
		Preload("RentHistory", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("monthly_rent_history.year, monthly_rent_history.month")
		}).
		Where("id = ?", id).
		First(&unit).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := propertyOwned(db, unit.PropertyID, userID); err != nil {
		return nil, err
	}
	return &unit, nil
}

// CreateUnit adds a unit to a property the user owns.
func CreateUnit(db *gorm.DB, userID string, unit *models.Unit) error {
	if _, err := propertyOwned(db, unit.PropertyID, userID); err != nil {
		return err
	}
	return db.Create(unit).Error
}

var unitUpdateColumns = []string{"unit_name", "rent_price", "tenant_name", "unit_notes"}

// UpdateUnit overwrites the unit's editable fields.
func UpdateUnit(db *gorm.DB, id, userID string, updates *models.Unit) (*models.Unit, error) {
	existing, err := GetUnit(db, id, userID)
	if err != nil {
		return nil, err
	}
	err = db.Model(&models.Unit{}).
		Where("id = ?", existing.ID).
		Select(unitUpdateColumns).
		Updates(updates).Error
	if err != nil {
		return nil, err
	}
	return GetUnit(db, id, userID)
}

// DeleteUnit removes a unit and its rent history.
func DeleteUnit(db *gorm.DB, id, userID string) error {
	unit, err := GetUnit(db, id, userID)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("unit_id = ?", unit.ID).Delete(&models.MonthlyRentRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Unit{}, "id = ?", unit.ID).Error
	})
}

// propertyOwned loads the property only if the user owns it.
func propertyOwned(db *gorm.DB, propertyID, userID string) (*models.Property, error) {
	var property models.Property
	err := db.Where("id = ? AND user_id = ?", propertyID, userID).First(&property).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &property, nil
}
