package services

import (
	"github.com/propertyflow/propertyflow/internal/csvio"
	"github.com/propertyflow/propertyflow/internal/models"
	"gorm.io/gorm"
)

// ImportRepository adapts the database to the importer's persistence
// interface.
type ImportRepository struct {
	DB *gorm.DB
}

var _ csvio.Repository = (*ImportRepository)(nil)

func (r *ImportRepository) FindPropertyByExternalID(externalID, userID string) (*models.Property, error) {
	var property models.Property
	err := r.DB.Where("external_id = ? AND user_id = ?", externalID, userID).First(&property).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &property, nil
}

func (r *ImportRepository) FindPropertyByAddress(fullAddress, userID string) (*models.Property, error) {
	var property models.Property
	err := r.DB.Where("full_address = ? AND user_id = ?", fullAddress, userID).First(&property).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &property, nil
}

func (r *ImportRepository) CreateProperty(property *models.Property) error {
	return r.DB.Create(property).Error
}

func (r *ImportRepository) UpdateProperty(id string, property *models.Property) error {
	return r.DB.Model(&models.Property{}).
		Where("id = ?", id).
		Select(propertyUpdateColumns).
		Updates(property).Error
}

func (r *ImportRepository) FindUnitByPropertyAndName(propertyID, unitName string) (*models.Unit, error) {
	var unit models.Unit
	err := r.DB.Where("property_id = ? AND unit_name = ?", propertyID, unitName).First(&unit).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &unit, nil
}

func (r *ImportRepository) CreateUnit(unit *models.Unit) error {
	return r.DB.Create(unit).Error
}

func (r *ImportRepository) UpdateUnit(id string, unit *models.Unit) error {
	return r.DB.Model(&models.Unit{}).
		Where("id = ?", id).
		Select(unitUpdateColumns).
		Updates(unit).Error
}

func (r *ImportRepository) UpsertMonthlyRentRecord(record *models.MonthlyRentRecord) error {
	return upsertRentRecord(r.DB, record)
}
