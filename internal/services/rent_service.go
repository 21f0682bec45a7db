package services

import (
	"github.com/propertyflow/propertyflow/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListRentHistory returns a unit's rent records in (year, month) order.
func ListRentHistory(db *gorm.DB, unitID, userID string) ([]models.MonthlyRentRecord, error) {
	if _, err := GetUnit(db, unitID, userID); err != nil {
		return nil, err
	}
	var records []models.MonthlyRentRecord
	err := db.Where("unit_id = ?", unitID).
		Order("year, month").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// UpsertRentRecord inserts a rent record, or overwrites the existing row
// for the same (unit, year, month). The conflict target is the unique
// index on those columns, so concurrent writers converge on the last
// writer's amount.
func UpsertRentRecord(db *gorm.DB, userID string, record *models.MonthlyRentRecord) error {
	if _, err := GetUnit(db, record.UnitID, userID); err != nil {
		return err
	}
	return upsertRentRecord(db, record)
}

func upsertRentRecord(db *gorm.DB, record *models.MonthlyRentRecord) error {
	if record.Method == "" {
		record.Method = models.PaymentMethodImport
	}
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "unit_id"}, {Name: "year"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"rent_date", "amount", "method", "notes", "updated_at",
		}),
	}).Create(record).Error
}

// UpdateRentRecord edits the payment fields of an existing rent record.
// Year and month are fixed at creation; moving a record to another month
// goes through the upsert path instead.
func UpdateRentRecord(db *gorm.DB, id, userID string, updates *models.MonthlyRentRecord) (*models.MonthlyRentRecord, error) {
	var record models.MonthlyRentRecord
	if err := db.Where("id = ?", id).First(&record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := GetUnit(db, record.UnitID, userID); err != nil {
		return nil, err
	}

	record.RentDate = updates.RentDate
	record.Amount = updates.Amount
	record.Method = updates.Method
	record.Notes = updates.Notes
	err := db.Model(&record).
		Select("rent_date", "amount", "method", "notes").
		Updates(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteRentRecord removes one rent record after an ownership check
// through the unit's parent property.
func DeleteRentRecord(db *gorm.DB, id, userID string) error {
	var record models.MonthlyRentRecord
	if err := db.Where("id = ?", id).First(&record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	if _, err := GetUnit(db, record.UnitID, userID); err != nil {
		return err
	}
	return db.Delete(&record).Error
}
