package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentMethodImport marks rent records that came in through a CSV
// import without an explicit payment method.
const PaymentMethodImport = "CSV Import"

// MonthlyRentRecord is one recorded rent transaction for a unit in a
// specific calendar month. At most one record exists per
// (unit_id, year, month); repeated imports update in place.
type MonthlyRentRecord struct {
	ID        string              `gorm:"type:char(36);primaryKey" json:"id"`
	UnitID    string              `gorm:"type:char(36);not null;uniqueIndex:idx_unit_year_month" json:"unit_id"`
	Year      int                 `gorm:"not null;uniqueIndex:idx_unit_year_month" json:"year"`
	Month     int                 `gorm:"not null;uniqueIndex:idx_unit_year_month" json:"month"`
	RentDate  *datatypes.Date     `json:"rent_date"`
	Amount    decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"amount"`
	Method    string              `gorm:"size:64" json:"method"`
	Notes     string              `gorm:"type:text" json:"notes"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// TableName overrides the table name for MonthlyRentRecord
func (MonthlyRentRecord) TableName() string {
	return "monthly_rent_history"
}

// BeforeCreate assigns a UUID primary key
func (r *MonthlyRentRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
