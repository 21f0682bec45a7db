package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Unit is a rentable sub-space within a Property. unit_name is unique
// within its property and forms the unit's natural key together with
// property_id.
type Unit struct {
	ID          string              `gorm:"type:char(36);primaryKey" json:"id"`
	PropertyID  string              `gorm:"type:char(36);not null;uniqueIndex:idx_property_unit_name" json:"property_id"`
	UnitName    string              `gorm:"size:255;not null;uniqueIndex:idx_property_unit_name" json:"unit_name"`
	RentPrice   decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"rent_price"`
	TenantName  string              `gorm:"size:255" json:"tenant_name"`
	UnitNotes   string              `gorm:"type:text" json:"unit_notes"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	RentHistory []MonthlyRentRecord `gorm:"foreignKey:UnitID;constraint:OnDelete:CASCADE" json:"rent_history"`
}

// TableName overrides the table name for Unit
func (Unit) TableName() string {
	return "units"
}

// BeforeCreate assigns a UUID primary key
func (u *Unit) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Occupied reports whether the unit has a tenant. A blank tenant name
// means vacant.
func (u *Unit) Occupied() bool {
	return strings.TrimSpace(u.TenantName) != ""
}
