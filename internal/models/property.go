package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Property represents a real-estate asset owned by a user account.
// external_id is an optional natural key used to recognize the same
// asset across repeated CSV imports.
type Property struct {
	ID                 string              `gorm:"type:char(36);primaryKey" json:"id"`
	UserID             string              `gorm:"type:char(36);not null;index" json:"user_id"`
	PropertyName       string              `gorm:"size:255;not null" json:"property_name"`
	FullAddress        string              `gorm:"size:512;not null;index" json:"full_address"`
	City               string              `gorm:"size:255;not null" json:"city"`
	State              string              `gorm:"size:64;not null" json:"state"`
	Zip                string              `gorm:"size:20" json:"zip"`
	PropertyType       string              `gorm:"size:64;not null" json:"property_type"`
	SquareFootage      *int                `json:"square_footage"`
	AcquisitionPrice   decimal.NullDecimal `gorm:"type:decimal(14,2)" json:"acquisition_price"`
	AcquisitionDate    *datatypes.Date     `json:"acquisition_date"`
	Notes              string              `gorm:"type:text" json:"notes"`
	ExternalID         string              `gorm:"size:255;index" json:"external_id"`
	StreetViewImageURL string              `gorm:"size:512" json:"street_view_image_url"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
	Units              []Unit              `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"units"`
}

// TableName overrides the table name for Property
func (Property) TableName() string {
	return "properties"
}

// BeforeCreate assigns a UUID primary key
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
