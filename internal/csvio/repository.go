package csvio

import "github.com/propertyflow/propertyflow/internal/models"

// Repository is the capability set the importer reconciles against.
// Find methods return (nil, nil) when no match exists.
//
// Property and unit resolution is check-then-act: the importer reads,
// then branches to create or update, with no transaction or lock
// around the pair. Concurrent imports targeting the same natural key
// can therefore race and create duplicates; the unique indexes on
// (property_id, unit_name) and (unit_id, year, month) turn that race
// into a constraint error instead of silent duplication.
// UpsertMonthlyRentRecord is the one atomic operation: a single upsert
// with an explicit conflict target on (unit_id, year, month).
type Repository interface {
	FindPropertyByExternalID(externalID, userID string) (*models.Property, error)
	FindPropertyByAddress(fullAddress, userID string) (*models.Property, error)
	CreateProperty(p *models.Property) error
	UpdateProperty(id string, p *models.Property) error

	FindUnitByPropertyAndName(propertyID, unitName string) (*models.Unit, error)
	CreateUnit(u *models.Unit) error
	UpdateUnit(id string, u *models.Unit) error

	UpsertMonthlyRentRecord(r *models.MonthlyRentRecord) error
}
