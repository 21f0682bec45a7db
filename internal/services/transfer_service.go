package services

import (
	"fmt"

	"github.com/propertyflow/propertyflow/internal/csvio"
	"gorm.io/gorm"
)

// ValidationError rejects an import whose rows failed validation.
// Nothing is written when it is returned.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("CSV validation failed with %d error(s)", len(e.Errors))
}

// ValidateImport parses and validates CSV text without touching the
// database. It returns the number of importable rows and the per-row
// validation errors.
func ValidateImport(csvText string) (validRows int, errs []string, err error) {
	rows, err := csvio.Parse(csvText)
	if err != nil {
		return 0, nil, err
	}
	valid, errs := csvio.Validate(rows)
	return len(valid), errs, nil
}

// RunImport parses, validates, and reconciles CSV text into the user's
// portfolio in one pass. Any validation error rejects the whole file
// with a ValidationError before anything is written; reconciliation
// errors after that point are reported in the Summary without aborting
// the run.
func RunImport(db *gorm.DB, userID, csvText string) (*csvio.Summary, error) {
	rows, err := csvio.Parse(csvText)
	if err != nil {
		return nil, err
	}
	valid, validationErrs := csvio.Validate(rows)
	if len(validationErrs) > 0 {
		return nil, &ValidationError{Errors: validationErrs}
	}

	importer := &csvio.Importer{
		Repo:   &ImportRepository{DB: db},
		UserID: userID,
	}
	summary := importer.Run(valid)
	return &summary, nil
}

// ExportProperties renders the user's full portfolio as combined CSV.
func ExportProperties(db *gorm.DB, userID string) (string, error) {
	properties, err := ListProperties(db, userID)
	if err != nil {
		return "", err
	}
	return csvio.ExportProperties(properties), nil
}

// ExportPropertiesUnits renders properties and units without rent
// history.
func ExportPropertiesUnits(db *gorm.DB, userID string) (string, error) {
	properties, err := ListProperties(db, userID)
	if err != nil {
		return "", err
	}
	return csvio.ExportPropertiesUnits(properties), nil
}

// ExportRentHistory renders every rent record with its property and
// unit context.
func ExportRentHistory(db *gorm.DB, userID string) (string, error) {
	properties, err := ListProperties(db, userID)
	if err != nil {
		return "", err
	}
	return csvio.ExportRentHistory(properties), nil
}
