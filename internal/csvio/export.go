package csvio

import (
	"encoding/csv"
	"strconv"
	"strings"
	"time"

	"github.com/propertyflow/propertyflow/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

var propertyUnitColumns = []string{
	"property_name", "full_address", "city", "state", "zip", "property_type",
	"square_footage", "acquisition_price", "acquisition_date", "notes",
	"external_id", "image_url",
	"unit_name", "rent_price", "tenant_name", "unit_notes",
}

var rentColumns = []string{
	"Year", "Month", "Rent Date", "Rent Amount", "Payment Method", "Rent Notes",
}

// ExportProperties serializes the full property -> unit -> rent-record
// tree as one row per combination. Properties without units emit one
// row with blank unit fields; units without rent history emit one row
// with blank rent fields. Values are plain string representations with
// no locale formatting.
func ExportProperties(properties []models.Property) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	_ = w.Write(append(append([]string{}, propertyUnitColumns...), rentColumns...))

	for _, prop := range properties {
		if len(prop.Units) == 0 {
			_ = w.Write(append(propertyCells(prop, models.Unit{}), blankRentCells()...))
			continue
		}
		for _, unit := range prop.Units {
			if len(unit.RentHistory) == 0 {
				_ = w.Write(append(propertyCells(prop, unit), blankRentCells()...))
				continue
			}
			for _, record := range unit.RentHistory {
				_ = w.Write(append(propertyCells(prop, unit), rentCells(record)...))
			}
		}
	}

	w.Flush()
	return sb.String()
}

// ExportPropertiesUnits serializes the property -> unit nesting without
// rent-history columns.
func ExportPropertiesUnits(properties []models.Property) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	_ = w.Write(propertyUnitColumns)

	for _, prop := range properties {
		if len(prop.Units) == 0 {
			_ = w.Write(propertyCells(prop, models.Unit{}))
			continue
		}
		for _, unit := range prop.Units {
			_ = w.Write(propertyCells(prop, unit))
		}
	}

	w.Flush()
	return sb.String()
}

// ExportRentHistory serializes one row per rent record, carrying the
// identifying property and unit columns.
func ExportRentHistory(properties []models.Property) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	_ = w.Write(append([]string{"property_name", "full_address", "unit_name"}, rentColumns...))

	for _, prop := range properties {
		for _, unit := range prop.Units {
			for _, record := range unit.RentHistory {
				row := []string{prop.PropertyName, prop.FullAddress, unit.UnitName}
				_ = w.Write(append(row, rentCells(record)...))
			}
		}
	}

	w.Flush()
	return sb.String()
}

func propertyCells(prop models.Property, unit models.Unit) []string {
	return []string{
		prop.PropertyName,
		prop.FullAddress,
		prop.City,
		prop.State,
		prop.Zip,
		prop.PropertyType,
		intString(prop.SquareFootage),
		decimalString(prop.AcquisitionPrice),
		dateString(prop.AcquisitionDate),
		prop.Notes,
		prop.ExternalID,
		prop.StreetViewImageURL,
		unit.UnitName,
		decimalString(unit.RentPrice),
		unit.TenantName,
		unit.UnitNotes,
	}
}

func rentCells(record models.MonthlyRentRecord) []string {
	return []string{
		strconv.Itoa(record.Year),
		strconv.Itoa(record.Month),
		dateString(record.RentDate),
		decimalString(record.Amount),
		record.Method,
		record.Notes,
	}
}

func blankRentCells() []string {
	return make([]string, len(rentColumns))
}

func intString(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func decimalString(v decimal.NullDecimal) string {
	if !v.Valid {
		return ""
	}
	return v.Decimal.String()
}

func dateString(v *datatypes.Date) string {
	if v == nil {
		return ""
	}
	return time.Time(*v).Format("2006-01-02")
}
