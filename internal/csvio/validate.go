package csvio

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CleanCurrency strips currency punctuation ($ and ,) from a value so
// "$3,934.00" parses as 3934.00.
func CleanCurrency(v string) string {
	if v == "" {
		return ""
	}
	return strings.NewReplacer("$", "", ",", "").Replace(v)
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"1/2/2006",
	"01/02/2006",
	"January 2, 2006",
}

// ParseDate parses a calendar date in any of the accepted layouts.
func ParseDate(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isNumeric(v string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	return err == nil
}

// Validate classifies each row as valid or invalid against the two
// accepted row shapes and collects one human-readable message per
// invalid row. Validation short-circuits at the first failed check per
// row, so a row contributes at most one message. Rows are independent:
// one row's invalidity never excludes others. Valid rows come back in
// original order; errors in row order.
func Validate(rows []Row) ([]Row, []string) {
	var valid []Row
	var errs []string

	for _, row := range rows {
		propertyID := FieldPropertyID.Get(row)
		address := FieldAddress.Get(row)

		switch {
		case propertyID != "" && address != "":
			if msg := validateShapeA(row, propertyID, address); msg != "" {
				errs = append(errs, fmt.Sprintf("Row %d: %s", row.Num, msg))
				continue
			}
			valid = append(valid, row)

		case FieldPropertyName.Get(row) != "" && FieldFullAddress.Get(row) != "":
			if msg := validateShapeB(row); msg != "" {
				errs = append(errs, fmt.Sprintf("Row %d: %s", row.Num, msg))
				continue
			}
			valid = append(valid, row)

		default:
			errs = append(errs, fmt.Sprintf(
				"Row %d: Invalid format - must have either Property ID + Address OR Property Name + Full Address", row.Num))
		}
	}

	return valid, errs
}

// validateShapeA checks an "identifier + address" row. Returns the
// first failing check's message, or "" when the row is valid.
func validateShapeA(row Row, propertyID, address string) string {
	if strings.TrimSpace(propertyID) == "" {
		return "Property Id is required"
	}
	if strings.TrimSpace(address) == "" {
		return "Address is required"
	}

	numericChecks := []struct {
		field Field
		name  string
	}{
		{FieldBed, "Bed"},
		{FieldBath, "Bath"},
		{FieldSqFt, "Sq Ft"},
		{FieldMarketRent, "Market Rent"},
		{FieldRent, "Rent"},
	}
	for _, check := range numericChecks {
		if v := check.field.Get(row); v != "" && !isNumeric(CleanCurrency(v)) {
			return fmt.Sprintf("%s must be a number", check.name)
		}
	}

	return validateRentHistory(row)
}

// validateShapeB checks a "structured property record" row. ZIP is
// optional and not validated.
func validateShapeB(row Row) string {
	if strings.TrimSpace(FieldPropertyName.Get(row)) == "" {
		return "Property name is required"
	}
	if strings.TrimSpace(FieldFullAddress.Get(row)) == "" {
		return "Full address is required"
	}
	if strings.TrimSpace(FieldCity.Get(row)) == "" {
		return "City is required"
	}
	if strings.TrimSpace(FieldState.Get(row)) == "" {
		return "State is required"
	}
	if strings.TrimSpace(FieldPropertyType.Get(row)) == "" {
		return "Property type is required"
	}

	if v := FieldSquareFootage.Get(row); v != "" && !isNumeric(v) {
		return "Square footage must be a number"
	}
	if v := FieldAcquisitionPrice.Get(row); v != "" && !isNumeric(v) {
		return "Acquisition price must be a number"
	}
	if v := FieldRentPrice.Get(row); v != "" && !isNumeric(v) {
		return "Rent price must be a number"
	}
	if v := FieldAcquisitionDate.Get(row); v != "" {
		if _, ok := ParseDate(v); !ok {
			return "Acquisition date must be a valid date"
		}
	}

	return validateRentHistory(row)
}

// validateRentHistory checks the optional rent-history sub-fields
// shared by both shapes.
func validateRentHistory(row Row) string {
	if v := FieldYear.Get(row); v != "" && !isNumeric(v) {
		return "Year must be a number"
	}
	if v := FieldMonth.Get(row); v != "" {
		month, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || month < 1 || month > 12 {
			return "Month must be a number between 1 and 12"
		}
	}
	if v := FieldRentAmount.Get(row); v != "" && !isNumeric(CleanCurrency(v)) {
		return "Rent Amount must be a number"
	}
	if v := FieldRentDate.Get(row); v != "" {
		if _, ok := ParseDate(v); !ok {
			return "Rent Date must be a valid date"
		}
	}
	return ""
}
