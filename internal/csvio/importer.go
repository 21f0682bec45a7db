package csvio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/propertyflow/propertyflow/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Fallbacks applied to identifier+address rows when the address
// heuristic cannot extract structured fields.
const (
	defaultCity         = "Brooklyn"
	defaultState        = "NY"
	defaultPropertyType = "Multi-family"
)

// Summary is the aggregate outcome of one import run. A non-empty
// Errors list alongside non-zero counts is a valid partial-success
// result; "zero processed" and "error occurred" are never conflated.
type Summary struct {
	PropertiesCreated  int      `json:"propertiesCreated"`
	PropertiesUpdated  int      `json:"propertiesUpdated"`
	UnitsCreated       int      `json:"unitsCreated"`
	UnitsUpdated       int      `json:"unitsUpdated"`
	RentHistoryCreated int      `json:"rentHistoryCreated"`
	Errors             []string `json:"errors"`
}

// Importer reconciles validated CSV rows against the backing store.
// UserID scopes property lookups and ownership; there is no ambient
// session state.
type Importer struct {
	Repo   Repository
	UserID string
}

type group struct {
	key  string
	rows []Row
}

// Run partitions rows into property groups and processes each group
// sequentially in first-seen order. Groups are isolated: a property or
// unit failure records one error naming the group and skips the rest of
// that group only. A rent-record failure records one error naming the
// row and does not affect the row's already-completed unit upsert or
// any other row.
func (imp *Importer) Run(rows []Row) Summary {
	summary := Summary{Errors: []string{}}

	var groups []*group
	index := make(map[string]*group)
	for _, row := range rows {
		key := groupKey(row)
		if key == "" {
			// validated rows always form a key; defensive only
			continue
		}
		g, ok := index[key]
		if !ok {
			g = &group{key: key}
			index[key] = g
			groups = append(groups, g)
		}
		g.rows = append(g.rows, row)
	}

	for _, g := range groups {
		if err := imp.processGroup(g, &summary); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("Property %s: %v", g.key, err))
		}
	}

	return summary
}

// groupKey derives the composite property identity for a row:
// identifier+address rows key on (property id, address); structured
// rows on (name, full address, external id).
func groupKey(row Row) string {
	propertyID := FieldPropertyID.Get(row)
	address := FieldAddress.Get(row)
	if propertyID != "" && address != "" {
		return propertyID + "|" + address
	}

	name := FieldPropertyName.Get(row)
	fullAddress := FieldFullAddress.Get(row)
	if name != "" && fullAddress != "" {
		return name + "|" + fullAddress + "|" + FieldExternalID.Get(row)
	}

	return ""
}

func (imp *Importer) processGroup(g *group, summary *Summary) error {
	// the first row is authoritative for property-level data; all rows
	// in a group are assumed to share it
	prop := imp.propertyFromRow(g.rows[0])

	propertyID, err := imp.resolveProperty(prop, summary)
	if err != nil {
		return err
	}

	for _, row := range g.rows {
		unitID, unitName, err := imp.reconcileUnit(propertyID, row, summary)
		if err != nil {
			return err
		}
		if unitID == "" {
			continue // row carries no unit
		}
		imp.reconcileRentRecord(unitID, unitName, row, summary)
	}

	return nil
}

// resolveProperty applies the dedup precedence: external id match
// first, then full address, both scoped to the importing user; no
// match means create.
func (imp *Importer) resolveProperty(prop *models.Property, summary *Summary) (string, error) {
	var existing *models.Property
	var err error

	if prop.ExternalID != "" {
		existing, err = imp.Repo.FindPropertyByExternalID(prop.ExternalID, imp.UserID)
		if err != nil {
			return "", err
		}
	}
	if existing == nil && prop.FullAddress != "" {
		existing, err = imp.Repo.FindPropertyByAddress(prop.FullAddress, imp.UserID)
		if err != nil {
			return "", err
		}
	}

	if existing != nil {
		if err := imp.Repo.UpdateProperty(existing.ID, prop); err != nil {
			return "", err
		}
		summary.PropertiesUpdated++
		return existing.ID, nil
	}

	if err := imp.Repo.CreateProperty(prop); err != nil {
		return "", err
	}
	summary.PropertiesCreated++
	return prop.ID, nil
}

// propertyFromRow maps the authoritative row onto property fields.
// Identifier+address rows synthesize structured fields from the address
// heuristic with fixed fallbacks; structured rows carry them directly.
func (imp *Importer) propertyFromRow(row Row) *models.Property {
	propertyID := FieldPropertyID.Get(row)
	address := FieldAddress.Get(row)

	if propertyID != "" && address != "" {
		city, state, zip := ParseAddress(address)
		if city == "" {
			city = defaultCity
		}
		if state == "" {
			state = defaultState
		}
		return &models.Property{
			UserID:       imp.UserID,
			PropertyName: address,
			FullAddress:  address,
			City:         city,
			State:        state,
			Zip:          zip,
			PropertyType: defaultPropertyType,
			ExternalID:   propertyID,
		}
	}

	prop := &models.Property{
		UserID:             imp.UserID,
		PropertyName:       FieldPropertyName.Get(row),
		FullAddress:        FieldFullAddress.Get(row),
		City:               FieldCity.Get(row),
		State:              FieldState.Get(row),
		Zip:                FieldZip.Get(row),
		PropertyType:       FieldPropertyType.Get(row),
		Notes:              FieldNotes.Get(row),
		ExternalID:         FieldExternalID.Get(row),
		StreetViewImageURL: FieldImageURL.Get(row),
	}
	if prop.City == "" || prop.State == "" {
		city, state, zip := ParseAddress(prop.FullAddress)
		if prop.City == "" {
			prop.City = city
		}
		if prop.State == "" {
			prop.State = state
		}
		if prop.Zip == "" {
			prop.Zip = zip
		}
	}
	if prop.PropertyType == "" {
		prop.PropertyType = defaultPropertyType
	}
	if v := FieldSquareFootage.Get(row); v != "" {
		if sqft, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			prop.SquareFootage = &sqft
		}
	}
	prop.AcquisitionPrice = parseNullDecimal(FieldAcquisitionPrice.Get(row))
	prop.AcquisitionDate = parseNullDate(FieldAcquisitionDate.Get(row))
	return prop
}

// reconcileUnit upserts the row's unit by (property id, unit name).
// Returns empty ids when the row supplies no unit identifier.
func (imp *Importer) reconcileUnit(propertyID string, row Row, summary *Summary) (string, string, error) {
	unit := unitFromRow(propertyID, row)
	if unit == nil {
		return "", "", nil
	}

	existing, err := imp.Repo.FindUnitByPropertyAndName(propertyID, unit.UnitName)
	if err != nil {
		return "", "", err
	}

	if existing != nil {
		if err := imp.Repo.UpdateUnit(existing.ID, unit); err != nil {
			return "", "", err
		}
		summary.UnitsUpdated++
		return existing.ID, unit.UnitName, nil
	}

	if err := imp.Repo.CreateUnit(unit); err != nil {
		return "", "", err
	}
	summary.UnitsCreated++
	return unit.ID, unit.UnitName, nil
}

// unitFromRow maps a row onto unit fields, or nil when the row has no
// unit identifier. Identifier+address rows synthesize unit notes from
// explicit notes, tenancy notes, and non-zero bed/bath/sq-ft clauses.
func unitFromRow(propertyID string, row Row) *models.Unit {
	if name := FieldUnit.Get(row); name != "" {
		rent := FieldRent.Get(row)
		if rent == "" {
			rent = FieldMarketRent.Get(row)
		}

		var notes []string
		if v := FieldUnitNotes.Get(row); v != "" {
			notes = append(notes, v)
		}
		if v := FieldTenancyNotes.Get(row); v != "" {
			notes = append(notes, v)
		}
		if v := FieldBed.Get(row); v != "" && v != "0" {
			notes = append(notes, v+" bed")
		}
		if v := FieldBath.Get(row); v != "" && v != "0" {
			notes = append(notes, v+" bath")
		}
		if v := FieldSqFt.Get(row); v != "" && v != "0" {
			notes = append(notes, v+" sq ft")
		}

		return &models.Unit{
			PropertyID: propertyID,
			UnitName:   name,
			RentPrice:  parseNullDecimal(rent),
			TenantName: FieldPrimaryTenant.Get(row),
			UnitNotes:  strings.Join(notes, ", "),
		}
	}

	if name := FieldUnitName.Get(row); name != "" {
		return &models.Unit{
			PropertyID: propertyID,
			UnitName:   name,
			RentPrice:  parseNullDecimal(FieldRentPrice.Get(row)),
			TenantName: FieldTenantName.Get(row),
			UnitNotes:  FieldUnitNotes.Get(row),
		}
	}

	return nil
}

// reconcileRentRecord upserts the row's monthly rent record when year,
// month, and an amount-bearing field are all present. Failure is
// isolated at row granularity.
func (imp *Importer) reconcileRentRecord(unitID, unitName string, row Row, summary *Summary) {
	year := FieldYear.Get(row)
	month := FieldMonth.Get(row)
	amount := FieldRentAmount.Get(row)
	if amount == "" {
		amount = FieldRent.Get(row)
	}
	if amount == "" {
		amount = FieldMarketRent.Get(row)
	}
	if year == "" || month == "" || amount == "" {
		return
	}

	yearInt, _ := strconv.Atoi(strings.TrimSpace(year))
	monthInt, _ := strconv.Atoi(strings.TrimSpace(month))

	method := FieldPaymentMethod.Get(row)
	if method == "" {
		method = models.PaymentMethodImport
	}

	record := &models.MonthlyRentRecord{
		UnitID:   unitID,
		Year:     yearInt,
		Month:    monthInt,
		RentDate: parseNullDate(FieldRentDate.Get(row)),
		Amount:   parseNullDecimal(amount),
		Method:   method,
		Notes:    FieldRentNotes.Get(row),
	}

	if err := imp.Repo.UpsertMonthlyRentRecord(record); err != nil {
		summary.Errors = append(summary.Errors,
			fmt.Sprintf("Row %d: failed to create rent history for unit %s - %v", row.Num, unitName, err))
		return
	}
	summary.RentHistoryCreated++
}

func parseNullDecimal(v string) decimal.NullDecimal {
	if v == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(strings.TrimSpace(CleanCurrency(v)))
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

func parseNullDate(v string) *datatypes.Date {
	if v == "" {
		return nil
	}
	t, ok := ParseDate(v)
	if !ok {
		return nil
	}
	d := datatypes.Date(t)
	return &d
}
