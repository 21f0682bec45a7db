// Package csvio implements CSV bulk import and export for properties,
// units, and monthly rent history. Import is a reconciliation pipeline:
// parse -> validate -> group by property identity -> upsert against the
// backing store, reporting aggregate counts and per-row errors.
package csvio

// Row is one parsed CSV data row. Fields maps header name to the raw
// cell value. Num is the 1-based line number in the file; the header is
// line 1, so data rows start at 2.
type Row struct {
	Num    int
	Fields map[string]string
}

// Field identifies one logical CSV column that may appear under either
// of the two supported header conventions: a snake_case name and a
// human-readable label. The snake_case value wins when both are
// populated.
type Field struct {
	Snake string
	Label string
}

// Get resolves the field's value from a row. Empty cells are treated as
// absent, so a blank snake_case cell falls through to the label column.
func (f Field) Get(r Row) string {
	if f.Snake != "" {
		if v := r.Fields[f.Snake]; v != "" {
			return v
		}
	}
	if f.Label != "" {
		if v := r.Fields[f.Label]; v != "" {
			return v
		}
	}
	return ""
}

// Set A columns ("identifier + address" rows, human labels with
// snake_case fallbacks).
var (
	FieldPropertyID    = Field{Snake: "property_id", Label: "Property Id"}
	FieldAddress       = Field{Snake: "address", Label: "Address"}
	FieldUnit          = Field{Snake: "unit", Label: "Unit"}
	FieldBed           = Field{Snake: "bed", Label: "Bed"}
	FieldBath          = Field{Snake: "bath", Label: "Bath"}
	FieldSqFt          = Field{Snake: "sq_ft", Label: "Sq Ft"}
	FieldPrimaryTenant = Field{Snake: "primary_tenant_name", Label: "Primary Tenant Name"}
	FieldMarketRent    = Field{Snake: "market_rent", Label: "Market Rent"}
	FieldRent          = Field{Snake: "rent", Label: "Rent"}
	FieldTenancyNotes  = Field{Snake: "tenancy_notes", Label: "Tenancy Notes"}
)

// Set B columns ("structured property record" rows, snake_case only).
var (
	FieldPropertyName     = Field{Snake: "property_name"}
	FieldFullAddress      = Field{Snake: "full_address"}
	FieldCity             = Field{Snake: "city"}
	FieldState            = Field{Snake: "state"}
	FieldZip              = Field{Snake: "zip"}
	FieldPropertyType     = Field{Snake: "property_type"}
	FieldSquareFootage    = Field{Snake: "square_footage"}
	FieldAcquisitionPrice = Field{Snake: "acquisition_price"}
	FieldAcquisitionDate  = Field{Snake: "acquisition_date"}
	FieldNotes            = Field{Snake: "notes"}
	FieldExternalID       = Field{Snake: "external_id"}
	FieldImageURL         = Field{Snake: "image_url"}
	FieldUnitName         = Field{Snake: "unit_name"}
	FieldRentPrice        = Field{Snake: "rent_price"}
	FieldTenantName       = Field{Snake: "tenant_name"}
)

// Shared by both sets.
var (
	FieldUnitNotes = Field{Snake: "unit_notes", Label: "Unit Notes"}
)

// Rent-history columns (label convention only).
var (
	FieldYear          = Field{Label: "Year"}
	FieldMonth         = Field{Label: "Month"}
	FieldRentDate      = Field{Label: "Rent Date"}
	FieldRentAmount    = Field{Label: "Rent Amount"}
	FieldPaymentMethod = Field{Label: "Payment Method"}
	FieldRentNotes     = Field{Label: "Rent Notes"}
)
