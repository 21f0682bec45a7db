package csvio

import (
	"encoding/csv"
	"strings"
)

// ImportTemplate returns a sample CSV in the identifier+address
// convention, including rent-history columns, for users to download
// and fill in.
func ImportTemplate() string {
	header := []string{
		"Property Id", "Address", "Unit", "Bed", "Bath", "Sq Ft",
		"Primary Tenant Name", "Market Rent", "Rent", "Unit Notes", "Tenancy Notes",
		"Year", "Month", "Rent Date", "Rent Amount", "Payment Method", "Rent Notes",
	}
	rows := [][]string{
		{"405-mother-gaston-blvd", "405 Mother Gaston Blvd", "store", "2", "2", "1000",
			"", "3934", "3934", "Commercial space", "",
			"2024", "1", "2024-01-01", "3934", "Bank Transfer", "On time payment"},
		{"405-mother-gaston-blvd", "405 Mother Gaston Blvd", "2F", "2", "2", "1000",
			"", "3560", "3560", "2nd floor apartment", "",
			"2024", "1", "2024-01-01", "3560", "Check", "On time payment"},
		{"642-flatbush-ave", "642 Flatbush Ave", "Store", "0", "0", "",
			"", "5715", "5715", "Ground floor commercial", "",
			"2024", "1", "2024-01-01", "5715", "Cash", "On time payment"},
	}
	return renderTemplate(header, rows)
}

// RentHistoryTemplate returns a sample CSV for bulk-loading monthly
// rent records against existing properties and units.
func RentHistoryTemplate() string {
	header := []string{
		"Property Id", "Address", "Unit",
		"Year", "Month", "Rent Date", "Rent Amount", "Payment Method", "Rent Notes",
	}
	rows := [][]string{
		{"405-mother-gaston-blvd", "405 Mother Gaston Blvd", "store",
			"2024", "1", "2024-01-01", "3934", "Bank Transfer", "On time payment"},
		{"405-mother-gaston-blvd", "405 Mother Gaston Blvd", "store",
			"2024", "2", "2024-02-01", "3934", "Bank Transfer", "On time payment"},
		{"405-mother-gaston-blvd", "405 Mother Gaston Blvd", "2F",
			"2024", "1", "2024-01-01", "3560", "Check", "On time payment"},
		{"405-mother-gaston-blvd", "405 Mother Gaston Blvd", "2F",
			"2024", "2", "2024-02-01", "3560", "Check", "On time payment"},
	}
	return renderTemplate(header, rows)
}

func renderTemplate(header []string, rows [][]string) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.Write(header)
	for _, row := range rows {
		_ = w.Write(row)
	}
	w.Flush()
	return sb.String()
}
