// Package data embeds sample CSV fixtures used to seed development
// databases and exercise the import pipeline.
package data

import (
	_ "embed"
)

//go:embed samples/properties_sample.csv
var SampleProperties string

//go:embed samples/rent_history_sample.csv
var SampleRentHistory string
