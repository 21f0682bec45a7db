package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Parse reads CSV text with a header row into a sequence of Rows.
// Both header conventions may coexist in one file; cells are kept as
// raw strings and resolved later via Field. Fully blank rows are
// skipped. Any reader error is fatal: all messages are collected and
// returned as one error, and no partial rows are returned.
func Parse(csvText string) ([]Row, error) {
	r := csv.NewReader(strings.NewReader(stripBOM(csvText)))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("CSV parsing errors: %v", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []Row
	var parseErrs []string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			parseErrs = append(parseErrs, err.Error())
			continue
		}
		if blankRecord(rec) {
			continue
		}
		fields := make(map[string]string, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(rec) {
				fields[name] = rec[i]
			}
		}
		// header is line 1, first data row is line 2
		rows = append(rows, Row{Num: len(rows) + 2, Fields: fields})
	}

	if len(parseErrs) > 0 {
		return nil, fmt.Errorf("CSV parsing errors: %s", strings.Join(parseErrs, ", "))
	}
	return rows, nil
}

func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}

func blankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
