package sheets

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseCSV splits a CSV export into rows. Quoted fields may contain commas,
// newlines and doubled quotes. A stray quote inside an unquoted field is kept
// as a literal character. Rows may have differing lengths. An empty document
// yields no rows.
func ParseCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return [][]string{}, nil
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.ReuseRecord = false

	rows := make([][]string, 0, 64)
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// dropHeader removes the first row. A header-only or empty document yields
// an empty, non-nil slice.
func dropHeader(rows [][]string) [][]string {
	if len(rows) <= 1 {
		return [][]string{}
	}
	return rows[1:]
}
