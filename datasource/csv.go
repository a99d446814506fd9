package datasource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// LoadCSV reads records from delimited text, first row names the fields.
// Values looking like numbers become numbers.
func LoadCSV(r io.Reader, sep rune) (Cursor, error) {
	cr := csv.NewReader(r)
	if sep != 0 {
		cr.Comma = sep
	}
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Cursor{}, nil
		}
		return nil, fmt.Errorf("unable to read header: %w", err)
	}
	for i, name := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
	}

	cur := Cursor{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unable to read record %d: %w", len(cur)+1, err)
		}
		rec := make(Record, len(header))
		for i, name := range header {
			rec[name] = scalar(row[i])
		}
		cur = append(cur, rec)
	}
	return cur, nil
}
