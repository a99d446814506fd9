package datasource

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// LoadYAML reads a sequence of mappings. JSON is accepted as well, being a
// subset of YAML.
func LoadYAML(r io.Reader) (Cursor, error) {
	var rows []map[string]any
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&rows); err != nil {
		if errors.Is(err, io.EOF) {
			return Cursor{}, nil
		}
		return nil, fmt.Errorf("unable to decode records: %w", err)
	}
	cur := make(Cursor, 0, len(rows))
	for i, row := range rows {
		if row == nil {
			return nil, fmt.Errorf("record %d is not a mapping", i)
		}
		cur = append(cur, Record(row))
	}
	return cur, nil
}
