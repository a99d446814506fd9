package datasource

import (
	"database/sql"
	"fmt"
)

// FromRows drains result set into a cursor. Rows are not closed.
func FromRows(rows *sql.Rows) (Cursor, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("unable to get columns: %w", err)
	}

	cur := Cursor{}
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("unable to scan record %d: %w", len(cur)+1, err)
		}
		rec := make(Record, len(cols))
		for i, name := range cols {
			switch v := vals[i].(type) {
			case []byte:
				// driver may reuse the buffer
				rec[name] = string(v)
			default:
				rec[name] = v
			}
		}
		cur = append(cur, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unable to read records: %w", err)
	}
	return cur, nil
}
