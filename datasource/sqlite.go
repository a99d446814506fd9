package datasource

import (
	"context"
	"errors"
	"fmt"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// LoadSQLite runs query against database file opened read only.
func LoadSQLite(ctx context.Context, path, query string) (Cursor, error) {
	if query == "" {
		return nil, errors.New("no query to run against SQLite database")
	}

	conn, err := sqlite.OpenConn(path, sqlite.OpenReadOnly)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}
	defer conn.Close()
	conn.SetInterrupt(ctx.Done())

	cur := Cursor{}
	err = sqlitex.ExecuteTransient(conn, query, &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			rec := make(Record, stmt.ColumnCount())
			for i := range stmt.ColumnCount() {
				rec[stmt.ColumnName(i)] = column(stmt, i)
			}
			cur = append(cur, rec)
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("unable to run query: %w", err)
	}
	return cur, nil
}

func column(stmt *sqlite.Stmt, i int) any {
	switch stmt.ColumnType(i) {
	case sqlite.TypeInteger:
		return stmt.ColumnInt64(i)
	case sqlite.TypeFloat:
		return stmt.ColumnFloat(i)
	case sqlite.TypeText:
		return stmt.ColumnText(i)
	case sqlite.TypeBlob:
		buf := make([]byte, stmt.ColumnLen(i))
		stmt.ColumnBytes(i, buf)
		return buf
	}
	return nil
}
