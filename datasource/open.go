package datasource

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"go.uber.org/zap"
)

// Options controls how data files are read.
type Options struct {
	// Query is required for SQLite databases.
	Query string
	// Separator of CSV fields, comma when zero. Files with .tsv extension
	// always use tab.
	Separator rune
}

// Open loads records from file choosing the reader by content and extension:
// SQLite databases are detected by signature, .csv and .tsv files are read as
// delimited text, anything else as YAML or JSON.
func Open(ctx context.Context, path string, opts Options, log *zap.Logger) (Cursor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open data file: %w", err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("unable to read data file: %w", err)
	}
	head = head[:n]
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("unable to rewind data file: %w", err)
	}

	var (
		cur  Cursor
		kind string
	)
	switch ext := strings.ToLower(filepath.Ext(path)); {
	case filetype.Is(head, "sqlite"):
		kind = "sqlite"
		cur, err = LoadSQLite(ctx, path, opts.Query)
	case ext == ".csv":
		kind = "csv"
		cur, err = LoadCSV(f, opts.Separator)
	case ext == ".tsv":
		kind = "csv"
		cur, err = LoadCSV(f, '\t')
	default:
		kind = "yaml"
		cur, err = LoadYAML(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	log.Debug("Data loaded", zap.String("file", path), zap.String("type", kind), zap.Int("records", len(cur)))
	return cur, nil
}
