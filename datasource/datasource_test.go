package datasource

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

func TestRecordGet(t *testing.T) {
	rec := Record{"Name": "exact", "name": "lower", "Amount": 5}

	if v, ok := rec.Get("Name"); !ok || v != "exact" {
		t.Errorf("Get(Name) = %v, %v", v, ok)
	}
	if v, ok := rec.Get("AMOUNT"); !ok || v != 5 {
		t.Errorf("Get(AMOUNT) = %v, %v", v, ok)
	}
	if _, ok := rec.Get("missing"); ok {
		t.Error("Get(missing) found value")
	}
}

func TestScalar(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"42", int64(42)},
		{"-3", int64(-3)},
		{"2.50", 2.5},
		{"0.5", 0.5},
		{"007", "007"},
		{"Infinity", "Infinity"},
		{"abc", "abc"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := scalar(tt.in); got != tt.want {
			t.Errorf("scalar(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestLoadYAML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Cursor
	}{
		{
			name: "yaml",
			in:   "- customer: acme\n  amount: 10\n- customer: initech\n  amount: 2.5\n",
			want: Cursor{{"customer": "acme", "amount": 10}, {"customer": "initech", "amount": 2.5}},
		},
		{
			name: "json",
			in:   `[{"customer": "acme", "paid": true}]`,
			want: Cursor{{"customer": "acme", "paid": true}},
		},
		{
			name: "empty",
			in:   "",
			want: Cursor{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadYAML(strings.NewReader(tt.in))
			if err != nil {
				t.Fatalf("LoadYAML() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("LoadYAML() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := LoadYAML(strings.NewReader("customer: acme\n")); err == nil {
		t.Error("LoadYAML() accepted mapping instead of list")
	}
}

func TestLoadCSV(t *testing.T) {
	in := "\ufeffcustomer; amount; zip\nacme; 10; 01234\n\"in;itech\"; 2.5; 99\n"
	got, err := LoadCSV(strings.NewReader(in), ';')
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}
	want := Cursor{
		{"customer": "acme", "amount": int64(10), "zip": "01234"},
		{"customer": "in;itech", "amount": 2.5, "zip": int64(99)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadCSV() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"amount", "customer", "zip"}, got.Fields()); diff != "" {
		t.Errorf("Fields() mismatch (-want +got):\n%s", diff)
	}

	if _, err := LoadCSV(strings.NewReader("a,b\n1\n"), 0); err == nil {
		t.Error("LoadCSV() accepted short row")
	}
}

func TestFromRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT customer, amount, logo FROM invoices").
		WillReturnRows(sqlmock.NewRows([]string{"customer", "amount", "logo"}).
			AddRow("acme", 10.5, []byte("png")).
			AddRow("initech", int64(3), nil))

	rows, err := db.Query("SELECT customer, amount, logo FROM invoices")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	defer rows.Close()

	got, err := FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows() error = %v", err)
	}
	want := Cursor{
		{"customer": "acme", "amount": 10.5, "logo": "png"},
		{"customer": "initech", "amount": int64(3), "logo": nil},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromRows() mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func createDatabase(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.db")
	conn, err := sqlite.OpenConn(path)
	if err != nil {
		t.Fatalf("OpenConn() error = %v", err)
	}
	defer conn.Close()

	err = sqlitex.ExecuteScript(conn, `
CREATE TABLE invoices (customer TEXT, amount REAL, qty INTEGER, note TEXT);
INSERT INTO invoices VALUES ('acme', 10.5, 2, NULL);
INSERT INTO invoices VALUES ('initech', 3.0, 1, 'rush');
`, nil)
	if err != nil {
		t.Fatalf("ExecuteScript() error = %v", err)
	}
	return path
}

func TestLoadSQLite(t *testing.T) {
	path := createDatabase(t)

	got, err := LoadSQLite(context.Background(), path, "SELECT * FROM invoices ORDER BY customer")
	if err != nil {
		t.Fatalf("LoadSQLite() error = %v", err)
	}
	want := Cursor{
		{"customer": "acme", "amount": 10.5, "qty": int64(2), "note": nil},
		{"customer": "initech", "amount": 3.0, "qty": int64(1), "note": "rush"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadSQLite() mismatch (-want +got):\n%s", diff)
	}

	if _, err := LoadSQLite(context.Background(), path, ""); err == nil {
		t.Error("LoadSQLite() accepted empty query")
	}
	if _, err := LoadSQLite(context.Background(), path, "SELECT * FROM nothing"); err == nil {
		t.Error("LoadSQLite() accepted bad query")
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	log := zaptest.NewLogger(t)
	ctx := context.Background()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	tests := []struct {
		name string
		path string
		opts Options
		want int
	}{
		{"yaml", write("data.yaml", "- a: 1\n- a: 2\n"), Options{}, 2},
		{"json", write("data.json", `[{"a": 1}]`), Options{}, 1},
		{"csv", write("data.csv", "a,b\n1,2\n3,4\n5,6\n"), Options{}, 3},
		{"tsv", write("data.tsv", "a\tb\n1\t2\n"), Options{Separator: ','}, 1},
		{"sqlite", createDatabase(t), Options{Query: "SELECT * FROM invoices"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Open(ctx, tt.path, tt.opts, log)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("Open() returned %d records, want %d", len(got), tt.want)
			}
		})
	}

	if _, err := Open(ctx, filepath.Join(dir, "missing.yaml"), Options{}, log); err == nil {
		t.Error("Open() accepted missing file")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := Open(cancelled, tests[0].path, Options{}, log); err == nil {
		t.Error("Open() ignored cancelled context")
	}
}
