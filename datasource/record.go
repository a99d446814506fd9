// Package datasource provides record cursors reports are rendered over.
package datasource

import (
	"strconv"
	"strings"
)

// Record is a single data row. Expressions see fields by their exact names,
// Get matches names case-insensitively.
type Record map[string]any

// Get returns field value, exact match wins over case-insensitive one.
func (r Record) Get(name string) (any, bool) {
	if v, ok := r[name]; ok {
		return v, true
	}
	for k, v := range r {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}

// Cursor is an ordered sequence of records.
type Cursor []Record

// Fields returns field names of the first record in stable order.
func (c Cursor) Fields() []string {
	if len(c) == 0 {
		return nil
	}
	names := make([]string, 0, len(c[0]))
	for k := range c[0] {
		names = append(names, k)
	}
	sortNames(names)
	return names
}

// scalar turns text read from untyped sources into a number when it looks
// like one. Numbers with leading zeroes stay text, they are usually codes.
func scalar(s string) any {
	t := strings.TrimSpace(s)
	if t == "" {
		return s
	}
	if !strings.ContainsRune("+-.0123456789", rune(t[0])) {
		return s
	}
	if len(t) > 1 && t[0] == '0' && t[1] != '.' {
		return s
	}
	if i, err := strconv.ParseInt(t, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil {
		return f
	}
	return s
}
