package props

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"rpw/report"
	"rpw/surface"
	"rpw/units"
)

// Typed accessors below panic on undeclared properties: asking for a
// property element does not have is a programming error, forms with unknown
// properties are rejected when loaded.

func (r *Resolver) fallback(el report.Element, prop string, v any, why error) any {
	d, _ := report.Lookup(el.Class(), prop)
	if v != nil {
		r.log.Debug("Unexpected property value, using default",
			zap.String("class", el.Class()), zap.String("property", d.Name),
			zap.Any("value", v), zap.Error(why))
	}
	return d.Default
}

// Float returns numeric property.
func (r *Resolver) Float(el report.Element, prop string) float64 {
	v := r.Value(el, prop)
	if f, ok := toFloat(v); ok {
		return f
	}
	f, _ := toFloat(r.fallback(el, prop, v, fmt.Errorf("not a number")))
	return f
}

// Int returns numeric property truncated to integer.
func (r *Resolver) Int(el report.Element, prop string) int {
	return int(r.Float(el, prop))
}

// Points returns dimension converted to points.
func (r *Resolver) Points(el report.Element, prop string) float64 {
	v := r.Value(el, prop)
	p, err := units.ToPoints(v)
	if err == nil {
		return p
	}
	p, _ = units.ToPoints(r.fallback(el, prop, v, err))
	return p
}

// Dimension returns size in points, ok is false when the value is None,
// which means size is derived from content.
func (r *Resolver) Dimension(el report.Element, prop string) (points float64, ok bool) {
	v := r.Value(el, prop)
	if v == nil {
		return 0, false
	}
	p, err := units.ToPoints(v)
	if err != nil {
		v = r.fallback(el, prop, v, err)
		if v == nil {
			return 0, false
		}
		p, _ = units.ToPoints(v)
	}
	return p, true
}

// Bool returns truth value of the property.
func (r *Resolver) Bool(el report.Element, prop string) bool {
	return Truthy(r.Value(el, prop))
}

// String returns property as text, None becomes empty string.
func (r *Resolver) String(el report.Element, prop string) string {
	return Stringify(r.Value(el, prop))
}

// Text is String for printed content: failed expression prints the error
// instead of silently falling back.
func (r *Resolver) Text(el report.Element, prop string) string {
	v, err := r.Try(el, prop)
	if err != nil {
		var unknown *UnknownPropertyError
		if errors.As(err, &unknown) {
			panic(err)
		}
		r.log.Debug("Expression failed", zap.Error(err))
		return err.Error()
	}
	return Stringify(v)
}

// Color returns color property, ok is false for None meaning transparent.
func (r *Resolver) Color(el report.Element, prop string) (c surface.Color, ok bool) {
	v := r.Value(el, prop)
	if v == nil {
		return c, false
	}
	c, err := ParseColor(v)
	if err == nil {
		return c, true
	}
	if v = r.fallback(el, prop, v, err); v == nil {
		return c, false
	}
	c, err = ParseColor(v)
	return c, err == nil
}

// Floats returns list of numbers, single number becomes one element list.
func (r *Resolver) Floats(el report.Element, prop string) []float64 {
	v := r.Value(el, prop)
	if v == nil {
		return nil
	}
	if f, ok := toFloat(v); ok {
		return []float64{f}
	}
	list, ok := toList(v)
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(list))
	for _, item := range list {
		f, ok := toFloat(item)
		if !ok {
			r.fallback(el, prop, item, fmt.Errorf("not a number"))
			continue
		}
		out = append(out, f)
	}
	return out
}

// Strings returns list of strings, scalar becomes one element list.
func (r *Resolver) Strings(el report.Element, prop string) []string {
	v := r.Value(el, prop)
	if v == nil {
		return nil
	}
	list, ok := toList(v)
	if !ok {
		return []string{Stringify(v)}
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, Stringify(item))
	}
	return out
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	case []byte:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(n)), 64)
		return f, err == nil
	}
	return 0, false
}

func toList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case string, []byte:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// Truthy converts value to boolean: nil, false, zero numbers, empty strings
// and empty collections are false.
func Truthy(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case string:
		return b != ""
	}
	if f, ok := toFloat(v); ok {
		return f != 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	}
	return true
}

// Stringify formats value for printing. Whole floats print without
// fraction.
func Stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	case float64:
		return formatFloat(s)
	case float32:
		return formatFloat(float64(s))
	case fmt.Stringer:
		return s.String()
	}
	return fmt.Sprint(v)
}

func formatFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
