// Package units converts dimension expressions to points (1/72 inch), the
// only unit the layout engine works with.
package units

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Points per unit.
const (
	Point = 1.0
	Inch  = 72.0
	Cm    = Inch / 2.54
	Mm    = Cm / 10
	Pica  = 12.0
	Pixel = 0.75
)

var perUnit = map[string]float64{
	"":       Point,
	"pt":     Point,
	"point":  Point,
	"points": Point,
	"in":     Inch,
	"inch":   Inch,
	"inches": Inch,
	"cm":     Cm,
	"mm":     Mm,
	"pica":   Pica,
	"picas":  Pica,
	"pc":     Pica,
	"px":     Pixel,
}

var dimRe = regexp.MustCompile(`^\s*([-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?)\s*([a-zA-Z]*)\s*$`)

// ErrNotDimension is returned for values that cannot be interpreted as a
// dimension.
var ErrNotDimension = errors.New("not a dimension")

// ToPoints converts numeric value or "<number> <unit>" string to points.
// Numbers are already points. Unknown units are treated as points.
func ToPoints(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case uint:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case string:
		return parse(x)
	case []byte:
		return parse(string(x))
	case nil:
		return 0, fmt.Errorf("empty value is %w", ErrNotDimension)
	}
	return 0, fmt.Errorf("%v (%T) is %w", v, v, ErrNotDimension)
}

func parse(s string) (float64, error) {
	m := dimRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%q is %w", s, ErrNotDimension)
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%q is %w: %w", s, ErrNotDimension, err)
	}
	k, ok := perUnit[strings.ToLower(m[2])]
	if !ok {
		k = Point
	}
	return n * k, nil
}

// FromPoints converts points to the requested unit.
func FromPoints(p float64, unit string) (float64, error) {
	k, ok := perUnit[strings.ToLower(strings.TrimSpace(unit))]
	if !ok {
		return 0, fmt.Errorf("unknown unit %q", unit)
	}
	return p / k, nil
}

// Units returns names of all recognized units, used by tests and help text.
func Units() []string {
	names := make([]string, 0, len(perUnit))
	for n := range perUnit {
		if n != "" {
			names = append(names, n)
		}
	}
	return names
}
