package units

import (
	"fmt"
	"strings"

	"rpw/common"
)

// Size is page size in points.
type Size struct {
	Width, Height float64
}

// portrait sizes in points
var namedSizes = map[string]Size{
	"letter":    {612, 792},
	"legal":     {612, 1008},
	"tabloid":   {792, 1224},
	"ledger":    {1224, 792},
	"executive": {522, 756},
	"a3":        {841.89, 1190.55},
	"a4":        {595.28, 841.89},
	"a5":        {419.53, 595.28},
	"a6":        {297.64, 419.53},
	"b4":        {708.66, 1000.63},
	"b5":        {498.9, 708.66},
}

// PageSize resolves page size value: either one of the known paper names,
// "<w>,<h>" string with optional units or a two element list. Orientation
// swaps sides when necessary so landscape pages are always wider than tall.
func PageSize(v any, orient common.PageOrientation) (Size, error) {
	var sz Size
	switch x := v.(type) {
	case string:
		if named, ok := namedSizes[strings.ToLower(strings.TrimSpace(x))]; ok {
			sz = named
			break
		}
		parts := strings.Split(strings.Trim(x, "()[] "), ",")
		if len(parts) != 2 {
			return sz, fmt.Errorf("unknown page size %q", x)
		}
		var err error
		if sz.Width, err = ToPoints(parts[0]); err != nil {
			return sz, fmt.Errorf("bad page width: %w", err)
		}
		if sz.Height, err = ToPoints(parts[1]); err != nil {
			return sz, fmt.Errorf("bad page height: %w", err)
		}
	case []any:
		if len(x) != 2 {
			return sz, fmt.Errorf("page size must have 2 elements, got %d", len(x))
		}
		var err error
		if sz.Width, err = ToPoints(x[0]); err != nil {
			return sz, fmt.Errorf("bad page width: %w", err)
		}
		if sz.Height, err = ToPoints(x[1]); err != nil {
			return sz, fmt.Errorf("bad page height: %w", err)
		}
	default:
		return sz, fmt.Errorf("unsupported page size value %v (%T)", v, v)
	}
	if sz.Width <= 0 || sz.Height <= 0 {
		return sz, fmt.Errorf("page size must be positive: %vx%v", sz.Width, sz.Height)
	}
	landscape := sz.Width > sz.Height
	if landscape != (orient == common.PageOrientationLandscape) {
		sz.Width, sz.Height = sz.Height, sz.Width
	}
	return sz, nil
}
