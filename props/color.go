package props

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"rpw/surface"
)

// ParseColor accepts RGB triple with components either all in 0..1 or in
// 0..255 range, "#rrggbb", "#rgb" or a CSS color name.
func ParseColor(v any) (surface.Color, error) {
	if s, ok := v.(string); ok {
		return parseColorString(s)
	}
	list, ok := toList(v)
	if !ok || len(list) < 3 {
		return surface.Color{}, fmt.Errorf("%v is not a color", v)
	}
	var rgb [3]float64
	scale := 1.0
	for i := range rgb {
		f, ok := toFloat(list[i])
		if !ok || f < 0 {
			return surface.Color{}, fmt.Errorf("%v is not a color component", list[i])
		}
		rgb[i] = f
		if f > 1 {
			scale = 255
		}
	}
	return surface.Color{
		R: min(rgb[0]/scale, 1),
		G: min(rgb[1]/scale, 1),
		B: min(rgb[2]/scale, 1),
	}, nil
}

func parseColorString(s string) (surface.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return surface.Color{}, fmt.Errorf("%q is not a color", s)
		}
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return surface.Color{}, fmt.Errorf("%q is not a color: %w", s, err)
		}
		return surface.Color{
			R: float64(n>>16&0xff) / 255,
			G: float64(n>>8&0xff) / 255,
			B: float64(n&0xff) / 255,
		}, nil
	}
	c, ok := colornames.Map[s]
	if !ok {
		return surface.Color{}, fmt.Errorf("unknown color name %q", s)
	}
	return surface.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}, nil
}
