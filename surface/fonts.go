package surface

import "strings"

type coreFont struct {
	family string
	style  string
}

// standard PDF fonts every viewer provides
var coreFonts = map[string]coreFont{
	"helvetica":             {"Helvetica", ""},
	"helvetica-bold":        {"Helvetica", "B"},
	"helvetica-oblique":     {"Helvetica", "I"},
	"helvetica-boldoblique": {"Helvetica", "BI"},
	"times-roman":           {"Times", ""},
	"times":                 {"Times", ""},
	"times-bold":            {"Times", "B"},
	"times-italic":          {"Times", "I"},
	"times-bolditalic":      {"Times", "BI"},
	"courier":               {"Courier", ""},
	"courier-bold":          {"Courier", "B"},
	"courier-oblique":       {"Courier", "I"},
	"courier-boldoblique":   {"Courier", "BI"},
	"symbol":                {"Symbol", ""},
	"zapfdingbats":          {"ZapfDingbats", ""},
}

// CoreFont maps PostScript name of a standard font to family and style
// letters (B, I or BI).
func CoreFont(name string) (family, style string, ok bool) {
	f, ok := coreFonts[strings.ToLower(strings.TrimSpace(name))]
	return f.family, f.style, ok
}
