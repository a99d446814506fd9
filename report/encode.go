package report

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/beevik/etree"
)

// element positions in written documents, everything else goes in between
// sorted by name
var positions = map[string]int{
	"author":         0,
	"title":          2,
	"subject":        3,
	"keywords":       4,
	"columncount":    5,
	"page":           10,
	"variables":      40,
	"groups":         50,
	"pagebackground": 55,
	"pageheader":     60,
	"reportbegin":    62,
	"groupheader":    65,
	"detail":         70,
	"groupfooter":    75,
	"reportend":      78,
	"pagefooter":     80,
	"pageforeground": 90,
	"objects":        99999,
	"testcursor":     999999,
}

func position(name string) int {
	if p, ok := positions[strings.ToLower(name)]; ok {
		return p
	}
	return -1
}

func compareNames(a, b string) int {
	pa, pb := position(a), position(b)
	if pa != pb {
		return pa - pb
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

const header = `
		rfxml report form. Properties hold expressions evaluated while the
		report is written, dimensions accept units ("1 in", "2.5 cm").
`

// Encode writes the form as rfxml document.
func Encode(w io.Writer, rpt *Report) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8" standalone="yes"`)
	doc.CreateComment(header)

	root := doc.CreateElement("Report")

	type part struct {
		name  string
		write func(*etree.Element)
	}
	var parts []part
	for _, name := range rpt.Props.Names() {
		expr, _ := rpt.Props.Get(name)
		parts = append(parts, part{name, func(parent *etree.Element) {
			parent.CreateElement(name).SetText(expr)
		}})
	}
	if rpt.Page != nil && rpt.Page.Props.Len() > 0 {
		parts = append(parts, part{"Page", func(parent *etree.Element) {
			encodeProps(parent.CreateElement("Page"), &rpt.Page.Props)
		}})
	}
	for kind, b := range rpt.Bands {
		parts = append(parts, part{kind.String(), func(parent *etree.Element) {
			encodeBand(parent, b)
		}})
	}
	if len(rpt.Groups) > 0 {
		parts = append(parts, part{"Groups", func(parent *etree.Element) {
			groups := parent.CreateElement("Groups")
			for _, g := range rpt.Groups {
				gel := groups.CreateElement("Group")
				encodeProps(gel, &g.Props)
				if g.Header != nil {
					encodeBand(gel, g.Header)
				}
				if g.Footer != nil {
					encodeBand(gel, g.Footer)
				}
			}
		}})
	}
	if len(rpt.Variables) > 0 {
		parts = append(parts, part{"Variables", func(parent *etree.Element) {
			vars := parent.CreateElement("Variables")
			for _, v := range rpt.Variables {
				encodeProps(vars.CreateElement("Variable"), &v.Props)
			}
		}})
	}
	if len(rpt.TestCursor) > 0 {
		parts = append(parts, part{"TestCursor", func(parent *etree.Element) {
			tc := parent.CreateElement("TestCursor")
			for _, rec := range rpt.TestCursor {
				rel := tc.CreateElement("Record")
				for _, f := range rec.Fields {
					rel.CreateAttr(f.Name, f.Expr)
				}
			}
		}})
	}
	slices.SortStableFunc(parts, func(a, b part) int { return compareNames(a.name, b.name) })
	for _, p := range parts {
		p.write(root)
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("unable to write rfxml: %w", err)
	}
	return nil
}

func encodeBand(parent *etree.Element, b *Band) {
	bel := parent.CreateElement(b.Kind.String())
	encodeProps(bel, &b.Props)
	if len(b.Objects) > 0 {
		encodeObjects(bel, b.Objects)
	}
}

func encodeObjects(parent *etree.Element, objs []*Object) {
	list := parent.CreateElement("Objects")
	for _, o := range objs {
		oel := list.CreateElement(o.Kind.String())
		encodeProps(oel, &o.Props)
		if len(o.Objects) > 0 {
			encodeObjects(oel, o.Objects)
		}
	}
}

func encodeProps(el *etree.Element, props *Props) {
	for _, name := range props.Names() {
		expr, _ := props.Get(name)
		el.CreateElement(name).SetText(expr)
	}
}
