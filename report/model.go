// Package report defines the report form model: page geometry, bands,
// drawable objects, groups and variables together with the property
// declarations every element understands. It also reads and writes the rfxml
// document format.
package report

import (
	"strconv"
	"strings"
)

// Element is anything that carries properties.
type Element interface {
	// Class is used to look up property declarations.
	Class() string
	Properties() *Props
}

// Report is the root of the form.
type Report struct {
	Props      Props
	Page       *Page
	Bands      map[BandKind]*Band
	Groups     []*Group
	Variables  []*Variable
	TestCursor []TestRecord

	// HomeDir is the directory of the form file, relative image paths are
	// resolved against it.
	HomeDir string
}

// New returns an empty form with default page.
func New() *Report {
	return &Report{
		Page:  &Page{},
		Bands: make(map[BandKind]*Band),
	}
}

func (r *Report) Class() string      { return "Report" }
func (r *Report) Properties() *Props { return &r.Props }

// Band returns report level band of requested kind or nil.
func (r *Report) Band(kind BandKind) *Band {
	return r.Bands[kind]
}

// Page describes paper and margins.
type Page struct {
	Props Props
}

func (p *Page) Class() string      { return "Page" }
func (p *Page) Properties() *Props { return &p.Props }

// Band is a horizontal strip of drawable objects.
type Band struct {
	Kind    BandKind
	Props   Props
	Objects []*Object
}

func (b *Band) Class() string      { return b.Kind.String() }
func (b *Band) Properties() *Props { return &b.Props }

// Group splits the record stream on changes of its expression.
type Group struct {
	Props  Props
	Header *Band
	Footer *Band
}

func (g *Group) Class() string      { return "Group" }
func (g *Group) Properties() *Props { return &g.Props }

// Expr returns group expression text, also used to key spanning objects.
func (g *Group) Expr() string {
	expr, _ := g.Props.Get("expr")
	return expr
}

// Band returns group header or footer.
func (g *Group) Band(kind BandKind) *Band {
	switch kind {
	case BandKindGroupHeader:
		return g.Header
	case BandKindGroupFooter:
		return g.Footer
	}
	return nil
}

// Variable is a user defined value recalculated for every record.
type Variable struct {
	Props Props
}

func (v *Variable) Class() string      { return "Variable" }
func (v *Variable) Properties() *Props { return &v.Props }

// Name is taken literally, surrounding quotes are stripped so both
// <Name>total</Name> and <Name>"total"</Name> work.
func (v *Variable) Name() string {
	name, _ := v.Props.Get("Name")
	return unquote(name)
}

// Object is a drawable object. Objects holds children of a Frameset.
type Object struct {
	Kind    ObjectKind
	Props   Props
	Objects []*Object
}

func (o *Object) Class() string      { return o.Kind.String() }
func (o *Object) Properties() *Props { return &o.Props }

// TestRecord is a row of the fixture cursor, values are expressions.
type TestRecord struct {
	Fields []Field
}

// Field is a single fixture value.
type Field struct {
	Name string
	Expr string
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		if u, err := strconv.Unquote(`"` + s[1:len(s)-1] + `"`); err == nil {
			return u
		}
		return s[1 : len(s)-1]
	}
	return s
}
