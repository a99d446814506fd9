package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// Decode reads rfxml form.
func Decode(r io.Reader) (*Report, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	doc.ReadSettings.Permissive = true
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to parse rfxml: %w", err)
	}
	root := doc.Root()
	if root == nil || !strings.EqualFold(root.Tag, "Report") {
		return nil, &ConfigError{Err: fmt.Errorf("root element must be Report")}
	}

	rpt := New()
	if err := decodeReport(root, rpt); err != nil {
		return nil, err
	}
	return rpt, nil
}

// DecodeFile reads rfxml form from file and remembers its directory for
// resolving relative resources.
func DecodeFile(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rpt, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if abs, err := filepath.Abs(path); err == nil {
		rpt.HomeDir = filepath.Dir(abs)
	} else {
		rpt.HomeDir = filepath.Dir(path)
	}
	return rpt, nil
}

func decodeReport(root *etree.Element, rpt *Report) error {
	for _, el := range root.ChildElements() {
		switch strings.ToLower(el.Tag) {
		case "page":
			if err := decodeProps(el, rpt.Page, "Page"); err != nil {
				return err
			}
		case "groups":
			for i, gel := range el.ChildElements() {
				where := fmt.Sprintf("Groups[%d]", i)
				if !strings.EqualFold(gel.Tag, "Group") {
					return &ConfigError{Where: where, Err: fmt.Errorf("unexpected element %q", gel.Tag)}
				}
				g, err := decodeGroup(gel, where)
				if err != nil {
					return err
				}
				rpt.Groups = append(rpt.Groups, g)
			}
		case "variables":
			for i, vel := range el.ChildElements() {
				where := fmt.Sprintf("Variables[%d]", i)
				if !strings.EqualFold(vel.Tag, "Variable") {
					return &ConfigError{Where: where, Err: fmt.Errorf("unexpected element %q", vel.Tag)}
				}
				v := &Variable{}
				if err := decodeProps(vel, v, where); err != nil {
					return err
				}
				if v.Name() == "" {
					return &ConfigError{Where: where, Prop: "Name", Err: fmt.Errorf("variable must have a name")}
				}
				rpt.Variables = append(rpt.Variables, v)
			}
		case "testcursor":
			for _, rel := range el.ChildElements() {
				var rec TestRecord
				for _, a := range rel.Attr {
					rec.Fields = append(rec.Fields, Field{Name: a.Key, Expr: a.Value})
				}
				rpt.TestCursor = append(rpt.TestCursor, rec)
			}
		default:
			if kind, err := ParseBandKind(el.Tag); err == nil {
				if kind == BandKindGroupHeader || kind == BandKindGroupFooter {
					return &ConfigError{Where: el.Tag, Err: fmt.Errorf("group bands must be defined inside a Group")}
				}
				b, err := decodeBand(el, kind, kind.String())
				if err != nil {
					return err
				}
				rpt.Bands[kind] = b
				continue
			}
			if len(el.ChildElements()) > 0 {
				return &ConfigError{Where: "Report", Err: fmt.Errorf("unexpected element %q", el.Tag)}
			}
			if err := setProp(rpt, "Report", el); err != nil {
				return err
			}
		}
	}
	return nil
}

func decodeGroup(el *etree.Element, where string) (*Group, error) {
	g := &Group{}
	for _, child := range el.ChildElements() {
		if kind, err := ParseBandKind(child.Tag); err == nil {
			b, err := decodeBand(child, kind, where+"/"+kind.String())
			if err != nil {
				return nil, err
			}
			switch kind {
			case BandKindGroupHeader:
				g.Header = b
			case BandKindGroupFooter:
				g.Footer = b
			default:
				return nil, &ConfigError{Where: where, Err: fmt.Errorf("band %s is not allowed inside a Group", kind)}
			}
			continue
		}
		if err := setProp(g, where, child); err != nil {
			return nil, err
		}
	}
	if g.Expr() == "" {
		return nil, &ConfigError{Where: where, Prop: "expr", Err: fmt.Errorf("group must have an expression")}
	}
	return g, nil
}

func decodeBand(el *etree.Element, kind BandKind, where string) (*Band, error) {
	b := &Band{Kind: kind}
	for _, child := range el.ChildElements() {
		if strings.EqualFold(child.Tag, "Objects") {
			objs, err := decodeObjects(child, where)
			if err != nil {
				return nil, err
			}
			b.Objects = append(b.Objects, objs...)
			continue
		}
		if err := setProp(b, where, child); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func decodeObjects(el *etree.Element, parent string) ([]*Object, error) {
	var objs []*Object
	for i, oel := range el.ChildElements() {
		kind, err := parseObjectKind(oel.Tag)
		where := fmt.Sprintf("%s/Objects[%d]", parent, i)
		if err != nil {
			return nil, &ConfigError{Where: where, Err: err}
		}
		where = fmt.Sprintf("%s(%s)", where, kind)
		obj := &Object{Kind: kind}
		for _, child := range oel.ChildElements() {
			if strings.EqualFold(child.Tag, "Objects") {
				if kind != ObjectKindFrameset {
					return nil, &ConfigError{Where: where, Err: fmt.Errorf("only Frameset may contain objects")}
				}
				children, err := decodeObjects(child, where)
				if err != nil {
					return nil, err
				}
				obj.Objects = append(obj.Objects, children...)
				continue
			}
			if err := setProp(obj, where, child); err != nil {
				return nil, err
			}
		}
		objs = append(objs, obj)
	}
	return objs, nil
}

func parseObjectKind(tag string) (ObjectKind, error) {
	if strings.EqualFold(tag, "Rect") {
		return ObjectKindRectangle, nil
	}
	return ParseObjectKind(tag)
}

func decodeProps(el *etree.Element, target Element, where string) error {
	for _, child := range el.ChildElements() {
		if err := setProp(target, where, child); err != nil {
			return err
		}
	}
	return nil
}

func setProp(target Element, where string, el *etree.Element) error {
	if len(el.ChildElements()) > 0 {
		return &ConfigError{Where: where, Err: fmt.Errorf("unexpected element %q", el.Tag)}
	}
	d, ok := Lookup(target.Class(), el.Tag)
	if !ok {
		return &ConfigError{Where: where, Prop: el.Tag, Err: ErrUnknownProperty}
	}
	target.Properties().Set(d.Name, strings.TrimSpace(el.Text()))
	return nil
}
