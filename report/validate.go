package report

import (
	"fmt"
	"slices"
)

// Validate checks forms assembled in code the same way Decode checks parsed
// ones: every property must be declared for its element class.
func Validate(rpt *Report) error {
	if err := validateProps(rpt, "Report"); err != nil {
		return err
	}
	if rpt.Page != nil {
		if err := validateProps(rpt.Page, "Page"); err != nil {
			return err
		}
	}
	kinds := make([]BandKind, 0, len(rpt.Bands))
	for kind := range rpt.Bands {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	for _, kind := range kinds {
		if err := validateBand(rpt.Bands[kind], kind.String()); err != nil {
			return err
		}
	}
	for i, g := range rpt.Groups {
		where := fmt.Sprintf("Groups[%d]", i)
		if err := validateProps(g, where); err != nil {
			return err
		}
		for _, b := range []*Band{g.Header, g.Footer} {
			if b == nil {
				continue
			}
			if err := validateBand(b, fmt.Sprintf("%s/%s", where, b.Kind)); err != nil {
				return err
			}
		}
	}
	for i, v := range rpt.Variables {
		where := fmt.Sprintf("Variables[%d]", i)
		if err := validateProps(v, where); err != nil {
			return err
		}
		if v.Name() == "" {
			return &ConfigError{Where: where, Prop: "Name", Err: fmt.Errorf("variable must have a name")}
		}
	}
	return nil
}

func validateBand(b *Band, where string) error {
	if b == nil {
		return nil
	}
	if err := validateProps(b, where); err != nil {
		return err
	}
	return validateObjects(b.Objects, where)
}

func validateObjects(objs []*Object, parent string) error {
	for i, obj := range objs {
		where := fmt.Sprintf("%s/Objects[%d](%s)", parent, i, obj.Kind)
		if err := validateProps(obj, where); err != nil {
			return err
		}
		if len(obj.Objects) > 0 && obj.Kind != ObjectKindFrameset {
			return &ConfigError{Where: where, Err: fmt.Errorf("only Frameset may contain objects")}
		}
		if err := validateObjects(obj.Objects, where); err != nil {
			return err
		}
	}
	return nil
}

func validateProps(el Element, where string) error {
	for _, name := range el.Properties().Names() {
		if _, ok := Lookup(el.Class(), name); !ok {
			return &ConfigError{Where: where, Prop: name, Err: ErrUnknownProperty}
		}
	}
	return nil
}
