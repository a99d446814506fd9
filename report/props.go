package report

import (
	"slices"
	"strings"
)

// Props keeps property expressions of a single element. Names are matched
// case-insensitively, original spelling and order of appearance are kept for
// encoding.
type Props struct {
	names []string
	exprs map[string]string
}

// Set stores expression for the named property, replacing previous one.
func (p *Props) Set(name, expr string) {
	key := strings.ToLower(name)
	if p.exprs == nil {
		p.exprs = make(map[string]string)
	}
	if _, ok := p.exprs[key]; !ok {
		p.names = append(p.names, name)
	}
	p.exprs[key] = expr
}

// Get returns stored expression text.
func (p *Props) Get(name string) (string, bool) {
	if p == nil || p.exprs == nil {
		return "", false
	}
	expr, ok := p.exprs[strings.ToLower(name)]
	return expr, ok
}

// Has reports whether property was explicitly set.
func (p *Props) Has(name string) bool {
	_, ok := p.Get(name)
	return ok
}

// Delete removes property, so its declared default applies again.
func (p *Props) Delete(name string) {
	key := strings.ToLower(name)
	if _, ok := p.exprs[key]; !ok {
		return
	}
	delete(p.exprs, key)
	p.names = slices.DeleteFunc(p.names, func(n string) bool {
		return strings.EqualFold(n, name)
	})
}

// Names returns property names in order of appearance.
func (p *Props) Names() []string {
	if p == nil {
		return nil
	}
	return slices.Clone(p.names)
}

// Len returns number of explicitly set properties.
func (p *Props) Len() int {
	if p == nil {
		return 0
	}
	return len(p.names)
}
