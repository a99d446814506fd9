package engine

import (
	"reflect"

	"go.uber.org/zap"

	"rpw/props"
	"rpw/report"
)

type groupState struct {
	group *report.Group
	cur   any
	// valid is false before the first record of a group was seen
	valid bool
}

type variableState struct {
	variable *report.Variable
	name     string
	reset    any
}

// tracker remembers group values and variable reset triggers between
// records.
type tracker struct {
	res       *props.Resolver
	log       *zap.Logger
	groups    []*groupState
	variables []*variableState
}

func newTracker(rpt *report.Report, res *props.Resolver, log *zap.Logger) *tracker {
	t := &tracker{res: res, log: log}
	for _, g := range rpt.Groups {
		t.groups = append(t.groups, &groupState{group: g})
	}
	vars := res.Context().Variables
	for _, v := range rpt.Variables {
		name := v.Name()
		t.variables = append(t.variables, &variableState{variable: v, name: name})
		vars[name] = res.Value(v, "InitialValue")
	}
	return t
}

// DetectChanges compares groups outer to inner against the current record.
// First changed group and every group nested in it are marked and forget
// their value, so headers are due for them.
func (t *tracker) DetectChanges() []bool {
	changed := make([]bool, len(t.groups))
	cascade := false
	for i, g := range t.groups {
		if cascade || !g.valid || !same(g.cur, t.res.Value(g.group, "expr")) {
			cascade = true
			changed[i] = true
			g.cur, g.valid = nil, false
		}
	}
	return changed
}

// Pending reports whether group i waits for its header.
func (t *tracker) Pending(i int) bool {
	return !t.groups[i].valid
}

// Enter remembers value of group i for the current record.
func (t *tracker) Enter(i int) {
	g := t.groups[i]
	g.cur, g.valid = t.res.Value(g.group, "expr"), true
}

// Refresh recalculates variables for the current record. Variable is reset
// to its initial value first when its ResetAt value changed. With forceReset
// the new trigger value is not remembered, so the next refresh compares
// against the old one again.
func (t *tracker) Refresh(forceReset bool) {
	vars := t.res.Context().Variables
	for _, v := range t.variables {
		reset := t.res.Value(v.variable, "ResetAt")
		if !same(reset, v.reset) {
			vars[v.name] = t.res.Value(v.variable, "InitialValue")
		}
		if !forceReset {
			v.reset = reset
		}
		val, err := t.res.Try(v.variable, "expr")
		if err != nil {
			t.log.Debug("Variable keeps previous value", zap.String("variable", v.name), zap.Error(err))
			continue
		}
		vars[v.name] = val
	}
}

// same compares expression results, numbers are compared by value
// regardless of their type.
func same(a, b any) bool {
	if fa, ok := number(a); ok {
		fb, ok := number(b)
		return ok && fa == fb
	}
	return reflect.DeepEqual(a, b)
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
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
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
