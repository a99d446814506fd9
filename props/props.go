// Package props evaluates property expressions of report elements against the
// state of a running render.
package props

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/builtin"
	"github.com/expr-lang/expr/vm"
	"go.uber.org/zap"

	"rpw/report"
)

// Context is visible to expressions. It is owned by a single render and
// updated by the engine as records and pages advance.
type Context struct {
	Record    map[string]any
	Variables map[string]any
	// Bands keeps geometry of bands printed on the current page keyed by
	// band name: x, y, Width, Height, TotalHeight.
	Bands        map[string]map[string]any
	PageNumber   int
	RecordNumber int
}

// NewContext returns empty context.
func NewContext() *Context {
	return &Context{
		Record:    map[string]any{},
		Variables: map[string]any{},
		Bands:     map[string]map[string]any{},
	}
}

// env builds evaluation environment. Record fields and variables are
// reachable directly by name as well, variables win on collision.
func (c *Context) env() map[string]any {
	env := make(map[string]any, len(c.Record)+len(c.Variables)+10)
	for k, v := range c.Record {
		env[k] = v
	}
	for k, v := range c.Variables {
		env[k] = v
	}
	env["Record"] = c.Record
	env["Variables"] = c.Variables
	env["Bands"] = c.Bands
	env["PageNumber"] = c.PageNumber
	env["RecordNumber"] = c.RecordNumber
	env["None"] = nil
	env["True"] = true
	env["False"] = false
	env["self"] = env
	return env
}

// UnknownPropertyError is returned when element class does not declare the
// property.
type UnknownPropertyError struct {
	Class string
	Prop  string
}

func (e *UnknownPropertyError) Error() string {
	return fmt.Sprintf("%s: property %q unrecognized", e.Class, e.Prop)
}

func (e *UnknownPropertyError) Is(target error) bool {
	return target == report.ErrUnknownProperty
}

// Resolver evaluates element properties. Compiled expressions are cached.
type Resolver struct {
	ctx      *Context
	log      *zap.Logger
	programs map[string]*vm.Program
	broken   map[string]error
}

// NewResolver creates resolver working against ctx.
func NewResolver(ctx *Context, log *zap.Logger) *Resolver {
	return &Resolver{
		ctx:      ctx,
		log:      log,
		programs: make(map[string]*vm.Program),
		broken:   make(map[string]error),
	}
}

// Context returns context expressions are evaluated against.
func (r *Resolver) Context() *Context {
	return r.ctx
}

// functions are added to every program unless data shadows them.
var functions = map[string]expr.Option{
	"str": expr.Function("str", func(params ...any) (any, error) {
		return Stringify(params[0]), nil
	}, new(func(any) string)),
	"format": expr.Function("format", func(params ...any) (any, error) {
		layout, ok := params[0].(string)
		if !ok {
			return nil, fmt.Errorf("format: layout must be a string, got %T", params[0])
		}
		return fmt.Sprintf(layout, params[1:]...), nil
	}),
}

// shadowed lists names from env which would otherwise resolve to a builtin
// or one of our functions. Record fields and variables take precedence.
func shadowed(env map[string]any) []string {
	var names []string
	for name := range env {
		_, isBuiltin := builtin.Index[name]
		_, isFunc := functions[name]
		if isBuiltin || isFunc {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// compile caches programs per expression and set of shadowed names, the same
// text compiles differently when data hides a builtin.
func (r *Resolver) compile(code string, hidden []string) (*vm.Program, error) {
	key := code
	if len(hidden) > 0 {
		key = strings.Join(hidden, ",") + "\x00" + code
	}
	if prog, ok := r.programs[key]; ok {
		return prog, nil
	}
	if err, ok := r.broken[key]; ok {
		return nil, err
	}

	opts := []expr.Option{expr.AllowUndefinedVariables()}
	for name, fn := range functions {
		if !slices.Contains(hidden, name) {
			opts = append(opts, fn)
		}
	}
	for _, name := range hidden {
		if _, ok := builtin.Index[name]; ok {
			opts = append(opts, expr.DisableBuiltin(name))
		}
	}

	prog, err := expr.Compile(code, opts...)
	if err != nil {
		r.broken[key] = err
		return nil, err
	}
	r.programs[key] = prog
	return prog, nil
}

// Eval evaluates expression text.
func (r *Resolver) Eval(code string) (any, error) {
	env := r.ctx.env()
	prog, err := r.compile(code, shadowed(env))
	if err != nil {
		return nil, err
	}
	return expr.Run(prog, env)
}

func declared(el report.Element, prop string) (report.Decl, error) {
	d, ok := report.Lookup(el.Class(), prop)
	if !ok {
		return d, &UnknownPropertyError{Class: el.Class(), Prop: prop}
	}
	return d, nil
}

// Get returns value of the property. Absent property yields declared
// default, so does failed evaluation. Only undeclared properties are errors.
func (r *Resolver) Get(el report.Element, prop string) (any, error) {
	d, err := declared(el, prop)
	if err != nil {
		return nil, err
	}
	code, ok := el.Properties().Get(prop)
	if !ok || strings.TrimSpace(code) == "" {
		return d.Default, nil
	}
	v, err := r.Eval(code)
	if err != nil {
		r.log.Debug("Expression failed, using default",
			zap.String("class", el.Class()), zap.String("property", d.Name),
			zap.String("expr", code), zap.Error(err))
		return d.Default, nil
	}
	return v, nil
}

// Try is like Get but returns evaluation error instead of the default, so
// callers can tell false from failed.
func (r *Resolver) Try(el report.Element, prop string) (any, error) {
	d, err := declared(el, prop)
	if err != nil {
		return nil, err
	}
	code, ok := el.Properties().Get(prop)
	if !ok || strings.TrimSpace(code) == "" {
		return d.Default, nil
	}
	v, err := r.Eval(code)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", el.Class(), d.Name, err)
	}
	return v, nil
}

// Value is Get for properties the caller knows are declared.
func (r *Resolver) Value(el report.Element, prop string) any {
	v, err := r.Get(el, prop)
	if err != nil {
		panic(err)
	}
	return v
}

// ExplicitlyFalse reports whether the property evaluated without error to
// false. Failed expressions are not false, so a broken Show does not hide
// anything.
func (r *Resolver) ExplicitlyFalse(el report.Element, prop string) bool {
	v, err := r.Try(el, prop)
	if err != nil {
		var unknown *UnknownPropertyError
		if errors.As(err, &unknown) {
			panic(err)
		}
		r.log.Debug("Expression failed", zap.Error(err))
		return false
	}
	switch b := v.(type) {
	case bool:
		return !b
	case nil:
		return false
	}
	if f, ok := toFloat(v); ok {
		return f == 0
	}
	return false
}
