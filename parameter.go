package invoke

import (
	"fmt"
	"reflect"
	"strings"
)

// Parameter describes one formal parameter of a callable. Parameters are
// immutable once created and are safe to share between ParameterSets.
type Parameter struct {
	name     string
	typ      Type
	nullable bool

	hasDefault   bool
	defaultValue interface{}

	asObject bool

	// goType is the Go type the invocation mechanics assign the value to.
	// It is nil for parameters built with NewParameter.
	goType reflect.Type
}

// ParamOpt configures a Parameter as it is created.
type ParamOpt func(*Parameter)

// Default makes the parameter optional, substituting v when no value is
// supplied.
func Default(v interface{}) ParamOpt {
	return func(p *Parameter) {
		p.hasDefault = true
		p.defaultValue = v
	}
}

// Optional makes the parameter optional with the zero value of its Go type
// as the default.
func Optional() ParamOpt {
	return func(p *Parameter) {
		p.hasDefault = true
		p.defaultValue = nil
		if p.goType != nil {
			p.defaultValue = reflect.Zero(p.goType).Interface()
		}
	}
}

// Nullable sets whether nil satisfies the parameter.
func Nullable(v bool) ParamOpt {
	return func(p *Parameter) {
		p.nullable = v
	}
}

// AsObject narrows an untyped parameter to the generic object kind, so it
// only accepts object-shaped values.
func AsObject() ParamOpt {
	return func(p *Parameter) {
		p.asObject = true
		if p.typ.IsAbsent() {
			p.typ = Builtin(KindObject)
		}
	}
}

// NewParameter creates a parameter description. This is used by callers
// that describe callables themselves; NewFunc derives parameters from the
// function signature.
func NewParameter(name string, typ Type, opts ...ParamOpt) *Parameter {
	p := &Parameter{
		name: strings.ToLower(name),
		typ:  typ,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// newGoParameter describes a parameter assigned to a value of Go type t.
func newGoParameter(name string, t reflect.Type, opts ...ParamOpt) (*Parameter, error) {
	p := &Parameter{
		name:     strings.ToLower(name),
		typ:      TypeOf(t),
		nullable: nillable(t),
		goType:   t,
	}
	for _, opt := range opts {
		opt(p)
	}

	// AsObject only applies to the empty interface.
	if p.asObject && !(t.Kind() == reflect.Interface && t.NumMethod() == 0) {
		return nil, fmt.Errorf("parameter %q: object kind requires an interface{} type, got %s", p.name, t)
	}

	if p.hasDefault {
		if p.defaultValue == nil {
			if !p.nullable && !nillable(t) {
				return nil, fmt.Errorf("parameter %q: nil default for non-nullable type %s", p.name, t)
			}
		} else if dt := reflect.TypeOf(p.defaultValue); !dt.AssignableTo(t) {
			return nil, fmt.Errorf("parameter %q: default of type %s is not assignable to %s", p.name, dt, t)
		}
	}

	return p, nil
}

// Name returns the parameter name. Names are always lowercase.
func (p *Parameter) Name() string { return p.name }

// Type returns the declared type.
func (p *Parameter) Type() Type { return p.typ }

// Nullable is true if nil satisfies this parameter.
func (p *Parameter) Nullable() bool { return p.nullable }

// Default returns the default value and whether one is available. A
// parameter without a default is required.
func (p *Parameter) Default() (interface{}, bool) {
	return p.defaultValue, p.hasDefault
}

// Required is true if the parameter has no default.
func (p *Parameter) Required() bool { return !p.hasDefault }

// String returns a human friendly description, used in diagnostics.
func (p *Parameter) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)", p.name, p.typ)
	if p.nullable {
		b.WriteString(" nullable")
	}
	if p.hasDefault {
		fmt.Fprintf(&b, " default=%#v", p.defaultValue)
	}

	return b.String()
}

// nillable is true for Go types whose zero value is nil.
func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice,
		reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	}

	return false
}
