package invoke

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Func is a function together with the description of its formal
// parameters. It is the unit everything in this package calls: registered
// constructors and methods are Funcs too.
//
// Parameter Names
//
// Go reflection doesn't expose parameter names, so names come from one of
// two places. A function taking a single struct that embeds Struct is
// described from the struct fields (see Struct). For any other function the
// Param options name the parameters in order; unnamed parameters are called
// "arg0", "arg1" and so on, which is fine when only resolving by type.
//
// Parameter Types
//
// The declared type of each parameter is derived from its Go type with
// TypeOf. A parameter of type interface{} is untyped and accepts anything.
// Nullability defaults to whether the Go type can hold nil.
//
// Results
//
// A function can return any number of values. A final return type of error
// is reported by Result.Err.
type Func struct {
	fn  reflect.Value
	sig *signature
}

// signature is the described input of a function type. It does not depend
// on the function value so it can be shared by every bound method of a type.
type signature struct {
	params *ParameterSet

	// structIn is the argument struct type if the function takes a single
	// Struct-embedding struct. structPtr is true if it takes a pointer to it.
	// fields are the struct field indexes in parameter order.
	structIn  reflect.Type
	structPtr bool
	fields    []int

	variadic bool
}

// FuncOpt is an option to NewFunc that refines the description of the
// function.
type FuncOpt func(*funcBuilder) error

type funcBuilder struct {
	name     string
	params   []*paramSpec
	defaults []*paramSpec
}

type paramSpec struct {
	name string
	opts []ParamOpt
}

// WithName sets the owner name used in diagnostics. By default this is the
// function name found through the runtime, or its type signature.
func WithName(name string) FuncOpt {
	return func(b *funcBuilder) error {
		b.name = name
		return nil
	}
}

// Param describes the next parameter of a function. For functions taking a
// Struct, the parameter is instead selected by name and opts refine the
// field description.
func Param(name string, opts ...ParamOpt) FuncOpt {
	return func(b *funcBuilder) error {
		if name == "" {
			return fmt.Errorf("parameter name must not be empty")
		}

		b.params = append(b.params, &paramSpec{name: strings.ToLower(name), opts: opts})
		return nil
	}
}

// WithDefault sets the default value of the named parameter.
func WithDefault(name string, v interface{}) FuncOpt {
	return func(b *funcBuilder) error {
		b.defaults = append(b.defaults, &paramSpec{
			name: strings.ToLower(name),
			opts: []ParamOpt{Default(v)},
		})
		return nil
	}
}

// NewFunc creates a new Func from the given input function f.
func NewFunc(f interface{}, opts ...FuncOpt) (*Func, error) {
	fv := reflect.ValueOf(f)
	if !fv.IsValid() {
		return nil, fmt.Errorf("fn should be a function, got nil")
	}
	if k := fv.Kind(); k != reflect.Func {
		return nil, fmt.Errorf("fn should be a function, got %s", k)
	}

	sig, err := describe(fv.Type(), funcName(fv), opts...)
	if err != nil {
		return nil, err
	}

	return &Func{fn: fv, sig: sig}, nil
}

// describe builds the signature of the function type ft. owner is the
// fallback name if no WithName option is given.
func describe(ft reflect.Type, owner string, opts ...FuncOpt) (*signature, error) {
	b := &funcBuilder{name: owner}

	var buildErr error
	for _, opt := range opts {
		if err := opt(b); err != nil {
			buildErr = multierror.Append(buildErr, err)
		}
	}
	if buildErr != nil {
		return nil, buildErr
	}

	sig := &signature{variadic: ft.IsVariadic()}

	var params []*Parameter
	if ft.NumIn() == 1 && isStruct(ft.In(0)) {
		ps, err := sig.describeStruct(ft.In(0), b)
		if err != nil {
			return nil, err
		}
		params = ps
	} else {
		ps, err := sig.describeFlat(ft, b)
		if err != nil {
			return nil, err
		}
		params = ps
	}

	set, err := NewParameterSet(b.name, params...)
	if err != nil {
		return nil, err
	}
	sig.params = set

	return sig, nil
}

func (s *signature) describeFlat(ft reflect.Type, b *funcBuilder) ([]*Parameter, error) {
	if len(b.params) > ft.NumIn() {
		return nil, fmt.Errorf("%d parameters described for %q, but it takes %d",
			len(b.params), b.name, ft.NumIn())
	}

	var buildErr error
	params := make([]*Parameter, ft.NumIn())
	for i := range params {
		name := fmt.Sprintf("arg%d", i)
		var opts []ParamOpt
		if i < len(b.params) {
			name = b.params[i].name
			opts = b.params[i].opts
		}
		opts = append(opts, b.defaultsFor(name)...)

		p, err := newGoParameter(name, ft.In(i), opts...)
		if err != nil {
			buildErr = multierror.Append(buildErr, err)
			continue
		}
		params[i] = p
	}

	if err := b.unknownNames(params); err != nil {
		buildErr = multierror.Append(buildErr, err)
	}

	return params, buildErr
}

func (s *signature) describeStruct(t reflect.Type, b *funcBuilder) ([]*Parameter, error) {
	fields, err := structFields(t)
	if err != nil {
		return nil, err
	}

	s.structPtr = t.Kind() == reflect.Ptr
	s.structIn = t
	if s.structPtr {
		s.structIn = t.Elem()
	}

	var buildErr error
	params := make([]*Parameter, 0, len(fields))
	for _, f := range fields {
		opts := f.Opts
		for _, spec := range b.params {
			if spec.name == f.Name {
				opts = append(opts, spec.opts...)
			}
		}
		opts = append(opts, b.defaultsFor(f.Name)...)

		p, err := newGoParameter(f.Name, f.Type, opts...)
		if err != nil {
			buildErr = multierror.Append(buildErr, err)
			continue
		}

		params = append(params, p)
		s.fields = append(s.fields, f.Index)
	}

	if err := b.unknownNames(params); err != nil {
		buildErr = multierror.Append(buildErr, err)
	}

	return params, buildErr
}

func (b *funcBuilder) defaultsFor(name string) []ParamOpt {
	var result []ParamOpt
	for _, spec := range b.defaults {
		if spec.name == name {
			result = append(result, spec.opts...)
		}
	}

	return result
}

// unknownNames errors for Param and WithDefault options that name no
// described parameter.
func (b *funcBuilder) unknownNames(params []*Parameter) error {
	known := map[string]struct{}{}
	for _, p := range params {
		if p != nil {
			known[p.name] = struct{}{}
		}
	}

	var result error
	for _, spec := range append(b.params, b.defaults...) {
		if _, ok := known[spec.name]; !ok {
			result = multierror.Append(result, fmt.Errorf(
				"unknown parameter %q for %q", spec.name, b.name))
		}
	}

	return result
}

// Parameters returns the described formal parameters.
func (f *Func) Parameters() *ParameterSet { return f.sig.params }

// Func returns the function pointer that this Func is built around.
func (f *Func) Func() interface{} {
	return f.fn.Interface()
}

// Name returns the owner name used in diagnostics.
func (f *Func) Name() string {
	return f.sig.params.Owner()
}

// String returns the name for this function. See Name.
func (f *Func) String() string {
	return f.Name()
}

// callOrdered calls the function with one value per parameter in declared
// order. A value that cannot be assigned to its Go parameter type returns a
// *TypeMismatchError instead of calling the function.
func (f *Func) callOrdered(values []interface{}) ([]reflect.Value, error) {
	params := f.sig.params.Parameters()
	if len(values) != len(params) {
		return nil, fmt.Errorf("%d values for %d parameters", len(values), len(params))
	}

	in := make([]reflect.Value, len(values))
	for i, v := range values {
		rv, err := assignValue(params[i], v)
		if err != nil {
			return nil, err
		}
		in[i] = rv
	}

	// Struct argument functions get the values as fields of their struct.
	if f.sig.structIn != nil {
		structVal := reflect.New(f.sig.structIn)
		for i, rv := range in {
			structVal.Elem().Field(f.sig.fields[i]).Set(rv)
		}

		arg := structVal.Elem()
		if f.sig.structPtr {
			arg = structVal
		}

		return f.fn.Call([]reflect.Value{arg}), nil
	}

	if f.sig.variadic {
		return f.fn.CallSlice(in), nil
	}

	return f.fn.Call(in), nil
}

func assignValue(p *Parameter, v interface{}) (reflect.Value, error) {
	if p.goType == nil {
		return reflect.Value{}, fmt.Errorf("parameter %q has no Go type to call with", p.name)
	}

	if v == nil {
		return reflect.Zero(p.goType), nil
	}

	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(p.goType) {
		return reflect.Value{}, &TypeMismatchError{
			Parameter: p.name,
			Expected:  p.goType.String(),
			Actual:    rv.Type().String(),
		}
	}

	return rv, nil
}

// funcName attempts to look up the function name using the pointer. If no
// friendly name can be found, this defaults to the function type signature.
func funcName(fv reflect.Value) string {
	var name string
	if rfunc := runtime.FuncForPC(fv.Pointer()); rfunc != nil {
		name = rfunc.Name()
	}

	if name == "" {
		name = fv.Type().String()
	}

	return name
}

// errType is used for comparison against function results
var errType = reflect.TypeOf((*error)(nil)).Elem()
