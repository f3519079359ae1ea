package invoke

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/viant/xreflect"
)

// Registry is where an Invoker looks up types by name and the descriptions
// of their constructors and methods.
//
// Type names are resolved through an xreflect.Types registry, so a type
// known there can be constructed even if it was never registered here; it
// simply has no constructor. Registry is safe for concurrent use.
type Registry struct {
	// typesLock guards types, which makes no concurrency promises itself.
	typesLock sync.Mutex
	types     *xreflect.Types

	lock sync.RWMutex

	// entries are keyed by registered name, byType by the registered type.
	// A type registered under more than one name has one constructor per
	// name but shares the method descriptions of its last registration.
	entries map[string]*typeEntry
	byType  map[reflect.Type]*typeEntry

	// methods memoizes described method signatures. Signatures are
	// immutable, so once stored they are shared by every call.
	methods map[methodKey]*signature
}

type typeEntry struct {
	name       string
	typ        reflect.Type
	ctor       *Func
	methodOpts map[string][]FuncOpt
}

type methodKey struct {
	typ  reflect.Type
	name string
}

// RegistryOpt is an option to NewRegistry.
type RegistryOpt func(*Registry)

// WithTypes makes the registry resolve type names through an existing
// xreflect.Types. Types registered on the Registry are added to it.
func WithTypes(types *xreflect.Types) RegistryOpt {
	return func(r *Registry) {
		r.types = types
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOpt) *Registry {
	r := &Registry{
		entries: make(map[string]*typeEntry),
		byType:  make(map[reflect.Type]*typeEntry),
		methods: make(map[methodKey]*signature),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.types == nil {
		r.types = xreflect.NewTypes()
	}

	return r
}

// TypeOpt is an option to Registry.Register.
type TypeOpt func(*typeEntry) error

// WithConstructor sets the constructor of the type. fn must return a value
// of the type (or a pointer to it), optionally followed by an error. opts
// describe the constructor parameters as with NewFunc.
func WithConstructor(fn interface{}, opts ...FuncOpt) TypeOpt {
	return func(e *typeEntry) error {
		f, err := NewFunc(fn, append([]FuncOpt{WithName(e.name + "#New")}, opts...)...)
		if err != nil {
			return err
		}

		ft := f.fn.Type()
		switch {
		case ft.NumOut() == 1:
		case ft.NumOut() == 2 && ft.Out(1) == errType:
		default:
			return fmt.Errorf("constructor for %q must return one value and an optional error", e.name)
		}

		if out := ft.Out(0); !out.AssignableTo(e.typ) &&
			!(out.Kind() == reflect.Ptr && out.Elem() == e.typ) {
			return fmt.Errorf("constructor for %q returns %s", e.name, out)
		}

		e.ctor = f
		return nil
	}
}

// WithMethod describes the parameters of the named method of the type, as
// NewFunc does for functions. Methods that aren't registered are still
// callable; their parameters are described from the method type alone.
func WithMethod(name string, opts ...FuncOpt) TypeOpt {
	return func(e *typeEntry) error {
		_, ok := e.typ.MethodByName(name)
		if !ok && e.typ.Kind() != reflect.Ptr {
			_, ok = reflect.PointerTo(e.typ).MethodByName(name)
		}
		if !ok {
			return fmt.Errorf("type %q has no method %q", e.name, name)
		}

		e.methodOpts[name] = append([]FuncOpt{WithName(e.name + "#" + name)}, opts...)
		return nil
	}
}

// Register registers a type under a qualified name such as "pkg.Server".
// sample is a value of the type or its reflect.Type.
func (r *Registry) Register(name string, sample interface{}, opts ...TypeOpt) error {
	typ, ok := sample.(reflect.Type)
	if !ok {
		typ = reflect.TypeOf(sample)
	}
	if typ == nil {
		return fmt.Errorf("cannot register %q: nil sample", name)
	}

	entry := &typeEntry{
		name:       name,
		typ:        typ,
		methodOpts: make(map[string][]FuncOpt),
	}

	var buildErr error
	for _, opt := range opts {
		if err := opt(entry); err != nil {
			buildErr = multierror.Append(buildErr, err)
		}
	}
	if buildErr != nil {
		return buildErr
	}

	pkg, short := splitTypeName(name)
	typeOpts := []xreflect.Option{xreflect.WithReflectType(typ)}
	if pkg != "" {
		typeOpts = append(typeOpts, xreflect.WithPackage(pkg))
	}

	// typeOpts[1:] is the package option, if any. A name that already
	// resolves to typ, or to its element type, is not registered again.
	r.typesLock.Lock()
	var err error
	if existing, lerr := r.types.Lookup(short, typeOpts[1:]...); lerr != nil || !sameRegistered(existing, typ) {
		err = r.types.Register(short, typeOpts...)
	}
	r.typesLock.Unlock()
	if err != nil {
		return fmt.Errorf("cannot register %q: %w", name, err)
	}

	r.lock.Lock()
	defer r.lock.Unlock()
	r.entries[name] = entry
	r.byType[typ] = entry

	// A re-registered type may describe its methods differently.
	for k := range r.methods {
		if k.typ == typ || (k.typ.Kind() == reflect.Ptr && k.typ.Elem() == typ) {
			delete(r.methods, k)
		}
	}

	return nil
}

// Lookup returns the type registered under the qualified name. Names that
// were never registered here are looked up in the xreflect registry, which
// stores pointer types as their element type.
func (r *Registry) Lookup(name string) (reflect.Type, error) {
	r.lock.RLock()
	e, ok := r.entries[name]
	r.lock.RUnlock()
	if ok {
		return e.typ, nil
	}

	pkg, short := splitTypeName(name)
	var opts []xreflect.Option
	if pkg != "" {
		opts = append(opts, xreflect.WithPackage(pkg))
	}

	r.typesLock.Lock()
	typ, err := r.types.Lookup(short, opts...)
	r.typesLock.Unlock()
	if err != nil {
		return nil, &ErrReflection{Target: name, Err: err}
	}
	if typ == nil {
		return nil, &ErrReflection{Target: name, Err: fmt.Errorf("type not found")}
	}

	return typ, nil
}

// constructor returns the named type and its constructor, which is nil if
// the type has none.
func (r *Registry) constructor(name string) (reflect.Type, *Func, error) {
	r.lock.RLock()
	e, ok := r.entries[name]
	r.lock.RUnlock()
	if ok {
		return e.typ, e.ctor, nil
	}

	typ, err := r.Lookup(name)
	if err != nil {
		return nil, nil, err
	}

	return typ, nil, nil
}

// method returns the named method of instance bound to it.
func (r *Registry) method(instance interface{}, name string) (*Func, error) {
	rv := reflect.ValueOf(instance)
	if !rv.IsValid() {
		return nil, &ErrReflection{Target: "<nil>#" + name, Err: fmt.Errorf("nil instance")}
	}

	typ := rv.Type()
	mv := rv.MethodByName(name)
	if !mv.IsValid() {
		return nil, &ErrReflection{
			Target: typ.String() + "#" + name,
			Err:    fmt.Errorf("method %q does not exist", name),
		}
	}

	key := methodKey{typ: typ, name: name}
	r.lock.RLock()
	sig, ok := r.methods[key]
	opts := r.methodOpts(typ, name)
	r.lock.RUnlock()

	if !ok {
		var err error
		sig, err = describe(mv.Type(), typ.String()+"#"+name, opts...)
		if err != nil {
			return nil, err
		}

		r.lock.Lock()
		if existing, ok := r.methods[key]; ok {
			sig = existing
		} else {
			r.methods[key] = sig
		}
		r.lock.Unlock()
	}

	return &Func{fn: mv, sig: sig}, nil
}

// methodOpts returns the registered description of a method. A method
// registered on T also describes it for *T and the other way around. The
// read lock must be held.
func (r *Registry) methodOpts(typ reflect.Type, name string) []FuncOpt {
	candidates := []reflect.Type{typ}
	if typ.Kind() == reflect.Ptr {
		candidates = append(candidates, typ.Elem())
	} else {
		candidates = append(candidates, reflect.PointerTo(typ))
	}

	for _, t := range candidates {
		if e, ok := r.byType[t]; ok {
			if opts, ok := e.methodOpts[name]; ok {
				return opts
			}
		}
	}

	return nil
}

// sameRegistered is true if xreflect returned existing for a type
// registered as typ.
func sameRegistered(existing, typ reflect.Type) bool {
	if existing == nil {
		return false
	}

	return existing == typ || (typ.Kind() == reflect.Ptr && existing == typ.Elem())
}

// splitTypeName splits "pkg.Name" into its package and name. The package
// may itself be an import path containing dots.
func splitTypeName(name string) (string, string) {
	idx := strings.LastIndex(name, ".")
	if idx == -1 {
		return "", name
	}

	return name[:idx], name[idx+1:]
}
