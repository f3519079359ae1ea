package invoke

import "reflect"

// Invoker constructs registered types and calls methods with supplied
// values, the way Func.Call does for plain functions.
type Invoker struct {
	opts []Option
}

// New creates an Invoker. Unless WithRegistry is given, it has its own empty
// Registry, so only Invoke works until types are registered.
func New(opts ...Option) *Invoker {
	return &Invoker{
		opts: append([]Option{WithRegistry(NewRegistry())}, opts...),
	}
}

// Registry returns the registry this Invoker looks types up in.
func (i *Invoker) Registry() *Registry {
	return i.config().registry
}

// config merges the Invoker options with the per-call options, the latter
// winning.
func (i *Invoker) config(opts ...Option) *callConfig {
	all := make([]Option, 0, len(i.opts)+len(opts))
	all = append(all, i.opts...)
	all = append(all, opts...)
	return newCallConfig(all...)
}

// Construct creates an instance of the type registered under typeName with
// its constructor, calling it with args.
//
// If the type has no constructor, it is constructed as its zero value (a
// pointer type gets a pointer to a new zero value). Supplying any args to
// such a type is an *ErrNoConstructor error. An unknown type name is an
// *ErrReflection error.
func (i *Invoker) Construct(typeName string, args Args, opts ...Option) (interface{}, error) {
	c := i.config(opts...)
	log := c.logger.Named("construct").With("type", typeName)

	typ, ctor, err := c.registry.constructor(typeName)
	if err != nil {
		return nil, err
	}

	if ctor == nil {
		if len(args) > 0 {
			return nil, &ErrNoConstructor{Type: typeName, Keys: args.Keys()}
		}

		log.Trace("type has no constructor, using zero value")
		return zeroInstance(typ), nil
	}

	result := ctor.call(log, args, c.resolver)
	if err := result.Err(); err != nil {
		return nil, err
	}

	return result.Out(0), nil
}

// Invoke calls the named method of instance with args. A method that
// doesn't exist is an *ErrReflection error.
func (i *Invoker) Invoke(instance interface{}, method string, args Args, opts ...Option) Result {
	c := i.config(opts...)
	log := c.logger.Named("invoke").With("method", method)

	f, err := c.registry.method(instance, method)
	if err != nil {
		return resultError(err)
	}

	return f.call(log, args, c.resolver)
}

func zeroInstance(typ reflect.Type) interface{} {
	if typ.Kind() == reflect.Ptr {
		return reflect.New(typ.Elem()).Interface()
	}

	return reflect.Zero(typ).Interface()
}
