package invoke

import (
	"errors"

	"github.com/hashicorp/go-hclog"
)

// Option sets the state for calls. Options given to New apply to every call
// of that Invoker; options given to a single call override them.
type Option func(*callConfig)

type callConfig struct {
	logger   hclog.Logger
	resolver Resolver
	registry *Registry
}

func newCallConfig(opts ...Option) *callConfig {
	c := &callConfig{
		logger:   hclog.L(),
		resolver: ByName,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithLogger sets the logger. Resolution and invocation are logged at the
// trace level. Defaults to hclog.L().
func WithLogger(l hclog.Logger) Option {
	return func(c *callConfig) {
		c.logger = l
	}
}

// WithResolver sets the strategy used to match supplied values to
// parameters. Defaults to ByName.
func WithResolver(r Resolver) Option {
	return func(c *callConfig) {
		c.resolver = r
	}
}

// WithRegistry sets the registry Invoker looks types and method
// descriptions up in.
func WithRegistry(r *Registry) Option {
	return func(c *callConfig) {
		c.registry = r
	}
}

// Call calls the function with args. Args are resolved to parameters with
// the configured Resolver (by name unless WithResolver is given), validated,
// merged with the declared defaults and passed in declared order.
func (f *Func) Call(args Args, opts ...Option) Result {
	c := newCallConfig(opts...)
	return f.call(c.logger.Named("call"), args, c.resolver)
}

// call runs the shared pipeline: resolve, validate, merge defaults, invoke.
func (f *Func) call(log hclog.Logger, args Args, resolver Resolver) Result {
	params := f.Parameters()
	log = log.With("func", params.Owner())

	resolved := resolver.Resolve(params, args)
	log.Trace("resolved arguments",
		"resolved", resolved.Keys(params),
		"unresolved", resolved.Unresolved.Keys())

	if err := Validate(resolved, params); err != nil {
		log.Trace("validation failed", "err", err)
		return resultError(err)
	}

	values := params.Merge(resolved.Resolved)
	for i, p := range params.Parameters() {
		log.Trace("argument", "idx", i, "name", p.Name(), "value", values[i])
	}

	out, err := f.callOrdered(values)
	if err != nil {
		var mismatch *TypeMismatchError
		if !errors.As(err, &mismatch) {
			return resultError(err)
		}

		// The values passed validation but still can't be assigned. Check
		// again for the most specific diagnosis before giving up.
		log.Trace("type mismatch on invoke", "err", err)
		if verr := Validate(resolved, params); verr != nil {
			return resultError(verr)
		}

		return resultError(&ErrInvocation{
			Params: params,
			Args:   values,
			Err:    err,
		})
	}

	return newResult(out)
}
