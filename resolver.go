package invoke

// ResolvedArgs is the partition of supplied Args into values matched to a
// declared parameter and values that matched nothing.
type ResolvedArgs struct {
	// Resolved maps parameter names to the supplied value.
	Resolved map[string]interface{}

	// Unresolved are the supplied values that matched no parameter, under
	// their original keys and in their original order.
	Unresolved Args

	// Overwritten are the values TypeResolver matched to a parameter and
	// then replaced with a later value for the same parameter, in order.
	Overwritten Args
}

// NewResolvedArgs returns an empty ResolvedArgs.
func NewResolvedArgs() *ResolvedArgs {
	return &ResolvedArgs{Resolved: make(map[string]interface{})}
}

// Len returns the number of supplied values accounted for. Every resolver
// accounts for every value, so this equals the length of the Args that
// were resolved.
func (r *ResolvedArgs) Len() int {
	return len(r.Resolved) + len(r.Unresolved) + len(r.Overwritten)
}

// Keys returns the names of the resolved parameters in the declared order
// of params.
func (r *ResolvedArgs) Keys(params *ParameterSet) []string {
	var result []string
	for _, k := range params.Keys() {
		if _, ok := r.Resolved[k]; ok {
			result = append(result, k)
		}
	}

	return result
}

// Resolver is a strategy that matches supplied values to the parameters of
// a callable. Resolvers only classify values; whether a value has the right
// type for its parameter is checked afterwards by Validate.
type Resolver interface {
	Resolve(params *ParameterSet, args Args) *ResolvedArgs
}

var (
	// ByName matches values to parameters by name. This is the default.
	ByName Resolver = NameResolver{}

	// ByType matches values to parameters by their runtime type.
	ByType Resolver = TypeResolver{}
)

// NameResolver matches every Arg whose key names a declared parameter,
// case-insensitively. Values are never inspected, so a value under a known
// name is resolved whatever its type. A second value for a name that is
// already resolved, such as "one" and "ONE", is left unresolved.
type NameResolver struct{}

func (NameResolver) Resolve(params *ParameterSet, args Args) *ResolvedArgs {
	result := NewResolvedArgs()
	for _, arg := range args {
		p, err := params.Get(arg.Key)
		if err != nil {
			result.Unresolved = append(result.Unresolved, arg)
			continue
		}
		if _, ok := result.Resolved[p.Name()]; ok {
			result.Unresolved = append(result.Unresolved, arg)
			continue
		}

		result.Resolved[p.Name()] = arg.Value
	}

	return result
}

// TypeResolver matches every Arg, in order, to the first declared parameter
// whose type accepts the value (see ParameterSet.FindOneByValueType). Keys
// are ignored for matching.
//
// If two values match the same parameter the later one replaces the
// earlier one without an error. The replaced value is kept in Overwritten.
type TypeResolver struct{}

func (TypeResolver) Resolve(params *ParameterSet, args Args) *ResolvedArgs {
	result := NewResolvedArgs()
	for _, arg := range args {
		p := params.FindOneByValueType(arg.Value)
		if p == nil {
			result.Unresolved = append(result.Unresolved, arg)
			continue
		}

		if prev, ok := result.Resolved[p.Name()]; ok {
			result.Overwritten = append(result.Overwritten, Arg{Key: p.Name(), Value: prev})
		}

		result.Resolved[p.Name()] = arg.Value
	}

	return result
}
