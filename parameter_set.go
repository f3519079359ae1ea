package invoke

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrParameterNotFound is returned by ParameterSet.Get for a name that is
// not declared. This is a programming error, unlike the validation errors.
var ErrParameterNotFound = errors.New("parameter not found")

// ParameterSet is the ordered list of formal parameters of one callable.
// The position of a parameter in the set is the position it is called with.
type ParameterSet struct {
	owner  string
	params []*Parameter
	index  map[string]int
}

// NewParameterSet creates a set for the callable named owner. Parameter
// names must be unique.
func NewParameterSet(owner string, params ...*Parameter) (*ParameterSet, error) {
	set := &ParameterSet{
		owner:  owner,
		params: make([]*Parameter, 0, len(params)),
		index:  make(map[string]int, len(params)),
	}

	for _, p := range params {
		if _, ok := set.index[p.name]; ok {
			return nil, fmt.Errorf("duplicate parameter %q for %q", p.name, owner)
		}

		set.index[p.name] = len(set.params)
		set.params = append(set.params, p)
	}

	return set, nil
}

// Owner returns the qualified name of the callable, used in diagnostics.
func (s *ParameterSet) Owner() string { return s.owner }

// Len returns the number of parameters.
func (s *ParameterSet) Len() int { return len(s.params) }

// Parameters returns the parameters in declared order.
func (s *ParameterSet) Parameters() []*Parameter {
	result := make([]*Parameter, len(s.params))
	copy(result, s.params)
	return result
}

// Keys returns the parameter names in declared order.
func (s *ParameterSet) Keys() []string {
	result := make([]string, len(s.params))
	for i, p := range s.params {
		result[i] = p.name
	}

	return result
}

// Required returns a new set with only the parameters that have no default.
func (s *ParameterSet) Required() *ParameterSet {
	result := &ParameterSet{
		owner: s.owner,
		index: make(map[string]int),
	}
	for _, p := range s.params {
		if p.Required() {
			result.index[p.name] = len(result.params)
			result.params = append(result.params, p)
		}
	}

	return result
}

// Defaults returns the default value of every parameter in declared order,
// keyed by parameter name. Parameters without a default have a nil value.
func (s *ParameterSet) Defaults() Args {
	result := make(Args, len(s.params))
	for i, p := range s.params {
		v, _ := p.Default()
		result[i] = Arg{Key: p.name, Value: v}
	}

	return result
}

// Has returns true if a parameter with the given name exists.
func (s *ParameterSet) Has(name string) bool {
	_, ok := s.index[strings.ToLower(name)]
	return ok
}

// Get returns the parameter with the given name. Asking for a name that
// doesn't exist returns an error wrapping ErrParameterNotFound.
func (s *ParameterSet) Get(name string) (*Parameter, error) {
	idx, ok := s.index[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: no parameter exists with key %q for %q",
			ErrParameterNotFound, name, s.owner)
	}

	return s.params[idx], nil
}

// FindOneByValueType returns the first parameter in declared order whose
// declared type accepts the runtime type of v, or nil if none does.
// Untyped parameters never match since they carry no type to match on.
//
// When more than one parameter could accept v the earliest declared wins.
func (s *ParameterSet) FindOneByValueType(v interface{}) *Parameter {
	k := KindOf(v)
	var actual reflect.Type
	if v != nil {
		actual = reflect.TypeOf(v)
	}

	for _, p := range s.params {
		if p.typ.IsAbsent() {
			continue
		}

		if p.typ.Accepts(k, actual) {
			return p
		}
	}

	return nil
}

// Merge builds the final argument list: resolved[name] if present, else the
// parameter default, for every parameter in declared order.
func (s *ParameterSet) Merge(resolved map[string]interface{}) []interface{} {
	result := make([]interface{}, len(s.params))
	for i, arg := range s.Defaults() {
		result[i] = arg.Value
		if v, ok := resolved[arg.Key]; ok {
			result[i] = v
		}
	}

	return result
}

func (s *ParameterSet) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s(", s.owner)
	for i, p := range s.params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteString(")")
	return b.String()
}
