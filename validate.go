package invoke

import (
	"reflect"

	"github.com/hashicorp/go-multierror"
)

// CheckUnknownKeys fails with *ErrUnknownKeys if any supplied value was not
// resolved to a parameter.
func CheckUnknownKeys(resolved *ResolvedArgs, params *ParameterSet) error {
	if len(resolved.Unresolved) == 0 {
		return nil
	}

	return &ErrUnknownKeys{
		Owner: params.Owner(),
		Keys:  resolved.Unresolved.Keys(),
		Known: params.Keys(),
	}
}

// CheckRequiredKeys fails with *ErrRequiredKeysMissing if a parameter
// without a default has no resolved value.
func CheckRequiredKeys(resolved *ResolvedArgs, params *ParameterSet) error {
	var missing []string
	for _, k := range params.Required().Keys() {
		if _, ok := resolved.Resolved[k]; !ok {
			missing = append(missing, k)
		}
	}

	if len(missing) == 0 {
		return nil
	}

	return &ErrRequiredKeysMissing{
		Owner: params.Owner(),
		Keys:  missing,
	}
}

// CheckTypes fails with *ErrInvalidParameterType for the first resolved
// value, in declared parameter order, whose runtime type does not fit the
// declared type of its parameter. Resolved names that are not declared are
// ignored; CheckUnknownKeys covers those.
func CheckTypes(resolved *ResolvedArgs, params *ParameterSet) error {
	for _, p := range params.Parameters() {
		v, ok := resolved.Resolved[p.Name()]
		if !ok {
			continue
		}

		if !typeCompatible(p, v) {
			return &ErrInvalidParameterType{
				Owner:     params.Owner(),
				Parameter: p.Name(),
				Declared:  p.Type().String(),
				Actual:    typeName(v),
			}
		}
	}

	return nil
}

func typeCompatible(p *Parameter, v interface{}) bool {
	typ := p.Type()
	if typ.IsAbsent() {
		return true
	}

	if v == nil {
		return p.Nullable()
	}

	return typ.Accepts(KindOf(v), reflect.TypeOf(v))
}

// Validate runs CheckUnknownKeys, CheckRequiredKeys and CheckTypes in that
// order and returns the first failure. Validating an already valid pair
// again never fails.
func Validate(resolved *ResolvedArgs, params *ParameterSet) error {
	for _, check := range checks {
		if err := check(resolved, params); err != nil {
			return err
		}
	}

	return nil
}

// ValidateAll runs every check and returns all failures as a
// *multierror.Error, or nil.
func ValidateAll(resolved *ResolvedArgs, params *ParameterSet) error {
	var result error
	for _, check := range checks {
		if err := check(resolved, params); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result
}

var checks = []func(*ResolvedArgs, *ParameterSet) error{
	CheckUnknownKeys,
	CheckRequiredKeys,
	CheckTypes,
}
