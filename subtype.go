package invoke

import "reflect"

// IsSubtypeOf reports whether a value of type actual can stand in for a
// parameter of the declared type. A direct match is always true. Otherwise
// actual must be assignable to declared, which for interfaces means actual
// implements it (transitively through embedded interfaces).
//
// Go has no struct inheritance, so a struct embedding another struct is not
// a subtype of it.
func IsSubtypeOf(actual, declared reflect.Type) bool {
	if actual == nil || declared == nil {
		return false
	}

	// Direct match is always true
	if actual == declared {
		return true
	}

	if declared.Kind() == reflect.Interface {
		return actual.Implements(declared)
	}

	return actual.AssignableTo(declared)
}
