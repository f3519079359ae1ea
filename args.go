package invoke

import (
	"sort"
	"strconv"
)

// Arg is a single supplied value. For named resolution Key is the name to
// match; for typed resolution Key is only kept to report unresolved values.
type Arg struct {
	Key   string
	Value interface{}
}

// Args is an ordered bag of supplied values. Order matters for typed
// resolution, where a later value overwrites an earlier one that matched
// the same parameter.
type Args []Arg

// Named specifies a named argument with the given value.
func Named(n string, v interface{}) Arg {
	return Arg{Key: n, Value: v}
}

// Map turns a mapping into Args. Go maps are unordered, so the keys are
// sorted to keep resolution deterministic.
func Map(m map[string]interface{}) Args {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make(Args, len(keys))
	for i, k := range keys {
		result[i] = Arg{Key: k, Value: m[k]}
	}

	return result
}

// List turns positional values into Args keyed by their position.
func List(vs ...interface{}) Args {
	result := make(Args, len(vs))
	for i, v := range vs {
		result[i] = Arg{Key: strconv.Itoa(i), Value: v}
	}

	return result
}

// Keys returns the keys in order.
func (a Args) Keys() []string {
	result := make([]string, len(a))
	for i, arg := range a {
		result[i] = arg.Key
	}

	return result
}

// Lookup returns the value of the last Arg with the given key.
func (a Args) Lookup(key string) (interface{}, bool) {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i].Key == key {
			return a[i].Value, true
		}
	}

	return nil, false
}
