package invoke

import (
	"bytes"
	"fmt"
	"strings"
)

// ErrReflection is returned when the requested type or method does not
// exist. It is never a validation failure.
type ErrReflection struct {
	// Target is the type or method that was looked up.
	Target string

	// Err is the underlying lookup error, if any.
	Err error
}

func (e *ErrReflection) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot reflect %q: %s", e.Target, e.Err)
	}

	return fmt.Sprintf("cannot reflect %q", e.Target)
}

func (e *ErrReflection) Unwrap() error { return e.Err }

// ErrNoConstructor is returned when values are supplied to construct a
// type that has no constructor registered.
type ErrNoConstructor struct {
	Type string
	Keys []string
}

func (e *ErrNoConstructor) Error() string {
	return fmt.Sprintf("type %q has no constructor, but was instantiated with keys %s",
		e.Type, quoteList(e.Keys))
}

// ErrUnknownKeys is returned when supplied values resolved to no declared
// parameter.
type ErrUnknownKeys struct {
	// Owner is the callable the values were supplied to.
	Owner string

	// Keys are the keys of the unresolved values.
	Keys []string

	// Known is the full list of declared parameter names.
	Known []string
}

func (e *ErrUnknownKeys) Error() string {
	return fmt.Sprintf("extra keys %s for %q, known keys: %s",
		quoteList(e.Keys), e.Owner, quoteList(e.Known))
}

// ErrRequiredKeysMissing is returned when required parameters have no
// supplied value.
type ErrRequiredKeysMissing struct {
	Owner string
	Keys  []string
}

func (e *ErrRequiredKeysMissing) Error() string {
	return fmt.Sprintf("required keys %s for %q are missing", quoteList(e.Keys), e.Owner)
}

// ErrInvalidParameterType is returned when a resolved value's runtime type
// is incompatible with the declared type of its parameter.
type ErrInvalidParameterType struct {
	Owner     string
	Parameter string

	// Declared is the declared type of the parameter.
	Declared string

	// Actual is the runtime type of the supplied value.
	Actual string
}

func (e *ErrInvalidParameterType) Error() string {
	return fmt.Sprintf("argument %q has type %q but was passed %q for %q",
		e.Parameter, e.Declared, e.Actual, e.Owner)
}

// ErrInvocation is returned when calling the function failed with a type
// mismatch that validation could not explain. This happens for Go types
// the validator cannot model exactly, such as an int64 supplied to an
// int32 parameter (both are KindInt) or a string supplied to a named
// string type.
type ErrInvocation struct {
	// Params are the parameters of the callable.
	Params *ParameterSet

	// Args are the final ordered arguments the call was attempted with.
	Args []interface{}

	// Err is the low-level failure.
	Err error
}

func (e *ErrInvocation) Error() string {
	params := new(bytes.Buffer)
	for i, p := range e.Params.Parameters() {
		var arg interface{}
		if i < len(e.Args) {
			arg = e.Args[i]
		}
		fmt.Fprintf(params, "    - %s <- %s\n", p.String(), typeName(arg))
	}
	if e.Params.Len() == 0 {
		fmt.Fprintf(params, "    No parameters!\n")
	}

	return fmt.Sprintf(`
Unhandled type error when invoking %q: %s

The supplied arguments passed validation but could not be assigned to the
function parameters. This usually means a value has the right kind but not
the exact Go type, for example int64 instead of int32.

==> Parameters and the types they were called with

%s
`,
		e.Params.Owner(),
		e.Err,
		strings.TrimSuffix(params.String(), "\n"),
	)
}

func (e *ErrInvocation) Unwrap() error { return e.Err }

// TypeMismatchError is the low-level failure of assigning a value to a Go
// parameter. The Invoker maps it to a validation error or ErrInvocation.
type TypeMismatchError struct {
	Parameter string
	Expected  string
	Actual    string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("cannot use %s as type %s for parameter %q", e.Actual, e.Expected, e.Parameter)
}

func quoteList(vs []string) string {
	quoted := make([]string, len(vs))
	for i, v := range vs {
		quoted[i] = fmt.Sprintf("%q", v)
	}

	return "[" + strings.Join(quoted, ", ") + "]"
}

var (
	_ error = (*ErrReflection)(nil)
	_ error = (*ErrNoConstructor)(nil)
	_ error = (*ErrUnknownKeys)(nil)
	_ error = (*ErrRequiredKeysMissing)(nil)
	_ error = (*ErrInvalidParameterType)(nil)
	_ error = (*ErrInvocation)(nil)
	_ error = (*TypeMismatchError)(nil)
)
