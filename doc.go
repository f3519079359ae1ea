// Package invoke calls Go constructors and methods with arguments that the
// caller only has by name or by runtime type.
//
// go-invoke is meant for the glue between data decoded from somewhere (a
// configuration document, a request, a plugin manifest) and a function that
// declares formal parameters. Supplied values are matched to parameters,
// required parameters are enforced, declared defaults are applied and every
// value's runtime type is checked against the declared parameter type before
// the function is ever called. Values are never converted from one type to
// another.
//
// The primary usage of this library is via the Invoker for registered types
// and via Func for arbitrary functions. See Func for how parameters are
// described, since Go reflection does not expose parameter names.
package invoke
