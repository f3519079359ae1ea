package invoke

import "reflect"

// Kind is the runtime kind of a value. The set is closed: every Go value
// maps onto exactly one Kind via KindOf.
type Kind string

const (
	KindNull     Kind = "null"
	KindBool     Kind = "bool"
	KindInt      Kind = "int"
	KindFloat    Kind = "float"
	KindComplex  Kind = "complex"
	KindString   Kind = "string"
	KindArray    Kind = "array"
	KindMap      Kind = "map"
	KindObject   Kind = "object"
	KindResource Kind = "resource"
)

func (k Kind) String() string { return string(k) }

// KindOf returns the runtime kind of v. Ints and uints of every size are
// KindInt and floats of every size are KindFloat. Structs and pointers are
// object-shaped. Channels, functions and raw pointers are opaque resources.
func KindOf(v interface{}) Kind {
	if v == nil {
		return KindNull
	}

	return kindOfReflect(reflect.TypeOf(v).Kind())
}

func kindOfReflect(k reflect.Kind) Kind {
	switch k {
	case reflect.Bool:
		return KindBool

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindInt

	case reflect.Float32, reflect.Float64:
		return KindFloat

	case reflect.Complex64, reflect.Complex128:
		return KindComplex

	case reflect.String:
		return KindString

	case reflect.Slice, reflect.Array:
		return KindArray

	case reflect.Map:
		return KindMap

	case reflect.Struct, reflect.Ptr, reflect.Interface:
		return KindObject

	default:
		// Chan, Func, UnsafePointer, Uintptr
		return KindResource
	}
}

// Type is the declared type of a Parameter. It is exactly one of: absent
// (the zero value, accepts anything), a builtin Kind, or a named Go type
// (struct, pointer or non-empty interface) that values must be a subtype
// of.
type Type struct {
	kind  Kind
	named reflect.Type
}

// Untyped returns the absent declared type.
func Untyped() Type { return Type{} }

// Builtin returns a declared type that accepts values of kind k.
func Builtin(k Kind) Type { return Type{kind: k} }

// NamedType returns a declared type that accepts object-shaped values whose
// type is t or a subtype of t.
func NamedType(t reflect.Type) Type { return Type{kind: KindObject, named: t} }

// TypeOf derives the declared type of a parameter from its Go type. The
// empty interface is untyped, structs, pointers and non-empty interfaces
// are named types and everything else is the builtin kind of t.
func TypeOf(t reflect.Type) Type {
	switch t.Kind() {
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return Untyped()
		}

		return NamedType(t)

	case reflect.Struct, reflect.Ptr:
		return NamedType(t)

	default:
		return Builtin(kindOfReflect(t.Kind()))
	}
}

// IsAbsent is true for an untyped parameter.
func (t Type) IsAbsent() bool { return t.kind == "" }

// IsBuiltin is true if the declared type is a builtin Kind.
func (t Type) IsBuiltin() bool { return t.kind != "" && t.named == nil }

// IsNamed is true if the declared type is a named Go type.
func (t Type) IsNamed() bool { return t.named != nil }

// Kind returns the builtin kind. Named types report KindObject.
func (t Type) Kind() Kind { return t.kind }

// Reflect returns the named Go type, or nil if t is not named.
func (t Type) Reflect() reflect.Type { return t.named }

// Accepts reports whether a value of the given runtime kind and Go type
// structurally fits t. A named interface accepts every type implementing
// it; other named types only accept object-shaped values. Nullability is a property of the parameter and is
// not considered here.
func (t Type) Accepts(k Kind, actual reflect.Type) bool {
	switch {
	case t.IsAbsent():
		return true

	case t.IsBuiltin():
		// KindObject as a builtin is the generic object kind.
		return t.kind == k

	case t.named.Kind() == reflect.Interface:
		// Any value can implement an interface, whatever its kind.
		return actual != nil && actual.Implements(t.named)

	default:
		return k == KindObject && actual != nil && IsSubtypeOf(actual, t.named)
	}
}

func (t Type) String() string {
	switch {
	case t.IsAbsent():
		return "untyped"

	case t.IsNamed():
		return t.named.String()

	default:
		return string(t.kind)
	}
}

// typeName is the name of a value's runtime type as used in diagnostics.
// Objects report their Go type, everything else its Kind.
func typeName(v interface{}) string {
	if k := KindOf(v); k != KindObject {
		return k.String()
	}

	return reflect.TypeOf(v).String()
}
