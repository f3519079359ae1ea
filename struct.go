package invoke

import (
	"fmt"
	"reflect"
	"strings"
)

// Struct should be embedded into a struct that is the only argument of a
// function. The exported fields of that struct are then described as the
// named parameters of the function, in field order:
//
//	func NewServer(in struct {
//		invoke.Struct
//
//		Addr    string
//		Timeout time.Duration `invoke:",optional"`
//		Logger  hclog.Logger  `invoke:"log,nullable"`
//	}) *Server
//
// Go reflection doesn't expose function parameter names, so this is the
// way to declare names without registering them with Param.
//
// The tag format is `invoke:"name,option,..."`. An empty name keeps the
// field name. Options are "optional" (zero value default), "nullable" and
// "object" (an interface{} field only accepts object-shaped values).
type Struct struct{}

const tagName = "invoke"

var structMarkerType = reflect.TypeOf(Struct{})

// isStruct returns true if the given type is a struct, or a pointer to a
// struct, that embeds Struct.
func isStruct(t reflect.Type) bool {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return false
	}

	for i := 0; i < t.NumField(); i++ {
		if isStructField(t.Field(i)) {
			return true
		}
	}

	return false
}

func isStructField(f reflect.StructField) bool {
	return f.Anonymous && f.Type == structMarkerType
}

type structField struct {
	// Index is the index using reflect.Value.Field that sets this field.
	Index int

	Name string
	Type reflect.Type
	Opts []ParamOpt
}

// structFields returns the parameter fields of a Struct-embedding struct
// (or pointer to one) in field order.
func structFields(t reflect.Type) ([]*structField, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	// Verify our value is a struct
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("struct expected, got %s", t.Kind())
	}

	var result []*structField
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)

		// Ignore unexported fields and our struct marker
		if sf.PkgPath != "" || isStructField(sf) {
			continue
		}

		field := &structField{
			Index: i,
			Name:  sf.Name,
			Type:  sf.Type,
		}

		// Parse out the tag if there is one
		if tag := sf.Tag.Get(tagName); tag != "" {
			if tag == "-" {
				continue
			}

			parts := strings.Split(tag, ",")

			// If we have a name set, then override the name
			if parts[0] != "" {
				field.Name = parts[0]
			}

			for _, opt := range parts[1:] {
				switch opt {
				case "optional":
					field.Opts = append(field.Opts, Optional())
				case "nullable":
					field.Opts = append(field.Opts, Nullable(true))
				case "object":
					field.Opts = append(field.Opts, AsObject())
				default:
					return nil, fmt.Errorf("field %s: unknown %s tag option %q", sf.Name, tagName, opt)
				}
			}
		}

		// Name is always lowercase
		field.Name = strings.ToLower(field.Name)
		result = append(result, field)
	}

	return result, nil
}
