package invoke

import (
	"fmt"
	"reflect"
	"strings"
)

// FromStruct returns a named Arg for every exported field of v, which must
// be a struct or a pointer to one. The name is the field name or the name
// given in an `invoke:"name"` tag. Fields tagged `invoke:"-"` are skipped.
//
// This panics if v is not a struct or pointer to a struct.
func FromStruct(v interface{}) Args {
	sv := structValueOf(reflect.ValueOf(v))
	if sv.Kind() == reflect.Invalid {
		panic(fmt.Sprintf("only struct or pointer to struct types are supported in FromStruct, got %T", v))
	}
	st := sv.Type()

	var args Args
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		if f.PkgPath != "" {
			continue
		}

		name := f.Name
		if tag := f.Tag.Get(tagName); tag != "" {
			if tag == "-" {
				continue
			}
			if parts := strings.Split(tag, ","); parts[0] != "" {
				name = parts[0]
			}
		}

		args = append(args, Named(name, sv.Field(i).Interface()))
	}

	return args
}

func structValueOf(rv reflect.Value) reflect.Value {
	if k := rv.Kind(); k != reflect.Struct && k != reflect.Ptr {
		return reflect.Value{}
	}

	sv := rv
	if sv.Kind() == reflect.Ptr {
		// unwrap ptr
		sv = sv.Elem()
		if sv.Kind() != reflect.Struct {
			return reflect.Value{}
		}
	}

	return sv
}
