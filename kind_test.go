package invoke

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"reflect"
	"testing"
	"time"
	"unsafe"

	"github.com/stretchr/testify/require"
)

type testShape interface {
	Area() int
}

type testNamedShape interface {
	testShape
	Name() string
}

type testSquare struct{ Side int }

func (s *testSquare) Area() int { return s.Side * s.Side }
func (s *testSquare) Name() string { return "square" }

func TestKindOf(t *testing.T) {
	var x int

	cases := []struct {
		Name     string
		Value    interface{}
		Expected Kind
	}{
		{"nil", nil, KindNull},
		{"bool", true, KindBool},
		{"int", 12, KindInt},
		{"int8", int8(1), KindInt},
		{"uint64", uint64(1), KindInt},
		{"float32", float32(1.2), KindFloat},
		{"float64", 1.2, KindFloat},
		{"complex", complex(1, 2), KindComplex},
		{"string", "hello", KindString},
		{"slice", []string{"x"}, KindArray},
		{"array", [2]int{}, KindArray},
		{"map", map[string]interface{}{}, KindMap},
		{"struct", testSquare{}, KindObject},
		{"pointer", &testSquare{}, KindObject},
		{"pointer to int", &x, KindObject},
		{"error", errors.New("x"), KindObject},
		{"chan", make(chan int), KindResource},
		{"func", func() {}, KindResource},
		{"unsafe pointer", unsafe.Pointer(&x), KindResource},
		{"file", os.Stdout, KindObject},
	}

	for _, tt := range cases {
		t.Run(tt.Name, func(t *testing.T) {
			require.Equal(t, tt.Expected, KindOf(tt.Value))
		})
	}
}

func TestTypeOf(t *testing.T) {
	cases := []struct {
		Name     string
		Type     reflect.Type
		Expected string
		Named    bool
	}{
		{"empty interface", reflect.TypeOf((*interface{})(nil)).Elem(), "untyped", false},
		{"interface", reflect.TypeOf((*io.Reader)(nil)).Elem(), "io.Reader", true},
		{"struct", reflect.TypeOf(testSquare{}), "invoke.testSquare", true},
		{"pointer", reflect.TypeOf(&testSquare{}), "*invoke.testSquare", true},
		{"int32", reflect.TypeOf(int32(0)), "int", false},
		{"named string", reflect.TypeOf(testMode("")), "string", false},
		{"slice", reflect.TypeOf([]int{}), "array", false},
		{"map", reflect.TypeOf(map[string]int{}), "map", false},
		{"chan", reflect.TypeOf(make(chan int)), "resource", false},
	}

	for _, tt := range cases {
		t.Run(tt.Name, func(t *testing.T) {
			require := require.New(t)

			actual := TypeOf(tt.Type)
			require.Equal(tt.Expected, actual.String())
			require.Equal(tt.Named, actual.IsNamed())
		})
	}
}

func TestTypeAccepts(t *testing.T) {
	shape := reflect.TypeOf((*testShape)(nil)).Elem()
	stringer := reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
	handler := reflect.TypeOf((*http.Handler)(nil)).Elem()

	cases := []struct {
		Name     string
		Type     Type
		Value    interface{}
		Expected bool
	}{
		{"untyped", Untyped(), "x", true},
		{"builtin match", Builtin(KindString), "x", true},
		{"builtin mismatch", Builtin(KindArray), "x", false},
		{"generic object", Builtin(KindObject), &testSquare{}, true},
		{"generic object with string", Builtin(KindObject), "x", false},
		{"named interface", NamedType(shape), &testSquare{}, true},
		{"named interface not implemented", NamedType(shape), testSquare{}, false},
		{"named type with non-object", NamedType(shape), []string{}, false},
		{"named exact", NamedType(reflect.TypeOf(testSquare{})), testSquare{}, true},
		{"interface implemented by int", NamedType(stringer), time.Second, true},
		{"interface implemented by func", NamedType(handler), http.HandlerFunc(nil), true},
		{"interface not implemented by int", NamedType(stringer), 12, false},
		{"named struct with int", NamedType(reflect.TypeOf(testSquare{})), 12, false},
	}

	for _, tt := range cases {
		t.Run(tt.Name, func(t *testing.T) {
			var actual reflect.Type
			if tt.Value != nil {
				actual = reflect.TypeOf(tt.Value)
			}

			require.Equal(t, tt.Expected, tt.Type.Accepts(KindOf(tt.Value), actual))
		})
	}
}

func TestIsSubtypeOf(t *testing.T) {
	shape := reflect.TypeOf((*testShape)(nil)).Elem()
	named := reflect.TypeOf((*testNamedShape)(nil)).Elem()
	errT := reflect.TypeOf((*error)(nil)).Elem()

	cases := []struct {
		Name     string
		Actual   reflect.Type
		Declared reflect.Type
		Expected bool
	}{
		{"same", reflect.TypeOf(testSquare{}), reflect.TypeOf(testSquare{}), true},
		{"implements", reflect.TypeOf(&testSquare{}), shape, true},
		{"implements embedding interface", reflect.TypeOf(&testSquare{}), named, true},
		{"embedding interface is a subtype", named, shape, true},
		{"value receiver set", reflect.TypeOf(testSquare{}), shape, false},
		{"pointer vs value", reflect.TypeOf(&testSquare{}), reflect.TypeOf(testSquare{}), false},
		{"error implementation", reflect.TypeOf(fmt.Errorf("x")), errT, true},
		{"nil", nil, shape, false},
	}

	for _, tt := range cases {
		t.Run(tt.Name, func(t *testing.T) {
			require.Equal(t, tt.Expected, IsSubtypeOf(tt.Actual, tt.Declared))
		})
	}
}
