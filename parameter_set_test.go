package invoke

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

// testParams returns a set with a parameter per builtin kind plus a class
// and an interface parameter, in that order.
func testParams(t *testing.T) *ParameterSet {
	set, err := NewParameterSet("test#params",
		NewParameter("untyped", Untyped()),
		NewParameter("bool", Builtin(KindBool)),
		NewParameter("string", Builtin(KindString), Default("")),
		NewParameter("array", Builtin(KindArray), Default(nil)),
		NewParameter("int", Builtin(KindInt)),
		NewParameter("square", NamedType(reflect.TypeOf(&testSquare{}))),
		NewParameter("shape", NamedType(reflect.TypeOf((*testShape)(nil)).Elem()), Nullable(true), Default(nil)),
	)
	require.NoError(t, err)
	return set
}

func TestParameterSet(t *testing.T) {
	require := require.New(t)
	set := testParams(t)

	require.Equal("test#params", set.Owner())
	require.Equal(7, set.Len())
	require.Equal([]string{"untyped", "bool", "string", "array", "int", "square", "shape"}, set.Keys())

	require.True(set.Has("bool"))
	require.True(set.Has("BOOL"))
	require.False(set.Has("nope"))

	p, err := set.Get("Square")
	require.NoError(err)
	require.Equal("square", p.Name())
	require.True(p.Type().IsNamed())

	_, err = set.Get("nope")
	require.ErrorIs(err, ErrParameterNotFound)

	// Mutating the returned slice doesn't affect the set
	params := set.Parameters()
	params[0] = nil
	require.NotNil(set.Parameters()[0])
}

func TestParameterSet_duplicate(t *testing.T) {
	_, err := NewParameterSet("test",
		NewParameter("a", Untyped()),
		NewParameter("A", Builtin(KindInt)),
	)
	require.Error(t, err)
	require.Contains(t, err.Error(), `duplicate parameter "a"`)
}

func TestParameterSetRequired(t *testing.T) {
	require := require.New(t)
	set := testParams(t)

	required := set.Required()
	require.Equal([]string{"untyped", "bool", "int", "square"}, required.Keys())
	require.Equal(set.Owner(), required.Owner())
	require.True(required.Has("int"))
	require.False(required.Has("string"))

	// The original is untouched
	require.Equal(7, set.Len())
}

func TestParameterSetDefaults(t *testing.T) {
	require := require.New(t)

	set, err := NewParameterSet("test",
		NewParameter("one", Builtin(KindString)),
		NewParameter("two", Builtin(KindString), Default("barfoo")),
		NewParameter("three", Builtin(KindInt), Default(3)),
	)
	require.NoError(err)

	require.Equal(Args{
		Named("one", nil),
		Named("two", "barfoo"),
		Named("three", 3),
	}, set.Defaults())
}

func TestParameterSetMerge(t *testing.T) {
	require := require.New(t)

	set, err := NewParameterSet("test",
		NewParameter("one", Builtin(KindString)),
		NewParameter("two", Builtin(KindString), Default("barfoo")),
		NewParameter("three", Builtin(KindInt), Default(3)),
	)
	require.NoError(err)

	require.Equal(
		[]interface{}{"1", "barfoo", 33},
		set.Merge(map[string]interface{}{"three": 33, "one": "1"}),
	)
}

func TestParameterSetFindOneByValueType(t *testing.T) {
	set := testParams(t)

	cases := []struct {
		Name     string
		Value    interface{}
		Expected string
	}{
		{"bool", true, "bool"},
		{"string", "hello", "string"},
		{"array", []string{"x"}, "array"},
		{"int", 12, "int"},
		{"other int size", int64(12), "int"},
		{"exact class", &testSquare{}, "square"},
		{"float matches nothing", 1.5, ""},
		{"nil matches nothing", nil, ""},
		{"map matches nothing", map[string]int{}, ""},
		{"value does not implement", testSquare{}, ""},
	}

	for _, tt := range cases {
		t.Run(tt.Name, func(t *testing.T) {
			p := set.FindOneByValueType(tt.Value)
			if tt.Expected == "" {
				require.Nil(t, p)
				return
			}

			require.NotNil(t, p)
			require.Equal(t, tt.Expected, p.Name())
		})
	}
}

func TestParameterSetFindOneByValueType_firstMatchWins(t *testing.T) {
	require := require.New(t)

	// *testSquare satisfies both declared types. The first declared wins.
	set, err := NewParameterSet("test",
		NewParameter("shape", NamedType(reflect.TypeOf((*testShape)(nil)).Elem())),
		NewParameter("square", NamedType(reflect.TypeOf(&testSquare{}))),
		NewParameter("first", Builtin(KindString)),
		NewParameter("second", Builtin(KindString)),
	)
	require.NoError(err)

	require.Equal("shape", set.FindOneByValueType(&testSquare{}).Name())
	require.Equal("first", set.FindOneByValueType("x").Name())
}
