package invoke

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	require := require.New(t)

	args := Map(map[string]interface{}{"c": 3, "a": 1, "b": 2})
	require.Equal(Args{Named("a", 1), Named("b", 2), Named("c", 3)}, args)
	require.Empty(Map(nil))
}

func TestList(t *testing.T) {
	require := require.New(t)

	args := List("x", nil, 3)
	require.Equal([]string{"0", "1", "2"}, args.Keys())
	require.Equal(Args{Named("0", "x"), Named("1", nil), Named("2", 3)}, args)
}

func TestArgsLookup(t *testing.T) {
	require := require.New(t)

	args := Args{Named("a", 1), Named("b", 2), Named("a", 3)}

	v, ok := args.Lookup("a")
	require.True(ok)
	require.Equal(3, v)

	v, ok = args.Lookup("b")
	require.True(ok)
	require.Equal(2, v)

	_, ok = args.Lookup("A")
	require.False(ok)
}

func TestFromStruct(t *testing.T) {
	type config struct {
		Addr    string
		Port    int    `invoke:"listen_port,optional"`
		Secret  string `invoke:"-"`
		private int
	}

	cases := []struct {
		Name     string
		Value    interface{}
		Expected Args
	}{
		{
			"value",
			config{Addr: "localhost", Port: 80, Secret: "s", private: 1},
			Args{Named("Addr", "localhost"), Named("listen_port", 80)},
		},

		{
			"pointer",
			&config{Addr: "localhost"},
			Args{Named("Addr", "localhost"), Named("listen_port", 0)},
		},
	}

	for _, tt := range cases {
		t.Run(tt.Name, func(t *testing.T) {
			require.Equal(t, tt.Expected, FromStruct(tt.Value))
		})
	}
}

func TestFromStruct_panics(t *testing.T) {
	require.Panics(t, func() { FromStruct(42) })
	require.Panics(t, func() { FromStruct(new(int)) })
}

func TestFromStruct_call(t *testing.T) {
	require := require.New(t)

	type config struct {
		Addr string
		Port int `invoke:"listen_port"`
	}

	f, err := NewFunc(func(in struct {
		Struct

		Addr string
		Port int `invoke:"listen_port"`
	}) string {
		return in.Addr
	})
	require.NoError(err)

	result := f.Call(FromStruct(config{Addr: "localhost", Port: 80}))
	require.NoError(result.Err())
	require.Equal("localhost", result.Out(0))
}
