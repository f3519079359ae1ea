package invoke

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsStruct(t *testing.T) {
	cases := []struct {
		Name     string
		Test     interface{}
		Expected bool
	}{
		{
			"primitive",
			7,
			false,
		},

		{
			"struct without marker",
			struct{ A int }{},
			false,
		},

		{
			"struct embeds",
			struct {
				Struct
			}{},
			true,
		},

		{
			"pointer to struct embeds",
			&struct {
				Struct
			}{},
			true,
		},

		{
			"named marker field",
			struct {
				S Struct
			}{},
			false,
		},
	}

	for _, tt := range cases {
		t.Run(tt.Name, func(t *testing.T) {
			require := require.New(t)

			actual := isStruct(reflect.TypeOf(tt.Test))
			require.Equal(tt.Expected, actual)
		})
	}
}

func TestStructFields(t *testing.T) {
	require := require.New(t)

	type in struct {
		Struct

		Addr    string
		Port    int         `invoke:"listen_port,optional"`
		Logger  interface{} `invoke:",nullable,object"`
		private int
		Ignored int `invoke:"-"`
	}

	fields, err := structFields(reflect.TypeOf(&in{}))
	require.NoError(err)
	require.Len(fields, 3)

	require.Equal("addr", fields[0].Name)
	require.Equal(1, fields[0].Index)
	require.Empty(fields[0].Opts)

	require.Equal("listen_port", fields[1].Name)
	require.Equal(2, fields[1].Index)
	require.Len(fields[1].Opts, 1)

	require.Equal("logger", fields[2].Name)
	require.Len(fields[2].Opts, 2)

	_, err = structFields(reflect.TypeOf(42))
	require.Error(err)
}
