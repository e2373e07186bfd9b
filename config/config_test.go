package config

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thiremani/typelang/checker"
	"github.com/thiremani/typelang/types"
)

func TestDecode(t *testing.T) {
	src := `read_type: num
eval:
  policy: dynamic
  result_type: (list (pair num str))
`
	opts, err := Decode(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, types.Number, opts.ReadType)
	require.Equal(t, checker.EvalDynamic, opts.Eval)
	require.Equal(t, "(list (pair num str))", opts.EvalType.String())
}

func TestDecodeEmptyIsDefault(t *testing.T) {
	opts, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, checker.DefaultOptions(), opts)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown key", "read: num\n", "field read not found"},
		{"bad policy", "eval:\n  policy: sometimes\n", "eval.policy"},
		{"bad read type", "read_type: (list)\n", "read_type"},
		{"unknown type name", "read_type: number\n", "read_type"},
		{"trailing tokens", "read_type: num str\n", "read_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	opts := checker.DefaultOptions()
	opts.Eval = checker.EvalDynamic
	opts.EvalType = types.Func{Params: []types.Type{types.Number}, Return: types.Boolean}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, opts))
	require.Contains(t, buf.String(), "policy: dynamic")

	back, err := Decode(&buf)
	require.NoError(t, err)
	require.True(t, types.TypeEqual(opts.EvalType, back.EvalType))
	require.Equal(t, opts.Eval, back.Eval)
	require.Equal(t, opts.ReadType, back.ReadType)
}

func TestLoadAndResolve(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvVar, "")

	require.Equal(t, "", Resolve("", dir))
	opts, err := Load("")
	require.NoError(t, err)
	require.Equal(t, checker.DefaultOptions(), opts)

	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("read_type: bool\n"), 0644))
	require.Equal(t, path, Resolve("", dir))

	opts, err = Load(Resolve("", dir))
	require.NoError(t, err)
	require.Equal(t, types.Boolean, opts.ReadType)

	t.Setenv(EnvVar, "/from/env.yaml")
	require.Equal(t, "/from/env.yaml", Resolve("", dir))
	require.Equal(t, "explicit.yaml", Resolve("explicit.yaml", dir))

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	require.ErrorIs(t, err, fs.ErrNotExist)
}
