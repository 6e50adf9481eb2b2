package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/oleg578/minicsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadFormats(t *testing.T) {
	path := writeInput(t, "in.csv", "a,\"b,c\"\r\n\n\"x\"\"y\"\n")

	tests := []struct {
		format string
		want   string
	}{
		{"csv", "a,\"b,c\"\n\n\"x\"\"y\"\n"},
		{"json", "[\"a\",\"b,c\"]\n[]\n[\"x\\\"y\"]\n"},
	}
	for _, tc := range tests {
		t.Run(tc.format, func(t *testing.T) {
			out, err := execute(t, "read", path, "--format", tc.format)
			require.NoError(t, err)
			assert.Equal(t, tc.want, out)
		})
	}

	t.Run("yaml", func(t *testing.T) {
		out, err := execute(t, "read", path, "--format", "yaml")
		require.NoError(t, err)

		var rows [][]string
		require.NoError(t, yaml.Unmarshal([]byte(out), &rows))
		require.Len(t, rows, 3)
		assert.Equal(t, []string{"a", "b,c"}, rows[0])
		assert.Empty(t, rows[1])
		assert.Equal(t, []string{"x\"y"}, rows[2])
	})
}

func TestReadUnknownFormat(t *testing.T) {
	path := writeInput(t, "in.csv", "a\n")
	_, err := execute(t, "read", path, "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestReadMissingFile(t *testing.T) {
	_, err := execute(t, "read", filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteFromYAML(t *testing.T) {
	in := writeInput(t, "rows.yaml", "- [name, age, active]\n- [\"Bob, Jr.\", 25, true]\n- [null, 1.5, \"say \\\"hi\\\"\"]\n")
	out := filepath.Join(t.TempDir(), "out.csv")

	_, err := execute(t, "write", in, out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "name,age,active\n\"Bob, Jr.\",25,true\n,1.5,\"say \"\"hi\"\"\"\n", string(data))
}

func TestGenerateThenCompareReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gen.csv")

	out, err := execute(t, "generate", path, "--rows", "25", "--seed", "3", "--id-column")
	require.NoError(t, err)
	assert.Contains(t, out, "25 rows")

	rows, err := minicsv.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, rows, 25)
	assert.Len(t, rows[0], 6)

	out, err = execute(t, "compare", "reader", path)
	require.NoError(t, err)
	assert.Contains(t, out, "MATCH")
	assert.Contains(t, out, "1/1 passed")
}

func TestCompareReaderMismatch(t *testing.T) {
	path := writeInput(t, "bare.csv", "a\"b\"c\n")
	out, err := execute(t, "compare", "reader", path)
	assert.ErrorIs(t, err, errMismatch)
	assert.Contains(t, out, "MISMATCH")
}

func TestCompareWriter(t *testing.T) {
	out, err := execute(t, "compare", "writer")
	require.NoError(t, err)
	assert.Contains(t, out, "Writer comparison")
	assert.Contains(t, out, "14/14 passed")
}

func TestBench(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gen.csv")
	_, err := execute(t, "generate", path, "--rows", "20", "--seed", "1")
	require.NoError(t, err)

	out, err := execute(t, "bench", path, "--iterations", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Reader Benchmark")
	assert.Contains(t, out, "Writer Benchmark")
	assert.Contains(t, out, "minicsv:")
}

func TestConfigFile(t *testing.T) {
	cfg := writeInput(t, "minicsv.yaml", "format: json\n")
	path := writeInput(t, "in.csv", "a,b\n")

	out, err := execute(t, "--config", cfg, "read", path)
	require.NoError(t, err)
	assert.Equal(t, "[\"a\",\"b\"]\n", out)
}
