package gen

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/oleg578/minicsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileMatchesRows(t *testing.T) {
	t.Parallel()

	cfg := Config{Rows: 50, Seed: 42}
	path := filepath.Join(t.TempDir(), "bench.csv")
	require.NoError(t, New(cfg).WriteFile(path))

	got, err := minicsv.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, New(cfg).Rows(), got)
}

func TestRowShape(t *testing.T) {
	t.Parallel()

	row := New(Config{Rows: 1, Seed: 7}).Row()
	require.Len(t, row, 5)
	assert.Len(t, row[0], 20)
	assert.True(t, strings.HasPrefix(row[1], "Text with comma, "))
	assert.True(t, strings.HasPrefix(row[2], "Line1\r\nLine2 "))
	assert.True(t, strings.HasPrefix(row[3], `He said "Hello" `))
	assert.Len(t, row[4], 20)
}

func TestIDColumn(t *testing.T) {
	t.Parallel()

	g := New(Config{Rows: 3, Seed: 9, IDColumn: true})
	rows := g.Rows()
	require.Len(t, rows, 3)

	seen := map[string]bool{}
	for _, row := range rows {
		require.Len(t, row, 6)
		id, err := uuid.Parse(row[0])
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(4), id.Version())
		assert.False(t, seen[row[0]], "duplicate id %s", row[0])
		seen[row[0]] = true
	}
}

func TestSeedIsReproducible(t *testing.T) {
	t.Parallel()

	a := New(Config{Rows: 5, Seed: 1, IDColumn: true}).Rows()
	b := New(Config{Rows: 5, Seed: 1, IDColumn: true}).Rows()
	assert.Equal(t, a, b)
}

func TestDefaultRows(t *testing.T) {
	t.Parallel()

	assert.Len(t, New(Config{Seed: 3}).Rows(), DefaultRows)
}
