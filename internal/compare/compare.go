// Package compare checks minicsv output against encoding/csv, the reference
// implementation shipped with Go.
//
// The two readers disagree by design in two places, and the reader comparison
// normalizes both away: encoding/csv skips blank lines where minicsv returns a
// zero-field row, and encoding/csv rewrites a quoted "\r\n" to "\n" where
// minicsv keeps it.
package compare

import (
	"bytes"
	stdcsv "encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/oleg578/minicsv"
)

// Result describes the outcome of one comparison.
type Result struct {
	Name  string
	Match bool
	// Rows is the number of rows compared.
	Rows int
	// Detail describes the first difference when Match is false.
	Detail string
}

// Case is a named writer input.
type Case struct {
	Name string
	Rows [][]any
}

// Reader parses the file at path with both readers and compares the rows.
func Reader(path string) (Result, error) {
	res := Result{Name: filepath.Base(path)}

	got, err := minicsv.ReadFile(path)
	if err != nil {
		return res, err
	}
	want, err := readReference(path)
	if err != nil {
		return res, err
	}

	got = normalize(got)
	res.Rows = len(want)
	for i := range max(len(got), len(want)) {
		switch {
		case i >= len(got):
			res.Detail = fmt.Sprintf("row %d: minicsv ended early, reference has %q", i+1, want[i])
			return res, nil
		case i >= len(want):
			res.Detail = fmt.Sprintf("row %d: reference ended early, minicsv has %q", i+1, got[i])
			return res, nil
		case !slices.Equal(got[i], want[i]):
			res.Detail = fmt.Sprintf("row %d: minicsv %q, reference %q", i+1, got[i], want[i])
			return res, nil
		}
	}
	res.Match = true
	return res, nil
}

func readReference(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := stdcsv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.ReadAll()
}

func normalize(rows [][]string) [][]string {
	out := rows[:0:0]
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		fixed := make([]string, len(row))
		for i, field := range row {
			fixed[i] = strings.ReplaceAll(field, "\r\n", "\n")
		}
		out = append(out, fixed)
	}
	return out
}

// Writer writes c.Rows to a temporary file with minicsv and to memory with
// encoding/csv and compares the bytes.
func Writer(c Case) (Result, error) {
	res := Result{Name: c.Name, Rows: len(c.Rows)}

	dir, err := os.MkdirTemp("", "minicsv-compare-*")
	if err != nil {
		return res, err
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "custom.csv")
	if err := minicsv.OpenWriter(path).WriteValues(c.Rows); err != nil {
		return res, err
	}
	got, err := os.ReadFile(path)
	if err != nil {
		return res, err
	}

	var want bytes.Buffer
	w := stdcsv.NewWriter(&want)
	for _, row := range c.Rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = minicsv.ToText(v)
		}
		if err := w.Write(record); err != nil {
			return res, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return res, err
	}

	if !bytes.Equal(got, want.Bytes()) {
		res.Detail = fmt.Sprintf("minicsv %q, reference %q", got, want.Bytes())
		return res, nil
	}
	res.Match = true
	return res, nil
}

// Cases returns the standard writer comparison set.
func Cases() []Case {
	return []Case{
		{"Basic CSV", [][]any{
			{"name", "age", "city"},
			{"Alice", "30", "NYC"},
			{"Bob", "25", "LA"},
		}},
		{"Fields with commas", [][]any{
			{"name", "address", "city"},
			{"Alice", "123 Main St, Apt 4", "NYC"},
			{"Bob", "456 Oak Ave, Suite 100", "LA"},
		}},
		{"Fields with quotes", [][]any{
			{"name", "quote"},
			{"Alice", `She said "Hello"`},
			{"Bob", `He said "Goodbye"`},
		}},
		{"Fields with newlines", [][]any{
			{"name", "address"},
			{"Alice", "123 Main St\nApt 4"},
			{"Bob", "456 Oak Ave\nSuite 100"},
		}},
		{"Mixed special characters", [][]any{
			{"name", "description"},
			{"Alice", "Works at \"Tech Corp\", loves coding\nand hiking"},
			{"Bob", `Freelancer, designer, "creative"`},
		}},
		{"Empty fields", [][]any{
			{"name", "age", "city"},
			{"Alice", "", "NYC"},
			{"", "25", ""},
			{"Bob", "30", "LA"},
		}},
		{"Numbers and mixed types", [][]any{
			{"name", "age", "salary"},
			{"Alice", 30, 50000},
			{"Bob", 25, 45000},
		}},
		{"Single column", [][]any{
			{"name"},
			{"Alice"},
			{"Bob"},
			{"Charlie"},
		}},
		{"Single row", [][]any{
			{"name", "age", "city"},
		}},
		{"Special characters", [][]any{
			{"name", "symbols"},
			{"Alice", "!@#$%^&*()"},
			{"Bob", `<>?/\|[]{}=`},
		}},
		{"Very long field", [][]any{
			{"name", "description"},
			{"Alice", strings.Repeat("A", 1000)},
			{"Bob", strings.Repeat("This is a very long description ", 50)},
		}},
		{"Multiple quotes", [][]any{
			{"name", "quote"},
			{"Alice", `"""Hello"""`},
			{"Bob", `"Test"`},
		}},
		{"CRLF in field", [][]any{
			{"name", "address"},
			{"Alice", "123 Main St\r\nApt 4"},
		}},
		{"Row with empty strings", [][]any{
			{"", "", ""},
			{"Alice", "Bob", "Charlie"},
		}},
	}
}
