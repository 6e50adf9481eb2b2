// Package bench times minicsv against encoding/csv on the same file.
package bench

import (
	"context"
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/oleg578/minicsv"
)

// Timing is the total wall time of a number of runs of one implementation.
type Timing struct {
	Name  string
	Total time.Duration
}

// Report holds the read and write timings of one benchmark run.
type Report struct {
	Path       string
	Iterations int
	Rows       int
	Read       []Timing
	Write      []Timing
}

type task struct {
	name string
	run  func() error
}

// Run reads and writes the file at path iterations times with each
// implementation. Written output goes to a temporary directory that is removed
// afterwards. ctx is checked between runs.
func Run(ctx context.Context, path string, iterations int) (Report, error) {
	if iterations <= 0 {
		return Report{}, errors.New("bench: iterations must be positive")
	}
	rep := Report{Path: path, Iterations: iterations}

	// The rows to write are prepared outside the timers.
	rows, err := minicsv.ReadFile(path)
	if err != nil {
		return rep, err
	}
	rep.Rows = len(rows)

	dir, err := os.MkdirTemp("", "minicsv-bench-*")
	if err != nil {
		return rep, err
	}
	defer os.RemoveAll(dir)

	reads := []task{
		{"encoding/csv", func() error { return readStd(path) }},
		{"minicsv", func() error { return readMini(path) }},
	}
	writes := []task{
		{"encoding/csv", func() error { return writeStd(filepath.Join(dir, "std.csv"), rows) }},
		{"minicsv", func() error { return minicsv.WriteFile(filepath.Join(dir, "mini.csv"), rows) }},
	}

	if rep.Read, err = timeAll(ctx, reads, iterations); err != nil {
		return rep, err
	}
	if rep.Write, err = timeAll(ctx, writes, iterations); err != nil {
		return rep, err
	}
	return rep, nil
}

func timeAll(ctx context.Context, tasks []task, iterations int) ([]Timing, error) {
	out := make([]Timing, 0, len(tasks))
	for _, t := range tasks {
		var total time.Duration
		for range iterations {
			if err := ctx.Err(); err != nil {
				return out, err
			}
			start := time.Now()
			if err := t.run(); err != nil {
				return out, fmt.Errorf("bench: %s: %w", t.name, err)
			}
			total += time.Since(start)
		}
		out = append(out, Timing{Name: t.name, Total: total})
	}
	return out, nil
}

func readMini(path string) error {
	return minicsv.WithReader(path, func(r *minicsv.Reader) error {
		for _, err := range r.Rows() {
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func readStd(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := stdcsv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.ReuseRecord = true
	for {
		if _, err := r.Read(); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

func writeStd(path string, rows [][]string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := stdcsv.NewWriter(f)
	return w.WriteAll(rows)
}
