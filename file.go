package minicsv

import (
	"fmt"
	"os"
)

// Open opens the file at path and returns a Reader that owns it. The file is
// closed when the rows are exhausted, when a read fails, or on Close, whichever
// comes first. Callers that may stop early must call Close; WithReader does it
// for them.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := NewReader(f)
	r.closer = f
	return r, nil
}

// WithReader opens path, hands the Reader to fn and closes the file when fn
// returns, whether it finished the rows, stopped early or failed.
func WithReader(path string, fn func(*Reader) error) (err error) {
	r, err := Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := r.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("minicsv: close %s: %w", path, cerr)
		}
	}()
	return fn(r)
}

// ReadFile reads every row of the file at path.
func ReadFile(path string) ([][]string, error) {
	var rows [][]string
	err := WithReader(path, func(r *Reader) error {
		var err error
		rows, err = r.ReadAll()
		return err
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FileWriter writes complete row sets to a file. Each call creates or
// truncates the file, writes every row and closes it again before returning.
type FileWriter struct {
	path string
	perm os.FileMode
}

// OpenWriter returns a FileWriter targeting path. Nothing is opened until Write.
func OpenWriter(path string) *FileWriter {
	return &FileWriter{path: path, perm: 0o644}
}

// Path returns the file the writer targets.
func (fw *FileWriter) Path() string {
	return fw.path
}

// Write replaces the file contents with rows.
func (fw *FileWriter) Write(rows [][]string) error {
	return fw.write(func(w *Writer) error {
		return w.WriteAll(rows)
	})
}

// WriteValues replaces the file contents with rows, converting every value to text first.
func (fw *FileWriter) WriteValues(rows [][]any) error {
	return fw.write(func(w *Writer) error {
		for _, row := range rows {
			if err := w.WriteValues(row); err != nil {
				return err
			}
		}
		return nil
	})
}

func (fw *FileWriter) write(emit func(*Writer) error) (err error) {
	f, err := os.OpenFile(fw.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fw.perm)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("minicsv: close %s: %w", fw.path, cerr)
		}
	}()

	w := NewWriter(f)
	if err := emit(w); err != nil {
		return fmt.Errorf("minicsv: write %s: %w", fw.path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("minicsv: flush %s: %w", fw.path, err)
	}
	return nil
}

// WriteFile writes rows to the file at path, replacing its contents.
func WriteFile(path string, rows [][]string) error {
	return OpenWriter(path).Write(rows)
}
