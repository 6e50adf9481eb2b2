package minicsv

import (
	"errors"
	"fmt"
	"io"
	"iter"
)

var (
	// ErrClosed is returned by Read after Close was called before the input was exhausted.
	ErrClosed = errors.New("minicsv: reader is closed")
)

// ReadError reports an I/O failure of the underlying stream together with the
// physical line the reader had reached.
type ReadError struct {
	Line int
	Err  error
}

// Error formats the read error message with the stored Line and Err values.
func (e *ReadError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("minicsv: read error on line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying Err so ReadError participates in errors.Unwrap.
func (e *ReadError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

var (
	// Bytes that end a plain run outside quotes.
	unquotedStops = stopSet(',', '"', '\r', '\n')
	// Bytes that end a plain run inside quotes. Line breaks stop the run only
	// so the line counter stays accurate.
	quotedStops = stopSet('"', '\r', '\n')
)

func stopSet(bs ...byte) *[256]bool {
	var set [256]bool
	for _, b := range bs {
		set[b] = true
	}
	return &set
}

// Reader parses rows from a byte stream, one row per call to Read.
//
// Malformed quoting is never an error: a quote opens a quoted span wherever it
// appears, and an unterminated span is finalized at end of input with whatever
// it accumulated. The only errors are those of the underlying stream.
//
// A Reader is single pass and must not be used from more than one goroutine.
type Reader struct {
	src    *source
	closer io.Closer

	field  []byte
	record []string
	quoted bool
	width  int

	line int
	err  error
}

// NewReader creates a Reader that consumes CSV data from r, panicking if r is nil.
// The Reader does not close r; use Open for a Reader that owns its file.
func NewReader(r io.Reader) *Reader {
	if r == nil {
		panic("minicsv: reader source cannot be nil")
	}
	return &Reader{
		src:   newSource(r),
		field: make([]byte, 0, 64),
		line:  1,
	}
}

// Read returns the next row. A zero-field row stands for a blank line. At the
// end of input Read returns io.EOF, and after any terminal condition every
// further call returns the same error.
func (r *Reader) Read() ([]string, error) {
	if r == nil || r.src == nil {
		return nil, io.EOF
	}
	if r.err != nil {
		return nil, r.err
	}

	for {
		if r.quoted {
			r.field = append(r.field, r.src.span(quotedStops)...)
		} else {
			r.field = append(r.field, r.src.span(unquotedStops)...)
		}

		b, err := r.src.next()
		if err != nil {
			return r.endOfInput(err)
		}

		if r.quoted {
			switch b {
			case '"':
				next, err := r.src.peek()
				if err != nil && err != io.EOF {
					return nil, r.fail(err)
				}
				if err == nil && next == '"' {
					r.src.next()
					r.field = append(r.field, '"')
					continue
				}
				r.quoted = false
			case '\r':
				r.field = append(r.field, '\r')
				next, err := r.src.peek()
				if err != nil && err != io.EOF {
					return nil, r.fail(err)
				}
				if err == nil && next == '\n' {
					r.src.next()
					r.field = append(r.field, '\n')
				}
				r.line++
			case '\n':
				r.field = append(r.field, '\n')
				r.line++
			default:
				r.field = append(r.field, b)
			}
			continue
		}

		switch b {
		case '"':
			r.quoted = true
		case ',':
			r.record = append(r.record, string(r.field))
			r.field = r.field[:0]
		case '\n':
			r.line++
			return r.finishRow(), nil
		case '\r':
			// Support CRLF by peeking ahead for '\n' and consuming it together.
			next, err := r.src.peek()
			if err != nil && err != io.EOF {
				return nil, r.fail(err)
			}
			if err == nil && next == '\n' {
				r.src.next()
			}
			r.line++
			return r.finishRow(), nil
		default:
			r.field = append(r.field, b)
		}
	}
}

// ReadAll exhausts the reader, repeatedly calling Read to collect rows until io.EOF
// and returning the accumulated rows plus the first non-EOF error encountered.
func (r *Reader) ReadAll() (records [][]string, err error) {
	for {
		record, err := r.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
}

// Rows returns the remaining rows as a range-over-func sequence. The sequence
// stops silently at io.EOF and after yielding the first error. Breaking out of
// the loop closes the Reader.
func (r *Reader) Rows() iter.Seq2[[]string, error] {
	return func(yield func([]string, error) bool) {
		for {
			row, err := r.Read()
			if err == io.EOF {
				return
			}
			if !yield(row, err) {
				r.Close()
				return
			}
			if err != nil {
				return
			}
		}
	}
}

// Line returns the 1-based physical line the reader is positioned on. CR, LF and
// CRLF each count as one line break, inside quoted fields too.
func (r *Reader) Line() int {
	if r == nil {
		return 0
	}
	return r.line
}

// Close releases the owned file, if any. Reads after Close return ErrClosed
// unless the input had already been exhausted. Close is safe to call repeatedly.
func (r *Reader) Close() error {
	if r == nil {
		return nil
	}
	if r.err == nil {
		r.err = ErrClosed
	}
	return r.release()
}

// endOfInput handles the error returned by the source when no byte is left.
func (r *Reader) endOfInput(err error) ([]string, error) {
	if err != io.EOF {
		return nil, r.fail(err)
	}

	pending := len(r.field) > 0 || len(r.record) > 0
	r.err = io.EOF
	// Read-only handle: a close failure has nothing left to lose.
	_ = r.release()
	if !pending {
		return nil, io.EOF
	}
	return r.finishRow(), nil
}

// fail records a stream failure as the terminal error and releases the source.
func (r *Reader) fail(err error) error {
	rerr := &ReadError{Line: r.line, Err: err}
	r.err = rerr
	_ = r.release()
	return rerr
}

// finishRow appends the pending field to the pending row, applies the blank
// line rule and resets the assembly state for the next row.
func (r *Reader) finishRow() []string {
	row := append(r.record, string(r.field))
	r.width = len(row)
	r.record = make([]string, 0, r.width)
	r.field = r.field[:0]
	r.quoted = false

	if len(row) == 1 && row[0] == "" {
		return []string{}
	}
	return row
}

func (r *Reader) release() error {
	if r.closer == nil {
		return nil
	}
	c := r.closer
	r.closer = nil
	return c.Close()
}
