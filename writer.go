package minicsv

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cast"
)

const writeBufferSize = 4 << 10

var (
	errNilWriter      = errors.New("minicsv: writer is nil")
	errWriterNoTarget = errors.New("minicsv: writer destination cannot be nil")
)

// Writer emits rows with minimal quoting, ',' between fields and a single '\n'
// after every row. The first error is sticky.
type Writer struct {
	dst *bufio.Writer
	err error
}

// NewWriter creates a new Writer buffering output to w.
func NewWriter(w io.Writer) *Writer {
	if w == nil {
		panic(errWriterNoTarget.Error())
	}
	return &Writer{
		dst: bufio.NewWriterSize(w, writeBufferSize),
	}
}

// Reset points the Writer at dst and clears any stored error.
func (w *Writer) Reset(dst io.Writer) {
	if w == nil {
		panic(errNilWriter.Error())
	}
	if dst == nil {
		panic(errWriterNoTarget.Error())
	}
	if w.dst == nil {
		w.dst = bufio.NewWriterSize(dst, writeBufferSize)
	} else {
		w.dst.Reset(dst)
	}
	w.err = nil
}

// Write emits a single row terminated by '\n'.
func (w *Writer) Write(record []string) error {
	if err := w.ready(); err != nil {
		return err
	}

	for i := range record {
		if i > 0 {
			if err := w.dst.WriteByte(','); err != nil {
				w.err = err
				return err
			}
		}
		if err := w.writeField(record[i]); err != nil {
			w.err = err
			return err
		}
	}

	if err := w.dst.WriteByte('\n'); err != nil {
		w.err = err
		return err
	}
	return nil
}

// WriteValues emits a row of arbitrary values, converting each to text with FormatValue rules.
func (w *Writer) WriteValues(values []any) error {
	record := make([]string, len(values))
	for i, v := range values {
		record[i] = ToText(v)
	}
	return w.Write(record)
}

// WriteAll writes multiple rows, stopping at the first error.
func (w *Writer) WriteAll(records [][]string) error {
	if w == nil {
		return errNilWriter
	}
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes pending buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.ready(); err != nil {
		return err
	}
	if err := w.dst.Flush(); err != nil {
		w.err = err
		return err
	}
	return nil
}

// Error reports the first error encountered by the writer.
func (w *Writer) Error() error {
	if w == nil {
		return errNilWriter
	}
	return w.err
}

func (w *Writer) ready() error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	return w.err
}

func (w *Writer) writeField(field string) error {
	if !fieldNeedsQuote(field) {
		_, err := w.dst.WriteString(field)
		return err
	}
	if err := w.dst.WriteByte('"'); err != nil {
		return err
	}

	start := 0
	for i := 0; i < len(field); i++ {
		if field[i] == '"' {
			if _, err := w.dst.WriteString(field[start : i+1]); err != nil {
				return err
			}
			if err := w.dst.WriteByte('"'); err != nil {
				return err
			}
			start = i + 1
		}
	}
	if start < len(field) {
		if _, err := w.dst.WriteString(field[start:]); err != nil {
			return err
		}
	}
	return w.dst.WriteByte('"')
}

// FormatField returns field as it appears in CSV output: unchanged, or wrapped
// in quotes with every embedded quote doubled when it contains a comma, a
// quote, a line feed or a carriage return.
func FormatField(field string) string {
	if !fieldNeedsQuote(field) {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// FormatValue converts v to text with ToText and escapes it with FormatField.
func FormatValue(v any) string {
	return FormatField(ToText(v))
}

// ToText converts v to its textual form. Strings pass through; numbers, bools,
// byte slices, time values, Stringers and errors go through cast; anything else
// is printed with fmt. A nil value becomes the empty string.
func ToText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}

func fieldNeedsQuote(field string) bool {
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case '"', ',', '\n', '\r':
			return true
		}
	}
	return false
}
