// # MiniCSV: A Small Streaming CSV Reader and Writer for Go
//
// MiniCSV reads and writes comma-separated text in one fixed dialect: ',' between
// fields, '"' around fields that need it, '""' for a literal quote, and LF, CR or
// CRLF between rows. Output is interchangeable with the conventional CSV readers
// and writers shipped with most languages.
//
// # Features
//
// - Pull-based `Reader` over any `io.Reader`, with `Read`, `ReadAll` and a range-over-func `Rows` view.
// - Path helpers (`Open`, `WithReader`, `ReadFile`) that own the file and close it on every exit path.
// - Permissive parsing: quoting mistakes never fail a read, only I/O errors do (`*ReadError`).
// - Buffered `Writer` and path-scoped `FileWriter` with minimal quoting and LF row terminators.
// - `FormatValue` to coerce non-string values to text before escaping.
//
// # Blank lines
//
// A row consisting of one empty field is returned as a zero-field row. A blank
// physical line and a line holding a single empty field therefore read back the
// same way.
//
// # Getting Started
//
//	err := minicsv.WithReader("data.csv", func(r *minicsv.Reader) error {
//		for row, err := range r.Rows() {
//			if err != nil {
//				return err
//			}
//			fmt.Println(row)
//		}
//		return nil
//	})
package minicsv
