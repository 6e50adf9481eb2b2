package minicsv

import "io"

// BufferSize is the size of the chunk pulled from the underlying stream per refill.
const BufferSize = 8 << 10 // 8192 bytes

// source is a forward-only byte cursor with one byte of lookahead.
type source struct {
	src io.Reader

	buf    []byte
	bufPos int
	bufLen int
	bufErr error
}

func newSource(r io.Reader) *source {
	return &source{
		src: r,
		buf: make([]byte, BufferSize),
	}
}

// next consumes and returns the next byte. io.EOF marks the end of input; any
// other error comes from the stream.
func (s *source) next() (byte, error) {
	if err := s.fill(); err != nil {
		return 0, err
	}
	b := s.buf[s.bufPos]
	s.bufPos++
	return b, nil
}

// peek returns the next byte without consuming it, using the same error convention as next.
func (s *source) peek() (byte, error) {
	if err := s.fill(); err != nil {
		return 0, err
	}
	return s.buf[s.bufPos], nil
}

// fill makes sure at least one unread byte is buffered. Bytes returned together
// with an error are handed out before the error is reported.
func (s *source) fill() error {
	for s.bufPos >= s.bufLen {
		if s.bufErr != nil {
			return s.bufErr
		}

		n, err := s.src.Read(s.buf)
		s.bufPos = 0
		s.bufLen = n
		s.bufErr = err
	}
	return nil
}

// span returns the longest run of buffered bytes, starting at the cursor, that
// contains none of the bytes marked in stop, and advances past it. It never
// refills, so an empty result only means the caller has to fall back to next.
func (s *source) span(stop *[256]bool) []byte {
	data := s.buf[s.bufPos:s.bufLen]
	i := 0
	for i < len(data) && !stop[data[i]] {
		i++
	}
	s.bufPos += i
	return data[:i]
}
