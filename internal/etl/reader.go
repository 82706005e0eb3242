package etl

// reader.go prepares the raw export stream for CSV parsing without loading
// the file into memory. Exports saved from Windows spreadsheets routinely
// carry a UTF-8 BOM and the occasional broken byte sequence; both are
// handled on the fly with O(buffer) memory.

import (
	"encoding/csv"
	"io"
	"unicode/utf8"
)

// WrapReader layers BOM skipping and UTF-8 sanitization over a raw stream.
func WrapReader(r io.Reader) io.Reader {
	return newUTF8Sanitizer(newBOMSkipper(r))
}

// NewCSVReader returns a csv.Reader configured for the export: ragged rows
// are tolerated (FieldsPerRecord is per-row) and leading space is trimmed.
func NewCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(WrapReader(r))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr
}

// bomSkipper drops a leading UTF-8 BOM (0xEF 0xBB 0xBF) if present.
type bomSkipper struct {
	r       io.Reader
	checked bool
	pending []byte
}

func newBOMSkipper(r io.Reader) *bomSkipper {
	return &bomSkipper{r: r}
}

func (b *bomSkipper) Read(p []byte) (int, error) {
	if !b.checked {
		b.checked = true
		head := make([]byte, 3)
		n, err := io.ReadFull(b.r, head)
		head = head[:n]
		if n == 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
			head = head[:0]
		}
		b.pending = head
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return 0, err
		}
	}
	if len(b.pending) > 0 {
		n := copy(p, b.pending)
		b.pending = b.pending[n:]
		return n, nil
	}
	return b.r.Read(p)
}

// utf8Sanitizer replaces invalid UTF-8 sequences with U+FFFD as bytes flow
// through. Multi-byte runes split across read boundaries are held back until
// the next chunk arrives so valid sequences are never mangled.
type utf8Sanitizer struct {
	r   io.Reader
	buf []byte // raw bytes not yet sanitized (incomplete tail)
	out []byte // sanitized bytes ready to emit
	rb  []byte // scratch read buffer
	eof bool
}

func newUTF8Sanitizer(r io.Reader) *utf8Sanitizer {
	return &utf8Sanitizer{r: r, rb: make([]byte, 4096)}
}

func (s *utf8Sanitizer) Read(p []byte) (int, error) {
	for len(s.out) == 0 {
		if s.eof {
			return 0, io.EOF
		}
		if err := s.fill(); err != nil {
			return 0, err
		}
	}
	n := copy(p, s.out)
	s.out = s.out[n:]
	return n, nil
}

// fill reads one chunk and sanitizes every complete rune into s.out.
func (s *utf8Sanitizer) fill() error {
	n, err := s.r.Read(s.rb)
	s.buf = append(s.buf, s.rb[:n]...)
	if err == io.EOF {
		s.eof = true
	} else if err != nil {
		return err
	}

	// Hold back a possibly-incomplete rune at the end of the chunk.
	keep := 0
	if !s.eof {
		keep = incompleteTailLen(s.buf)
	}
	data := s.buf[:len(s.buf)-keep]

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			s.out = utf8.AppendRune(s.out, utf8.RuneError)
		} else {
			s.out = append(s.out, data[:size]...)
		}
		data = data[size:]
	}

	s.buf = append(s.buf[:0:0], s.buf[len(s.buf)-keep:]...)
	return nil
}

// incompleteTailLen returns the number of trailing bytes that form the start
// of a multi-byte rune whose continuation has not arrived yet.
func incompleteTailLen(data []byte) int {
	for i := 1; i <= utf8.UTFMax && i <= len(data); i++ {
		b := data[len(data)-i]
		if b < 0x80 {
			return 0 // ASCII, nothing pending
		}
		if b >= 0xC0 {
			// Start byte: pending only if the full rune does not fit.
			if want := runeLen(b); want > i {
				return i
			}
			return 0
		}
		// Continuation byte, keep scanning backwards.
	}
	return 0
}

// runeLen returns the encoded length implied by a UTF-8 start byte.
func runeLen(b byte) int {
	switch {
	case b >= 0xF0:
		return 4
	case b >= 0xE0:
		return 3
	case b >= 0xC0:
		return 2
	default:
		return 1
	}
}
