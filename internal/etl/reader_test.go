package etl

import (
	"io"
	"strings"
	"testing"
)

// chunkReader yields its input in fixed-size chunks to exercise rune
// sequences split across read boundaries.
type chunkReader struct {
	data []byte
	size int
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if len(c.data) == 0 {
		return 0, io.EOF
	}
	n := c.size
	if n > len(c.data) {
		n = len(c.data)
	}
	n = copy(p, c.data[:n])
	c.data = c.data[n:]
	return n, nil
}

func TestWrapReader_StripsBOM(t *testing.T) {
	input := "\xEF\xBB\xBFItem Num,Description\n"
	got, err := io.ReadAll(WrapReader(strings.NewReader(input)))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(got) != "Item Num,Description\n" {
		t.Errorf("output = %q, want BOM removed", got)
	}
}

func TestWrapReader_NoBOMPassthrough(t *testing.T) {
	input := "Item Num,Description\n"
	got, err := io.ReadAll(WrapReader(strings.NewReader(input)))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(got) != input {
		t.Errorf("output = %q, want %q", got, input)
	}
}

func TestWrapReader_ShortInput(t *testing.T) {
	got, err := io.ReadAll(WrapReader(strings.NewReader("ab")))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(got) != "ab" {
		t.Errorf("output = %q, want %q", got, "ab")
	}
}

func TestWrapReader_ReplacesInvalidUTF8(t *testing.T) {
	input := "caf\xFF latte"
	got, err := io.ReadAll(WrapReader(strings.NewReader(input)))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	want := "caf� latte"
	if string(got) != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestWrapReader_RuneSplitAcrossChunks(t *testing.T) {
	// "jalapeño peppers" with the two-byte ñ; chunk size 1 forces every
	// multi-byte rune across a read boundary.
	input := "jalapeño peppers, café"
	got, err := io.ReadAll(WrapReader(&chunkReader{data: []byte(input), size: 1}))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(got) != input {
		t.Errorf("output = %q, want %q unchanged", got, input)
	}
}

func TestWrapReader_TruncatedRuneAtEOF(t *testing.T) {
	// A start byte with no continuation at end of stream is replaced, not
	// silently dropped.
	input := []byte("abc\xC3")
	got, err := io.ReadAll(WrapReader(&chunkReader{data: input, size: 2}))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	want := "abc�"
	if string(got) != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestNewCSVReader_RaggedRows(t *testing.T) {
	r := NewCSVReader(strings.NewReader("a,b,c\n1,2\n4,5,6,7\n"))
	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		rows = append(rows, rec)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3 (ragged rows tolerated)", len(rows))
	}
	if len(rows[1]) != 2 || len(rows[2]) != 4 {
		t.Errorf("row lengths = %d, %d; want 2 and 4", len(rows[1]), len(rows[2]))
	}
}
