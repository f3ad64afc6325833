// Package ppm writes and inspects binary P6 pixmaps.
//
// The header is emitted on a single line with one space after every field
// and no newline: "P6 {width} {height} 255 ". Pixel triples follow in
// row-major order.
package ppm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

const (
	Magic    = "P6"
	MaxValue = 255
	Channels = 3
)

var (
	ErrNotP6        = errors.New("ppm: not a binary P6 pixmap")
	ErrBadHeader    = errors.New("ppm: malformed header")
	ErrUnsupported  = errors.New("ppm: unsupported max value")
	ErrHeaderNeeded = errors.New("ppm: header must be written before pixels")
)

// Header returns the ASCII header for a width x height raster.
func Header(width, height int) []byte {
	return []byte(fmt.Sprintf("%s %d %d %d ", Magic, width, height, MaxValue))
}

// ExpectedSize is the exact byte length of a complete file.
func ExpectedSize(width, height int) int64 {
	return int64(len(Header(width, height))) + int64(width)*int64(height)*Channels
}

// Writer buffers a P6 stream. Callers must Flush when done.
type Writer struct {
	bw      *bufio.Writer
	written int64
	header  bool
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriterSize(w, 64*1024)}
}

func (w *Writer) WriteHeader(width, height int) error {
	n, err := w.bw.Write(Header(width, height))
	w.written += int64(n)
	if err != nil {
		return err
	}
	w.header = true
	return nil
}

func (w *Writer) WritePixel(rgb [3]byte) error {
	if !w.header {
		return ErrHeaderNeeded
	}
	n, err := w.bw.Write(rgb[:])
	w.written += int64(n)
	return err
}

func (w *Writer) Flush() error {
	return w.bw.Flush()
}

// Written counts bytes accepted by the buffer, flushed or not.
func (w *Writer) Written() int64 {
	return w.written
}

// Info describes a parsed header.
type Info struct {
	Width     int
	Height    int
	MaxValue  int
	HeaderLen int
}

// DataSize is the number of pixel bytes the header announces.
func (i Info) DataSize() int64 {
	return int64(i.Width) * int64(i.Height) * Channels
}

// ReadHeader parses a P6 header from r, consuming exactly the header bytes
// including the single whitespace byte that ends it. Comment lines starting
// with '#' are skipped. A reader without ReadByte is wrapped in a bufio.Reader,
// which may read past the header.
func ReadHeader(r io.Reader) (Info, error) {
	var info Info
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}

	tokens := make([]string, 0, 4)
	tok := make([]byte, 0, 8)
	n := 0
	for len(tokens) < 4 {
		b, err := br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return info, fmt.Errorf("%w: truncated after %d bytes", ErrBadHeader, n)
			}
			return info, err
		}
		n++

		switch {
		case b == '#' && len(tok) == 0:
			for b != '\n' {
				if b, err = br.ReadByte(); err != nil {
					return info, fmt.Errorf("%w: unterminated comment", ErrBadHeader)
				}
				n++
			}
		case isSpace(b):
			if len(tok) > 0 {
				tokens = append(tokens, string(tok))
				tok = tok[:0]
			}
		default:
			if len(tok) >= 10 {
				return info, fmt.Errorf("%w: field too long", ErrBadHeader)
			}
			tok = append(tok, b)
		}
	}

	if tokens[0] != Magic {
		return info, fmt.Errorf("%w: magic %q", ErrNotP6, tokens[0])
	}

	fields := []*int{&info.Width, &info.Height, &info.MaxValue}
	for i, dst := range fields {
		v, err := strconv.Atoi(tokens[i+1])
		if err != nil || v <= 0 {
			return info, fmt.Errorf("%w: field %q", ErrBadHeader, tokens[i+1])
		}
		*dst = v
	}
	if info.MaxValue != MaxValue {
		return info, fmt.Errorf("%w: %d", ErrUnsupported, info.MaxValue)
	}

	info.HeaderLen = n
	return info, nil
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
