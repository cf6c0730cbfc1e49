// Package bitstream adapts github.com/icza/bitio's MSB-first bit reader and
// writer to the vocabulary the arithmetic coder expects: PutBit/GetBit,
// PutChar/GetChar, and PutBits/GetBits, with end-of-file on read surfaced as
// a plain io.EOF that callers in engine treat as an implicit zero bit.
package bitstream

import (
	"io"

	"github.com/icza/bitio"
)

// Writer is a buffered, MSB-first bit sink backed by an io.Writer. The
// final partial byte is padded with zero bits on Close.
type Writer struct {
	bw *bitio.Writer
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bitio.NewWriter(w)}
}

// PutBit writes a single bit (0 or 1); any nonzero value is treated as 1.
func (w *Writer) PutBit(bit int) error {
	return w.bw.WriteBool(bit != 0)
}

// PutChar writes a single byte-aligned byte. Only valid when the stream is
// currently byte-aligned.
func (w *Writer) PutChar(c byte) error {
	return w.bw.WriteByte(c)
}

// PutBits writes the n least significant bits of value, MSB first.
func (w *Writer) PutBits(value uint64, n uint8) error {
	return w.bw.WriteBits(value, n)
}

// Close flushes any buffered bits, padding the final partial byte with
// zeros.
func (w *Writer) Close() error {
	return w.bw.Close()
}

// Reader is a buffered, MSB-first bit source backed by an io.Reader.
type Reader struct {
	br *bitio.Reader
}

// NewReader returns a Reader that reads from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bitio.NewReader(r)}
}

// GetBit reads a single bit, returning io.EOF once the underlying stream is
// exhausted.
func (r *Reader) GetBit() (int, error) {
	b, err := r.br.ReadBool()
	if err != nil {
		return 0, normalizeEOF(err)
	}
	if b {
		return 1, nil
	}
	return 0, nil
}

// GetChar reads a single byte-aligned byte.
func (r *Reader) GetChar() (byte, error) {
	c, err := r.br.ReadByte()
	if err != nil {
		return 0, normalizeEOF(err)
	}
	return c, nil
}

// GetBits reads an n-bit unsigned integer, MSB first.
func (r *Reader) GetBits(n uint8) (uint64, error) {
	v, err := r.br.ReadBits(n)
	if err != nil {
		return 0, normalizeEOF(err)
	}
	return v, nil
}

// normalizeEOF collapses io.ErrUnexpectedEOF (bitio's error when a partial
// read hits end of stream) into io.EOF, so callers only need to check for
// one end-of-file sentinel.
func normalizeEOF(err error) error {
	if err == io.ErrUnexpectedEOF {
		return io.EOF
	}
	return err
}
