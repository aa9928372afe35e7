/*
Package bitstream packs single bits into bytes and unpacks them again.  Within each byte, bits are
addressed most significant first.
*/
package bitstream

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// Writer packs bits into an underlying byte sink.  Bits accumulate in c until eight are present, at
// which point a full byte is emitted.
type Writer struct {
	w      *bufio.Writer
	closer io.Closer

	c      byte
	cindex uint8

	bits   int64
	closed bool
}

// NewWriter returns a Writer emitting packed bytes to w.  If w is also an io.Closer, Close releases it.
func NewWriter(w io.Writer) *Writer {
	bw := &Writer{w: bufio.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		bw.closer = c
	}
	return bw
}

// WriteBit appends one bit.  Any nonzero value is treated as 1.
func (bw *Writer) WriteBit(bit uint8) error {
	if bw.closed {
		return errors.New("bitstream: write on closed writer")
	}

	bw.c <<= 1
	if bit != 0 {
		bw.c |= 1
	}
	bw.cindex++
	bw.bits++

	if bw.cindex == 8 {
		return bw.emit()
	}
	return nil
}

// WriteCode appends every bit of code in order.
func (bw *Writer) WriteCode(code []uint8) error {
	for _, bit := range code {
		if err := bw.WriteBit(bit); err != nil {
			return err
		}
	}
	return nil
}

func (bw *Writer) emit() error {
	err := bw.w.WriteByte(bw.c)
	bw.c, bw.cindex = 0, 0
	return errors.WithStack(err)
}

// BitsWritten returns the number of bits written so far, excluding padding.
func (bw *Writer) BitsWritten() int64 {
	return bw.bits
}

// Close pads a partial byte with trailing zero bits, flushes everything buffered and closes the
// underlying sink when it is closable.  Calling Close more than once is a no-op.
func (bw *Writer) Close() error {
	if bw.closed {
		return nil
	}
	bw.closed = true

	var err error
	if bw.cindex > 0 {
		bw.c <<= 8 - bw.cindex
		err = bw.emit()
	}
	if err == nil {
		err = errors.WithStack(bw.w.Flush())
	}
	if bw.closer != nil {
		if cerr := bw.closer.Close(); err == nil {
			err = errors.WithStack(cerr)
		}
	}
	return err
}
