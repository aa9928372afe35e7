package bitstream

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// Reader unpacks bits from an underlying byte source.
type Reader struct {
	r io.ByteReader

	c      byte
	cindex uint8

	bits int64
}

// NewReader returns a Reader over r.  When r already implements io.ByteReader it is read directly, so
// a reader shared with an earlier consumer (such as a header parser) keeps its position.
func NewReader(r io.Reader) *Reader {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{r: br, cindex: 8}
}

func readBit(c, i byte) uint8 {
	return (c & (0x80 >> i)) >> (7 - i)
}

// ReadBit returns the next bit.  Once the source is exhausted it returns io.EOF unwrapped; other read
// errors carry a stack.
func (br *Reader) ReadBit() (uint8, error) {
	if br.cindex >= 8 {
		c, err := br.r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return 0, io.EOF
			}
			return 0, errors.WithStack(err)
		}
		br.c, br.cindex = c, 0
	}

	bit := readBit(br.c, br.cindex)
	br.cindex++
	br.bits++
	return bit, nil
}

// BitsRead returns the number of bits handed out so far.
func (br *Reader) BitsRead() int64 {
	return br.bits
}
