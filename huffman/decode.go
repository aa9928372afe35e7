package huffman

import (
	"io"

	"github.com/pkg/errors"

	"github.com/atiedebee/huff/bitstream"
)

// Decode rebuilds the tree from ft and decodes bits from r into w until the EOF symbol is reached.  It
// returns the number of bytes written.  Running out of bits first is reported as ErrTruncated.
func Decode(ft *FrequencyTable, r *bitstream.Reader, w io.ByteWriter) (int64, error) {
	if err := ft.Validate(); err != nil {
		return 0, err
	}
	head, err := BuildTree(ft)
	if err != nil {
		return 0, err
	}

	var n int64
	parseNode := head
	for {
		nextStep, err := r.ReadBit()
		if err != nil {
			if err == io.EOF {
				return n, errors.Wrapf(ErrTruncated, "after %d bytes", n)
			}
			return n, err
		}

		// A leaf root stands for a one-bit code; the bit is consumed without moving.
		if !parseNode.IsLeaf() {
			if nextStep == 0 {
				parseNode = parseNode.Left
			} else {
				parseNode = parseNode.Right
			}
		}
		if !parseNode.IsLeaf() {
			continue
		}

		if parseNode.Symbol == EOF {
			return n, nil
		}
		if err := w.WriteByte(byte(parseNode.Symbol)); err != nil {
			return n, errors.WithStack(err)
		}
		n++
		parseNode = head
	}
}
