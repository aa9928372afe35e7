package huffman

import (
	"io"

	"github.com/pkg/errors"

	"github.com/atiedebee/huff/bitstream"
)

// Encode reads r to exhaustion, writes the codeword of every byte to w, then writes the EOF codeword
// and closes w.  It returns the number of bytes read from r.
//
// Every symbol in r must have a code; a missing one means codes was not built from r's frequencies,
// and Encode stops with ErrMissingCode rather than produce undecodable output.
func Encode(r io.ByteReader, codes *CodeTable, w *bitstream.Writer) (int64, error) {
	var n int64

	for {
		ch, err := r.ReadByte()
		if err != nil {
			if err == io.EOF {
				break
			}
			return n, errors.Wrap(err, "huffman: reading input")
		}

		if err := writeSymbol(w, codes, Symbol(ch)); err != nil {
			return n, err
		}
		n++
	}

	if err := writeSymbol(w, codes, EOF); err != nil {
		return n, err
	}
	return n, w.Close()
}

func writeSymbol(w *bitstream.Writer, codes *CodeTable, s Symbol) error {
	code := codes[s]
	if code == nil {
		return errors.Wrapf(ErrMissingCode, "symbol %v", s)
	}
	return w.WriteCode(code)
}
