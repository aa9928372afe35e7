/*
Package huffman implements static Huffman coding over a 257-symbol alphabet: the 256 byte values plus
an end-of-stream sentinel.

A FrequencyTable is counted from the input, BuildTree turns it into a full binary tree, BuildCodeTable
derives one prefix-free Code per leaf, and Encode/Decode move bytes through a bitstream using them.
Decoding never receives the tree itself; it rebuilds it from the same FrequencyTable, so BuildTree is
fully deterministic.
*/
package huffman

import (
	"strconv"

	"github.com/op/go-logging"
	"github.com/pkg/errors"
)

var log = logging.MustGetLogger("huff/huffman")

var (
	ErrInvalidTable = errors.New("huffman: invalid frequency table")
	ErrMissingCode  = errors.New("huffman: no code for symbol")
	ErrTruncated    = errors.New("huffman: bit stream ended before end-of-stream symbol")
)

// Symbol is a byte value in [0, 255] or the end-of-stream sentinel EOF.
type Symbol uint16

const (
	// EOF marks the end of the encoded stream.  It never occurs in raw input.
	EOF Symbol = 256

	AlphabetSize = 257
)

func (s Symbol) String() string {
	if s == EOF {
		return "EOF"
	}
	return strconv.QuoteRune(rune(s))
}
