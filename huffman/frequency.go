package huffman

import (
	"io"

	"github.com/pkg/errors"
)

// FrequencyTable holds one occurrence count per symbol.  The EOF entry is always 1.
type FrequencyTable [AlphabetSize]uint64

// CountFrequencies reads r to exhaustion and counts every byte.
func CountFrequencies(r io.ByteReader) (FrequencyTable, error) {
	var ft FrequencyTable

	for {
		ch, err := r.ReadByte()
		if err != nil {
			if err == io.EOF {
				break
			}
			return ft, errors.Wrap(err, "huffman: counting frequencies")
		}
		ft[ch]++
	}

	ft[EOF] = 1
	return ft, nil
}

// Total returns the number of input bytes the table describes, excluding the sentinel.
func (ft *FrequencyTable) Total() uint64 {
	var sum uint64
	for _, n := range ft[:EOF] {
		sum += n
	}
	return sum
}

// Distinct returns how many symbols, the sentinel included, have a nonzero count.
func (ft *FrequencyTable) Distinct() int {
	n := 0
	for _, count := range ft {
		if count != 0 {
			n++
		}
	}
	return n
}

// Validate checks the sentinel invariant.  Tables read from untrusted input must pass it before use.
func (ft *FrequencyTable) Validate() error {
	if ft[EOF] != 1 {
		return errors.Wrapf(ErrInvalidTable, "end-of-stream count %d", ft[EOF])
	}
	return nil
}
