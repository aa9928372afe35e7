package archive

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/atiedebee/huff/huffman"
)

var magic = [4]byte{'H', 'U', 'F', '1'}

// WriteHeader writes the magic, the alphabet size and every count of ft as uvarints.
func WriteHeader(w io.Writer, ft *huffman.FrequencyTable) error {
	buf := make([]byte, 0, len(magic)+binary.MaxVarintLen16+huffman.AlphabetSize)
	buf = append(buf, magic[:]...)
	buf = binary.AppendUvarint(buf, huffman.AlphabetSize)
	for _, count := range ft {
		buf = binary.AppendUvarint(buf, count)
	}

	_, err := w.Write(buf)
	return errors.Wrap(err, "archive: writing header")
}

// ReadHeader parses a header written by WriteHeader, leaving r positioned at the first payload byte.
// Every structural problem is reported as ErrFormat; failures of r itself are passed through.
func ReadHeader(r io.ByteReader) (huffman.FrequencyTable, error) {
	var ft huffman.FrequencyTable
	src := &sourceReader{r: r}

	for i, want := range magic {
		c, err := src.ReadByte()
		if err != nil {
			return ft, src.headerError(err, "reading magic")
		}
		if c != want {
			return ft, errors.Wrapf(ErrFormat, "bad magic byte %d: %#02x", i, c)
		}
	}

	size, err := binary.ReadUvarint(src)
	if err != nil {
		return ft, src.headerError(err, "reading alphabet size")
	}
	if size != huffman.AlphabetSize {
		return ft, errors.Wrapf(ErrFormat, "alphabet size %d, want %d", size, huffman.AlphabetSize)
	}

	for s := range ft {
		ft[s], err = binary.ReadUvarint(src)
		if err != nil {
			return ft, src.headerError(err, "reading count of symbol %d", s)
		}
	}

	if err := ft.Validate(); err != nil {
		return ft, errors.Wrap(ErrFormat, err.Error())
	}
	return ft, nil
}

// sourceReader remembers whether a read failure came from the underlying source, so that it can be
// told apart from a short or overlong header.
type sourceReader struct {
	r   io.ByteReader
	err error
}

func (sr *sourceReader) ReadByte() (byte, error) {
	c, err := sr.r.ReadByte()
	if err != nil && err != io.EOF {
		sr.err = err
	}
	return c, err
}

func (sr *sourceReader) headerError(err error, format string, args ...interface{}) error {
	if sr.err != nil {
		return errors.Wrapf(sr.err, "archive: "+format, args...)
	}
	return errors.Wrapf(ErrFormat, format+": %v", append(args, err)...)
}
