/*
Package archive reads and writes huff files: a header holding the frequency table, followed by the
Huffman coded payload.

	magic    "HUF1"
	size     uvarint, always 257
	counts   257 uvarints in symbol order, the end-of-stream count last
	payload  codewords most significant bit first, ending with the end-of-stream codeword and
	         zero padding to a byte boundary

The tree is never stored; both sides rebuild it from the counts.
*/
package archive

import (
	"bufio"
	"io"
	"os"

	"github.com/op/go-logging"
	"github.com/pkg/errors"

	"github.com/atiedebee/huff/bitstream"
	"github.com/atiedebee/huff/huffman"
)

var log = logging.MustGetLogger("huff/archive")

// LogModules lists the logger names used by this module.
var LogModules = []string{
	"huff/archive",
	"huff/huffman",
}

// ErrFormat is returned when an input does not start with a valid header.
var ErrFormat = errors.New("archive: malformed header")

// Stats describes one Encode or Decode call.
type Stats struct {
	InputBytes  int64
	OutputBytes int64
	PayloadBits int64
	Frequencies huffman.FrequencyTable
}

// Ratio returns OutputBytes relative to InputBytes, or 0 when there was no input.
func (st *Stats) Ratio() float64 {
	if st.InputBytes == 0 {
		return 0
	}
	return float64(st.OutputBytes) / float64(st.InputBytes)
}

// Tree rebuilds the tree both sides used.
func (st *Stats) Tree() (*huffman.Node, error) {
	return huffman.BuildTree(&st.Frequencies)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

type countingReader struct {
	r io.Reader
	n int64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.n += int64(n)
	return n, err
}

// Encode compresses src into dst.  src is read twice: once to count frequencies and once, after
// seeking back to the start, to encode.  dst is not closed.
func Encode(src io.ReadSeeker, dst io.Writer) (Stats, error) {
	var st Stats

	ft, err := huffman.CountFrequencies(bufio.NewReader(src))
	if err != nil {
		return st, err
	}
	st.Frequencies = ft
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return st, errors.Wrap(err, "archive: rewinding input")
	}

	root, err := huffman.BuildTree(&ft)
	if err != nil {
		return st, err
	}
	codes := huffman.BuildCodeTable(root)
	dumpTables(&ft, &codes)

	cw := &countingWriter{w: dst}
	if err := WriteHeader(cw, &ft); err != nil {
		return st, err
	}

	bits := bitstream.NewWriter(cw)
	st.InputBytes, err = huffman.Encode(bufio.NewReader(src), &codes, bits)
	st.PayloadBits = bits.BitsWritten()
	st.OutputBytes = cw.n
	if err != nil {
		return st, err
	}

	// The second pass must see exactly what the first pass counted.
	if uint64(st.InputBytes) != ft.Total() {
		return st, errors.Errorf("archive: input changed between passes: counted %d bytes, encoded %d",
			ft.Total(), st.InputBytes)
	}
	return st, nil
}

// Decode decompresses src, which must start with a header, into dst.  dst is not closed.
func Decode(src io.Reader, dst io.Writer) (Stats, error) {
	var st Stats

	cr := &countingReader{r: src}
	br := bufio.NewReader(cr)
	ft, err := ReadHeader(br)
	if err != nil {
		return st, err
	}
	st.Frequencies = ft

	bits := bitstream.NewReader(br)
	w := bufio.NewWriter(dst)
	st.OutputBytes, err = huffman.Decode(&ft, bits, w)
	st.PayloadBits = bits.BitsRead()
	st.InputBytes = cr.n
	if ferr := w.Flush(); err == nil {
		err = errors.WithStack(ferr)
	}
	return st, err
}

// EncodeFile compresses the file at inputPath into a new file at outputPath.
func EncodeFile(inputPath, outputPath string) (Stats, error) {
	log.Infof("encoding %s -> %s", inputPath, outputPath)
	return withFiles(inputPath, outputPath, func(in *os.File, out io.Writer) (Stats, error) {
		return Encode(in, out)
	})
}

// DecodeFile decompresses the huff file at inputPath into a new file at outputPath.
func DecodeFile(inputPath, outputPath string) (Stats, error) {
	log.Infof("decoding %s -> %s", inputPath, outputPath)
	return withFiles(inputPath, outputPath, func(in *os.File, out io.Writer) (Stats, error) {
		return Decode(in, out)
	})
}

// withFiles opens both files, runs fn and closes them again.  A failed run removes the partial output.
func withFiles(inputPath, outputPath string, fn func(in *os.File, out io.Writer) (Stats, error)) (st Stats, err error) {
	fin, err := os.Open(inputPath)
	if err != nil {
		return st, errors.WithStack(err)
	}
	defer fin.Close()

	if same, serr := sameFile(fin, outputPath); serr == nil && same {
		return st, errors.Errorf("archive: %s: input and output are the same file", outputPath)
	}

	fout, err := os.Create(outputPath)
	if err != nil {
		return st, errors.WithStack(err)
	}
	defer func() {
		if cerr := fout.Close(); err == nil && cerr != nil {
			err = errors.WithStack(cerr)
		}
		if err != nil {
			os.Remove(outputPath)
		}
	}()

	return fn(fin, fout)
}

func sameFile(f *os.File, path string) (bool, error) {
	fi, err := f.Stat()
	if err != nil {
		return false, err
	}
	oi, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return os.SameFile(fi, oi), nil
}

func dumpTables(ft *huffman.FrequencyTable, codes *huffman.CodeTable) {
	if !log.IsEnabledFor(logging.DEBUG) {
		return
	}

	log.Debugf("%d distinct symbols, %d bytes", ft.Distinct(), ft.Total())
	for s, count := range ft {
		if count == 0 {
			continue
		}
		log.Debugf("%-6v %10d  %v", huffman.Symbol(s), count, codes[s])
	}
}
