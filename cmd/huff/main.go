package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/op/go-logging"
	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/atiedebee/huff/archive"
	"github.com/atiedebee/huff/huffman"
)

var log = logging.MustGetLogger("huff")

const progName = "huff"

const usageMessage = `Usage: huff [OPTIONS] [INPUT]

Compress or decompress INPUT (standard input if absent) with static Huffman coding.

Options:
  -c         compress (default)
  -d         decompress
  -o OUTPUT  write to OUTPUT instead of standard output
  -p         print the Huffman tree to standard error
  -v         print progress and byte counts to standard error
  -debug     log frequency and code tables
`

type Mode uint8

const (
	CompressMode Mode = iota
	DecompressMode
)

type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

func usageErrorf(format string, args ...interface{}) error {
	return &usageError{fmt.Sprintf(format, args...)}
}

type options struct {
	mode        Mode
	finName     string
	foutName    string
	doPrintTree bool
	verbose     bool
	debug       bool
}

func parseArgs(args []string) (*options, error) {
	var opts options
	var compress, decompress bool

	fs := flag.NewFlagSet(progName, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&compress, "c", false, "")
	fs.BoolVar(&decompress, "d", false, "")
	fs.StringVar(&opts.foutName, "o", "", "")
	fs.BoolVar(&opts.doPrintTree, "p", false, "")
	fs.BoolVar(&opts.verbose, "v", false, "")
	fs.BoolVar(&opts.debug, "debug", false, "")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, err
		}
		return nil, usageErrorf("%v", err)
	}

	switch {
	case compress && decompress:
		return nil, usageErrorf("-c and -d are mutually exclusive")
	case decompress:
		opts.mode = DecompressMode
	}

	switch fs.NArg() {
	case 0:
	case 1:
		opts.finName = fs.Arg(0)
	default:
		return nil, usageErrorf("at most one input file, got %d", fs.NArg())
	}
	return &opts, nil
}

func startLogging(w io.Writer, opts *options) {
	backend := logging.NewLogBackend(w, progName+": ", 0)
	formatter := logging.MustStringFormatter("%{level:8s} %{module:-14s} | %{message}")
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, formatter))
	leveled.SetLevel(logging.WARNING, "")
	if opts.verbose {
		leveled.SetLevel(logging.INFO, "")
	}
	if opts.debug {
		for _, module := range archive.LogModules {
			leveled.SetLevel(logging.DEBUG, module)
		}
	}
	logging.SetBackend(leveled)
}

// run is main without the process exit, so that it can be driven from tests.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}
	startLogging(stderr, opts)

	st, err := transcode(opts, stdin, stdout)
	if err != nil {
		return err
	}

	if opts.doPrintTree {
		head, err := st.Tree()
		if err != nil {
			return err
		}
		if err := huffman.PrintTree(stderr, head); err != nil {
			return err
		}
	}
	if opts.verbose {
		printStats(stderr, &st)
	}
	return nil
}

func transcode(opts *options, stdin io.Reader, stdout io.Writer) (st archive.Stats, err error) {
	if opts.finName != "" && opts.foutName != "" {
		if opts.mode == DecompressMode {
			return archive.DecodeFile(opts.finName, opts.foutName)
		}
		return archive.EncodeFile(opts.finName, opts.foutName)
	}

	var fin io.ReadSeeker
	if opts.finName != "" {
		f, oerr := os.Open(opts.finName)
		if oerr != nil {
			return st, errors.WithStack(oerr)
		}
		defer f.Close()
		fin = f
	} else {
		// Compression reads its input twice, which standard input cannot do.
		data, rerr := io.ReadAll(stdin)
		if rerr != nil {
			return st, errors.Wrap(rerr, "reading standard input")
		}
		fin = bytes.NewReader(data)
	}

	fout := stdout
	if opts.foutName != "" {
		f, cerr := os.Create(opts.foutName)
		if cerr != nil {
			return st, errors.WithStack(cerr)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = errors.WithStack(cerr)
			}
		}()
		fout = f
	}
	w := bufio.NewWriter(fout)

	switch opts.mode {
	case CompressMode:
		st, err = archive.Encode(fin, w)
	case DecompressMode:
		st, err = archive.Decode(fin, w)
	}
	if ferr := w.Flush(); err == nil {
		err = errors.WithStack(ferr)
	}
	return st, err
}

func printStats(w io.Writer, st *archive.Stats) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "input %d bytes, output %d bytes (%.1f%%)\n", st.InputBytes, st.OutputBytes, 100*st.Ratio())
}

func main() {
	err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	switch {
	case err == nil:
	case err == flag.ErrHelp:
		io.WriteString(os.Stdout, usageMessage)
	default:
		var uerr *usageError
		if errors.As(err, &uerr) {
			fmt.Fprintf(os.Stderr, "%s: %v\n\n%s", progName, err, usageMessage)
			os.Exit(2)
		}
		log.Errorf("%v", err)
		os.Exit(1)
	}
}
