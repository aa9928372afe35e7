package huffman

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const padding = "    "

// PrintTree draws the tree rooted at root sideways: the left subtree above its parent, the right one
// below.  Leaves show their symbol and weight.
func PrintTree(w io.Writer, root *Node) error {
	tp := treePrinter{w: w}
	if root.IsLeaf() {
		tp.printf("---%v (%d)\n", root.Symbol, root.Weight)
	} else {
		tp.printTree(root, 1, 0)
	}
	return errors.WithStack(tp.err)
}

type treePrinter struct {
	w   io.Writer
	err error
}

func (tp *treePrinter) printf(format string, args ...interface{}) {
	if tp.err != nil {
		return
	}
	_, tp.err = fmt.Fprintf(tp.w, format, args...)
}

func (tp *treePrinter) padd(depth int) {
	if depth > 0 {
		tp.printf("%s", strings.Repeat(padding, depth))
	}
}

func (tp *treePrinter) printTree(head *Node, depth int, isabove int) {
	if !head.Left.IsLeaf() {
		tp.printTree(head.Left, depth+1, 1)
	} else {
		tp.padd(depth)
		tp.printf("/--%v (%d)\n", head.Left.Symbol, head.Left.Weight)
	}

	tp.padd(depth - 1)
	switch {
	case isabove > 0:
		tp.printf("/--<\n")
	case isabove == 0:
		tp.printf("---<\n")
	default:
		tp.printf("\\--<\n")
	}

	if !head.Right.IsLeaf() {
		tp.printTree(head.Right, depth+1, -1)
	} else {
		tp.padd(depth)
		tp.printf("\\--%v (%d)\n", head.Right.Symbol, head.Right.Weight)
	}
}
