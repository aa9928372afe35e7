package huffman

import (
	"strings"
)

// Code is a codeword as a sequence of 0/1 values, root first.
type Code []uint8

func (c Code) String() string {
	var sb strings.Builder
	for _, bit := range c {
		sb.WriteByte('0' + bit)
	}
	return sb.String()
}

// CodeTable maps each symbol to its codeword.  Symbols absent from the tree have a nil entry.
type CodeTable [AlphabetSize]Code

// BuildCodeTable walks the tree from root, appending 0 for every left turn and 1 for every right turn.
//
// A root that is itself a leaf gets the one-bit code 0, since an empty codeword cannot be written.
// Decode consumes exactly one bit for such a tree.
func BuildCodeTable(root *Node) CodeTable {
	var codes CodeTable
	if root.IsLeaf() {
		codes[root.Symbol] = Code{0}
		return codes
	}

	tempCodes := make(Code, 0, 32)
	initCodes(root, &codes, tempCodes)
	return codes
}

func initCodes(head *Node, codes *CodeTable, tempCodes Code) {
	if head.IsLeaf() {
		codes[head.Symbol] = append(Code(nil), tempCodes...)
		return
	}

	// Each child sees the path up to head plus its own turn; nothing leaks between siblings.
	initCodes(head.Left, codes, append(tempCodes, 0))
	initCodes(head.Right, codes, append(tempCodes, 1))
}
