package huffman

import (
	"container/heap"
)

// Node is a Huffman tree node.  Leaves have no children; internal nodes always have both, and their
// Weight is the sum of their children's weights.  Symbol is meaningful only for leaves.
type Node struct {
	Symbol      Symbol
	Weight      uint64
	Left, Right *Node
}

func (n *Node) IsLeaf() bool {
	return n.Left == nil
}

// Leaves returns the number of leaves below and including n.
func (n *Node) Leaves() int {
	if n.IsLeaf() {
		return 1
	}
	return n.Left.Leaves() + n.Right.Leaves()
}

// queueItem orders nodes by weight, then by the order they entered the queue.
type queueItem struct {
	node *Node
	seq  int
}

type nodeQueue []queueItem

func (q nodeQueue) Len() int { return len(q) }

func (q nodeQueue) Less(i, j int) bool {
	if q[i].node.Weight != q[j].node.Weight {
		return q[i].node.Weight < q[j].node.Weight
	}
	return q[i].seq < q[j].seq
}

func (q nodeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *nodeQueue) Push(x interface{}) { *q = append(*q, x.(queueItem)) }

func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// BuildTree builds the Huffman tree for ft.
//
// Ties between equal weights are broken by queue entry order: leaves enter in ascending symbol order,
// and each merged node enters after everything already queued.  Of the two nodes removed for a merge,
// the first becomes the left (0) child.  The same table therefore always yields the same tree.
//
// If only one symbol has a nonzero count the returned root is that leaf.
func BuildTree(ft *FrequencyTable) (*Node, error) {
	q := make(nodeQueue, 0, AlphabetSize)
	seq := 0
	for s, count := range ft {
		if count == 0 {
			continue
		}
		q = append(q, queueItem{&Node{Symbol: Symbol(s), Weight: count}, seq})
		seq++
	}
	if len(q) == 0 {
		return nil, ErrInvalidTable
	}
	leaves := len(q)
	heap.Init(&q)

	for q.Len() > 1 {
		left := heap.Pop(&q).(queueItem).node
		right := heap.Pop(&q).(queueItem).node

		parent := &Node{
			Weight: left.Weight + right.Weight,
			Left:   left,
			Right:  right,
		}
		heap.Push(&q, queueItem{parent, seq})
		seq++
	}

	root := heap.Pop(&q).(queueItem).node
	log.Debugf("built tree: %d leaves, weight %d", leaves, root.Weight)
	return root, nil
}
