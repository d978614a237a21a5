package memdex

import "bytes"

// nodeID addresses a node inside the tree's arena. IDs are stable for
// the lifetime of the node; freed IDs are recycled by later splits.
type nodeID uint32

// nilNode is the reserved "no node" ID (arena slot 0 is never used).
const nilNode nodeID = 0

// node is a B+tree node in tagged representation: a leaf holds
// parallel keys/values plus a sibling link, a branch holds keys plus a
// children slice one longer. Parent and sibling references are arena
// IDs, never owning pointers.
type node struct {
	id     nodeID
	isLeaf bool

	parent nodeID // nilNode for the root
	next   nodeID // next leaf in ascending key order (leaf only)

	keys     [][]byte
	values   [][]byte // leaf only
	children []nodeID // branch only
}

// locate is the only key-comparison routine in the tree. It returns
// the first position i with key < keys[i] (i == numKeys if none), and
// whether keys[i-1] is an exact match. For a branch node, i is the
// child slot to descend into: an exact separator match routes to its
// right child, because separators are minimums of their right
// subtrees. For a leaf, an exact match sits at i-1 and a miss inserts
// at i.
func (n *node) locate(key []byte) (int, bool) {
	i := 0
	for i < len(n.keys) && bytes.Compare(key, n.keys[i]) >= 0 {
		i++
	}
	exact := i > 0 && bytes.Equal(key, n.keys[i-1])
	return i, exact
}

func (n *node) numKeys() int {
	return len(n.keys)
}

// insertAt inserts value into slice at index, shifting the tail right.
func insertAt(slice [][]byte, index int, value []byte) [][]byte {
	slice = append(slice, nil)
	copy(slice[index+1:], slice[index:])
	slice[index] = value
	return slice
}

// removeAt removes element at index from slice
func removeAt(slice [][]byte, index int) [][]byte {
	return append(slice[:index], slice[index+1:]...)
}

// insertChildAt inserts child into slice at index, shifting the tail right.
func insertChildAt(slice []nodeID, index int, child nodeID) []nodeID {
	slice = append(slice, nilNode)
	copy(slice[index+1:], slice[index:])
	slice[index] = child
	return slice
}

// removeChildAt removes child at index from slice
func removeChildAt(slice []nodeID, index int) []nodeID {
	return append(slice[:index], slice[index+1:]...)
}
