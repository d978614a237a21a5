package memdex

// Internal tree operations. All of them run on the calling goroutine
// and restore every structural invariant before returning, so callers
// never observe a transiently unbalanced tree.

// findLeaf descends from the root to the leaf owning key.
func (t *Tree) findLeaf(key []byte) *node {
	n := t.arena.get(t.root)
	for !n.isLeaf {
		i, _ := n.locate(key)
		n = t.arena.get(n.children[i])
	}
	return n
}

// search returns the value for key, or ErrKeyNotFound.
func (t *Tree) search(key []byte) ([]byte, error) {
	leaf := t.findLeaf(key)
	i, exact := leaf.locate(key)
	if !exact {
		return nil, ErrKeyNotFound
	}
	return leaf.values[i-1], nil
}

// insert sets key to value and reports whether a new key was added.
// An existing key is overwritten in place with no structural change.
func (t *Tree) insert(key, value []byte) bool {
	leaf := t.findLeaf(key)
	i, exact := leaf.locate(key)
	if exact {
		leaf.values[i-1] = value
		return false
	}

	leaf.keys = insertAt(leaf.keys, i, key)
	leaf.values = insertAt(leaf.values, i, value)
	if leaf.numKeys() > t.order {
		t.split(leaf)
	}
	return true
}

// split divides an oversized node at the deterministic midpoint and
// pushes the separator into the parent, recursing while ancestors
// overflow. Splitting the root grows the tree by one level.
func (t *Tree) split(n *node) {
	var right *node
	var sep []byte

	if n.isLeaf {
		// Leaf split: left keeps the lower ceil(n/2) pairs, the new
		// right leaf takes the rest and inherits the sibling link.
		// The separator is the first key of the right leaf.
		mid := (n.numKeys() + 1) / 2

		right = t.arena.alloc(true)
		right.keys = append(make([][]byte, 0, n.numKeys()-mid), n.keys[mid:]...)
		right.values = append(make([][]byte, 0, n.numKeys()-mid), n.values[mid:]...)
		right.next = n.next

		n.keys = n.keys[:mid]
		n.values = n.values[:mid]
		n.next = right.id

		sep = right.keys[0]
	} else {
		// Branch split: the middle key moves to the parent and is
		// dropped from both halves; it lives on implicitly as the
		// parent edge between them.
		mid := n.numKeys() / 2
		sep = n.keys[mid]

		right = t.arena.alloc(false)
		right.keys = append(make([][]byte, 0, n.numKeys()-mid-1), n.keys[mid+1:]...)
		right.children = append(make([]nodeID, 0, n.numKeys()-mid), n.children[mid+1:]...)
		t.reparent(right)

		n.keys = n.keys[:mid]
		n.children = n.children[:mid+1]
	}

	if n.parent == nilNode {
		// Split at the root: new root with one separator, two children.
		root := t.arena.alloc(false)
		root.keys = [][]byte{sep}
		root.children = []nodeID{n.id, right.id}
		n.parent = root.id
		right.parent = root.id
		t.root = root.id
		return
	}

	parent := t.arena.get(n.parent)
	i, _ := parent.locate(sep)
	parent.keys = insertAt(parent.keys, i, sep)
	parent.children = insertChildAt(parent.children, i+1, right.id)
	right.parent = parent.id

	if parent.numKeys() > t.order {
		t.split(parent)
	}
}

// deleteKey removes key from its owning leaf, or returns
// ErrKeyNotFound without mutating anything.
func (t *Tree) deleteKey(key []byte) error {
	leaf := t.findLeaf(key)
	i, exact := leaf.locate(key)
	if !exact {
		return ErrKeyNotFound
	}

	leaf.keys = removeAt(leaf.keys, i-1)
	leaf.values = removeAt(leaf.values, i-1)

	// Removing a leaf's minimum leaves a stale separator in the
	// ancestor that names this subtree; rewrite it while the parent
	// chain is still intact.
	if i-1 == 0 && leaf.numKeys() > 0 {
		t.fixSeparator(leaf)
	}

	t.rebalance(leaf)
	return nil
}

// fixSeparator rewrites the ancestor separator equal to n's old
// subtree minimum after that minimum changed. It climbs child-0 edges
// until n's subtree hangs off a right slot; the leftmost subtree has
// no separator above it.
func (t *Tree) fixSeparator(n *node) {
	min := n.keys[0]
	for n.parent != nilNode {
		parent := t.arena.get(n.parent)
		if idx := childIndex(parent, n.id); idx > 0 {
			parent.keys[idx-1] = min
			return
		}
		n = parent
	}
}

// rebalance restores minimum occupancy after a removal, merging or
// redistributing against an adjacent sibling. Merges shrink the parent
// and recurse upward; the chain terminates at a balanced ancestor or
// by collapsing the root.
func (t *Tree) rebalance(n *node) {
	if n.id == t.root {
		t.collapseRoot()
		return
	}
	if n.numKeys() >= t.minKeys(n) {
		return
	}

	parent := t.arena.get(n.parent)
	idx := childIndex(parent, n.id)

	// Prefer the left sibling; fall back to the right one. Every
	// non-root node has at least one adjacent sibling.
	var left, right *node
	var sepIdx int
	if idx > 0 {
		left = t.arena.get(parent.children[idx-1])
		right = n
		sepIdx = idx - 1
	} else {
		left = n
		right = t.arena.get(parent.children[idx+1])
		sepIdx = idx
	}

	if t.fitsInOne(left, right) {
		t.merge(left, right, parent, sepIdx)
	} else {
		t.redistribute(left, right, parent, sepIdx)
	}
}

// fitsInOne reports whether two siblings' combined content fits a
// single node. A branch merge also pulls the parent separator down.
func (t *Tree) fitsInOne(left, right *node) bool {
	combined := left.numKeys() + right.numKeys()
	if !left.isLeaf {
		combined++
	}
	return combined <= t.order
}

// merge absorbs right into left. Left keeps its identity so the
// incoming leaf-chain link from its predecessor stays valid. The
// separator is removed from the parent, which may underflow in turn.
func (t *Tree) merge(left, right, parent *node, sepIdx int) {
	if left.isLeaf {
		// Leaf separators are routing-only copies; nothing is pulled
		// down.
		left.keys = append(left.keys, right.keys...)
		left.values = append(left.values, right.values...)
		left.next = right.next
	} else {
		left.keys = append(left.keys, parent.keys[sepIdx])
		left.keys = append(left.keys, right.keys...)
		left.children = append(left.children, right.children...)
		t.reparent(left)
	}

	parent.keys = removeAt(parent.keys, sepIdx)
	parent.children = removeChildAt(parent.children, sepIdx+1)
	t.arena.release(right.id)

	// A leaf drained to zero keys before merging contributes its
	// sibling's minimum as the new subtree minimum.
	if left.isLeaf && left.numKeys() > 0 {
		t.fixSeparator(left)
	}

	t.rebalance(parent)
}

// redistribute rebalances two siblings whose combined content exceeds
// one node, splitting at the same midpoint rule as split and rewriting
// the parent separator. The parent's key count is unchanged, so no
// recursion is needed.
func (t *Tree) redistribute(left, right, parent *node, sepIdx int) {
	if left.isLeaf {
		keys := concat(left.keys, right.keys)
		values := concat(left.values, right.values)
		mid := (len(keys) + 1) / 2

		left.keys = keys[:mid]
		left.values = values[:mid]
		right.keys = append(make([][]byte, 0, len(keys)-mid), keys[mid:]...)
		right.values = append(make([][]byte, 0, len(keys)-mid), values[mid:]...)

		parent.keys[sepIdx] = right.keys[0]
		return
	}

	// Branch: rotate through the parent. The old separator joins the
	// combined key list and the new middle key replaces it.
	keys := concat(left.keys, [][]byte{parent.keys[sepIdx]}, right.keys)
	children := concatChildren(left.children, right.children)
	mid := len(keys) / 2

	left.keys = keys[:mid]
	left.children = children[:mid+1]
	parent.keys[sepIdx] = keys[mid]
	right.keys = append(make([][]byte, 0, len(keys)-mid-1), keys[mid+1:]...)
	right.children = append(make([]nodeID, 0, len(children)-mid-1), children[mid+1:]...)

	t.reparent(left)
	t.reparent(right)
}

// collapseRoot replaces a keyless branch root with its only child,
// shrinking the tree by one level per iteration. Looping covers the
// multi-level case where a delete cascades merges all the way up.
func (t *Tree) collapseRoot() {
	for {
		root := t.arena.get(t.root)
		if root.isLeaf || root.numKeys() > 0 {
			return
		}
		child := root.children[0]
		t.arena.release(root.id)
		t.root = child
		t.arena.get(child).parent = nilNode
	}
}

// minKeys returns the minimum occupancy for a non-root node. Leaves
// hold at least ceil(B/2) keys; branch nodes at least floor(B/2), the
// largest bound a branch split can guarantee for odd orders.
func (t *Tree) minKeys(n *node) int {
	if n.isLeaf {
		return (t.order + 1) / 2
	}
	return t.order / 2
}

// reparent points every child of n back at n.
func (t *Tree) reparent(n *node) {
	for _, id := range n.children {
		t.arena.get(id).parent = n.id
	}
}

// childIndex returns the slot of child within parent.
func childIndex(parent *node, child nodeID) int {
	for i, id := range parent.children {
		if id == child {
			return i
		}
	}
	return -1
}

func concat(slices ...[][]byte) [][]byte {
	size := 0
	for _, s := range slices {
		size += len(s)
	}
	out := make([][]byte, 0, size)
	for _, s := range slices {
		out = append(out, s...)
	}
	return out
}

func concatChildren(slices ...[]nodeID) []nodeID {
	size := 0
	for _, s := range slices {
		size += len(s)
	}
	out := make([]nodeID, 0, size)
	for _, s := range slices {
		out = append(out, s...)
	}
	return out
}

// firstLeaf returns the leftmost leaf.
func (t *Tree) firstLeaf() *node {
	n := t.arena.get(t.root)
	for !n.isLeaf {
		n = t.arena.get(n.children[0])
	}
	return n
}
