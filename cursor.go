package memdex

import "bytes"

// Cursor provides ordered forward iteration over the tree's keys by
// walking the leaf sibling chain. A cursor starts invalid; position it
// with First or Seek.
//
// A cursor is a snapshot of tree positions, not tree content: any Set
// or Delete invalidates outstanding cursors, and continuing to use one
// afterwards has undefined results. This mirrors the external-locking
// contract of the tree itself.
type Cursor struct {
	tree  *Tree
	node  *node
	index int    // Current key slot within node
	key   []byte // Cached current key
	value []byte // Cached current value
	valid bool   // Is cursor positioned on a valid key?
}

// First positions the cursor at the smallest key in the tree.
// Returns nil, nil if the tree is empty.
func (c *Cursor) First() ([]byte, []byte) {
	c.node = c.tree.firstLeaf()
	c.index = 0
	return c.settle()
}

// Seek positions the cursor at the first key >= seek. A nil seek is
// equivalent to First. Returns nil, nil if no such key exists.
func (c *Cursor) Seek(seek []byte) ([]byte, []byte) {
	if len(seek) == 0 {
		return c.First()
	}

	leaf := c.tree.findLeaf(seek)
	i, exact := leaf.locate(seek)
	if exact {
		i--
	}
	// A miss past the last slot continues into the sibling chain.
	c.node = leaf
	c.index = i
	return c.settle()
}

// Next advances the cursor to the next key in ascending order.
// Returns nil, nil once the chain is exhausted.
func (c *Cursor) Next() ([]byte, []byte) {
	if !c.valid {
		return nil, nil
	}
	c.index++
	return c.settle()
}

// Key returns the current key (only valid when Valid() is true).
func (c *Cursor) Key() []byte {
	return c.key
}

// Value returns the current value (only valid when Valid() is true).
func (c *Cursor) Value() []byte {
	return c.value
}

// Valid reports whether the cursor is positioned on a live key.
func (c *Cursor) Valid() bool {
	return c.valid
}

// settle resolves the current (node, index) position, following the
// sibling chain past the end of the current leaf. Only the root leaf
// of an empty tree can have zero keys, so at most one hop is ever
// needed, but the loop keeps settle oblivious to that invariant.
func (c *Cursor) settle() ([]byte, []byte) {
	for c.node != nil && c.index >= c.node.numKeys() {
		if c.node.next == nilNode {
			c.node = nil
			break
		}
		c.node = c.tree.arena.get(c.node.next)
		c.index = 0
	}

	if c.node == nil {
		c.key = nil
		c.value = nil
		c.valid = false
		return nil, nil
	}

	c.key = c.node.keys[c.index]
	c.value = c.node.values[c.index]
	c.valid = true
	return c.key, c.value
}

// scanRange collects values for keys in [lo, hi] by seeking to lo and
// walking the leaf chain until a key exceeds hi.
func (t *Tree) scanRange(lo, hi []byte) [][]byte {
	var out [][]byte
	c := t.Cursor()
	for k, v := c.Seek(lo); c.Valid(); k, v = c.Next() {
		if bytes.Compare(k, hi) > 0 {
			break
		}
		out = append(out, v)
	}
	return out
}
