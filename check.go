package memdex

import (
	"bytes"
	"fmt"
)

// Check walks the whole tree and verifies its structural invariants:
// sorted unique keys, occupancy bounds, uniform leaf depth, separator
// keys equal to the minimum of their right subtree, a leaf chain
// covering every live key exactly once, and a consistent Len counter.
//
// It is O(n) and intended for tests and debugging, not hot paths.
// The first violation found is logged and returned.
func (t *Tree) Check() error {
	root := t.arena.get(t.root)

	leafDepth := -1
	var leaves []*node

	var walk func(n *node, depth int) error
	walk = func(n *node, depth int) error {
		if err := t.checkNode(n, depth); err != nil {
			return err
		}

		if n.isLeaf {
			if leafDepth == -1 {
				leafDepth = depth
			} else if depth != leafDepth {
				return fmt.Errorf("node %d: leaf at depth %d, expected %d", n.id, depth, leafDepth)
			}
			leaves = append(leaves, n)
			return nil
		}

		for i, id := range n.children {
			child := t.arena.get(id)
			if child == nil {
				return fmt.Errorf("node %d: child slot %d references released node %d", n.id, i, id)
			}
			if child.parent != n.id {
				return fmt.Errorf("node %d: child %d has parent %d", n.id, child.id, child.parent)
			}
			// Invariant: separator i is the minimum key reachable in
			// the subtree at slot i+1.
			if i > 0 {
				min := t.subtreeMin(child)
				if !bytes.Equal(n.keys[i-1], min) {
					return fmt.Errorf("node %d: separator %d is %q, subtree min is %q",
						n.id, i-1, n.keys[i-1], min)
				}
			}
			if err := walk(child, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	err := walk(root, 0)
	if err == nil {
		err = t.checkLeafChain(leaves)
	}
	if err != nil {
		t.log.Warn("tree invariant violated", "error", err)
		return err
	}
	return nil
}

// checkNode verifies per-node invariants: key ordering, occupancy, and
// slot arity for the node's kind.
func (t *Tree) checkNode(n *node, depth int) error {
	for i := 1; i < n.numKeys(); i++ {
		if bytes.Compare(n.keys[i-1], n.keys[i]) >= 0 {
			return fmt.Errorf("node %d: keys out of order at %d", n.id, i)
		}
	}

	if n.numKeys() > t.order {
		return fmt.Errorf("node %d: %d keys exceeds order %d", n.id, n.numKeys(), t.order)
	}

	if n.id == t.root {
		// The root is exempt from minimum occupancy, but a branch root
		// must hold at least one separator or it would have collapsed.
		if !n.isLeaf && n.numKeys() == 0 {
			return fmt.Errorf("node %d: branch root with no keys", n.id)
		}
	} else if n.numKeys() < t.minKeys(n) {
		return fmt.Errorf("node %d: %d keys below minimum %d", n.id, n.numKeys(), t.minKeys(n))
	}

	if n.isLeaf {
		if len(n.values) != n.numKeys() {
			return fmt.Errorf("node %d: %d values for %d keys", n.id, len(n.values), n.numKeys())
		}
		if len(n.children) != 0 {
			return fmt.Errorf("node %d: leaf with children", n.id)
		}
	} else {
		if len(n.children) != n.numKeys()+1 {
			return fmt.Errorf("node %d: %d children for %d keys", n.id, len(n.children), n.numKeys())
		}
		if len(n.values) != 0 {
			return fmt.Errorf("node %d: branch with values", n.id)
		}
		if n.next != nilNode {
			return fmt.Errorf("node %d: branch with sibling link", n.id)
		}
	}

	return nil
}

// checkLeafChain verifies that following next links from the leftmost
// leaf visits exactly the in-order leaves, with globally ascending
// keys, and that the key total matches the Len counter.
func (t *Tree) checkLeafChain(leaves []*node) error {
	n := t.firstLeaf()
	total := 0
	var prev []byte

	for i := 0; ; i++ {
		if i >= len(leaves) {
			return fmt.Errorf("leaf chain longer than tree: extra node %d", n.id)
		}
		if n.id != leaves[i].id {
			return fmt.Errorf("leaf chain out of order: node %d, expected %d", n.id, leaves[i].id)
		}

		for _, key := range n.keys {
			if prev != nil && bytes.Compare(prev, key) >= 0 {
				return fmt.Errorf("node %d: chain key %q not above %q", n.id, key, prev)
			}
			prev = key
			total++
		}

		if n.next == nilNode {
			if i != len(leaves)-1 {
				return fmt.Errorf("leaf chain ends at node %d, %d leaves unreached", n.id, len(leaves)-1-i)
			}
			break
		}
		n = t.arena.get(n.next)
	}

	if total != t.length {
		return fmt.Errorf("leaf chain holds %d keys, Len reports %d", total, t.length)
	}
	return nil
}

// subtreeMin returns the smallest key in the subtree rooted at n.
func (t *Tree) subtreeMin(n *node) []byte {
	for !n.isLeaf {
		n = t.arena.get(n.children[0])
	}
	return n.keys[0]
}
