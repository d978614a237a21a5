package memdex

// arena owns every node in the tree and hands out stable integer IDs,
// so parent and sibling references never form owning pointer cycles.
// Released IDs go onto a free list and are reused by later allocations.
type arena struct {
	nodes []*node
	free  []nodeID
	live  int
}

func newArena() *arena {
	// Slot 0 is reserved so nilNode never addresses a real node.
	return &arena{nodes: make([]*node, 1)}
}

// alloc returns a fresh node, reusing a freed slot when one exists.
func (a *arena) alloc(isLeaf bool) *node {
	a.live++

	if n := len(a.free); n > 0 {
		id := a.free[n-1]
		a.free = a.free[:n-1]
		nd := &node{id: id, isLeaf: isLeaf}
		a.nodes[id] = nd
		return nd
	}

	nd := &node{id: nodeID(len(a.nodes)), isLeaf: isLeaf}
	a.nodes = append(a.nodes, nd)
	return nd
}

// get resolves an ID to its node. Callers never hold IDs of released
// nodes, so a nil result indicates tree corruption.
func (a *arena) get(id nodeID) *node {
	return a.nodes[id]
}

// release returns a node's slot to the free list. The node is dead
// after this call; the ID may be handed out again by alloc.
func (a *arena) release(id nodeID) {
	a.nodes[id] = nil
	a.free = append(a.free, id)
	a.live--
}

// count returns the number of live nodes.
func (a *arena) count() int {
	return a.live
}
