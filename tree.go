package memdex

import "bytes"

// Tree is an in-memory balanced ordered index over []byte keys with a
// single []byte value per key. It supports point lookup, ordered range
// scans through the leaf sibling chain, and O(1) cardinality queries.
//
// A Tree is not internally synchronized. Concurrent mutation is
// undefined behavior; callers needing shared access must wrap the tree
// in an external lock (exclusive for Set/Delete, shared for Get/Range
// only while no mutation is in flight).
type Tree struct {
	order  int // Max keys per node; fan-out bound fixed at creation
	arena  *arena
	root   nodeID
	length int // Live key count, maintained by Set/Delete

	cache *lookupCache // nil unless WithLookupCache was given
	log   Logger
}

// New creates an empty tree of the given order. Order is the maximum
// number of keys a node can hold; the minimum usable order is 2, since
// order 1 cannot keep both halves of a branch split populated.
func New(order int, options ...Option) (*Tree, error) {
	if order < 2 {
		return nil, ErrInvalidOrder
	}

	opts := defaultOptions()
	for _, opt := range options {
		opt(&opts)
	}

	t := &Tree{
		order: order,
		arena: newArena(),
		log:   opts.logger,
	}

	if opts.cacheSize > 0 {
		cache, err := newLookupCache(opts.cacheSize)
		if err != nil {
			return nil, err
		}
		t.cache = cache
	}

	// The empty tree is a single leaf root. The root is exempt from
	// minimum occupancy.
	t.root = t.arena.alloc(true).id

	return t, nil
}

// Get returns the value stored for key, or ErrKeyNotFound. The
// returned slice is the stored value; callers must not modify it.
func (t *Tree) Get(key []byte) ([]byte, error) {
	if t.cache != nil {
		if value, ok := t.cache.get(key); ok {
			return value, nil
		}
	}

	value, err := t.search(key)
	if err != nil {
		return nil, err
	}

	if t.cache != nil {
		t.cache.add(key, value)
	}
	return value, nil
}

// Set stores value under key, overwriting any existing value without
// creating a duplicate key. Key and value are copied, so the caller
// may reuse its buffers.
func (t *Tree) Set(key, value []byte) error {
	if len(key) == 0 {
		return ErrKeyEmpty
	}

	k := make([]byte, len(key))
	copy(k, key)
	v := make([]byte, len(value))
	copy(v, value)

	if t.insert(k, v) {
		t.length++
	}
	if t.cache != nil {
		t.cache.invalidate(key)
	}
	return nil
}

// Delete removes key and its value. Returns ErrKeyNotFound if key is
// absent, in which case the tree is not mutated.
func (t *Tree) Delete(key []byte) error {
	if err := t.deleteKey(key); err != nil {
		return err
	}

	t.length--
	if t.cache != nil {
		t.cache.invalidate(key)
	}
	return nil
}

// Range returns the values for all keys in [lo, hi], both bounds
// inclusive, in ascending key order. A nil lo means "from the smallest
// key". A nil hi or lo > hi is reported as ErrInvalidRange before any
// work is done.
func (t *Tree) Range(lo, hi []byte) ([][]byte, error) {
	if len(hi) == 0 {
		return nil, ErrInvalidRange
	}
	if lo != nil && bytes.Compare(lo, hi) > 0 {
		return nil, ErrInvalidRange
	}
	return t.scanRange(lo, hi), nil
}

// Cursor returns a new cursor for lazy forward iteration. The cursor
// starts invalid; call First or Seek to position it.
func (t *Tree) Cursor() *Cursor {
	return &Cursor{tree: t}
}

// Len returns the number of live keys.
func (t *Tree) Len() int {
	return t.length
}

// Height returns the number of levels, counting the root. An empty
// tree has height 1 (the root leaf). Every leaf sits at the same
// depth, so any descent path measures it.
func (t *Tree) Height() int {
	h := 1
	n := t.arena.get(t.root)
	for !n.isLeaf {
		h++
		n = t.arena.get(n.children[0])
	}
	return h
}

// NodeCount returns the number of live nodes across all levels.
func (t *Tree) NodeCount() int {
	return t.arena.count()
}

// CacheStats returns lookup-cache hit and miss counts. Both are zero
// when the cache is disabled.
func (t *Tree) CacheStats() (hits, misses uint64) {
	if t.cache == nil {
		return 0, 0
	}
	return t.cache.stats()
}
