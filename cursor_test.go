package memdex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorEmptyTree(t *testing.T) {
	t.Parallel()

	tree, err := New(4)
	require.NoError(t, err)

	c := tree.Cursor()
	assert.False(t, c.Valid())

	k, v := c.First()
	assert.Nil(t, k)
	assert.Nil(t, v)
	assert.False(t, c.Valid())

	k, _ = c.Seek([]byte("anything"))
	assert.Nil(t, k)
	assert.False(t, c.Valid())
}

func TestCursorIteratesAscending(t *testing.T) {
	t.Parallel()

	tree, err := New(4)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		require.NoError(t, tree.Set(key(i), value(i)))
	}

	// Forward scan crosses many leaf boundaries through the chain
	c := tree.Cursor()
	count := 0
	for k, v := c.First(); c.Valid(); k, v = c.Next() {
		assert.Equal(t, key(count), k)
		assert.Equal(t, value(count), v)
		assert.Equal(t, k, c.Key())
		assert.Equal(t, v, c.Value())
		count++
	}
	assert.Equal(t, 100, count)

	// Exhausted cursor stays exhausted
	k, v := c.Next()
	assert.Nil(t, k)
	assert.Nil(t, v)
}

func TestCursorSeek(t *testing.T) {
	t.Parallel()

	tree, err := New(4)
	require.NoError(t, err)
	for i := 0; i < 50; i += 2 {
		require.NoError(t, tree.Set(key(i), value(i)))
	}

	// Exact hit
	c := tree.Cursor()
	k, v := c.Seek(key(10))
	require.True(t, c.Valid())
	assert.Equal(t, key(10), k)
	assert.Equal(t, value(10), v)

	// Miss positions at the next key >= target
	k, _ = c.Seek(key(11))
	require.True(t, c.Valid())
	assert.Equal(t, key(12), k)

	// Nil seek is First
	k, _ = c.Seek(nil)
	assert.Equal(t, key(0), k)

	// Seeking past the last key exhausts the cursor
	k, _ = c.Seek(key(99))
	assert.Nil(t, k)
	assert.False(t, c.Valid())
}

func TestCursorSeekAcrossLeafBoundary(t *testing.T) {
	t.Parallel()

	tree, err := New(4)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		require.NoError(t, tree.Set(key(i), value(i)))
	}

	// Leaves are {0,1,2} and {3,4}; a seek landing past the end of
	// the first leaf must hop the sibling link
	root := tree.arena.get(tree.root)
	require.Equal(t, 2, tree.Height())
	left := tree.arena.get(root.children[0])
	require.Equal(t, 3, left.numKeys())

	c := tree.Cursor()
	k, _ := c.Seek(append(key(2), '5'))
	require.True(t, c.Valid())
	assert.Equal(t, key(3), k)
}
