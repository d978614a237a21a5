package memdex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisualizeRendersAllLevels(t *testing.T) {
	t.Parallel()

	tree, err := New(4)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		require.NoError(t, tree.Set(dataKey(i), dataValue(i)))
	}
	require.Equal(t, 2, tree.Height())

	out := (&Visualizer{Tree: tree}).Visualize()

	assert.Contains(t, out, "level 0:")
	assert.Contains(t, out, "level 1:")
	assert.Contains(t, out, "00=data_0")
	assert.Contains(t, out, "chain:")
	assert.Equal(t, 3, strings.Count(out, "\n"))
}
