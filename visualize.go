package memdex

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Visualizer renders a tree level by level for interactive inspection.
// Branch nodes are printed cyan with their separator keys, leaves green
// with their key/value pairs, and the leaf chain yellow. Output is for
// humans; the format is not stable.
type Visualizer struct {
	Tree *Tree
}

var (
	branchColor = color.New(color.FgCyan).SprintfFunc()
	leafColor   = color.New(color.FgGreen).SprintfFunc()
	chainColor  = color.New(color.FgYellow).SprintFunc()
)

// Visualize returns a multi-line rendering of the whole tree, one line
// per level, followed by the leaf chain.
func (v *Visualizer) Visualize() string {
	var b strings.Builder

	level := []nodeID{v.Tree.root}
	depth := 0
	for len(level) > 0 {
		var next []nodeID
		fmt.Fprintf(&b, "level %d: ", depth)
		for i, id := range level {
			if i > 0 {
				b.WriteString("  ")
			}
			n := v.Tree.arena.get(id)
			b.WriteString(v.renderNode(n))
			next = append(next, n.children...)
		}
		b.WriteByte('\n')
		level = next
		depth++
	}

	b.WriteString("chain:   ")
	for n := v.Tree.firstLeaf(); ; n = v.Tree.arena.get(n.next) {
		fmt.Fprintf(&b, "%d", n.id)
		if n.next == nilNode {
			break
		}
		b.WriteString(chainColor(" -> "))
	}
	b.WriteByte('\n')

	return b.String()
}

func (v *Visualizer) renderNode(n *node) string {
	if n.isLeaf {
		pairs := make([]string, n.numKeys())
		for i, key := range n.keys {
			pairs[i] = fmt.Sprintf("%s=%s", key, n.values[i])
		}
		return leafColor("(%d){%s}", n.id, strings.Join(pairs, " "))
	}

	keys := make([]string, n.numKeys())
	for i, key := range n.keys {
		keys[i] = string(key)
	}
	return branchColor("(%d)[%s]", n.id, strings.Join(keys, "|"))
}
