// File: cache.go
// Role: per-node cached target size, reset to "unknown" at the start
//       of every outer iteration and cleared at a node whenever that
//       node successfully moves.
package smooth

import (
	"github.com/halvardeng/meshopt/geom"
	"github.com/halvardeng/meshopt/meshcore"
	"github.com/halvardeng/meshopt/predicate"
)

// Cache memoizes SizeOracle.Eval per node for one outer iteration.
// The size oracle can be expensive (it may walk a background size
// field), so MoveNode's repeated queries within a single iteration are
// memoized exactly once per node, cleared only when that node's
// position changes.
type Cache[R geom.Real] struct {
	vals map[meshcore.NodeID]R
}

// NewCache returns an empty size cache.
func NewCache[R geom.Real]() *Cache[R] {
	return &Cache[R]{vals: make(map[meshcore.NodeID]R)}
}

// Reset clears every cached value — called once per outer iteration.
func (c *Cache[R]) Reset() {
	c.vals = make(map[meshcore.NodeID]R)
}

// Eval returns the target size at node n's current position, computing
// and caching it on first use.
func (c *Cache[R]) Eval(adapter *predicate.Adapter[R], m *meshcore.Mesh[R], n meshcore.NodeID) R {
	if v, ok := c.vals[n]; ok {
		return v
	}
	node, _ := m.Node(n)
	v := adapter.Size.Eval(node.Pos)
	c.vals[n] = v
	return v
}

// Clear invalidates n's cached size after a successful move.
func (c *Cache[R]) Clear(n meshcore.NodeID) {
	delete(c.vals, n)
}
