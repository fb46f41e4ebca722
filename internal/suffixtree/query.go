package suffixtree

import "sort"

// Node is a read-only handle on a node of a Tree. Handles stay valid while
// the tree grows, but a node's position lists and labels reflect the tree at
// the time of each call.
type Node struct {
	t  *Tree
	id nodeID
}

// Edge is a read-only handle on an edge of a Tree.
type Edge struct {
	t  *Tree
	id edgeID
}

// Location is where a query walk from the root stopped.
type Location struct {
	Rule Rule

	t    *Tree
	node nodeID
	edge edgeID
}

// Present reports whether the query is a substring of the tree's text.
func (l Location) Present() bool {
	return l.Rule == RuleLeaf || l.Rule == RuleNode || l.Rule == RuleInEdge
}

// Node returns the node the query ended at, for RuleLeaf and RuleNode.
func (l Location) Node() (Node, bool) {
	if l.Rule != RuleLeaf && l.Rule != RuleNode {
		return Node{}, false
	}
	return Node{t: l.t, id: l.node}, true
}

// Edge returns the edge the query ended inside, for RuleInEdge.
func (l Location) Edge() (Edge, bool) {
	if l.Rule != RuleInEdge {
		return Edge{}, false
	}
	return Edge{t: l.t, id: l.edge}, true
}

// subtree returns the node whose subtree holds every occurrence of a
// present query.
func (l Location) subtree() (Node, bool) {
	switch l.Rule {
	case RuleLeaf, RuleNode:
		return Node{t: l.t, id: l.node}, true
	case RuleInEdge:
		return Node{t: l.t, id: l.t.edges[l.edge].child}, true
	}
	return Node{}, false
}

// Root returns the root of the tree.
func (t *Tree) Root() Node {
	return Node{t: t, id: root}
}

// Locate walks query down from the root. An empty query ends at the root.
func (t *Tree) Locate(query string) Location {
	w := t.walkTo(root, []byte(query), 0, len(query), false)
	return Location{Rule: w.rule, t: t, node: w.node, edge: w.edge}
}

// Contains reports whether query occurs in any sequence of the tree.
func (t *Tree) Contains(query string) bool {
	return t.Locate(query).Present()
}

// NodeFor returns the node whose path label is exactly query.
func (t *Tree) NodeFor(query string) (Node, bool) {
	return t.Locate(query).Node()
}

// EdgeFor returns the edge whose label query ends strictly inside.
func (t *Tree) EdgeFor(query string) (Edge, bool) {
	return t.Locate(query).Edge()
}

// Count returns the number of, possibly overlapping, occurrences of query.
func (t *Tree) Count(query string) int {
	n, ok := t.Locate(query).subtree()
	if !ok {
		return 0
	}
	return n.Count()
}

// CountNoOverlap returns the number of occurrences of query kept by a greedy
// left to right pass that drops any occurrence starting less than minSep
// after the last one kept.
func (t *Tree) CountNoOverlap(query string, minSep int) int {
	return len(t.PositionsNoOverlap(query, minSep))
}

// Positions returns the sorted global start positions of query.
func (t *Tree) Positions(query string) []int {
	n, ok := t.Locate(query).subtree()
	if !ok {
		return nil
	}
	return n.starts()
}

// PositionsNoOverlap returns the start positions CountNoOverlap counts.
func (t *Tree) PositionsNoOverlap(query string, minSep int) []int {
	return noOverlap(t.Positions(query), minSep)
}

// Leaves returns an iterator over the leaves under n, n included.
func (t *Tree) Leaves(n Node) *NodeIter {
	return newNodeIter(t, n.id, true)
}

// Nodes returns an iterator over every node under n, n included.
func (t *Tree) Nodes(n Node) *NodeIter {
	return newNodeIter(t, n.id, false)
}

// noOverlap keeps each of the sorted starts that is at least minSep after
// the last one kept.
func noOverlap(starts []int, minSep int) []int {
	var kept []int
	for _, p := range starts {
		if len(kept) == 0 || p-kept[len(kept)-1] >= minSep {
			kept = append(kept, p)
		}
	}
	return kept
}

// IsLeaf reports whether n is a leaf.
func (n Node) IsLeaf() bool {
	return n.t.nodes[n.id].kind == leafNode
}

// IsRoot reports whether n is the root.
func (n Node) IsRoot() bool {
	return n.id == root
}

// Depth returns the length of n's path label.
func (n Node) Depth() int {
	nd := &n.t.nodes[n.id]
	if nd.kind == internalNode {
		return nd.depth
	}
	p := nd.positions[0]
	return n.t.positionEnd(p) - p.Start
}

// PathLabel returns the characters spelled from the root to n.
func (n Node) PathLabel() string {
	nd := &n.t.nodes[n.id]
	if nd.kind == internalNode {
		return string(n.t.store.buf[nd.label : nd.label+nd.depth])
	}
	p := nd.positions[0]
	return string(n.t.store.buf[p.Start:n.t.positionEnd(p)])
}

// Level returns the number of nodes from the root to n, the root being 1.
func (n Node) Level() int {
	level := 1
	for id := n.t.parent(n.id); id != noNode; id = n.t.parent(id) {
		level++
	}
	return level
}

// Parent returns n's parent, false for the root.
func (n Node) Parent() (Node, bool) {
	p := n.t.parent(n.id)
	if p == noNode {
		return Node{}, false
	}
	return Node{t: n.t, id: p}, true
}

// TopEdge returns the edge into n, false for the root.
func (n Node) TopEdge() (Edge, bool) {
	top := n.t.nodes[n.id].top
	if top == noEdge {
		return Edge{}, false
	}
	return Edge{t: n.t, id: top}, true
}

// SuffixLink returns the internal node whose path label is n's without its
// first character, false if n has no link.
func (n Node) SuffixLink() (Node, bool) {
	link := n.t.nodes[n.id].link
	if link == noNode {
		return Node{}, false
	}
	return Node{t: n.t, id: link}, true
}

// Positions returns a copy of the suffixes ending at a leaf, with open ends
// resolved. It is empty for internal nodes.
func (n Node) Positions() []Position {
	nd := &n.t.nodes[n.id]
	if nd.kind != leafNode {
		return nil
	}
	positions := make([]Position, len(nd.positions))
	for i, p := range nd.positions {
		positions[i] = Position{Start: p.Start, End: n.t.positionEnd(p)}
	}
	return positions
}

// Count returns the number of suffixes ending at the leaves under n.
func (n Node) Count() (count int) {
	it := n.t.Leaves(n)
	for it.Next() {
		count += len(n.t.nodes[it.id].positions)
	}
	return count
}

// CountNoOverlap returns the number of start positions under n kept by the
// greedy pass CountNoOverlap describes on Tree.
func (n Node) CountNoOverlap(minSep int) int {
	return len(noOverlap(n.starts(), minSep))
}

// starts returns the sorted starts of the occurrences of n's path label,
// which are the starts of the suffixes ending under n.
func (n Node) starts() []int {
	var starts []int
	it := n.t.Leaves(n)
	for it.Next() {
		for _, p := range n.t.nodes[it.id].positions {
			starts = append(starts, p.Start)
		}
	}
	sort.Ints(starts)
	return starts
}

// Label returns the characters of e's label.
func (e Edge) Label() string {
	return string(e.t.store.buf[e.t.edges[e.id].start:e.t.edgeEnd(e.id)])
}

// Start returns the global position e's label starts at.
func (e Edge) Start() int {
	return e.t.edges[e.id].start
}

// End returns the global position e's label ends at, exclusive.
func (e Edge) End() int {
	return e.t.edgeEnd(e.id)
}

// Open reports whether e's end still follows the construction boundary.
func (e Edge) Open() bool {
	return e.t.edges[e.id].end == openEnd
}

// Parent returns the node e leaves from.
func (e Edge) Parent() Node {
	return Node{t: e.t, id: e.t.edges[e.id].parent}
}

// Child returns the node e leads to.
func (e Edge) Child() Node {
	return Node{t: e.t, id: e.t.edges[e.id].child}
}

// NodeIter walks a subtree depth first, children in character order. It
// cannot be restarted. Use it like:
//
//	it := tree.Leaves(n)
//	for it.Next() {
//		leaf := it.Node()
//	}
type NodeIter struct {
	t          *Tree
	stack      []nodeID
	id         nodeID
	leavesOnly bool
}

func newNodeIter(t *Tree, from nodeID, leavesOnly bool) *NodeIter {
	return &NodeIter{t: t, stack: []nodeID{from}, id: noNode, leavesOnly: leavesOnly}
}

// Next advances to the next node, false once the subtree is exhausted.
func (it *NodeIter) Next() bool {
	for len(it.stack) > 0 {
		id := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]

		nd := &it.t.nodes[id]
		if nd.kind == internalNode {
			keys := make([]byte, 0, len(nd.children))
			for c := range nd.children {
				keys = append(keys, c)
			}
			sort.Slice(keys, func(a, b int) bool { return keys[a] > keys[b] })
			for _, c := range keys {
				it.stack = append(it.stack, it.t.edges[nd.children[c]].child)
			}
			if it.leavesOnly {
				continue
			}
		}

		it.id = id
		return true
	}
	it.id = noNode
	return false
}

// Node returns the node Next stopped at.
func (it *NodeIter) Node() Node {
	return Node{t: it.t, id: it.id}
}
