package suffixtree

import "fmt"

// Stats are totals of a tree's structure and of the work done building it.
type Stats struct {
	Nodes    int
	Internal int
	Leaves   int
	Edges    int

	// SuffixLinks is the number of suffix links set
	SuffixLinks int

	// Phases and Extensions count the iterations of the construction loops
	Phases     int
	Extensions int

	// Rules counts the extensions classified by each Rule, indexed by Rule
	Rules [RuleNode + 1]int
}

// Stats returns the tree's current totals.
func (t *Tree) Stats() Stats {
	s := t.stats
	s.Nodes = len(t.nodes)
	s.Leaves = t.countLeaves()
	s.Internal = s.Nodes - s.Leaves
	s.Edges = len(t.edges)
	return s
}

// Check audits the whole tree and returns the first inconsistency found:
// empty edges, child keys that differ from their edge's first character,
// broken parent references, internal nodes that do not branch, wrong
// depths, suffix links whose target is a leaf or does not spell the
// source's label minus its first character, and leaf positions that do not
// spell the leaf's path.
func (t *Tree) Check() error {
	for id := range t.nodes {
		n := nodeID(id)
		nd := &t.nodes[n]

		if n != root {
			top := nd.top
			if top == noEdge {
				return fmt.Errorf("node %d has no top edge", n)
			}
			if t.edges[top].child != n {
				return fmt.Errorf("node %d: top edge %d leads to node %d", n, top, t.edges[top].child)
			}
		}

		if nd.kind == leafNode {
			if err := t.checkLeaf(n); err != nil {
				return err
			}
			continue
		}

		if n != root && len(nd.children) < 2 {
			return fmt.Errorf("internal node %d has %d children", n, len(nd.children))
		}

		for c, e := range nd.children {
			ed := t.edges[e]
			if t.edgeLen(e) <= 0 {
				return fmt.Errorf("edge %d from node %d is empty", e, n)
			}
			if t.store.buf[ed.start] != c {
				return fmt.Errorf("edge %d keyed %q starts with %q", e, c, t.store.buf[ed.start])
			}
			if ed.parent != n {
				return fmt.Errorf("edge %d under node %d names parent %d", e, n, ed.parent)
			}
			child := &t.nodes[ed.child]
			if child.kind == internalNode && child.depth != nd.depth+t.edgeLen(e) {
				return fmt.Errorf("node %d has depth %d, want %d", ed.child, child.depth, nd.depth+t.edgeLen(e))
			}
		}

		if nd.link != noNode {
			if err := t.checkLink(n); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkLeaf verifies that every position of a leaf spells its path.
func (t *Tree) checkLeaf(n nodeID) error {
	nd := &t.nodes[n]
	if len(nd.positions) == 0 {
		return fmt.Errorf("leaf %d has no positions", n)
	}

	path := t.pathOf(n)
	for _, p := range nd.positions {
		end := t.positionEnd(p)
		if got := string(t.store.buf[p.Start:end]); got != path {
			return fmt.Errorf("leaf %d: position [%d, %d) spells %q, path is %q", n, p.Start, end, got, path)
		}
		if p.End != openEnd && t.store.buf[end-1] != t.term {
			return fmt.Errorf("leaf %d: closed position [%d, %d) does not end in a terminator", n, p.Start, end)
		}
	}
	return nil
}

// checkLink verifies n's suffix link.
func (t *Tree) checkLink(n nodeID) error {
	link := t.nodes[n].link
	if t.nodes[link].kind == leafNode {
		return fmt.Errorf("suffix link of node %d targets leaf %d", n, link)
	}

	from, to := t.pathOf(n), t.pathOf(link)
	if from[1:] != to {
		return fmt.Errorf("suffix link of node %d (%q) targets node %d (%q)", n, from, link, to)
	}
	return nil
}

// pathOf spells n's path by concatenating the edge labels above it.
func (t *Tree) pathOf(n nodeID) string {
	var labels [][]byte
	for n != root {
		e := t.nodes[n].top
		labels = append(labels, t.store.buf[t.edges[e].start:t.edgeEnd(e)])
		n = t.edges[e].parent
	}

	var path []byte
	for i := len(labels) - 1; i >= 0; i-- {
		path = append(path, labels[i]...)
	}
	return string(path)
}
