package suffixtree

import "strconv"

// Rule classifies where a walk down the tree stopped.
type Rule uint8

const (
	// RuleLeaf means the walk consumed its input exactly at a leaf.
	RuleLeaf Rule = iota + 1

	// RuleNoEdge means an internal node has no edge for the next character.
	RuleNoEdge

	// RuleSplit means the next character differs from the one inside an edge.
	RuleSplit

	// RuleInEdge means the walk consumed its input strictly inside an edge.
	RuleInEdge

	// RuleNode means the walk consumed its input exactly at an internal node.
	RuleNode
)

func (r Rule) String() string {
	switch r {
	case RuleLeaf:
		return "leaf"
	case RuleNoEdge:
		return "no edge"
	case RuleSplit:
		return "split"
	case RuleInEdge:
		return "in edge"
	case RuleNode:
		return "node"
	}
	return "rule(" + strconv.Itoa(int(r)) + ")"
}

// walk is the outcome of walkTo.
type walk struct {
	rule Rule

	// node is the leaf (RuleLeaf), the node missing an edge (RuleNoEdge)
	// or the internal node reached (RuleNode)
	node nodeID

	// edge is the edge the walk stopped in for RuleSplit and RuleInEdge,
	// and the edge into node for RuleLeaf and RuleNode
	edge edgeID

	// split is the global position inside edge where a RuleSplit walk
	// diverged
	split int

	// from is the last internal node the walk passed through
	from nodeID

	// penult is the node the walk stood on with one character left to
	// consume, noNode if that point was inside an edge
	penult nodeID
}

// walkTo walks src[from:to] down from n.
//
// A trusted walk is one over text known to be in the tree up to its last
// character: it skips across edges comparing only the last character and
// treats anything else as an invariant violation. Construction walks are
// trusted, query walks are not.
func (t *Tree) walkTo(n nodeID, src []byte, from, to int, trusted bool) walk {
	w := walk{node: n, edge: noEdge, from: n, penult: noNode}
	if from >= to {
		w.rule = RuleNode
		return w
	}

	for {
		remaining := to - from
		if remaining == 1 {
			w.penult = n
		}
		w.from = n

		e, ok := t.nodes[n].children[src[from]]
		if !ok {
			if trusted && remaining > 1 {
				invariant("walkTo", "no edge for %q below node %d with %d characters left", src[from], n, remaining)
			}
			w.rule = RuleNoEdge
			w.node = n
			return w
		}

		ed := t.edges[e]
		length := t.edgeLen(e)
		w.edge = e

		if remaining <= length {
			if trusted {
				if t.store.buf[ed.start+remaining-1] != src[to-1] {
					w.rule = RuleSplit
					w.split = ed.start + remaining - 1
					return w
				}
			} else {
				for k := 1; k < remaining; k++ {
					if t.store.buf[ed.start+k] != src[from+k] {
						w.rule = RuleSplit
						w.split = ed.start + k
						return w
					}
				}
			}

			switch {
			case remaining < length:
				w.rule = RuleInEdge
			case t.nodes[ed.child].kind == leafNode:
				w.rule = RuleLeaf
				w.node = ed.child
			default:
				w.rule = RuleNode
				w.node = ed.child
			}
			return w
		}

		if !trusted {
			for k := 1; k < length; k++ {
				if t.store.buf[ed.start+k] != src[from+k] {
					w.rule = RuleSplit
					w.split = ed.start + k
					return w
				}
			}
		}

		if t.nodes[ed.child].kind == leafNode {
			if trusted {
				invariant("walkTo", "walked past leaf %d with %d characters left", ed.child, remaining-length)
			}
			// the query runs on past the end of a sequence
			w.rule = RuleSplit
			w.split = t.edgeEnd(e)
			return w
		}

		from += length
		n = ed.child
	}
}
