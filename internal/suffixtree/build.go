package suffixtree

// extend runs Ukkonen's phases over the store's [start, stop), which was
// just appended. A terminated range finishes the run: every open leaf is
// pinned to stop and the next range starts a fresh run. An unterminated
// range keeps the run open for the next call.
func (t *Tree) extend(start, stop int, terminated bool) {
	cur := t.run
	if !cur.active {
		cur = cursor{active: true, j: start, node: root}
	}

	for i := start; i < stop; i++ {
		t.end = i + 1
		t.stats.Phases++

		pending := noNode
		for ; cur.j <= i; cur.j++ {
			t.stats.Extensions++

			n, from := t.activePoint(cur)
			w := t.walkTo(n, t.store.buf, from, i+1, true)
			t.stats.Rules[w.rule]++

			created := noNode
			switch w.rule {
			case RuleLeaf:
				t.addPosition(w.node, cur.j, i+1)
				cur.node = w.from
			case RuleNoEdge:
				t.addLeaf(w.node, i, cur.j)
				cur.node = w.node
			case RuleSplit:
				created = t.split(w.edge, w.split, i, cur.j)
				cur.node = created
			case RuleInEdge:
				cur.node = w.from
			case RuleNode:
				cur.node = w.node
			}

			if pending != noNode {
				target := created
				if target == noNode {
					target = w.penult
				}
				if target == noNode {
					invariant("extend", "no suffix link target for node %d in phase %d, extension %d", pending, i, cur.j)
				}
				t.nodes[pending].link = target
				t.stats.SuffixLinks++
			}
			pending = created

			if w.rule == RuleInEdge || w.rule == RuleNode {
				// showstopper: the rest of this phase is already in the tree
				cur.jump = false
				break
			}
			cur.jump = true
		}

		if pending != noNode {
			invariant("extend", "phase %d ended with node %d unlinked", i, pending)
		}
	}

	if terminated {
		t.finalize(stop)
		t.run = cursor{}
		return
	}
	t.run = cur
}

// activePoint returns the node an extension walks from, and the global
// position of the first character it has still to walk.
func (t *Tree) activePoint(cur cursor) (nodeID, int) {
	n := cur.node
	if !cur.jump {
		return n, cur.j + t.nodes[n].depth
	}

	for n != root && t.nodes[n].link == noNode {
		n = t.parent(n)
	}
	if n == root {
		return root, cur.j
	}
	link := t.nodes[n].link
	return link, cur.j + t.nodes[link].depth
}

// split cuts e at the global position at, hanging a new internal node
// there and a new leaf for the suffix starting at j off it. It returns the
// new internal node.
func (t *Tree) split(e edgeID, at, i, j int) nodeID {
	ed := t.edges[e]
	if at <= ed.start || (ed.end != openEnd && at >= ed.end) {
		invariant("split", "position %d outside edge %d [%d, %d)", at, e, ed.start, ed.end)
	}

	parent := t.nodes[ed.parent]
	m := t.newInternal(parent.depth+at-ed.start, j)

	// the remainder keeps the child and its raw end, open or not
	t.newEdge(m, ed.child, at, ed.end)

	t.edges[e].end = at
	t.edges[e].child = m
	t.nodes[m].top = e

	t.addLeaf(m, i, j)
	return m
}

// addLeaf hangs a new open leaf for the suffix starting at j off n, with the
// edge label starting at i.
func (t *Tree) addLeaf(n nodeID, i, j int) nodeID {
	leaf := t.newLeaf(j)
	t.newEdge(n, leaf, i, openEnd)
	t.open = append(t.open, leaf)
	return leaf
}

// addPosition records that the suffix [start, end) also ends at leaf.
func (t *Tree) addPosition(leaf nodeID, start, end int) {
	t.nodes[leaf].positions = append(t.nodes[leaf].positions, Position{Start: start, End: end})
}

// finalize pins every open leaf edge and position of the run to stop.
func (t *Tree) finalize(stop int) {
	for _, leaf := range t.open {
		n := &t.nodes[leaf]
		t.edges[n.top].end = stop
		for k := range n.positions {
			if n.positions[k].End == openEnd {
				n.positions[k].End = stop
			}
		}
	}
	t.open = t.open[:0]
	t.end = stop
}
