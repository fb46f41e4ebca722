// Package suffixtree is a generalized suffix tree over a growing set of
// sequences, built online with Ukkonen's algorithm.
//
// Every sequence added to a Tree is appended to one Store and terminated by
// the tree's terminator character (by default '$'), so that each suffix of a
// terminated sequence ends at a leaf. Suffixes shared by several sequences
// end at the same leaf, which then carries one position per sequence.
//
// Nodes and edges live in two slices owned by the tree and are addressed by
// index. Edges hold [start, end) ranges into the Store rather than copies of
// their labels, and leaf edges of the sequence under construction keep an
// open end that follows the construction boundary until the sequence is
// finished.
//
// A Tree is not safe for concurrent use: AddSequence mutates it in place and
// must not run alongside any other method.
package suffixtree

import (
	"fmt"
	"log"
	"strconv"
)

// DefaultTerminator marks the end of every terminated sequence.
const DefaultTerminator byte = '$'

type nodeID int32

type edgeID int32

const (
	noNode nodeID = -1
	noEdge edgeID = -1

	// root is always the first node of the arena
	root nodeID = 0

	// openEnd is stored in place of an edge or position end that tracks
	// the construction boundary
	openEnd = -1
)

type nodeKind uint8

const (
	internalNode nodeKind = iota
	leafNode
)

// node is either an internal branching point or a leaf; only the fields of
// its kind are set.
type node struct {
	kind nodeKind

	// top is the incoming edge, noEdge for the root
	top edgeID

	// link is the suffix link of an internal node. It is a lookup-only
	// reference, never a tree edge
	link nodeID

	// depth is the length of an internal node's path label
	depth int

	// label is the start of one occurrence of an internal node's path label
	label int

	// children maps the first character of each outgoing edge to the edge
	children map[byte]edgeID

	// positions are the suffixes ending at a leaf
	positions []Position
}

// edge is a [start, end) range of the Store leading to child.
type edge struct {
	start  int
	end    int
	parent nodeID
	child  nodeID
}

// Position is one suffix ending at a leaf. The suffix starts at the global
// position Start and runs to End (exclusive), the end of its sequence.
type Position struct {
	Start int
	End   int
}

// cursor is the construction state carried between the phases of a run.
type cursor struct {
	// active is set while a run is open, i.e. the last piece appended had
	// no terminator
	active bool

	// j is the next extension to make explicit
	j int

	// node is where the last extension stopped
	node nodeID

	// jump is set when the next extension starts from a suffix link
	jump bool
}

// Tree is a generalized suffix tree. The zero value is not usable, create
// trees with New.
type Tree struct {
	term  byte
	store Store

	nodes []node
	edges []edge

	// end is the boundary open edges and positions resolve to
	end int

	run  cursor
	open []nodeID

	stats  Stats
	logger *log.Logger
}

// New returns an empty tree whose sequences are terminated by term.
func New(term byte) *Tree {
	t := &Tree{term: term}
	t.newInternal(0, 0)
	return t
}

// Terminator returns the character terminating the tree's sequences.
func (t *Tree) Terminator() byte {
	return t.term
}

// SetLogger makes the tree trace construction of each sequence to l.
// A nil logger turns tracing off.
func (t *Tree) SetLogger(l *log.Logger) {
	t.logger = l
}

// Store returns a read-only view of the tree's sequences.
func (t *Tree) Store() *Store {
	return &t.store
}

// SequenceCount returns the number of sequences added so far. Input holding
// several terminated sequences counts once per sequence.
func (t *Tree) SequenceCount() int {
	return t.store.Count()
}

// Len returns the total length of all sequences added, terminators included.
func (t *Tree) Len() int {
	return t.store.Len()
}

// AddSequence appends seq to the tree under name and extends the tree over it.
//
// seq is split after every terminator it holds, and each piece is added as its
// own sequence: the first keeps name, later ones are named name1, name2, ...
// A last piece without a terminator gets one appended unless
// suppressTerminator is set, in which case the tree stays open and the next
// call continues the same text.
//
// An empty seq is a no-op. A piece made of a lone terminator is rejected with
// ErrInvalidSequence before anything is appended.
func (t *Tree) AddSequence(seq, name string, suppressTerminator bool) error {
	if len(seq) == 0 {
		return nil
	}

	pieces := split([]byte(seq), t.term, suppressTerminator)

	open := t.run.active
	for i, p := range pieces {
		if len(p) == 1 && p[0] == t.term && !open {
			return fmt.Errorf("%w: piece %d of %q is empty", ErrInvalidSequence, i, name)
		}
		open = p[len(p)-1] != t.term
	}

	for i, p := range pieces {
		pieceName := name
		if i > 0 {
			pieceName = name + strconv.Itoa(i)
		}

		terminated := p[len(p)-1] == t.term
		s := t.store.append(p, pieceName, terminated)
		t.extend(s.Start, s.End, terminated)

		if t.logger != nil {
			t.logger.Printf(
				"added %s [%d, %d): %d nodes, %d leaves, open run: %v",
				pieceName, s.Start, s.End, len(t.nodes), t.countLeaves(), t.run.active,
			)
		}
	}
	return nil
}

// Describe returns the name of the sequence holding the global position pos
// and pos's offset within that sequence.
func (t *Tree) Describe(pos int) (name string, offset int, err error) {
	i, offset, err := t.store.Owner(pos)
	if err != nil {
		return "", 0, err
	}
	return t.store.seqs[i].Name, offset, nil
}

// PositionString describes pos for people, ex: "Position 3 in sequence chr1".
func (t *Tree) PositionString(pos int) string {
	name, offset, err := t.Describe(pos)
	if err != nil {
		return "String unknown for position " + strconv.Itoa(pos)
	}
	return fmt.Sprintf("Position %d in sequence %s", offset, name)
}

// newInternal adds an internal node whose path label has the given length
// and starts at label.
func (t *Tree) newInternal(depth, label int) nodeID {
	t.nodes = append(t.nodes, node{
		kind:     internalNode,
		top:      noEdge,
		link:     noNode,
		depth:    depth,
		label:    label,
		children: make(map[byte]edgeID),
	})
	return nodeID(len(t.nodes) - 1)
}

// newLeaf adds a leaf for the suffix starting at start.
func (t *Tree) newLeaf(start int) nodeID {
	t.nodes = append(t.nodes, node{
		kind:      leafNode,
		top:       noEdge,
		link:      noNode,
		positions: []Position{{Start: start, End: openEnd}},
	})
	return nodeID(len(t.nodes) - 1)
}

// newEdge hangs child off parent with the label [start, end).
func (t *Tree) newEdge(parent, child nodeID, start, end int) edgeID {
	t.edges = append(t.edges, edge{
		start:  start,
		end:    end,
		parent: parent,
		child:  child,
	})
	e := edgeID(len(t.edges) - 1)
	t.nodes[parent].children[t.store.buf[start]] = e
	t.nodes[child].top = e
	return e
}

// edgeEnd resolves an edge's end, open ends included.
func (t *Tree) edgeEnd(e edgeID) int {
	if end := t.edges[e].end; end != openEnd {
		return end
	}
	return t.end
}

func (t *Tree) edgeLen(e edgeID) int {
	return t.edgeEnd(e) - t.edges[e].start
}

// parent returns the parent of n, noNode for the root.
func (t *Tree) parent(n nodeID) nodeID {
	if top := t.nodes[n].top; top != noEdge {
		return t.edges[top].parent
	}
	return noNode
}

// positionEnd resolves the end of a leaf position.
func (t *Tree) positionEnd(p Position) int {
	if p.End == openEnd {
		return t.end
	}
	return p.End
}

func (t *Tree) countLeaves() (leaves int) {
	for i := range t.nodes {
		if t.nodes[i].kind == leafNode {
			leaves++
		}
	}
	return leaves
}
