package suffixtree

import (
	"bytes"
	"errors"
	"log"
	"reflect"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func build(t *testing.T, seqs ...string) *Tree {
	t.Helper()
	tree := New(DefaultTerminator)
	for i, s := range seqs {
		if err := tree.AddSequence(s, "seq"+string(rune('A'+i)), false); err != nil {
			t.Fatalf("AddSequence(%q) = %v", s, err)
		}
	}
	if err := tree.Check(); err != nil {
		t.Fatalf("Check() after adding %v = %v", seqs, err)
	}
	return tree
}

func TestScenarios(t *testing.T) {
	Convey("abcabx$", t, func() {
		tree := build(t, "abcabx$")

		So(tree.Contains("ab"), ShouldBeTrue)
		So(tree.Count("ab"), ShouldEqual, 2)
		So(tree.CountNoOverlap("ab", 2), ShouldEqual, 2)
		So(tree.Positions("ab"), ShouldResemble, []int{0, 3})
	})

	Convey("banana$", t, func() {
		tree := build(t, "banana$")

		Convey("ana occurs twice, overlapping", func() {
			So(tree.Count("ana"), ShouldEqual, 2)
			So(tree.Positions("ana"), ShouldResemble, []int{1, 3})
			So(tree.CountNoOverlap("ana", 3), ShouldEqual, 1)
			So(tree.PositionsNoOverlap("ana", 3), ShouldResemble, []int{1})
		})

		Convey("absent queries count zero", func() {
			So(tree.Contains("nab"), ShouldBeFalse)
			So(tree.Count("nab"), ShouldEqual, 0)
			So(tree.Positions("nab"), ShouldBeNil)
		})
	})

	Convey("aaaa$", t, func() {
		tree := build(t, "aaaa$")

		So(tree.Count("a"), ShouldEqual, 4)
		So(tree.Contains("aaaa"), ShouldBeTrue)
		So(tree.Contains("aaaaa"), ShouldBeFalse)
		So(tree.CountNoOverlap("aa", 2), ShouldEqual, 2)
	})

	Convey("identical sequences share leaves", t, func() {
		tree := build(t, "xyz$", "xyz$")

		leaf, ok := tree.NodeFor("xyz$")
		So(ok, ShouldBeTrue)
		So(leaf.IsLeaf(), ShouldBeTrue)
		So(leaf.Positions(), ShouldResemble, []Position{{Start: 0, End: 4}, {Start: 4, End: 8}})
		So(tree.Count("xyz"), ShouldEqual, 2)
		So(tree.SequenceCount(), ShouldEqual, 2)
		So(tree.Len(), ShouldEqual, 8)
	})
}

func TestTree_AddSequence(t *testing.T) {
	type seq struct {
		name     string
		seq      string
		suppress bool
	}

	tests := []struct {
		name    string
		seqs    []seq
		want    []Sequence
		wantErr error
	}{
		{
			"terminator appended",
			[]seq{{"chr1", "acgt", false}},
			[]Sequence{{Name: "chr1", Start: 0, End: 5, Terminated: true}},
			nil,
		},
		{
			"empty input is a no-op",
			[]seq{{"chr1", "", false}},
			nil,
			nil,
		},
		{
			"pieces are numbered",
			[]seq{{"s", "ab$cd$ef", false}},
			[]Sequence{
				{Name: "s", Start: 0, End: 3, Terminated: true},
				{Name: "s1", Start: 3, End: 6, Terminated: true},
				{Name: "s2", Start: 6, End: 9, Terminated: true},
			},
			nil,
		},
		{
			"suppressed terminator",
			[]seq{{"x", "ab", true}, {"y", "cab", false}},
			[]Sequence{
				{Name: "x", Start: 0, End: 2},
				{Name: "y", Start: 2, End: 6, Terminated: true},
			},
			nil,
		},
		{
			"lone terminator closes an open run",
			[]seq{{"x", "ab", true}, {"y", "$", false}},
			[]Sequence{
				{Name: "x", Start: 0, End: 2},
				{Name: "y", Start: 2, End: 3, Terminated: true},
			},
			nil,
		},
		{
			"empty piece",
			[]seq{{"s", "ab$$", false}},
			nil,
			ErrInvalidSequence,
		},
		{
			"lone terminator",
			[]seq{{"s", "$", false}},
			nil,
			ErrInvalidSequence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := New(DefaultTerminator)

			var err error
			for _, s := range tt.seqs {
				if err = tree.AddSequence(s.seq, s.name, s.suppress); err != nil {
					break
				}
			}

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AddSequence() error = %v, want %v", err, tt.wantErr)
			}
			if got := tree.Store().seqs; !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AddSequence() sequences = %+v, want %+v", got, tt.want)
			}
			if err := tree.Check(); err != nil {
				t.Errorf("Check() = %v", err)
			}
		})
	}
}

func TestTree_openRun(t *testing.T) {
	tree := New(DefaultTerminator)
	if err := tree.AddSequence("abab", "x", true); err != nil {
		t.Fatal(err)
	}

	// every substring is in the implicit tree while the run is open
	for _, q := range []string{"abab", "bab", "ab", "b"} {
		if !tree.Contains(q) {
			t.Errorf("Contains(%q) = false while the run is open", q)
		}
	}
	if err := tree.Check(); err != nil {
		t.Fatalf("Check() on an open run = %v", err)
	}

	if err := tree.AddSequence("cab", "y", false); err != nil {
		t.Fatal(err)
	}
	if err := tree.Check(); err != nil {
		t.Fatalf("Check() = %v", err)
	}

	if got, want := tree.Positions("ab"), []int{0, 2, 5}; !reflect.DeepEqual(got, want) {
		t.Errorf("Positions(ab) = %v, want %v", got, want)
	}
	if got := tree.Count("babc"); got != 1 {
		t.Errorf("Count(babc) = %d, want 1", got)
	}
}

func TestTree_Describe(t *testing.T) {
	tree := build(t, "acgt", "ggg")

	tests := []struct {
		pos        int
		wantName   string
		wantOffset int
		wantErr    bool
	}{
		{0, "seqA", 0, false},
		{3, "seqA", 3, false},
		{4, "seqA", 4, false},
		{5, "seqB", 0, false},
		{8, "seqB", 3, false},
		{9, "", 0, true},
		{-1, "", 0, true},
	}

	for _, tt := range tests {
		name, offset, err := tree.Describe(tt.pos)
		if (err != nil) != tt.wantErr {
			t.Errorf("Describe(%d) error = %v, wantErr %v", tt.pos, err, tt.wantErr)
			continue
		}
		if tt.wantErr && !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Describe(%d) error = %v, want %v", tt.pos, err, ErrIndexOutOfRange)
		}
		if name != tt.wantName || offset != tt.wantOffset {
			t.Errorf("Describe(%d) = (%s, %d), want (%s, %d)", tt.pos, name, offset, tt.wantName, tt.wantOffset)
		}
	}

	if got, want := tree.PositionString(6), "Position 1 in sequence seqB"; got != want {
		t.Errorf("PositionString(6) = %q, want %q", got, want)
	}
	if got, want := tree.PositionString(20), "String unknown for position 20"; got != want {
		t.Errorf("PositionString(20) = %q, want %q", got, want)
	}
}

func TestTree_Stats(t *testing.T) {
	tree := build(t, "banana")

	want := Stats{
		Nodes:       11,
		Internal:    4,
		Leaves:      7,
		Edges:       10,
		SuffixLinks: 3,
		Phases:      7,
		Extensions:  10,
	}
	want.Rules[RuleNoEdge] = 4
	want.Rules[RuleSplit] = 3
	want.Rules[RuleInEdge] = 3

	if got := tree.Stats(); !reflect.DeepEqual(got, want) {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

func TestTree_SetLogger(t *testing.T) {
	var buf bytes.Buffer
	tree := New(DefaultTerminator)
	tree.SetLogger(log.New(&buf, "", 0))

	if err := tree.AddSequence("acgt$tt", "chr", false); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("logged %d lines, want 2: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[1], "added chr1 [5, 8)") {
		t.Errorf("second log line = %q", lines[1])
	}
}

func TestTree_invariant(t *testing.T) {
	tree := build(t, "ab")

	defer func() {
		r := recover()
		if _, ok := r.(*InvariantError); !ok {
			t.Errorf("trusted walk off the tree recovered %v, want *InvariantError", r)
		}
	}()
	tree.walkTo(root, []byte("zz"), 0, 2, true)
}
