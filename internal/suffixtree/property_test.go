package suffixtree

import (
	"math/rand"
	"reflect"
	"sort"
	"strings"
	"testing"
)

// randSeq returns a random sequence of n characters from alphabet.
func randSeq(r *rand.Rand, alphabet string, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(b)
}

// bruteStarts returns every, possibly overlapping, start of sub in s.
func bruteStarts(s, sub string) (starts []int) {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			starts = append(starts, i)
		}
	}
	return starts
}

func TestTree_countMatchesBruteForce(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	for _, alphabet := range []string{"a", "ab", "acgt"} {
		for round := 0; round < 40; round++ {
			s := randSeq(r, alphabet, 1+r.Intn(30))
			tree := build(t, s)

			for i := 0; i < len(s); i++ {
				for j := i + 1; j <= len(s); j++ {
					sub := s[i:j]
					want := bruteStarts(s, sub)

					if got := tree.Count(sub); got != len(want) {
						t.Fatalf("%q: Count(%q) = %d, want %d", s, sub, got, len(want))
					}
					if got := tree.Positions(sub); !reflect.DeepEqual(got, want) {
						t.Fatalf("%q: Positions(%q) = %v, want %v", s, sub, got, want)
					}

					noOverlap := tree.CountNoOverlap(sub, len(sub))
					if noOverlap > len(want) {
						t.Fatalf("%q: CountNoOverlap(%q) = %d > Count %d", s, sub, noOverlap, len(want))
					}
					if separated(want, len(sub)) && noOverlap != len(want) {
						t.Fatalf("%q: CountNoOverlap(%q) = %d, want %d for separated hits", s, sub, noOverlap, len(want))
					}
				}
			}
		}
	}
}

// separated reports whether consecutive starts are all at least minSep apart.
func separated(starts []int, minSep int) bool {
	for i := 1; i < len(starts); i++ {
		if starts[i]-starts[i-1] < minSep {
			return false
		}
	}
	return true
}

func TestTree_suffixesPresent(t *testing.T) {
	r := rand.New(rand.NewSource(2))

	for round := 0; round < 100; round++ {
		s := randSeq(r, "acgt", 1+r.Intn(50)) + "$"
		tree := build(t, s)

		for i := range s {
			if !tree.Contains(s[i:]) {
				t.Fatalf("%q: suffix %q missing", s, s[i:])
			}
		}

		// leaves spell the sorted suffixes
		var leaves []string
		it := tree.Leaves(tree.Root())
		for it.Next() {
			leaves = append(leaves, it.Node().PathLabel())
		}
		var suffixes []string
		for i := range s {
			suffixes = append(suffixes, s[i:])
		}
		sort.Strings(suffixes)
		if !reflect.DeepEqual(leaves, suffixes) {
			t.Fatalf("%q: leaves = %v, want %v", s, leaves, suffixes)
		}
	}
}

func TestTree_multipleSequences(t *testing.T) {
	r := rand.New(rand.NewSource(3))

	for round := 0; round < 60; round++ {
		var seqs []string
		for k := 0; k < 1+r.Intn(4); k++ {
			seqs = append(seqs, randSeq(r, "ab", 1+r.Intn(12)))
		}
		tree := build(t, seqs...)
		alone := build(t, seqs[0])
		text := strings.Join(seqs, "$") + "$"

		for n := 1; n <= 5; n++ {
			for q := 0; q < 10; q++ {
				query := randSeq(r, "ab", n)

				if got, want := tree.Positions(query), bruteStarts(text, query); !reflect.DeepEqual(got, want) {
					t.Fatalf("%v: Positions(%q) = %v, want %v", seqs, query, got, want)
				}
				if strings.Contains(seqs[0], query) && !tree.Contains(query) {
					t.Fatalf("%v: Contains(%q) = false, true for the first sequence alone", seqs, query)
				}
				if alone.Contains(query) != strings.Contains(seqs[0], query) {
					t.Fatalf("%q: Contains(%q) = %v", seqs[0], query, alone.Contains(query))
				}
			}
		}
	}
}

func TestTree_suffixLinks(t *testing.T) {
	r := rand.New(rand.NewSource(4))

	for round := 0; round < 100; round++ {
		tree := New(DefaultTerminator)
		for k := 0; k < 1+r.Intn(3); k++ {
			s := randSeq(r, "ac", 1+r.Intn(20))
			if err := tree.AddSequence(s, "s", r.Intn(3) == 0); err != nil {
				t.Fatal(err)
			}
		}

		// Check rejects links to leaves and links with the wrong label
		if err := tree.Check(); err != nil {
			t.Fatalf("Check() = %v", err)
		}

		it := tree.Nodes(tree.Root())
		for it.Next() {
			n := it.Node()
			if n.IsRoot() || n.IsLeaf() {
				continue
			}
			link, ok := n.SuffixLink()
			if !ok {
				t.Fatalf("internal node %q has no suffix link", n.PathLabel())
			}
			if link.IsLeaf() {
				t.Fatalf("internal node %q links to a leaf", n.PathLabel())
			}
		}
	}
}

func TestTree_idempotentQueries(t *testing.T) {
	tree := build(t, "gattacagattaca", "tacag")

	for _, q := range []string{"att", "aca", "tacag", "x", ""} {
		first := tree.Count(q)
		for i := 0; i < 3; i++ {
			if got := tree.Count(q); got != first {
				t.Errorf("Count(%q) call %d = %d, first call %d", q, i, got, first)
			}
			if got, want := tree.Contains(q), first > 0; got != want {
				t.Errorf("Contains(%q) = %v, want %v", q, got, want)
			}
		}
	}
}
