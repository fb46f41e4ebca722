package suffixtree

import (
	"bytes"
	"fmt"
	"sort"
)

// Sequence is one named piece of a Store. Start and End are global
// positions, End is exclusive and includes the terminator if there is one.
type Sequence struct {
	Name       string
	Start      int
	End        int
	Terminated bool
}

// Len returns the number of characters in the sequence, terminator included.
func (s Sequence) Len() int {
	return s.End - s.Start
}

// Contains reports whether the global position pos falls in the sequence.
func (s Sequence) Contains(pos int) bool {
	return s.Start <= pos && pos < s.End
}

// Frequencies is the composition of the A, C, G and T residues in a Store.
// Other characters, the terminator included, are not counted.
type Frequencies struct {
	A, C, G, T float64

	// Total is the number of A, C, G and T residues seen
	Total int
}

// Store is the append-only concatenation of every sequence added to a tree.
// A character's global index never changes once it is appended.
type Store struct {
	buf   []byte
	seqs  []Sequence
	freqs *Frequencies
}

// Len returns the total number of characters appended so far.
func (s *Store) Len() int {
	return len(s.buf)
}

// Count returns the number of sequences appended so far.
func (s *Store) Count() int {
	return len(s.seqs)
}

// At returns the character at a global index.
func (s *Store) At(i int) (byte, error) {
	if i < 0 || i >= len(s.buf) {
		return 0, fmt.Errorf("%w: position %d, store length %d", ErrIndexOutOfRange, i, len(s.buf))
	}
	return s.buf[i], nil
}

// Sequence returns the i-th appended sequence.
func (s *Store) Sequence(i int) (Sequence, error) {
	if i < 0 || i >= len(s.seqs) {
		return Sequence{}, fmt.Errorf("%w: sequence %d of %d", ErrIndexOutOfRange, i, len(s.seqs))
	}
	return s.seqs[i], nil
}

// Owner returns the index of the sequence holding the global position pos
// and pos's offset within it.
func (s *Store) Owner(pos int) (seq, offset int, err error) {
	if pos < 0 || pos >= len(s.buf) {
		return 0, 0, fmt.Errorf("%w: position %d, store length %d", ErrIndexOutOfRange, pos, len(s.buf))
	}

	seq = sort.Search(len(s.seqs), func(i int) bool {
		return s.seqs[i].End > pos
	})
	return seq, pos - s.seqs[seq].Start, nil
}

// Slice returns the characters in [start, end) as a string.
func (s *Store) Slice(start, end int) (string, error) {
	if start < 0 || end > len(s.buf) || start > end {
		return "", fmt.Errorf("%w: range [%d, %d), store length %d", ErrIndexOutOfRange, start, end, len(s.buf))
	}
	return string(s.buf[start:end]), nil
}

// BaseFrequencies returns the fraction of each of A, C, G and T among the
// ACGT residues in the store, case-insensitive. The result is cached until
// the next append.
func (s *Store) BaseFrequencies() Frequencies {
	if s.freqs != nil {
		return *s.freqs
	}

	var count [4]int
	for _, c := range s.buf {
		switch c {
		case 'A', 'a':
			count[0]++
		case 'C', 'c':
			count[1]++
		case 'G', 'g':
			count[2]++
		case 'T', 't':
			count[3]++
		}
	}

	f := Frequencies{Total: count[0] + count[1] + count[2] + count[3]}
	if f.Total > 0 {
		total := float64(f.Total)
		f.A = float64(count[0]) / total
		f.C = float64(count[1]) / total
		f.G = float64(count[2]) / total
		f.T = float64(count[3]) / total
	}
	s.freqs = &f
	return f
}

// append adds one already split piece and returns its record.
func (s *Store) append(piece []byte, name string, terminated bool) Sequence {
	seq := Sequence{
		Name:       name,
		Start:      len(s.buf),
		End:        len(s.buf) + len(piece),
		Terminated: terminated,
	}
	s.buf = append(s.buf, piece...)
	s.seqs = append(s.seqs, seq)
	s.freqs = nil
	return seq
}

// split cuts seq after every terminator. A trailing piece without one gets
// the terminator appended unless suppress is set.
func split(seq []byte, term byte, suppress bool) (pieces [][]byte) {
	for len(seq) > 0 {
		i := bytes.IndexByte(seq, term)
		if i < 0 {
			piece := seq
			if !suppress {
				piece = make([]byte, len(seq)+1)
				copy(piece, seq)
				piece[len(seq)] = term
			}
			pieces = append(pieces, piece)
			break
		}
		pieces = append(pieces, seq[:i+1])
		seq = seq[i+1:]
	}
	return pieces
}
