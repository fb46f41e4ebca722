// Package seqio reads the sequences sfx indexes, from FASTA files or from
// raw command line arguments, and checks them against a residue alphabet.
package seqio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/biogo/biogo/alphabet"
	biogoio "github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/sbliven/biojava-sub014/internal/suffixtree"
)

// Record is one named sequence.
type Record struct {
	// Name is the FASTA ID, ex: "chr1" for ">chr1 some description"
	Name string

	// Seq is the sequence's residues
	Seq []byte
}

// Alphabet returns the biogo alphabet with the name passed:
// "dna", "rna" or "protein".
func Alphabet(name string) (alphabet.Alphabet, error) {
	switch strings.ToLower(name) {
	case "dna", "":
		return alphabet.DNA, nil
	case "rna":
		return alphabet.RNA, nil
	case "protein":
		return alphabet.Protein, nil
	}
	return nil, fmt.Errorf("unknown alphabet %q, use one of dna, rna or protein", name)
}

// Read parses every FASTA record from r.
func Read(r io.Reader, alpha alphabet.Alphabet) (records []Record, err error) {
	sc := biogoio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alpha)))
	for sc.Next() {
		s, ok := sc.Seq().(*linear.Seq)
		if !ok {
			return nil, fmt.Errorf("failed to parse FASTA: unexpected sequence type %T", sc.Seq())
		}

		residues := make([]byte, len(s.Seq))
		for i, l := range s.Seq {
			residues[i] = byte(l)
		}
		records = append(records, Record{Name: s.Name(), Seq: residues})
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("failed to parse FASTA: %v", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("failed to parse FASTA: no records")
	}
	return records, nil
}

// ReadFile reads a FASTA file (by its path on local FS) to a slice of Records.
func ReadFile(path string, alpha alphabet.Alphabet) ([]Record, error) {
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to create path to input file: %v", err)
		}
		path = abs
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := Read(f, alpha)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	return records, nil
}

// ReadFiles reads the records of every file in the order passed.
func ReadFiles(paths []string, alpha alphabet.Alphabet) ([]Record, error) {
	var records []Record
	for _, path := range paths {
		recs, err := ReadFile(path, alpha)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}
	return records, nil
}

// FromArgs makes one record per raw sequence argument, named arg1, arg2, ...
func FromArgs(args []string) (records []Record) {
	for i, a := range args {
		records = append(records, Record{
			Name: fmt.Sprintf("arg%d", i+1),
			Seq:  []byte(strings.TrimSpace(a)),
		})
	}
	return records
}

// Validate checks that every residue of rec is in alpha and is not term.
func Validate(rec Record, alpha alphabet.Alphabet, term byte) error {
	if len(rec.Seq) == 0 {
		return fmt.Errorf("%w: %s is empty", suffixtree.ErrInvalidSequence, rec.Name)
	}

	for i, c := range rec.Seq {
		if c == term {
			return fmt.Errorf("%w: %s holds the terminator %q at %d", suffixtree.ErrInvalidSequence, rec.Name, term, i)
		}
		if !alpha.IsValid(alphabet.Letter(c)) {
			return fmt.Errorf("%w: %s has invalid residue %q at %d", suffixtree.ErrInvalidSequence, rec.Name, c, i)
		}
	}
	return nil
}

// Normalize upper-cases rec's residues unless caseSensitive is set.
func Normalize(rec Record, caseSensitive bool) Record {
	if caseSensitive {
		return rec
	}
	return Record{Name: rec.Name, Seq: bytes.ToUpper(rec.Seq)}
}
