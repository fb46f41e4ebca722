package seqio

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/biogo/biogo/alphabet"
	"github.com/sbliven/biojava-sub014/internal/suffixtree"
)

func TestRead(t *testing.T) {
	tests := []struct {
		name    string
		fasta   string
		want    []Record
		wantErr bool
	}{
		{
			"multi fasta",
			">one first\nACGT\nTT\n>two\nggc\n",
			[]Record{
				{Name: "one", Seq: []byte("ACGTTT")},
				{Name: "two", Seq: []byte("ggc")},
			},
			false,
		},
		{
			"no records",
			"",
			nil,
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(strings.NewReader(tt.fasta), alphabet.DNA)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Read() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Read() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestReadFiles(t *testing.T) {
	paths := []string{
		filepath.Join("..", "..", "test", "input", "phage.fa"),
		filepath.Join("..", "..", "test", "input", "banana.fa"),
	}

	records, err := ReadFiles(paths, alphabet.Protein)
	if err != nil {
		t.Fatal(err)
	}

	var names []string
	for _, r := range records {
		names = append(names, r.Name)
	}
	if want := []string{"phiX_fragment", "repeats", "banana"}; !reflect.DeepEqual(names, want) {
		t.Errorf("ReadFiles() names = %v, want %v", names, want)
	}
	if got := len(records[0].Seq); got != 120 {
		t.Errorf("ReadFiles() first record length = %d, want 120", got)
	}

	if _, err := ReadFile(filepath.Join("..", "..", "test", "input", "empty.fa"), alphabet.DNA); err == nil {
		t.Error("ReadFile() of an empty file succeeded")
	}
	if _, err := ReadFile(filepath.Join("..", "..", "test", "input", "missing.fa"), alphabet.DNA); err == nil {
		t.Error("ReadFile() of a missing file succeeded")
	}
}

func TestAlphabet(t *testing.T) {
	tests := []struct {
		name    string
		want    alphabet.Alphabet
		wantErr bool
	}{
		{"dna", alphabet.DNA, false},
		{"DNA", alphabet.DNA, false},
		{"rna", alphabet.RNA, false},
		{"protein", alphabet.Protein, false},
		{"klingon", nil, true},
	}

	for _, tt := range tests {
		got, err := Alphabet(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("Alphabet(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Alphabet(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		rec     Record
		wantErr bool
	}{
		{"dna", Record{"ok", []byte("ACGTacgt")}, false},
		{"terminator", Record{"term", []byte("AC$GT")}, true},
		{"invalid residue", Record{"bad", []byte("ACZT")}, true},
		{"empty", Record{"empty", nil}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.rec, alphabet.DNA, '$')
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, suffixtree.ErrInvalidSequence) {
				t.Errorf("Validate() error = %v, want %v", err, suffixtree.ErrInvalidSequence)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	rec := Record{Name: "x", Seq: []byte("acGt")}

	if got := Normalize(rec, false); string(got.Seq) != "ACGT" {
		t.Errorf("Normalize(false) = %s, want ACGT", got.Seq)
	}
	if got := Normalize(rec, true); string(got.Seq) != "acGt" {
		t.Errorf("Normalize(true) = %s, want acGt", got.Seq)
	}
}

func TestFromArgs(t *testing.T) {
	want := []Record{
		{Name: "arg1", Seq: []byte("acgt")},
		{Name: "arg2", Seq: []byte("tt")},
	}
	if got := FromArgs([]string{"acgt", " tt\n"}); !reflect.DeepEqual(got, want) {
		t.Errorf("FromArgs() = %+v, want %+v", got, want)
	}
}
