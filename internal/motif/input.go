package motif

import (
	"bufio"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/sbliven/biojava-sub014/config"
	"github.com/sbliven/biojava-sub014/internal/cache"
	"github.com/sbliven/biojava-sub014/internal/seqio"
	"github.com/spf13/cobra"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

// Flags contains parsed cobra Flags like "in", "seq", "out", etc that are used by multiple commands.
type Flags struct {
	// the FASTA files to index
	in []string

	// raw sequences to index, after those in the files
	seqs []string

	// the queries: command arguments and lines of the queries file
	queries []string

	// the name of the file to write a JSON report to
	out string

	// whether to list every hit, not only counts
	positions bool
}

// inputParser contains methods for parsing flags from the input &cobra.Command.
type inputParser struct{}

// NewFlags makes a new flags object manually. for testing.
func NewFlags(in, seqs, queries []string, out string, positions bool) *Flags {
	return &Flags{
		in:        in,
		seqs:      seqs,
		queries:   queries,
		out:       out,
		positions: positions,
	}
}

// parseCmdFlags gathers the in paths, out path, queries, etc from a cobra cmd object.
// In strict mode a missing input is guessed from the working directory.
func parseCmdFlags(cmd *cobra.Command, args []string, strict bool) (*Flags, *config.Config, error) {
	fs := &Flags{} // parsed flags
	p := inputParser{}
	c := config.New()

	in, _ := cmd.Flags().GetString("in")
	fs.in = p.split(in)

	seqs, _ := cmd.Flags().GetString("seq")
	fs.seqs = p.split(seqs)

	if len(fs.in) == 0 && len(fs.seqs) == 0 && strict {
		guess, err := p.guessInput()
		if err != nil {
			return nil, nil, err
		}
		fs.in = []string{guess}
	}

	fs.queries = append(fs.queries, args...)
	if queriesPath, _ := cmd.Flags().GetString("queries"); queriesPath != "" {
		queries, err := p.readQueries(queriesPath)
		if err != nil {
			return nil, nil, err
		}
		fs.queries = append(fs.queries, queries...)
	}

	fs.out, _ = cmd.Flags().GetString("out")
	fs.positions, _ = cmd.Flags().GetBool("positions")

	return fs, c, nil
}

// load reads the records of flags' inputs and builds a session over them.
func load(flags *Flags, conf *config.Config) (*Session, error) {
	alpha, err := seqio.Alphabet(conf.Alphabet)
	if err != nil {
		return nil, err
	}

	records, err := seqio.ReadFiles(flags.in, alpha)
	if err != nil {
		return nil, fmt.Errorf("failed to read sequences: %v", err)
	}
	records = append(records, seqio.FromArgs(flags.seqs)...)

	c, err := cache.New(conf.Cache)
	if err != nil {
		return nil, err
	}

	return NewSession(records, conf, c)
}

// guessInput returns the first fasta file in the current directory. Is used
// if the user hasn't specified an input file.
func (p *inputParser) guessInput() (in string, err error) {
	dir, _ := filepath.Abs(".")
	files, err := ioutil.ReadDir(dir)
	if err != nil {
		return
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(file.Name()))
		if ext == ".fa" || ext == ".fasta" {
			return file.Name(), nil
		}
	}

	return "", fmt.Errorf("failed: no input argument set and no fasta file found in %s", dir)
}

// split takes a space or comma separated flag value and returns its entries.
func (p *inputParser) split(flag string) []string {
	splitFunc := func(c rune) bool {
		return c == ' ' || c == ',' // space or comma separated
	}

	return strings.FieldsFunc(flag, splitFunc)
}

// readQueries returns the non-empty lines of a queries file. Lines starting
// with '#' are comments.
func (p *inputParser) readQueries(path string) (queries []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open queries file: %v", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		queries = append(queries, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read queries file: %v", err)
	}

	return queries, nil
}
