package motif

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/sbliven/biojava-sub014/config"
	"github.com/spf13/cobra"
)

// FindCmd is for finding every occurrence of the queries passed.
func FindCmd(cmd *cobra.Command, args []string) {
	run(cmd, args, true)
}

// CountCmd is for counting the occurrences of the queries passed.
func CountCmd(cmd *cobra.Command, args []string) {
	run(cmd, args, false)
}

// StatsCmd logs the size of the tree built over the input sequences.
func StatsCmd(cmd *cobra.Command, args []string) {
	flags, conf, err := parseCmdFlags(cmd, args, true)
	if err != nil {
		cmd.Help()
		stderr.Fatal(err)
	}

	if err := Summarize(flags, conf, os.Stdout); err != nil {
		stderr.Fatalln(err)
	}
}

// DescribeCmd maps global positions, as reported by find, back to their
// sequence and offset.
func DescribeCmd(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		cmd.Help()
		stderr.Fatalln("\nno position passed.")
	}

	flags, conf, err := parseCmdFlags(cmd, nil, true)
	if err != nil {
		cmd.Help()
		stderr.Fatal(err)
	}

	if err := Describe(flags, conf, args, os.Stdout); err != nil {
		stderr.Fatalln(err)
	}
}

func run(cmd *cobra.Command, args []string, hits bool) {
	flags, conf, err := parseCmdFlags(cmd, args, true)
	if err != nil {
		cmd.Help()
		stderr.Fatal(err)
	}
	if len(flags.queries) == 0 {
		cmd.Help()
		stderr.Fatalln("\nno query passed.")
	}

	if _, err := Query(flags, conf, hits, os.Stdout); err != nil {
		stderr.Fatalln(err)
	}
}

// Query runs every query of flags against a tree over flags' sequences
// and logs the results to w. Hits are looked up when hits is set, and
// logged too when flags ask for positions.
func Query(flags *Flags, conf *config.Config, hits bool, w io.Writer) ([]Result, error) {
	start := time.Now()

	s, err := load(flags, conf)
	if err != nil {
		return nil, err
	}

	var results []Result
	for _, q := range flags.queries {
		var r Result
		if hits {
			r, err = s.Find(q, conf.MinSeparation)
		} else {
			r, err = s.Count(q, conf.MinSeparation)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query %q: %v", q, err)
		}
		results = append(results, r)
	}

	if err := writeResults(w, results, hits && flags.positions); err != nil {
		return nil, err
	}

	if flags.out != "" {
		if _, err := writeJSON(flags.out, s.Names(), results, nil, time.Since(start).Seconds()); err != nil {
			return nil, err
		}
	}

	if conf.Verbose {
		stderr.Printf("%s\n", time.Since(start))
	}

	return results, nil
}

// Summarize builds a tree over flags' sequences and logs its stats to w.
func Summarize(flags *Flags, conf *config.Config, w io.Writer) error {
	start := time.Now()

	s, err := load(flags, conf)
	if err != nil {
		return err
	}

	stats := s.Stats()
	if err := writeStats(w, stats); err != nil {
		return err
	}

	if flags.out != "" {
		if _, err := writeJSON(flags.out, s.Names(), nil, &stats, time.Since(start).Seconds()); err != nil {
			return err
		}
	}
	return nil
}

// Describe logs the sequence and offset of each global position passed.
func Describe(flags *Flags, conf *config.Config, positions []string, w io.Writer) error {
	s, err := load(flags, conf)
	if err != nil {
		return err
	}

	tw := resultWriter(w)
	fmt.Fprintf(tw, "position\tsequence\toffset\t\n")
	for _, arg := range positions {
		pos, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("failed to parse position %q: %v", arg, err)
		}

		h, err := s.Describe(pos)
		if err != nil {
			return fmt.Errorf("failed to describe position %d: %v", pos, err)
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t\n", h.Position, h.Sequence, h.Offset)
	}
	return tw.Flush()
}
