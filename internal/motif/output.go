package motif

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"text/tabwriter"
	"time"

	"github.com/sbliven/biojava-sub014/internal/suffixtree"
)

// Output is the JSON report of one command run.
type Output struct {
	// Time, ex: "2018/01/01 20:41:00"
	Time string `json:"time"`

	// Execution is the number of seconds it took to execute the command
	Execution float64 `json:"execution"`

	// Sequences are the names of the indexed sequences, in order
	Sequences []string `json:"sequences"`

	// Results for each query
	Results []Result `json:"results,omitempty"`

	// Stats of the tree, for "sfx stats"
	Stats *Stats `json:"stats,omitempty"`
}

// writeJSON writes the results of a run to the filename requested.
func writeJSON(
	filename string,
	sequences []string,
	results []Result,
	stats *Stats,
	seconds float64,
) (output []byte, err error) {
	// store save time, using same format as log.Println https://golang.org/pkg/log/#Println
	t := time.Now()
	stamp := fmt.Sprintf(
		"%d/%02d/%02d %02d:%02d:%02d",
		t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(),
	)

	out := Output{
		Time:      stamp,
		Execution: seconds,
		Sequences: sequences,
		Results:   results,
		Stats:     stats,
	}

	output, err = json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize output: %v", err)
	}

	if err = ioutil.WriteFile(filename, output, 0666); err != nil {
		return nil, fmt.Errorf("failed to write the output: %v", err)
	}

	return output, nil
}

// resultWriter returns the tabwriter results are logged with.
func resultWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 3, ' ', 0)
}

// writeResults logs a table of counts, then a table of hits if hits is set.
func writeResults(w io.Writer, results []Result, hits bool) error {
	tw := resultWriter(w)
	fmt.Fprintf(tw, "query\tpresent\tcount\tno-overlap\tmin-separation\t\n")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%t\t%d\t%d\t%d\t\n", r.Query, r.Present, r.Count, r.CountNoOverlap, r.MinSeparation)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if !hits {
		return nil
	}

	fmt.Fprintln(w)
	tw = resultWriter(w)
	fmt.Fprintf(tw, "query\tsequence\toffset\tposition\t\n")
	for _, r := range results {
		for _, h := range r.Hits {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t\n", r.Query, h.Sequence, h.Offset, h.Position)
		}
	}
	return tw.Flush()
}

// writeStats logs a table of a session's stats.
func writeStats(w io.Writer, s Stats) error {
	tw := resultWriter(w)
	fmt.Fprintf(tw, "sequences\t%d\t\n", s.Sequences)
	fmt.Fprintf(tw, "length\t%d\t\n", s.Length)
	fmt.Fprintf(tw, "nodes\t%d\t\n", s.Tree.Nodes)
	fmt.Fprintf(tw, "internal nodes\t%d\t\n", s.Tree.Internal)
	fmt.Fprintf(tw, "leaves\t%d\t\n", s.Tree.Leaves)
	fmt.Fprintf(tw, "edges\t%d\t\n", s.Tree.Edges)
	fmt.Fprintf(tw, "suffix links\t%d\t\n", s.Tree.SuffixLinks)
	fmt.Fprintf(tw, "phases\t%d\t\n", s.Tree.Phases)
	fmt.Fprintf(tw, "extensions\t%d\t\n", s.Tree.Extensions)
	for r := range s.Tree.Rules {
		if r == 0 {
			continue
		}
		fmt.Fprintf(tw, "extensions by %s\t%d\t\n", suffixtree.Rule(r), s.Tree.Rules[r])
	}
	if s.Frequencies.Total > 0 {
		fmt.Fprintf(
			tw,
			"base frequencies\tA %.3f, C %.3f, G %.3f, T %.3f\t\n",
			s.Frequencies.A, s.Frequencies.C, s.Frequencies.G, s.Frequencies.T,
		)
	}
	return tw.Flush()
}
