package cmd

import (
	"github.com/sbliven/biojava-sub014/internal/motif"
	"github.com/spf13/cobra"
)

// findCmd is for finding every occurrence of one or more motifs.
var findCmd = &cobra.Command{
	Use:                        "find [query...]",
	Short:                      "Find every occurrence of motifs in sequences",
	Run:                        motif.FindCmd,
	SuggestionsMinimumDistance: 2,
	Example:                    "  sfx find --in chr1.fa --positions GAATTC GGATCC",
	Long: `Find every occurrence of each query in the input sequences.

The sequences are read from FASTA files (--in) and/or passed raw (--seq), and
indexed in one generalized suffix tree. Each query is reported with its count,
its count without overlap and, with --positions, the sequence and offset
of every hit.`,
	Aliases: []string{"search"},
}

// set flags
func init() {
	addInputFlags(findCmd)
	findCmd.Flags().StringP("queries", "q", "", "file with one query per line")
	findCmd.Flags().BoolP("positions", "p", false, "list the sequence and offset of every hit")

	RootCmd.AddCommand(findCmd)
}

// addInputFlags adds the flags for the sequences to index and the report to write.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("in", "i", "", "comma separated list of input FASTA files")
	cmd.Flags().StringP("seq", "s", "", "comma separated list of raw sequences")
	cmd.Flags().StringP("out", "o", "", "output file name for a JSON report")
}
