package cmd

import (
	"github.com/sbliven/biojava-sub014/internal/motif"
	"github.com/spf13/cobra"
)

// countCmd is for counting motifs, with and without overlap.
var countCmd = &cobra.Command{
	Use:                        "count [query...]",
	Short:                      "Count motifs in sequences",
	Run:                        motif.CountCmd,
	SuggestionsMinimumDistance: 2,
	Example:                    "  sfx count --seq banana --min-separation 3 ana",
	Long: `Count the occurrences of each query in the input sequences.

Overlapping occurrences are all counted. The count without overlap keeps,
left to right, only occurrences starting at least --min-separation after the
last one kept (the query's length by default).`,
}

// set flags
func init() {
	addInputFlags(countCmd)
	countCmd.Flags().StringP("queries", "q", "", "file with one query per line")

	RootCmd.AddCommand(countCmd)
}
