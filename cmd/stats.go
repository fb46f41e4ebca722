package cmd

import (
	"github.com/sbliven/biojava-sub014/internal/motif"
	"github.com/spf13/cobra"
)

// statsCmd is for logging the size of the suffix tree over the input.
var statsCmd = &cobra.Command{
	Use:                        "stats",
	Short:                      "Log the size of the suffix tree built over sequences",
	Run:                        motif.StatsCmd,
	SuggestionsMinimumDistance: 2,
	Example:                    "  sfx stats --in chr1.fa,chr2.fa",
	Long: `Build the suffix tree over the input sequences and log its node, leaf and
edge totals, the phases and extensions of its construction, and the base
frequencies of the sequences.`,
}

// set flags
func init() {
	addInputFlags(statsCmd)

	RootCmd.AddCommand(statsCmd)
}
