package cmd

import (
	"github.com/sbliven/biojava-sub014/internal/motif"
	"github.com/spf13/cobra"
)

// describeCmd is for mapping global positions back to sequences.
var describeCmd = &cobra.Command{
	Use:                        "describe [position...]",
	Short:                      "Map positions across all sequences back to a sequence and offset",
	Run:                        motif.DescribeCmd,
	SuggestionsMinimumDistance: 2,
	Example:                    "  sfx describe --in chr1.fa,chr2.fa 0 1200",
	Long: `Map each global position, as reported by "sfx find", back to the name of
the sequence it falls in and its offset within that sequence.`,
}

// set flags
func init() {
	addInputFlags(describeCmd)

	RootCmd.AddCommand(describeCmd)
}
