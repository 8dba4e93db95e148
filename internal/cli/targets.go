package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/csg33k/ui19-exporter/internal/adapters/ui19"
)

// NewTargetsCommand lists the supported target systems.
func NewTargetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List supported target systems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, t := range ui19.New().Targets() {
				fmt.Fprintf(tw, "%s\t%s\n", t.Target, t.Label)
			}
			return tw.Flush()
		},
	}
}
