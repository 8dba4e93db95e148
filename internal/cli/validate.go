package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/csg33k/ui19-exporter/internal/adapters/reportfile"
)

// NewValidateCommand checks a report file without exporting it.
func NewValidateCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:          "validate",
		Short:        "Check a report file for UI-19 errors",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := reportfile.Load(file)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s, %s, %d employee(s)\n",
				r.Employer.LegalName, r.Employer.Period.Label(), len(r.Employees))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "report file (YAML)")
	cmd.MarkFlagRequired("file")
	return cmd
}
