// Package cli implements the ui19 command, which exports reports without
// the web server.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	DBPath  string
	TZ      string
}

// NewRootCommand creates the root command for the ui19 CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "ui19",
		Short:         "Export UI-19 declarations for payroll and tax systems",
		SilenceErrors: true, // main prints it
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if opts.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "SQLite database (defaults to DB_PATH)")
	cmd.PersistentFlags().StringVar(&opts.TZ, "tz", "", "zone for filename timestamps (defaults to EXPORT_TZ)")

	cmd.AddCommand(NewTargetsCommand())
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewValidateCommand())

	return cmd
}
