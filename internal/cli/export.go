package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/csg33k/ui19-exporter/internal/adapters/reportfile"
	sqliteadapter "github.com/csg33k/ui19-exporter/internal/adapters/sqlite"
	"github.com/csg33k/ui19-exporter/internal/adapters/ui19"
	"github.com/csg33k/ui19-exporter/internal/config"
	"github.com/csg33k/ui19-exporter/internal/domain"
)

// allTargets selects every supported target.
const allTargets = "all"

type exportOptions struct {
	target   string
	file     string
	reportID int64
	out      string
	now      func() time.Time
}

// NewExportCommand encodes one report, read from a file or the database, for
// one target or all of them.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &exportOptions{now: time.Now}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write export files for a report",
		Long: `Write export files for a UI-19 report.

The report comes from a YAML file (--file) or from the database (--report).
Exports of stored reports are recorded in the export log.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, rootOpts, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.target, "target", "t", "", "target system, or \"all\"")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "report file (YAML)")
	cmd.Flags().Int64Var(&opts.reportID, "report", 0, "stored report id")
	cmd.Flags().StringVarP(&opts.out, "out", "o", ".", "output directory")
	cmd.MarkFlagRequired("target")
	cmd.MarkFlagsMutuallyExclusive("file", "report")
	cmd.MarkFlagsOneRequired("file", "report")
	return cmd
}

func runExport(cmd *cobra.Command, rootOpts *RootOptions, opts *exportOptions) error {
	targets, err := parseTargets(opts.target)
	if err != nil {
		return err
	}
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	loc := cfg.Location
	if rootOpts.TZ != "" {
		if loc, err = time.LoadLocation(rootOpts.TZ); err != nil {
			return fmt.Errorf("--tz: %w", err)
		}
	}

	var (
		report *domain.Report
		repo   *sqliteadapter.Repository
	)
	if opts.file != "" {
		if report, err = reportfile.Load(opts.file); err != nil {
			return err
		}
	} else {
		dsn := rootOpts.DBPath
		if dsn == "" {
			dsn = cfg.DBPath
		}
		if repo, err = sqliteadapter.New(dsn); err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer repo.Close()
		if report, err = repo.GetReport(cmd.Context(), opts.reportID); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		return err
	}

	exp := ui19.New(ui19.WithClock(opts.now), ui19.WithLocation(loc))
	for _, t := range targets {
		file, err := exp.Export(report, t)
		if err != nil {
			return err
		}
		path := filepath.Join(opts.out, file.Filename)
		if err := os.WriteFile(path, file.Data, 0o644); err != nil {
			return err
		}
		slog.Debug("export written", "target", t, "path", path, "bytes", len(file.Data))
		if repo != nil {
			rec := &domain.ExportRecord{ReportID: report.ID, Target: t, Filename: file.Filename, Size: len(file.Data)}
			if err := repo.RecordExport(cmd.Context(), rec); err != nil {
				slog.Warn("export not recorded", "target", t, "err", err)
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}

func parseTargets(s string) ([]domain.Target, error) {
	if strings.EqualFold(strings.TrimSpace(s), allTargets) {
		return domain.Targets(), nil
	}
	var out []domain.Target
	for _, part := range strings.Split(s, ",") {
		t, err := domain.ParseTarget(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ui19.ErrUnsupportedTarget, part)
		}
		out = append(out, t)
	}
	return out, nil
}
