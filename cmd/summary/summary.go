// Package summary implements the "summary" subcommand: recording effort
// and multi-threshold apparent detection tallies from a class score file.
package summary

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pnwcnet/pnwcnet-go/internal/conf"
	"github.com/pnwcnet/pnwcnet-go/internal/datastore"
	"github.com/pnwcnet/pnwcnet-go/internal/logging"
	"github.com/pnwcnet/pnwcnet-go/internal/scores"
	innersummary "github.com/pnwcnet/pnwcnet-go/internal/summary"
)

// Command creates the summary command.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary [class_scores.csv]",
		Short: "Summarize apparent detections across the threshold ladder",
		Long: `Tally apparent detections of every class at thresholds 0.05-0.95,
0.98 and 0.99, joined with recording effort per area, site, station and
date, and write the result as a detection summary CSV.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(settings, args[0])
		},
	}

	cmd.Flags().IntVarP(&settings.Summary.Workers, "workers", "w", settings.Summary.Workers, "Number of tally workers (0 = min(cores, 10))")
	cmd.Flags().BoolVar(&settings.Output.SQLite.Enabled, "sqlite", settings.Output.SQLite.Enabled, "Also save the summary to the SQLite database")

	return cmd
}

func runSummary(settings *conf.Settings, scorePath string) error {
	logger := logging.ForService("summary")

	table, err := scores.ReadCSV(scorePath)
	if err != nil {
		return err
	}
	logger.Info("score table loaded", "path", scorePath, "clips", len(table.Rows), "classes", len(table.Classes))

	rows, err := innersummary.SummarizeDetections(table, settings.Summary.Workers)
	if err != nil {
		return fmt.Errorf("failed to summarize detections: %w", err)
	}

	outPath := outputPath(settings, scorePath, "_detection_summary.csv")
	if err := innersummary.WriteCSV(outPath, rows, table.Classes); err != nil {
		return err
	}
	logger.Info("detection summary written", "path", outPath, "rows", len(rows))

	if settings.Output.SQLite.Enabled {
		store, err := datastore.Open(settings.Output.SQLite.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.SaveSummary(runLabel(scorePath), rows, table.Classes); err != nil {
			return err
		}
		logger.Info("detection summary saved to database", "path", settings.Output.SQLite.Path)
	}
	return nil
}

// runLabel is the score file stem, used to group database records from
// one processing run.
func runLabel(scorePath string) string {
	base := filepath.Base(scorePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.TrimSuffix(base, "_class_scores")
}

func outputPath(settings *conf.Settings, scorePath, suffix string) string {
	dir := settings.Output.Directory
	if dir == "" {
		dir = filepath.Dir(scorePath)
	}
	return filepath.Join(dir, runLabel(scorePath)+suffix)
}
