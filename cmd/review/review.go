// Package review implements the "review" subcommand: build the review and
// Kaleidoscope tables of apparent detections from a class score file.
package review

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pnwcnet/pnwcnet-go/internal/cnet"
	"github.com/pnwcnet/pnwcnet-go/internal/conf"
	"github.com/pnwcnet/pnwcnet-go/internal/datastore"
	"github.com/pnwcnet/pnwcnet-go/internal/logging"
	innerreview "github.com/pnwcnet/pnwcnet-go/internal/review"
	"github.com/pnwcnet/pnwcnet-go/internal/scores"
)

// Command creates the review command.
func Command(settings *conf.Settings) *cobra.Command {
	var targetDir string

	cmd := &cobra.Command{
		Use:   "review [class_scores.csv]",
		Short: "Build review tables of apparent detections",
		Long: `Select clips whose scores clear the review thresholds, reduce them to
one row per clip, and write both a plain review CSV and a Kaleidoscope
compatible CSV with source file, offset and timestamp columns.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if targetDir == "" {
				targetDir = filepath.Dir(args[0])
			}
			return runReview(settings, args[0], targetDir)
		},
	}

	setupFlags(cmd, settings, &targetDir)

	return cmd
}

func setupFlags(cmd *cobra.Command, settings *conf.Settings, targetDir *string) {
	cmd.Flags().StringVarP(targetDir, "dir", "d", "", "Root of the source audio tree (defaults to the score file's directory)")
	cmd.Flags().StringVarP(&settings.Review.Settings, "settings", "s", settings.Review.Settings, "Review criteria: a Class,Threshold CSV path or a compact string")
	cmd.Flags().StringVarP(&settings.Review.Timescale, "timescale", "t", settings.Review.Timescale, "SORT key timescale: weekly or daily")
	cmd.Flags().BoolVar(&settings.Review.InferSourceFolders, "infer-folders", settings.Review.InferSourceFolders, "Build source folders from clip names instead of the audio inventory")
	cmd.Flags().StringVar(&settings.Review.SourcePrefix, "prefix", settings.Review.SourcePrefix, "Prefix for inferred source folders")
	cmd.Flags().BoolVar(&settings.Review.FlacMode, "flac", settings.Review.FlacMode, "Source audio files are .flac rather than .wav")
	cmd.Flags().BoolVar(&settings.Output.SQLite.Enabled, "sqlite", settings.Output.SQLite.Enabled, "Also save review detections to the SQLite database")
}

func runReview(settings *conf.Settings, scorePath, targetDir string) error {
	logger := logging.ForService("review")

	table, err := scores.ReadCSV(scorePath)
	if err != nil {
		return err
	}
	logger.Info("score table loaded", "path", scorePath, "clips", len(table.Rows), "classes", len(table.Classes))

	// The column count identifies the model that produced the scores;
	// default criteria for the wrong version would review the wrong
	// classes.
	if detected := cnet.VersionForClassCount(len(table.Classes)); detected != "" && detected != settings.Cnet.Version {
		logger.Warn("score table matches a different model version, using the detected one",
			"configured", settings.Cnet.Version, "detected", detected, "columns", len(table.Classes))
		settings.Cnet.Version = detected
	}

	criteria, err := innerreview.ResolveCriteria(settings.Review.Settings, settings.Cnet.Version)
	if err != nil {
		return err
	}

	reviewRows := innerreview.BuildReviewTable(table, criteria)
	reviewPath := outputPath(settings, scorePath, "_review.csv")
	if err := innerreview.WriteReviewCSV(reviewPath, reviewRows, table.Classes); err != nil {
		return err
	}
	logger.Info("review table written", "path", reviewPath, "rows", len(reviewRows))

	kscopeRows, err := innerreview.BuildKscopeTable(table, innerreview.ExportOptions{
		TopDir:             targetDir,
		Version:            settings.Cnet.Version,
		Criteria:           criteria,
		Timescale:          settings.Review.Timescale,
		InferSourceFolders: settings.Review.InferSourceFolders,
		SourcePrefix:       settings.Review.SourcePrefix,
		FlacMode:           settings.Review.FlacMode,
	})
	if err != nil {
		return err
	}
	kscopePath := outputPath(settings, scorePath, "_review_kscope.csv")
	if err := innerreview.WriteKscopeCSV(kscopePath, kscopeRows); err != nil {
		return err
	}
	logger.Info("kscope review table written", "path", kscopePath, "rows", len(kscopeRows))

	if settings.Output.SQLite.Enabled {
		store, err := datastore.Open(settings.Output.SQLite.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.SaveReview(runLabel(scorePath), reviewRows); err != nil {
			return err
		}
		logger.Info("review detections saved to database", "path", settings.Output.SQLite.Path)
	}
	return nil
}

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
