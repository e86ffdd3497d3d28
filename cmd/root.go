package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pnwcnet/pnwcnet-go/cmd/inventory"
	"github.com/pnwcnet/pnwcnet-go/cmd/review"
	"github.com/pnwcnet/pnwcnet-go/cmd/summary"
	"github.com/pnwcnet/pnwcnet-go/internal/conf"
	"github.com/pnwcnet/pnwcnet-go/internal/logging"
)

// RootCommand creates and returns the root command.
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pnwcnet",
		Short: "PNW-Cnet bioacoustic detection review tools",
		Long: `pnwcnet turns PNW-Cnet class score tables into recording effort and
apparent detection summaries, and into review tables browsable in
Wildlife Acoustics' Kaleidoscope.`,
	}

	setupFlags(rootCmd, settings)

	rootCmd.AddCommand(
		review.Command(settings),
		summary.Command(settings),
		inventory.Command(settings),
	)

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if settings.Debug {
			logging.SetLevel(slog.LevelDebug)
		}
	}

	return rootCmd
}

// setupFlags configures the global flags for the root command.
func setupFlags(cmd *cobra.Command, settings *conf.Settings) {
	cmd.PersistentFlags().BoolVar(&settings.Debug, "debug", settings.Debug, "Enable debug output")
	cmd.PersistentFlags().StringVarP(&settings.Cnet.Version, "version", "v", settings.Cnet.Version, "PNW-Cnet model version (v4 or v5)")
	cmd.PersistentFlags().StringVarP(&settings.Output.Directory, "output", "o", settings.Output.Directory, "Directory for output files")
}
