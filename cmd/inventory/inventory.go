// Package inventory implements the "inventory" subcommand: catalog the
// long-form audio files under a survey directory.
package inventory

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pnwcnet/pnwcnet-go/internal/conf"
	inv "github.com/pnwcnet/pnwcnet-go/internal/inventory"
	"github.com/pnwcnet/pnwcnet-go/internal/logging"
)

// Command creates the inventory command.
func Command(settings *conf.Settings) *cobra.Command {
	var rebuild bool

	cmd := &cobra.Command{
		Use:   "inventory [target directory]",
		Short: "Inventory audio files under a directory tree",
		Long: `Walk a directory tree for source audio files and write a CSV listing
each file's folder, name, size and duration. The review command consults
this inventory to map clips back to their source recordings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInventory(settings, args[0], rebuild)
		},
	}

	cmd.Flags().BoolVar(&settings.Review.FlacMode, "flac", settings.Review.FlacMode, "Inventory .flac files rather than .wav")
	cmd.Flags().BoolVar(&rebuild, "rebuild", false, "Rebuild the inventory even if one already exists")

	return cmd
}

func runInventory(settings *conf.Settings, targetDir string, rebuild bool) error {
	logger := logging.ForService("inventory")

	ext := ".wav"
	if settings.Review.FlacMode {
		ext = ".flac"
	}

	if rebuild {
		if err := os.Remove(inv.Path(targetDir, ext)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	entries, err := inv.Ensure(targetDir, ext)
	if err != nil {
		return err
	}
	logger.Info("inventory ready", "path", inv.Path(targetDir, ext), "files", len(entries))

	inv.Summarize(os.Stdout, entries)
	return nil
}
