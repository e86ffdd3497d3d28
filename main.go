package main

import (
	"os"

	"github.com/pnwcnet/pnwcnet-go/cmd"
	"github.com/pnwcnet/pnwcnet-go/internal/conf"
	"github.com/pnwcnet/pnwcnet-go/internal/logging"
)

func main() {
	logging.Init()

	settings := conf.Setting()
	if settings == nil {
		logging.Fatal("settings cannot be nil")
	}

	if settings.Main.Log.Enabled {
		closeLog, err := logging.EnableFileLogging(settings.Main.Log.Path)
		if err != nil {
			logging.Fatal("failed to open log file", "path", settings.Main.Log.Path, "error", err)
		}
		defer closeLog()
	}

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		logging.HumanReadable().Error("command failed", "error", err)
		os.Exit(1)
	}
}
