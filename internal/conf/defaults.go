// conf/defaults.go default values for settings
package conf

import "github.com/spf13/viper"

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "pnwcnet")
	viper.SetDefault("main.log.enabled", false)
	viper.SetDefault("main.log.path", "pnwcnet.log")

	viper.SetDefault("cnet.version", "v5")

	viper.SetDefault("review.settings", "")
	viper.SetDefault("review.timescale", "weekly")
	viper.SetDefault("review.infersourcefolders", false)
	viper.SetDefault("review.sourceprefix", "")
	viper.SetDefault("review.flacmode", false)

	viper.SetDefault("summary.workers", 0)

	viper.SetDefault("output.directory", "")
	viper.SetDefault("output.sqlite.enabled", false)
	viper.SetDefault("output.sqlite.path", "pnwcnet.db")
}
