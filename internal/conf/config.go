// Package conf loads and holds the application settings. Settings come
// from an optional config.yaml (working directory or the user config
// directory), with defaults applied through viper for anything the file
// does not set.
package conf

import (
	_ "embed"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

//go:embed config.yaml
var defaultConfig []byte

// LogConfig describes an optional service log file.
type LogConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Settings holds the full application configuration.
type Settings struct {
	Debug bool `yaml:"debug"`

	Main struct {
		Name string    `yaml:"name"` // instance name used in outputs and logs
		Log  LogConfig `yaml:"log"`
	} `yaml:"main"`

	Cnet struct {
		Version string `yaml:"version"` // PNW-Cnet model version, "v4" or "v5"
	} `yaml:"cnet"`

	Review struct {
		Settings           string `yaml:"settings"`           // criteria file path or compact criteria string
		Timescale          string `yaml:"timescale"`          // "weekly" or "daily" SORT keys
		InferSourceFolders bool   `yaml:"infersourcefolders"` // build FOLDER from clip names, skip the inventory
		SourcePrefix       string `yaml:"sourceprefix"`       // prefix for inferred source folders
		FlacMode           bool   `yaml:"flacmode"`           // source audio is .flac rather than .wav
	} `yaml:"review"`

	Summary struct {
		Workers int `yaml:"workers"` // tally worker count, 0 = min(NumCPU, 10)
	} `yaml:"summary"`

	Output struct {
		Directory string `yaml:"directory"` // where CSV outputs are written, "" = alongside input
		SQLite    struct {
			Enabled bool   `yaml:"enabled"`
			Path    string `yaml:"path"`
		} `yaml:"sqlite"`
	} `yaml:"output"`
}

var (
	settingsInstance *Settings
	once             sync.Once
	settingsMutex    sync.RWMutex
)

// Load reads the configuration file and defaults into a Settings struct.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	settingsInstance = settings
	return settings, nil
}

func initViper() error {
	viper.SetConfigType("yaml")
	viper.SetConfigName("config")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return err
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		return createDefaultConfig()
	}
	return nil
}

// createDefaultConfig writes the embedded default config file to the user
// config directory and loads it, so a first run leaves a commented
// starting point behind.
func createDefaultConfig() error {
	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	configPath := filepath.Join(configPaths[len(configPaths)-1], "config.yaml")

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("error creating directories for config file: %w", err)
	}
	if err := os.WriteFile(configPath, defaultConfig, 0o644); err != nil {
		return fmt.Errorf("error writing default config file: %w", err)
	}

	fmt.Println("Created default config file at:", configPath)
	return viper.ReadInConfig()
}

// GetDefaultConfigPaths returns the directories searched for config.yaml:
// the working directory first, then the per-user config directory.
func GetDefaultConfigPaths() ([]string, error) {
	paths := []string{"."}
	if userConfig, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(userConfig, "pnwcnet"))
	}
	return paths, nil
}

// Setting returns the current settings instance, loading it on first use.
func Setting() *Settings {
	once.Do(func() {
		if settingsInstance == nil {
			if _, err := Load(); err != nil {
				log.Fatalf("Error loading settings: %v", err)
			}
		}
	})
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}

// DefaultConfig returns the embedded default configuration file contents.
func DefaultConfig() []byte {
	return defaultConfig
}
