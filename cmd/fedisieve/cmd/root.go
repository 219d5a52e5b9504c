package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fedisieve/fedisieve/internal/core/config"
)

var (
	configFile string
	dbURL      string
	specDir    string
)

var rootCmd = &cobra.Command{
	Use:   "fedisieve",
	Short: "fedisieve content-filter rule engine",
	Long:  `fedisieve validates and evaluates declarative content-filter specifications for federated feeds.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db-url", "", "specification store URL (sqlite://path or postgres://...)")
	rootCmd.PersistentFlags().StringVar(&specDir, "spec-dir", "", "directory of *.json specification files")
}

func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads configuration and applies flag overrides on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dbURL != "" {
		cfg.DatabaseURL = dbURL
	}
	if specDir != "" {
		cfg.SpecDir = specDir
	}
	return cfg, nil
}
