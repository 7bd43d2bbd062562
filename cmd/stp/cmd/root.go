package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/VukDukic/Simple-Trigger-Pattern/pkg/logging"
	"github.com/VukDukic/Simple-Trigger-Pattern/pkg/platform"
)

var (
	cfgFile      string
	outputFormat string
	logLevel     string
	jsonLogs     bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "stp",
	Short: "CLI for the Simple Trigger Pattern dispatch engine",
	Long: `stp drives the run-once-per-phase trigger guard: it lists the
recognized lifecycle phases, simulates logical operations split into
sub-batches, and serves dispatch metrics.`,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.stp/config)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output", "table", "output format: table, json or yaml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default from config or info)")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "emit logs as JSON")
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		// Search config in home directory with name ".stp/config" (without extension)
		configDir := filepath.Join(home, ".stp")
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("stp")
	viper.AutomaticEnv() // read in environment variables that match

	viper.SetDefault("sub_batch_limit", platform.DefaultSubBatchLimit)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("listen_addr", ":8080")

	// Config file is optional
	_ = viper.ReadInConfig()

	if logLevel == "" {
		logLevel = viper.GetString("log_level")
	}
}

// newLogger builds the logger configured by flags and config file
func newLogger() *logging.Logger {
	return logging.NewLogger(logging.ParseLevel(logLevel), jsonLogs)
}

// subBatchLimit returns the configured sub-batch limit
func subBatchLimit() int {
	return viper.GetInt("sub_batch_limit")
}

// IsJSONOutput returns true if JSON output is requested
func IsJSONOutput() bool {
	return outputFormat == "json"
}

// IsYAMLOutput returns true if YAML output is requested
func IsYAMLOutput() bool {
	return outputFormat == "yaml"
}
