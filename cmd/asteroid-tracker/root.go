package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"asteroid-tracker/internal/config"
	"asteroid-tracker/internal/logging"
)

var (
	configPath string
	schemaPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "asteroid-tracker",
	Short: "Near-Earth asteroid tracker",
	Long: "asteroid-tracker shows the Sun, Earth, the Moon and near-Earth asteroids from the NASA NeoWs feed, " +
		"either interactively in the terminal or as a headless loop emitting body state.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/tracker.yaml", "Path to tracker configuration YAML")
	rootCmd.PersistentFlags().StringVar(&schemaPath, "schema", "schemas/tracker.cue", "Path to CUE schema file (empty to skip validation)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")

	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(dashboardCmd)
}

// loadConfig reads the configuration file. A missing file at the default
// path falls back to built-in defaults plus environment overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config") {
		cfg := config.Default()
		if err := cfg.ApplyEnv(os.Getenv); err != nil {
			return nil, err
		}
		return cfg, cfg.Validate()
	}
	schema := schemaPath
	if _, err := os.Stat(schema); schema != "" && errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("schema") {
		schema = ""
	}
	return config.Load(configPath, schema)
}

// setupLogger builds the process logger and installs it as the slog default.
func setupLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	logger, err := logging.NewWithOptions(w, level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return logger, nil
}
