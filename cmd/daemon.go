package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/jfmyers9/spotcast/internal/config"
	"github.com/jfmyers9/spotcast/internal/refresher"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	daemonLogFile  string
	daemonLogLevel string
	daemonDataDir  string
)

// daemonCmd represents the daemon command
var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the feed refresh daemon",
	Long: `Run the daemon that keeps subscribed shows up to date.

The daemon will:
- Refresh every subscription on startup and then on a fixed interval
- List each show's episodes through the Spotify Web API
- Record newly published episodes in the subscription database
- Reuse the cached access token until it expires
- Handle graceful shutdown on SIGINT/SIGTERM

The daemon runs in the foreground and logs to stderr by default.
Use the --log-file flag to log to a file (useful for systemd).`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(daemonCmd)

	// Command-line flags
	daemonCmd.Flags().StringVar(&daemonLogFile, "log-file", "", "Log file path (default: stderr)")
	daemonCmd.Flags().StringVar(&daemonLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	daemonCmd.Flags().StringVar(&daemonDataDir, "data-dir", "", "Data directory for cache and database (default: ~/.local/share/spotcast)")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Set up logging
	logger := setupLogger(daemonLogFile, daemonLogLevel)

	logger.Info().
		Str("version", version).
		Msg("Starting spotcast daemon")

	dataDir, err := resolveDataDir(daemonDataDir)
	if err != nil {
		return err
	}
	logger.Info().Str("data_dir", dataDir).Msg("Using data directory")

	handler, err := newFeedHandler(cfg, dataDir, logger)
	if err != nil {
		return err
	}

	st, err := openStore(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	refresherCfg := refresher.Config{
		PollInterval: time.Duration(cfg.PollInterval) * time.Second,
	}

	// Run the refresher (blocks until shutdown signal)
	r := refresher.New(refresherCfg, handler, st, logger)
	if err := r.Run(); err != nil {
		return fmt.Errorf("daemon error: %w", err)
	}

	logger.Info().Msg("Daemon stopped")
	return nil
}

// setupLogger creates a logger with the specified configuration
func setupLogger(logFile, logLevel string) zerolog.Logger {
	// Parse log level
	level := zerolog.InfoLevel
	switch logLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	// Set up output
	var output *os.File
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			output = os.Stderr
		} else {
			output = f
		}
	} else {
		output = os.Stderr
	}

	// Create logger
	logger := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	// Use pretty console output if logging to stderr
	if output == os.Stderr {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	return logger
}
