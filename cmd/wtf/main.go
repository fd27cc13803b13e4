package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"withefuck/internal/config"
	"withefuck/internal/logging"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	// Global flags
	verbose bool

	// Mode flags
	configMode    bool
	logsMode      bool
	updateMode    bool
	uninstallMode bool

	// --logs modifiers
	followLogs bool
	prettyLogs bool

	// historyOverride replaces history_count when > 0.
	historyOverride int

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "wtf",
	Short: "Fix your previous shell command using an LLM",
	Long: `wtf reads the transcript your shell hook records, sends the last few
commands and their output to an LLM and offers the corrected command.

Press Enter to run the suggestion or Ctrl+C to dismiss it.

Run 'wtf --config' once to set the API key, endpoint and model.`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if verbose {
			// Category logs follow the CLI logger to stderr.
			logging.UseCore(logger.Core())
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: runRoot,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.Flags().BoolVar(&configMode, "config", false, "Configure wtf")
	rootCmd.Flags().BoolVar(&logsMode, "logs", false, "View shell logs")
	rootCmd.Flags().BoolVar(&updateMode, "update", false, "Update wtf")
	rootCmd.Flags().BoolVar(&uninstallMode, "uninstall", false, "Uninstall wtf")
	rootCmd.Flags().BoolVarP(&followLogs, "follow", "f", false, "With --logs, keep printing as new commands are recorded")
	rootCmd.Flags().BoolVar(&prettyLogs, "pretty", false, "With --logs, render the output as markdown")
	rootCmd.Flags().IntVarP(&historyOverride, "count", "n", 0, "Number of previous commands to use (overrides history_count)")
	rootCmd.MarkFlagsMutuallyExclusive("config", "logs", "update", "uninstall")

	rootCmd.AddCommand(debugLogCmd)
}

// runRoot dispatches on the mode flags; without one it runs the fix flow.
func runRoot(cmd *cobra.Command, args []string) error {
	if (followLogs || prettyLogs) && !logsMode {
		return errors.New("--follow and --pretty require --logs")
	}
	if historyOverride < 0 || historyOverride > 100 {
		return errors.New("--count must be between 1 and 100")
	}

	switch {
	case configMode:
		return runConfigWizard(cmd)
	case updateMode:
		return runUpdate(cmd)
	case uninstallMode:
		return runUninstall(cmd)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := logging.Initialize(cfg.LoggingOptions()); err != nil {
		logger.Warn("file logging disabled", zap.Error(err))
	}
	logging.Boot("wtf %s starting (provider=%s, model=%s)", version, cfg.ActiveProvider(), cfg.Model)

	n := historyCount(cfg)
	if logsMode {
		return runLogs(cmd, n)
	}
	return runFix(cmd, cfg, n)
}

// historyCount returns --count when given, else history_count.
func historyCount(cfg *config.Config) int {
	if historyOverride > 0 {
		return historyOverride
	}
	if cfg.HistoryCount == 0 {
		return config.DefaultHistoryCount
	}
	return int(cfg.HistoryCount)
}

// exitCodeError carries the exit status of the executed suggestion.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("command exited with status %d", e.code)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exit *exitCodeError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
