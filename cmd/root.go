// Package cmd provides CLI commands for zugferd.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/zugferd/config"
)

var (
	configDir string
	cfg       = config.Default()
)

func parseLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func setupLogger(logLevel string) {
	if logLevel == "" {
		logLevel = "INFO"
	}

	opts := &slog.HandlerOptions{
		Level: parseLevel(logLevel),
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	logger := slog.New(handler)

	slog.SetDefault(logger)
}

var rootCmd = &cobra.Command{
	Use:   "zugferd",
	Short: "Read and embed ZUGFeRD 1.0 invoices",
	Long: `Zugferd reads ZUGFeRD 1.0 invoices (Basic, Comfort, Extended) from
plain XML or from PDF files carrying the XML as an embedded file.

The profile is detected from the document's guideline parameter and every
field is read through the profile's own schema, so data a profile does not
define is simply reported as empty.

Examples:
  zugferd inspect invoice.pdf
  zugferd inspect --json --pretty invoice.xml
  zugferd extract invoice.xml --sink ./attachments
  zugferd embed invoice.xml --pdf visual.pdf -o zugferd.pdf
  zugferd profiles list
  zugferd config init --sink ./attachments`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configDir != "" {
			config.SetConfigDir(configDir)
		}
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = c
		setupLogger(cfg.LogLevel)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	setupLogger(os.Getenv(config.EnvLogLevel))
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "Configuration directory (default: $HOME/.zugferd)")
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(embedCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(configCmd)
}

// readInput reads the named file, or stdin for "" and "-".
func readInput(name string) (data []byte, err error) {
	if name == "" || name == "-" {
		return io.ReadAll(os.Stdin)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening input file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing input file: %w", cerr)
		}
	}()
	return io.ReadAll(f)
}
