// Package main provides the CLI entry point for sheetsmith.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/sheetsmith-go/internal/logging"
	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith"
	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/llm"
)

var (
	configPath string
	verbose    bool

	cfg           *sheetsmith.Config
	logger        *zap.Logger
	cleanupLogger func()
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// run executes the command line in args. The logger is flushed and its file
// closed on every path, including a failing command.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && logger != nil {
		logger.Error("command failed", zap.Error(err))
	}
	if cleanupLogger != nil {
		cleanupLogger()
	}
	logger, cleanupLogger = nil, nil
	return err
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sheetsmith",
		Short: "Generate, edit and transform spreadsheets",
		Long: `sheetsmith generates tabular spreadsheets from a column list and a description,
imports existing xlsx/csv files, applies grid edits, and can delegate generation
and transformation to an LLM chat-completion endpoint.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = sheetsmith.LoadConfig(configPath)
			if err != nil {
				return err
			}
			logger, cleanupLogger, err = logging.New(logging.Options{
				Level:      cfg.Logging.Level,
				Format:     cfg.Logging.Format,
				Verbose:    verbose,
				File:       cfg.Logging.File,
				MaxSizeMB:  cfg.Logging.MaxSizeMB,
				MaxBackups: cfg.Logging.MaxBackups,
				MaxAgeDays: cfg.Logging.MaxAgeDays,
			})
			return err
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newGenerateCmd(), newInspectCmd(), newEditCmd(), newTransformCmd(), newInitCmd())
	return rootCmd
}

// newSession builds a session from the loaded config. The LLM collaborator is
// only constructed when withAI is set, so offline commands never need a key.
func newSession(ctx context.Context, withAI bool) (*sheetsmith.Session, error) {
	opts := sheetsmith.SessionOptions{
		Logger:      logger,
		SampleLimit: cfg.Transform.SampleLimit,
		Batch:       cfg.Transform.Batch,
	}
	if withAI {
		pc, err := cfg.ProviderConfig()
		if err != nil {
			return nil, err
		}
		completer, err := llm.New(ctx, pc)
		if err != nil {
			return nil, fmt.Errorf("failed to configure LLM: %w", err)
		}
		logger.Debug("LLM configured", zap.String("provider", pc.Provider), zap.String("model", pc.Model))
		opts.Completer = completer
	}
	return sheetsmith.NewSession(opts), nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// selectSheet activates sheet index when it was given (>= 0).
func selectSheet(s *sheetsmith.Session, index int) error {
	if index < 0 {
		return nil
	}
	return s.SelectSheet(index)
}
