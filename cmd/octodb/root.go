package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	Verbose bool
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "octodb",
		Short: "Inspect octodb collections and spilled segments",
		Long: `octodb walks the rows of a collection with a result cursor.

Examples:
  octodb demo
  octodb dump --path data.db --collection users
  octodb dump --path data.db --collection users --spill --codec zstd`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "v", false, "Log engine activity to stderr")

	cmd.AddCommand(newDemoCmd())
	cmd.AddCommand(newDumpCmd())
	return cmd
}

func Execute() error {
	return rootCmd.Execute()
}

func logger() *slog.Logger {
	level := slog.LevelWarn
	if Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
