package main

import (
	"context"
	"os"

	"github.com/sandevgo/scribe/internal/config"
	"github.com/sandevgo/scribe/pkg/log"
	"github.com/spf13/cobra"
)

var (
	debug bool
)

var rootCmd = &cobra.Command{
	Use:   "scribe",
	Short: "Scribe — a conversational agent with retrieval, memory and plugins",
	Long:  `Scribe answers questions over a local markdown corpus, keeps per-session conversation memory and dispatches weather and math requests to plugins.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", config.IsDebug(), "enable debug logging")
}

func setupLogger(ctx context.Context) (context.Context, func()) {
	isDebug := debug || config.IsDebug()
	return log.NewContextWithLogger(ctx, isDebug)
}
