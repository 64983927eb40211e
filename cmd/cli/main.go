package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ridopark/stoxcore/internal/logger"
)

var (
	rootCmd = &cobra.Command{
		Use:   "stoxcore",
		Short: "Technical-indicator and options-analytics compute core",
		Long:  `A CLI for listing and computing technical indicators and for running options-analytics (Black-Scholes pricing, Greeks, portfolio P&L) without a running server.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.InitLogger(logLevel, "production")
		},
	}

	// Global flags
	logLevel string
	format   string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&format, "format", "table", "output format (table, json)")

	rootCmd.AddCommand(indicatorsCmd)
	rootCmd.AddCommand(optionsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
