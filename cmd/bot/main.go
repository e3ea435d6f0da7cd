package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "poolbot",
	Short: "Discord bot that tracks buy-ins for a shared pool",
	Long: `poolbot runs one buy-in session per channel: players join, request buy-ins
and approve each other's requests by vote. A single status message per
session shows the live ledger.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
