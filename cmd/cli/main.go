package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host   string
	token  string
	dryRun bool
)

var rootCmd = &cobra.Command{
	Use:   "riverwatch-cli",
	Short: "A CLI to interact with the riverwatch server",
	Long: `A command-line interface for the riverwatch clan war tracker.

Read commands (war, today, history, usage) are public. scan, import and
players need the admin API token configured on the server.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("ADMIN_API_TOKEN"), "Admin API token for scan, import and players (defaults to $ADMIN_API_TOKEN)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Ask the server not to write or announce anything")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "riverwatch-cli: %s\n", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
