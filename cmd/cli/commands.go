package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var refresh bool

func init() {
	importCmd.Flags().BoolVar(&refresh, "refresh", false, "Delete the stored history before importing")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(warCmd)
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(usageCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Save the current week's decks and fame",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/scan", nil)
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the finished races from the race log",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		if refresh {
			query.Set("refresh", "true")
		}
		return performRequest(http.MethodPost, "/import", query)
	},
}

var warCmd = &cobra.Command{
	Use:   "war",
	Short: "Show the weekly progress of the current race",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/week", nil)
	},
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show the attacks of the current battle day",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/today", nil)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the totals over the imported weeks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/history", nil)
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the players in the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/players", nil)
	},
}

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Get the persistent usage counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/usage", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

func performRequest(method, endpoint string, query url.Values) error {
	if query == nil {
		query = url.Values{}
	}
	if dryRun {
		query.Set("dry_run", "true")
	}
	target := host + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	fmt.Printf("Making request to %s\n", target)

	req, err := http.NewRequest(method, target, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
