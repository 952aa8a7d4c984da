// Package main is the entry point for the Plagg API server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "plagg-api",
	Short: "Plagg RPG API Server",
	Long:  `Plagg API provides an HTTP JSON interface for the turn-based combat backend: characters, fights, the item shop, and leaderboards.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
