// Package main is the entry point for the gpx-analyzer-cli application.
// It initializes the root command and registers the analyze and summary
// sub-commands, then executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	commands "github.com/rolfovo/gpx-analyzer/cmd/gpx-analyzer-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "gpx-analyzer-cli",
		Short: "GPX track analysis CLI tool",
		Long: `gpx-analyzer-cli computes ride statistics from GPX track files.
The analyze command prints distance, timing, speed and elevation figures of a
single file; the summary command aggregates several files into one table.`,
	}

	// Initialize all command groups BEFORE executing
	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	// Execute root command ONCE after all commands are registered
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	if err := commands.InitAnalyzeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize analyze commands: %w", err)
	}

	if err := commands.InitSummaryCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize summary commands: %w", err)
	}

	return nil
}

// init sets up any necessary initialization before main runs.
func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
