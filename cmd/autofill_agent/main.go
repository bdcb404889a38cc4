// Package main provides the entry point for the application autofill HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "autofill_agent",
	Short: "Job Application Autofill API Server",
	Long:  "Autofill agent matches observed application-form questions against a template catalog and resolves answers from stored profile data via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
