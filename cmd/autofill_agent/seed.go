package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/apply-autofill/internal/catalog"
	"github.com/jonathan/apply-autofill/internal/db"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the schema and seed the template catalog",
	Long:  `Create missing tables and insert the built-in question templates. Safe to re-run; existing templates are never overwritten.`,
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	ctx := cmd.Context()

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	templates := catalog.SeedTemplates()
	inserted, err := database.SeedTemplates(ctx, templates)
	if err != nil {
		return fmt.Errorf("failed to seed templates: %w", err)
	}

	fmt.Printf("Seeded %d of %d templates (%d already present)\n",
		inserted, len(templates), len(templates)-inserted)
	return nil
}
