package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/apply-autofill/internal/catalog"
	"github.com/jonathan/apply-autofill/internal/matching"
	"github.com/jonathan/apply-autofill/internal/types"
)

var (
	resolveThreshold float64
	resolveType      string
	resolveContext   string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <question>",
	Short: "Match a question against the built-in catalog",
	Long:  `Match one question text against the built-in template catalog and print the result. Runs offline against the seed set; useful for tuning the fuzzy threshold.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runResolve,
}

func init() {
	resolveCmd.Flags().Float64Var(&resolveThreshold, "threshold", 0, "Minimum fuzzy similarity score (default 0.6)")
	resolveCmd.Flags().StringVar(&resolveType, "type", "", "Question type hint (text, textarea, select, boolean, date)")
	resolveCmd.Flags().StringVar(&resolveContext, "context", "", "Surrounding field context text")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(_ *cobra.Command, args []string) error {
	hint := types.QuestionType(resolveType)
	if resolveType != "" && !hint.Valid() {
		return fmt.Errorf("unknown question type %q (expected text, textarea, select, boolean or date)", resolveType)
	}

	cat := catalog.New(catalog.SeedTemplates())

	var opts []matching.Option
	if resolveThreshold > 0 {
		opts = append(opts, matching.WithThreshold(resolveThreshold))
	}
	matcher := matching.New(cat, opts...)

	question := types.ObservedQuestion{
		Text:         args[0],
		QuestionType: hint,
		FieldContext: resolveContext,
	}

	match, err := matcher.Match(question, nil)
	if err != nil {
		return err
	}
	if match.Template == nil {
		fmt.Println("No template matched")
		return nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"template":   match.Template,
		"confidence": match.Confidence,
		"score":      match.Score,
	})
}
