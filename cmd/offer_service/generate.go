package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/santoshgudeti/skillmatrix-offers/internal/compositing"
	"github.com/santoshgudeti/skillmatrix-offers/internal/letter"
	"github.com/santoshgudeti/skillmatrix-offers/internal/observability"
	"github.com/santoshgudeti/skillmatrix-offers/internal/payroll"
	"github.com/santoshgudeti/skillmatrix-offers/internal/rendering"
	"github.com/santoshgudeti/skillmatrix-offers/internal/types"
)

var (
	genFactsPath      string
	genOutPath        string
	genLetterheadPath string
	genTemplatePath   string
	genVerbose        bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one offer letter locally",
	Long: `Generate an offer letter PDF from a facts JSON file without touching the
database or object storage. Useful for previewing letters and testing
letterhead files before uploading them.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&genFactsPath, "facts", "f", "", "Path to offer facts JSON file (required)")
	generateCmd.Flags().StringVarP(&genOutPath, "out", "o", "offer.pdf", "Output PDF path")
	generateCmd.Flags().StringVarP(&genLetterheadPath, "letterhead", "l", "", "Path to a letterhead PDF to composite onto")
	generateCmd.Flags().StringVarP(&genTemplatePath, "template", "t", "", "Path to a letter template JSON file")
	generateCmd.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "Print the computed breakdown")
	_ = generateCmd.MarkFlagRequired("facts")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, _ []string) error {
	printer := observability.NewPrinter(os.Stdout)

	data, err := os.ReadFile(genFactsPath)
	if err != nil {
		return fmt.Errorf("failed to read facts file: %w", err)
	}
	var facts types.OfferFacts
	if err := json.Unmarshal(data, &facts); err != nil {
		return fmt.Errorf("failed to parse facts JSON: %w", err)
	}
	if err := facts.Validate(); err != nil {
		return fmt.Errorf("invalid offer facts: %w", err)
	}
	if genVerbose {
		printer.PrintOfferFacts(&facts)
	}

	breakdown, err := payroll.ComputeBreakdown(facts.GrossAnnual, facts.PayrollOverrides(), payroll.DefaultPolicy())
	if err != nil {
		return fmt.Errorf("failed to compute breakdown: %w", err)
	}
	if genVerbose {
		printer.PrintBreakdown(breakdown)
	}

	tmpl := letter.DefaultTemplate()
	if genTemplatePath != "" {
		tmpl, err = letter.LoadTemplate(genTemplatePath)
		if err != nil {
			return fmt.Errorf("failed to load template: %w", err)
		}
	}

	doc := letter.Build(&facts, breakdown, tmpl, letter.DefaultFormatters())
	pdf, err := rendering.RenderPDF(doc, facts.OfferDate)
	if err != nil {
		return fmt.Errorf("failed to render letter: %w", err)
	}

	composited := false
	if genLetterheadPath != "" {
		lhBytes, err := os.ReadFile(genLetterheadPath)
		if err != nil {
			return fmt.Errorf("failed to read letterhead: %w", err)
		}
		merged, err := compositing.Composite(pdf, lhBytes, compositing.DefaultBands())
		if err != nil {
			return fmt.Errorf("failed to composite letterhead: %w", err)
		}
		pdf = merged
		composited = true
	}

	if err := os.WriteFile(genOutPath, pdf, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	pages, err := compositing.PageCount(pdf)
	if err != nil {
		pages = 0
	}
	if genVerbose {
		printer.PrintResult(genOutPath, pages, int64(len(pdf)), composited)
	} else {
		fmt.Printf("Wrote %s (%d pages, %d bytes)\n", genOutPath, pages, len(pdf))
	}
	return nil
}
