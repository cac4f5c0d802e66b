package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skriva/doclabel/pkg/docintel"
	"github.com/skriva/doclabel/pkg/label"
)

var (
	analyzeModel  string
	analyzeLocale string
	analyzeText   string
	analyzeJSON   string
	analyzeOCR    string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [document]",
	Short: "Run a document model and print the extracted content",
	Long: `Analyze a document with a prebuilt or custom model and print the extracted
fields, key-value pairs and tables. Output artifacts are written per flag:
--text for the full text, --json for the raw result, --ocr for the word
snapshot.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	RootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "", "Model ID to analyze with (defaults to the configured document model)")
	analyzeCmd.Flags().StringVar(&analyzeLocale, "locale", "", "Locale hint for the read model")
	analyzeCmd.Flags().StringVar(&analyzeText, "text", "", "Path to save the full extracted text")
	analyzeCmd.Flags().StringVar(&analyzeJSON, "json", "", "Path to save the analysis result as JSON")
	analyzeCmd.Flags().StringVar(&analyzeOCR, "ocr", "", "Path to save the recognized word snapshot")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if analyzeLocale != "" {
		cfg.Locale = analyzeLocale
	}

	model := analyzeModel
	if model == "" {
		model = cfg.DocumentModel
	}

	engine, err := selectEngine(cfg)
	if err != nil {
		return err
	}

	document, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}

	result, err := engine.Analyze(cmd.Context(), model, document)
	if err != nil {
		return fmt.Errorf("analyzing %s: %w", args[0], err)
	}

	printResult(cmd.OutOrStdout(), result)

	if analyzeText != "" {
		if err := os.WriteFile(analyzeText, []byte(result.Content), 0644); err != nil {
			return fmt.Errorf("saving text: %w", err)
		}
	}
	if analyzeJSON != "" {
		// Dump the engine's raw response so the file shows exactly what
		// the service returned, not the normalized model.
		raw := result.Raw
		if raw == nil {
			raw = result
		}
		data, err := docintel.ToJSON(raw)
		if err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		if err := os.WriteFile(analyzeJSON, []byte(data), 0644); err != nil {
			return fmt.Errorf("saving result: %w", err)
		}
	}
	if analyzeOCR != "" {
		ref := label.BuildOCRReference(result.Words())
		if err := label.SaveOCRReference(ref, analyzeOCR); err != nil {
			return fmt.Errorf("saving word snapshot: %w", err)
		}
	}
	return nil
}

func printResult(w io.Writer, result *docintel.AnalysisResult) {
	for _, doc := range result.Documents {
		fmt.Fprintf(w, "Document type: %s (conf: %.2f)\n", doc.DocType, doc.Confidence)

		keys := make([]string, 0, len(doc.Fields))
		for key := range doc.Fields {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(w, "  %s: %s\n", key, doc.Fields[key].FormatValueWithConfidence())
		}
	}

	if len(result.KeyValuePairs) > 0 {
		fmt.Fprintln(w, "Key-value pairs:")
		for _, kvp := range result.KeyValuePairs {
			value := "N/A"
			if kvp.Value != nil && kvp.Value.Content != "" {
				value = kvp.Value.Content
			}
			fmt.Fprintf(w, "  %s: %s\n", kvp.Key.Content, value)
		}
	}

	for i, table := range result.Tables {
		fmt.Fprintf(w, "Table %d (%dx%d):\n", i+1, table.RowCount, table.ColumnCount)
		headers, rows := table.Grid()
		if headers != nil {
			fmt.Fprintf(w, "  %s\n", strings.Join(headers, " | "))
		}
		for _, row := range rows {
			fmt.Fprintf(w, "  %s\n", strings.Join(row, " | "))
		}
	}

	words := 0
	for _, page := range result.Pages {
		words += len(page.Words)
	}
	fmt.Fprintf(w, "Pages: %d, words: %d\n", len(result.Pages), words)
}
