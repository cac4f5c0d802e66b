package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/skriva/doclabel/internal/config"
	"github.com/skriva/doclabel/internal/session"
	"github.com/skriva/doclabel/pkg/fields"
	"github.com/skriva/doclabel/pkg/hocr"
)

var (
	labelValuesPath string
	labelHOCRPath   string
	labelOutDir     string
	labelDryRun     bool
)

var labelCmd = &cobra.Command{
	Use:   "label [document]",
	Short: "Label a document and save the training artifacts",
	Long: `Analyze a document, resolve suggested values for every configured field,
apply final values from a YAML answers file, and save the label and OCR
reference artifacts. Fields without an answer fall back to their suggestion;
fields with neither are left unlabeled.

With --hocr the word stream comes from an hOCR file instead of running
analysis, so labeling works offline (no suggestions in that mode).`,
	Args: cobra.ExactArgs(1),
	RunE: runLabel,
}

func init() {
	RootCmd.AddCommand(labelCmd)
	labelCmd.Flags().StringVar(&labelValuesPath, "values", "", "YAML file mapping field keys to final values")
	labelCmd.Flags().StringVar(&labelHOCRPath, "hocr", "", "Take the word stream from this hOCR file instead of analyzing")
	labelCmd.Flags().StringVar(&labelOutDir, "out", "", "Directory for label artifacts (defaults to the configured output dir)")
	labelCmd.Flags().BoolVar(&labelDryRun, "dry-run", false, "Resolve and print values without saving artifacts")
}

func runLabel(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	outDir := labelOutDir
	if outDir == "" {
		outDir = cfg.OutputDir
	}

	defs, err := fields.Load(cfg.FieldsFile)
	if err != nil {
		return err
	}
	if defs.Len() == 0 {
		return fmt.Errorf("no fields configured in %s; add some with 'doclabel fields add'", cfg.FieldsFile)
	}

	docName := filepath.Base(args[0])
	sess, err := prepareSession(cmd, cfg, defs, docName, args[0])
	if err != nil {
		return err
	}

	sess.Prefill(outDir)

	answers, err := loadAnswers(labelValuesPath)
	if err != nil {
		return err
	}

	for _, def := range defs.List() {
		if text, ok := answerFor(answers, def.Key); ok {
			sess.SetValue(def.Key, text)
			continue
		}
		if _, confirmed := sess.Values()[def.Key]; confirmed {
			continue
		}
		if suggestion, ok := sess.Suggest(def.Key); ok {
			sess.SetValue(def.Key, suggestion.Text)
		}
	}

	for _, def := range defs.List() {
		value := sess.Values()[def.Key]
		if value == "" {
			value = "(unlabeled)"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", def.Key, value)
	}

	if labelDryRun {
		return nil
	}

	warnings, err := sess.Save(outDir)
	for _, warning := range warnings {
		fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", warning)
	}
	if err != nil {
		return fmt.Errorf("saving artifacts: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved label artifacts for %s in %s\n", docName, outDir)
	return nil
}

// prepareSession builds the session's word stream, from an hOCR file when
// given, otherwise by running analysis.
func prepareSession(cmd *cobra.Command, cfg *config.Config, defs *fields.Set, docName, docPath string) (*session.Session, error) {
	if labelHOCRPath != "" {
		data, err := os.ReadFile(labelHOCRPath)
		if err != nil {
			return nil, fmt.Errorf("reading hOCR file: %w", err)
		}
		parsed, err := hocr.Parse(data)
		if err != nil {
			return nil, err
		}
		sess := session.New(docName, nil, defs, "", "")
		sess.UseWords(parsed.Words())
		return sess, nil
	}

	engine, err := selectEngine(cfg)
	if err != nil {
		return nil, err
	}
	document, err := os.ReadFile(docPath)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	sess := session.New(docName, engine, defs, cfg.LayoutModel, cfg.DocumentModel)
	if err := sess.Analyze(cmd.Context(), document); err != nil {
		return nil, err
	}
	return sess, nil
}

// loadAnswers reads a YAML mapping of field keys to final values.
// answerFor matches the answers map against a field key with the same
// case-insensitive, trim-insensitive rule the field set uses, so an answer
// keyed "total" still applies to the "Total" field.
func answerFor(answers map[string]string, fieldKey string) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(fieldKey))
	for key, text := range answers {
		if strings.ToLower(strings.TrimSpace(key)) == needle {
			return text, true
		}
	}
	return "", false
}

func loadAnswers(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading answers file: %w", err)
	}
	answers := make(map[string]string)
	if err := yaml.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("parsing answers file %s: %w", path, err)
	}
	return answers, nil
}
