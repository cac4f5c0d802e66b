package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/skriva/doclabel/pkg/label"
	"github.com/skriva/doclabel/pkg/preview"
)

var (
	previewOut       string
	previewDir       string
	previewNoContext bool
)

var previewCmd = &cobra.Command{
	Use:   "preview [document]",
	Short: "Render an audit PDF of a document's saved labels",
	Long: `Render a PDF showing each labeled field's bounding region with its field
key, over the recognized word boxes for context, from the saved label and OCR
reference artifacts of the named document.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	RootCmd.AddCommand(previewCmd)
	previewCmd.Flags().StringVarP(&previewOut, "output", "o", "", "Output PDF path (defaults to <base>.preview.pdf)")
	previewCmd.Flags().StringVar(&previewDir, "dir", "", "Directory holding the label artifacts (defaults to the configured output dir)")
	previewCmd.Flags().BoolVar(&previewNoContext, "no-words", false, "Skip drawing the recognized word boxes")
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	dir := previewDir
	if dir == "" {
		dir = cfg.OutputDir
	}

	docName := filepath.Base(args[0])
	labelPath := filepath.Join(dir, label.DocumentFileName(docName))
	doc, err := label.LoadDocument(labelPath)
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("no label file found at %s", labelPath)
	}

	ref, err := label.LoadOCRReference(filepath.Join(dir, label.OCRFileName(docName)))
	if err != nil {
		return err
	}

	renderCfg := preview.DefaultConfig()
	renderCfg.DrawWords = !previewNoContext

	data, err := preview.Render(doc, ref, renderCfg)
	if err != nil {
		return err
	}

	out := previewOut
	if out == "" {
		out = label.BaseName(docName) + ".preview.pdf"
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("saving preview: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
	return nil
}
