// Package gdocai runs document analysis through Google Document AI.
//
// The engine sends document bytes to a configured Document AI processor and
// converts the proto response into the normalized analysis result the rest of
// the toolkit consumes: per-page word streams with polygon geometry, generic
// form fields as key-value pairs, and custom extractor entities as typed
// document fields.
//
// Usage requirements:
//
// - Google Cloud project with the Document AI API enabled
// - A configured processor (OCR, form parser, or custom extractor)
// - Authentication via the GOOGLE_APPLICATION_CREDENTIALS environment variable
package gdocai

import (
	"context"
	"fmt"
	"os"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/api/option"

	"github.com/skriva/doclabel/pkg/docintel"
)

// Config holds the Document AI processor coordinates.
type Config struct {
	ProjectID   string
	Location    string
	ProcessorID string
	MimeType    string // defaults to application/pdf
}

// Engine analyzes documents with Google Document AI. The modelID passed to
// Analyze overrides the configured processor when non-empty, so one engine
// can serve several processors.
type Engine struct {
	Config Config
}

// New creates a Document AI engine with the given processor coordinates.
func New(cfg Config) *Engine {
	if cfg.MimeType == "" {
		cfg.MimeType = "application/pdf"
	}
	return &Engine{Config: cfg}
}

// Name returns the engine's name.
func (e *Engine) Name() string {
	return "gdocai"
}

// ValidateConfig checks that credentials and processor coordinates are set.
func (e *Engine) ValidateConfig() error {
	if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" {
		return fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS environment variable is not set")
	}
	if e.Config.ProjectID == "" || e.Config.Location == "" {
		return fmt.Errorf("document AI project_id and location must be configured")
	}
	if e.Config.ProcessorID == "" {
		return fmt.Errorf("document AI processor_id must be configured")
	}
	return nil
}

// Analyze sends document bytes to the processor and returns the normalized
// result. modelID selects a processor ID, falling back to the configured one
// when empty.
func (e *Engine) Analyze(ctx context.Context, modelID string, document []byte) (*docintel.AnalysisResult, error) {
	processorID := e.Config.ProcessorID
	if modelID != "" {
		processorID = modelID
	}

	doc, err := e.process(ctx, processorID, document)
	if err != nil {
		return nil, err
	}

	result := resultFromProto(doc)
	result.ModelID = processorID
	return result, nil
}

// process sends document bytes to Document AI and returns the raw Document
// proto response.
func (e *Engine) process(ctx context.Context, processorID string, document []byte) (*documentaipb.Document, error) {
	endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", e.Config.Location)

	client, err := documentai.NewDocumentProcessorClient(
		ctx,
		option.WithEndpoint(endpoint),
		option.WithCredentialsFile(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Document AI client: %w", err)
	}
	defer client.Close()

	name := fmt.Sprintf(
		"projects/%s/locations/%s/processors/%s",
		e.Config.ProjectID, e.Config.Location, processorID,
	)

	req := &documentaipb.ProcessRequest{
		Name: name,
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  document,
				MimeType: e.Config.MimeType,
			},
		},
		SkipHumanReview: true,
	}

	resp, err := client.ProcessDocument(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to process document: %w", err)
	}

	return resp.Document, nil
}
