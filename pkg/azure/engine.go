// Package azure implements the Document Intelligence engine over the
// service's REST API: submit the document bytes, then poll the returned
// operation until the analysis succeeds or fails.
//
// Credentials come from the AZURE_ENDPOINT and AZURE_KEY environment
// variables. Their absence is a configuration error surfaced before any
// document is processed.
package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/skriva/doclabel/pkg/docintel"
)

const apiVersion = "2023-07-31"

// Engine implements docintel.Engine against Azure Document Intelligence.
type Engine struct {
	// Locale hints the document language for the read model; empty means
	// auto-detect.
	Locale string

	// PollInterval is the delay between status polls. Defaults to one second.
	PollInterval time.Duration

	// Client is the HTTP client used for all requests. Defaults to a client
	// with a 60 second timeout.
	Client *http.Client
}

// New creates a new Azure engine.
func New() *Engine {
	return &Engine{
		PollInterval: time.Second,
		Client:       &http.Client{Timeout: 60 * time.Second},
	}
}

// Name returns the engine name.
func (e *Engine) Name() string {
	return "azure"
}

// ValidateConfig checks that the service credentials are present in the
// environment.
func (e *Engine) ValidateConfig() error {
	endpoint := os.Getenv("AZURE_ENDPOINT")
	key := os.Getenv("AZURE_KEY")
	if endpoint == "" || key == "" {
		return fmt.Errorf("AZURE_ENDPOINT and AZURE_KEY environment variables must be set")
	}
	return nil
}

// Analyze submits the document to the given model and blocks until the
// analysis completes, polling the operation location the service returns.
func (e *Engine) Analyze(ctx context.Context, modelID string, document []byte) (*docintel.AnalysisResult, error) {
	endpoint := os.Getenv("AZURE_ENDPOINT")
	key := os.Getenv("AZURE_KEY")
	if endpoint == "" || key == "" {
		return nil, fmt.Errorf("AZURE_ENDPOINT and AZURE_KEY environment variables must be set")
	}

	operationURL, err := e.submit(ctx, endpoint, key, modelID, document)
	if err != nil {
		return nil, err
	}

	return e.poll(ctx, operationURL, key)
}

func (e *Engine) submit(ctx context.Context, endpoint, key, modelID string, document []byte) (string, error) {
	analyzeURL := fmt.Sprintf("%s/formrecognizer/documentModels/%s:analyze?api-version=%s",
		strings.TrimSuffix(endpoint, "/"), url.PathEscape(modelID), apiVersion)
	if e.Locale != "" {
		analyzeURL += "&locale=" + url.QueryEscape(e.Locale)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, analyzeURL, bytes.NewReader(document))
	if err != nil {
		return "", err
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", key)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := e.client().Do(req)
	if err != nil {
		return "", fmt.Errorf("analyze request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("analyze request rejected: %d - %s", resp.StatusCode, string(body))
	}

	operationURL := resp.Header.Get("Operation-Location")
	if operationURL == "" {
		return "", fmt.Errorf("no operation location returned by the service")
	}
	return operationURL, nil
}

func (e *Engine) poll(ctx context.Context, operationURL, key string) (*docintel.AnalysisResult, error) {
	interval := e.PollInterval
	if interval <= 0 {
		interval = time.Second
	}

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("analysis canceled: %w", ctx.Err())
		case <-time.After(interval):
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, operationURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Ocp-Apim-Subscription-Key", key)

		resp, err := e.client().Do(req)
		if err != nil {
			return nil, fmt.Errorf("poll request failed: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			continue
		}

		var op analyzeOperation
		err = json.NewDecoder(resp.Body).Decode(&op)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("decoding analyze operation: %w", err)
		}

		switch op.Status {
		case "succeeded":
			if op.AnalyzeResult == nil {
				return nil, fmt.Errorf("analysis succeeded but returned no result")
			}
			return resultFromWire(op.AnalyzeResult), nil
		case "failed":
			if op.Error != nil {
				return nil, fmt.Errorf("analysis failed: %s - %s", op.Error.Code, op.Error.Message)
			}
			return nil, fmt.Errorf("analysis failed")
		}
		// Keep polling while the operation is running or not started.
	}
}

func (e *Engine) client() *http.Client {
	if e.Client != nil {
		return e.Client
	}
	return http.DefaultClient
}
