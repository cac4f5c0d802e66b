package docintel

import (
	"context"
	"fmt"
	"strings"
)

// Engine is the interface all document understanding engines implement.
type Engine interface {
	// Analyze sends document bytes to the engine for processing with the
	// given model and returns the normalized result. The call blocks until
	// the engine finishes or ctx expires.
	Analyze(ctx context.Context, modelID string, document []byte) (*AnalysisResult, error)
	// Name returns the engine's name.
	Name() string
	// ValidateConfig checks that the engine's credentials and settings are
	// usable. Missing credentials are a fatal configuration error at startup.
	ValidateConfig() error
}

// Registry manages all available engines.
type Registry struct {
	engines map[string]Engine
}

// NewRegistry creates a new engine registry.
func NewRegistry() *Registry {
	return &Registry{
		engines: make(map[string]Engine),
	}
}

// Register adds an engine to the registry.
func (r *Registry) Register(engine Engine) {
	r.engines[strings.ToLower(engine.Name())] = engine
}

// Get retrieves an engine by name.
func (r *Registry) Get(name string) (Engine, error) {
	engine, exists := r.engines[strings.ToLower(name)]
	if !exists {
		return nil, fmt.Errorf("engine %s not found", name)
	}
	return engine, nil
}

// List returns all registered engine names.
func (r *Registry) List() []string {
	var names []string
	for name := range r.engines {
		names = append(names, name)
	}
	return names
}
