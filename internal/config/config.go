// Package config loads toolkit defaults from an optional YAML file.
// Credentials never live here; they come from the environment.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GDocAI holds Google Document AI processor coordinates.
type GDocAI struct {
	ProjectID   string `yaml:"project_id"`
	Location    string `yaml:"location"`
	ProcessorID string `yaml:"processor_id"`
}

// Config is the toolkit configuration. Every field has a working default so
// a config file is optional.
type Config struct {
	Engine        string `yaml:"engine"`         // analysis engine name
	LayoutModel   string `yaml:"layout_model"`   // model used for the word stream
	DocumentModel string `yaml:"document_model"` // model used for field suggestions
	Locale        string `yaml:"locale"`         // optional read locale hint
	FieldsFile    string `yaml:"fields_file"`    // field definitions path
	OutputDir     string `yaml:"output_dir"`     // where label artifacts are written
	GDocAI        GDocAI `yaml:"gdocai"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Engine:        "azure",
		LayoutModel:   "prebuilt-layout",
		DocumentModel: "prebuilt-document",
		FieldsFile:    "fields.json",
		OutputDir:     ".",
	}
}

// Load reads a YAML config file over the defaults. An empty path returns the
// defaults unchanged; a missing file is an error since the path was explicit.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}
