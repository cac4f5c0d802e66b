package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skriva/doclabel/internal/config"
	"github.com/skriva/doclabel/pkg/azure"
	"github.com/skriva/doclabel/pkg/docintel"
	"github.com/skriva/doclabel/pkg/gdocai"
)

var RootCmd = &cobra.Command{
	Use:   "doclabel",
	Short: "Document labeling toolkit for custom extraction model training",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		ll, err := cmd.Flags().GetString("log-level")
		if err != nil {
			return err
		}

		switch strings.ToUpper(ll) {
		case "DEBUG":
			level = slog.LevelDebug
		case "WARN":
			level = slog.LevelWarn
		case "ERROR":
			level = slog.LevelError
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		handler := slog.New(slog.NewTextHandler(os.Stdout, opts))
		slog.SetDefault(handler)

		return nil
	},
}

func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	ll := os.Getenv("LOG_LEVEL")
	if ll == "" {
		ll = "INFO"
	}
	RootCmd.PersistentFlags().String("log-level", ll, "The logging level for the command")
	RootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
}

// loadConfig reads the config file named by the persistent flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

// buildRegistry wires up all available engines from the config.
func buildRegistry(cfg *config.Config) *docintel.Registry {
	registry := docintel.NewRegistry()
	az := azure.New()
	az.Locale = cfg.Locale
	registry.Register(az)
	registry.Register(gdocai.New(gdocai.Config{
		ProjectID:   cfg.GDocAI.ProjectID,
		Location:    cfg.GDocAI.Location,
		ProcessorID: cfg.GDocAI.ProcessorID,
	}))
	return registry
}

// selectEngine resolves the configured engine and validates its credentials.
func selectEngine(cfg *config.Config) (docintel.Engine, error) {
	engine, err := buildRegistry(cfg).Get(cfg.Engine)
	if err != nil {
		return nil, err
	}
	if err := engine.ValidateConfig(); err != nil {
		return nil, err
	}
	return engine, nil
}
