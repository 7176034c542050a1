package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/upb/equipment-portal/app"
	"github.com/upb/equipment-portal/config"
	"github.com/upb/equipment-portal/internal/observability"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:     app.Name,
	Short:   fmt.Sprintf("Equipment portal API (version: %s)", app.Version),
	Version: app.Version,
}

func init() {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
}

// bootstrap loads configuration and builds the process logger
func bootstrap(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := config.New(cmd.Context())
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Observability)
	if err != nil {
		return nil, nil, fmt.Errorf("building logger: %w", err)
	}

	return cfg, logger.With(zap.String("service", app.Name), zap.String("environment", cfg.Environment)), nil
}
