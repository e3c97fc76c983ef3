package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SmitUplenchwar2687/macrokey/internal/config"
	"github.com/SmitUplenchwar2687/macrokey/internal/logging"
)

type globalOptions struct {
	configPath string
	logLevel   string
	logDev     bool
}

func (g *globalOptions) addFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&g.configPath, "config", "", "path to JSON config file")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&g.logDev, "log-development", false, "human-readable console logs")
}

// load reads the config file if one was given, applies explicitly set
// global flags on top and builds the logger.
func (g *globalOptions) load(cmd *cobra.Command) (config.Config, *zap.Logger, error) {
	cfg := config.Default()
	if g.configPath != "" {
		var err error
		cfg, err = config.LoadFile(g.configPath)
		if err != nil {
			return cfg, nil, err
		}
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = g.logLevel
	}
	if cmd.Flags().Changed("log-development") {
		cfg.Log.Development = g.logDev
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, logger, nil
}
