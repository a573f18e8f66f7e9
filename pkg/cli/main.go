// Package cli builds the cobra command tree for the sort-state demo
// service: serve, version, and config inspection.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/tablekit/sortstate/pkg/config"
	"github.com/tablekit/sortstate/pkg/observability/logger"
	"github.com/tablekit/sortstate/pkg/version"
)

// Options defines the service-specific wiring for the command tree.
type Options struct {
	Name        string
	Description string
	// ConfigPath is the default --config-file value.
	ConfigPath string
	// EnvPrefix is the prefix for environment overrides (default "SORTSTATE").
	EnvPrefix string

	// RunServer starts the service and blocks until ctx is cancelled.
	RunServer func(ctx context.Context, cfg *config.Config, log logger.Logger) error
}

// NewRootCommand creates the root command with serve, version, and
// config subcommands.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.EnvPrefix == "" {
		opts.EnvPrefix = "SORTSTATE"
	}

	rootCmd := &cobra.Command{
		Use:          opts.Name,
		Short:        opts.Description,
		SilenceUsage: true,
	}

	var cfgPath string
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config-file", "c", opts.ConfigPath, "config file path")

	loadConfig := func(flags *pflag.FlagSet) (*config.Config, logger.Logger, error) {
		path, err := flags.GetString("config-file")
		if err != nil {
			return nil, nil, err
		}
		cfg, err := config.NewViperLoader(path, opts.EnvPrefix).Load()
		if err != nil {
			return nil, nil, err
		}
		level, _ := logger.ParseLogLevel(cfg.Logging.Level)
		format, _ := logger.ParseLogFormat(cfg.Logging.Format)
		log, err := logger.NewZapLogger(logger.Config{Level: level, Format: format})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create logger: %w", err)
		}
		return cfg, log, nil
	}

	rootCmd.AddCommand(newServeCommand(opts, loadConfig))
	rootCmd.AddCommand(newVersionCommand(opts))
	rootCmd.AddCommand(newConfigCommand(loadConfig))

	return rootCmd
}

func newServeCommand(opts Options, loadConfig func(*pflag.FlagSet) (*config.Config, logger.Logger, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			if opts.RunServer == nil {
				return fmt.Errorf("no server wired for %s", opts.Name)
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info("starting service",
				"service", cfg.Service.Name,
				"environment", cfg.Service.Environment,
				"version", version.Current(cfg.Service.Name).Version,
			)
			return opts.RunServer(runCtx, cfg, log)
		},
	}
}

func newVersionCommand(opts Options) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build version metadata",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Current(opts.Name)
			if output == "json" {
				data, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (commit %s, built %s)\n",
				info.Service, info.Version, info.Commit, info.BuildTime)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format (text|json)")
	return cmd
}

func newConfigCommand(loadConfig func(*pflag.FlagSet) (*config.Config, logger.Logger, error)) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to render config: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	})
	return configCmd
}
