package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/project-board/internal/config"
	"github.com/spec-kit/project-board/internal/seed"
)

type rootOptions struct {
	host     string
	port     string
	seedFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "project-board",
		Short:         "Serve the project board HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.host, "host", "", "bind host (overrides APP_HOST)")
	flags.StringVar(&opts.port, "port", "", "bind port (overrides APP_PORT)")
	flags.StringVar(&opts.seedFile, "seed-file", "", "YAML seed dataset (overrides SEED_FILE)")

	cmd.AddCommand(newVersionCmd(opts), newSeedCmd(opts))
	return cmd
}

func newVersionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the service version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", cfg.App.Name, cfg.App.Version)
			return err
		},
	}
}

func newSeedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Print the seed dataset the server would start with, as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			ds, err := seed.Load(cfg.Seed.File)
			if err != nil {
				return err
			}
			out, err := seed.Marshal(ds)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func loadConfig(opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.host != "" {
		cfg.App.Host = opts.host
	}
	if opts.port != "" {
		cfg.App.Port = opts.port
	}
	if opts.seedFile != "" {
		cfg.Seed.File = opts.seedFile
	}
	return cfg, nil
}
