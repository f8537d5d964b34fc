// Package cli implements the svg2png command-line interface.
//
// Each subcommand drives one entry point of the godotsvg plugin:
//   - file: convert an SVG file of the local filesystem
//   - asset: convert an SVG of the asset bundle (--assets or [assets] dir)
//   - resource: convert a packaged resource by identifier
//
// The PNG is written to --output ("-" for stdout). With --json the plugin
// result dictionary is printed instead, as the engine would receive it.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/newpsoft/godotsvg/config"
	"github.com/newpsoft/godotsvg/internal/logging"
	"github.com/newpsoft/godotsvg/observability"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// rootOpts holds the flags shared by every command.
type rootOpts struct {
	verbose    bool
	configPath string
	assetsDir  string
}

// Execute runs the svg2png CLI and returns an error if the command fails.
func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

func newRootCmd() *cobra.Command {
	var (
		opts      rootOpts
		logCloser io.Closer
	)

	root := &cobra.Command{
		Use:          "svg2png",
		Short:        "Rasterize SVG documents to PNG",
		Long:         `svg2png converts SVG documents read from files, an asset bundle or packaged resources to PNG images, the way the GodotSvg plugin does for the engine.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if opts.assetsDir != "" {
				cfg.Assets.Dir = opts.assetsDir
			}
			logger, closer, err := logging.Open(cfg.Log, cmd.ErrOrStderr(), opts.verbose)
			if err != nil {
				return err
			}
			logCloser = closer
			observability.SetConversionHooks(logging.Hooks{Logger: logger})

			ctx := logging.WithLogger(cmd.Context(), logger)
			ctx = withConfig(ctx, cfg)
			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logCloser != nil {
				return logCloser.Close()
			}
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("svg2png %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "TOML configuration file")
	root.PersistentFlags().StringVar(&opts.assetsDir, "assets", "", "asset bundle directory (overrides [assets] dir)")

	root.AddCommand(newFileCmd())
	root.AddCommand(newAssetCmd())
	root.AddCommand(newResourceCmd())

	return root
}

type configKey struct{}

func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

func configFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return config.Default()
}
