package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/newpsoft/godotsvg/config"
	"github.com/newpsoft/godotsvg/convert"
	"github.com/newpsoft/godotsvg/godotsvg"
	"github.com/newpsoft/godotsvg/internal/logging"
	"github.com/newpsoft/godotsvg/svgraster"
	"github.com/spf13/cobra"
)

// convertOpts holds the flags of the conversion commands.
type convertOpts struct {
	width  int    // requested width, 0 for the document size
	height int    // requested height, 0 for the document size
	output string // output file, "-" for stdout
	asJSON bool   // print the result dictionary instead of the PNG
}

func (o *convertOpts) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&o.width, "width", "W", 0, "output width in pixels (0: document size)")
	cmd.Flags().IntVarP(&o.height, "height", "H", 0, "output height in pixels (0: document size)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "-", "output PNG file, - for stdout")
	cmd.Flags().BoolVar(&o.asJSON, "json", false, "print the result dictionary as JSON")
}

func newFileCmd() *cobra.Command {
	var opts convertOpts
	cmd := &cobra.Command{
		Use:   "file <path.svg>",
		Short: "Convert an SVG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts, func(p *godotsvg.Plugin) godotsvg.Dictionary {
				return p.FileToPNG(args[0], opts.width, opts.height)
			})
		},
	}
	opts.register(cmd)
	return cmd
}

func newAssetCmd() *cobra.Command {
	var opts convertOpts
	cmd := &cobra.Command{
		Use:   "asset <bundle/path.svg>",
		Short: "Convert an SVG of the asset bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts, func(p *godotsvg.Plugin) godotsvg.Dictionary {
				return p.AssetToPNG(args[0], opts.width, opts.height)
			})
		},
	}
	opts.register(cmd)
	return cmd
}

func newResourceCmd() *cobra.Command {
	var opts convertOpts
	cmd := &cobra.Command{
		Use:   "resource <id>",
		Short: "Convert a packaged SVG resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := godotsvg.ParseResourceID(args[0])
			if err != nil {
				return err
			}
			return runConvert(cmd, opts, func(p *godotsvg.Plugin) godotsvg.Dictionary {
				return p.ResourceToPNG(id, opts.width, opts.height)
			})
		},
	}
	opts.register(cmd)
	return cmd
}

func runConvert(cmd *cobra.Command, opts convertOpts, call func(*godotsvg.Plugin) godotsvg.Dictionary) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)
	p, err := newPlugin(ctx, configFromContext(ctx))
	if err != nil {
		return err
	}

	d := call(p)
	if opts.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	}

	res, err := convert.FromDictionary(d)
	if err != nil {
		return err
	}
	if !res.OK() {
		return res.Err()
	}
	return writeOutput(cmd, opts.output, res.PNG(), logger)
}

// newPlugin wires the plugin described by cfg.
func newPlugin(ctx context.Context, cfg *config.Config) (*godotsvg.Plugin, error) {
	logger := logging.FromContext(ctx)
	ids, err := cfg.ResourceIDs()
	if err != nil {
		return nil, err
	}
	opts := []godotsvg.Option{
		godotsvg.WithLogger(logger),
		godotsvg.WithConverter(convert.New(
			convert.WithDefaultSize(cfg.Render.DefaultSize),
			convert.WithMaxDimension(cfg.Render.MaxDimension),
			convert.WithDPI(cfg.Render.DPI),
			convert.WithStrict(cfg.Render.Strict),
			convert.WithRenderer(svgraster.NewRenderer(svgraster.WithOpacity(cfg.Render.Opacity))),
			convert.WithLogger(logger),
		)),
		godotsvg.WithResources(godotsvg.ResourceTable{FS: os.DirFS(cfg.Resources.Dir), Paths: ids}),
	}
	if cfg.Assets.Dir != "" {
		opts = append(opts, godotsvg.WithAssets(os.DirFS(cfg.Assets.Dir)))
	}
	return godotsvg.New(opts...), nil
}

func writeOutput(cmd *cobra.Command, output string, png []byte, logger *log.Logger) error {
	if output == "" || output == "-" {
		_, err := cmd.OutOrStdout().Write(png)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(output, png, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	logger.Debug("wrote png", "path", output, "bytes", len(png))
	return nil
}
