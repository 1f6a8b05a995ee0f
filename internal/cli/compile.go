package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/isostack/pkg/errors"
	"github.com/matzehuels/isostack/pkg/pipeline"
	"github.com/matzehuels/isostack/pkg/settings"
)

// compileOpts holds the command-line flags for the compile command.
type compileOpts struct {
	output      string  // output file; format inferred from its extension
	format      string  // explicit format, overrides the extension
	width       float64 // canvas width
	height      float64 // canvas height
	anchors     bool    // leave anchor markers visible
	clip        bool    // fit the viewBox to the contents
	padding     float64 // margin around clipped contents
	background  string  // fill color
	scale       float64 // PNG resolution multiplier
	refresh     bool    // bypass the artifact cache
	saveDefault bool    // remember canvas, output and clip in settings
}

func (c *CLI) compileCommand() *cobra.Command {
	var opts compileOpts
	cmd := &cobra.Command{
		Use:   "compile <file>",
		Short: "Compile a diagram to SVG, PNG, PDF or JSON",
		Long: `Compile places every component on the canvas, welds decorations onto their
faces and writes the document. Components that cannot be drawn are skipped
and reported; the rest of the diagram still renders.

Defaults for --width, --height, --output and --clip come from the settings
file; pass --save-defaults to update them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCompile(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default from settings)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg, png, pdf, json (default from extension)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "canvas width")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "canvas height")
	cmd.Flags().BoolVar(&opts.anchors, "anchors", false, "show anchor markers")
	cmd.Flags().BoolVar(&opts.clip, "clip", false, "fit the document to its contents")
	cmd.Flags().Float64Var(&opts.padding, "padding", 0, "margin around clipped contents")
	cmd.Flags().StringVar(&opts.background, "background", "", "background color")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts")
	cmd.Flags().BoolVar(&opts.saveDefault, "save-defaults", false, "store canvas, output and clip as defaults")

	return cmd
}

func (c *CLI) runCompile(cmd *cobra.Command, path string, opts *compileOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	s, settingsPath, err := c.loadSettings()
	if err != nil {
		logger.Warn("ignoring settings", "error", err)
	}
	flags := cmd.Flags()
	if !flags.Changed("width") {
		opts.width = s.Canvas.Width
	}
	if !flags.Changed("height") {
		opts.height = s.Canvas.Height
	}
	if !flags.Changed("clip") {
		opts.clip = s.Clip
	}
	if opts.output == "" {
		opts.output = s.Output
	}
	format := opts.format
	if format == "" {
		format = pipeline.FormatFromPath(opts.output, pipeline.FormatSVG)
	}

	list, err := readDiagram(path)
	if err != nil {
		return err
	}
	runner, err := c.newRunner()
	if err != nil {
		return err
	}
	defer runner.Close()

	var spinner *Spinner
	if format == pipeline.FormatPNG || format == pipeline.FormatPDF {
		spinner = newSpinner(ctx, "Converting to "+strings.ToUpper(format)+"...")
		spinner.Start()
	}

	prog := newProgress(logger)
	res, err := runner.Execute(ctx, list, pipeline.Options{
		Width:       opts.width,
		Height:      opts.height,
		ShowAnchors: opts.anchors,
		Formats:     []string{format},
		Clip:        opts.clip,
		Padding:     opts.padding,
		Background:  opts.background,
		Scale:       opts.scale,
		Refresh:     opts.refresh,
		Logger:      logger,
	})
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	prog.done("Compiled diagram")

	if err := writeFileAtomic(opts.output, res.Artifacts[format]); err != nil {
		return err
	}

	printSuccess("Compiled %s", filepath.Base(path))
	printStats(res.Stats.Components, res.Stats.Placed, res.Stats.Diagnostics, res.CacheInfo.RenderHit)
	printFile(opts.output)

	if opts.saveDefault && settingsPath != "" {
		s.Canvas.Width, s.Canvas.Height = opts.width, opts.height
		s.Output = opts.output
		s.Clip = opts.clip
		if err := settings.Save(settingsPath, s); err != nil {
			return err
		}
		printDetail("Saved defaults to %s", settingsPath)
	}
	return nil
}

func (c *CLI) treeCommand() *cobra.Command {
	var output, format string
	var detailed bool
	cmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Draw the component hierarchy with Graphviz",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = pipeline.FormatFromPath(output, pipeline.FormatDOT)
			}
			if err := pipeline.ValidateTreeFormat(format); err != nil {
				return err
			}
			list, err := readDiagram(args[0])
			if err != nil {
				return err
			}
			runner, err := c.newRunner()
			if err != nil {
				return err
			}
			defer runner.Close()

			data, err := runner.Tree(cmd.Context(), list, format, detailed)
			if err != nil {
				return err
			}
			if output == "" {
				if format != pipeline.FormatDOT {
					return errors.New(errors.ErrCodeInvalidInput, "%s output needs --output", format)
				}
				_, err := stdout.Write(data)
				return err
			}
			if err := writeFileAtomic(output, data); err != nil {
				return err
			}
			printSuccess("Drew %d components", len(list))
			printFile(output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: DOT to stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: dot, svg, png, pdf (default from extension)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include positions and decorations in node labels")
	return cmd
}
