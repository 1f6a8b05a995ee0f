// Package pipeline runs the compile → export flow shared by the CLI and the
// HTTP server.
//
// By centralizing this logic, both entry points apply the same defaults,
// log diagnostics the same way and share the artifact cache.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Compile: place every component and weld its decorations
//     (render.Compile). Always runs; it is cheap and yields diagnostics.
//  2. Export: turn the compiled result into SVG, PNG, PDF or JSON. Each
//     format is cached by diagram content and options.
//
// A separate Tree entry point renders the component hierarchy through
// Graphviz.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, shapes.Default(), logger)
//	result, err := runner.Execute(ctx, list, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG},
//	    Clip:    true,
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/isostack/pkg/cache"
	"github.com/matzehuels/isostack/pkg/errors"
	"github.com/matzehuels/isostack/pkg/render"
	"github.com/matzehuels/isostack/pkg/render/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0

	// MaxCanvas bounds canvas width and height.
	MaxCanvas = 20000.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported diagram output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidTreeFormats is the set of supported tree output formats.
var ValidTreeFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Compile options
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`
	ShowAnchors bool    `json:"show_anchors,omitempty"`

	// Export options
	Formats    []string `json:"formats,omitempty"`
	Clip       bool     `json:"clip,omitempty"`
	Padding    float64  `json:"padding,omitempty"`
	Background string   `json:"background,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	Refresh    bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Compiled is the compiler output, including diagnostics.
	Compiled render.Result

	// DiagramHash is the content hash of the serialized input.
	DiagramHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Components  int
	Placed      int
	Diagnostics int
	CompileTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTreeFormat checks that a tree output format is valid.
func ValidateTreeFormat(format string) error {
	if !ValidTreeFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid tree format: %q (must be one of: dot, svg, png, pdf)", format)
	}
	return nil
}

// FormatFromPath infers an output format from a file extension.
// Returns fallback when the extension is missing.
func FormatFromPath(path, fallback string) string {
	i := strings.LastIndexByte(path, '.')
	if i < 0 || strings.ContainsRune(path[i:], '/') {
		return fallback
	}
	return strings.ToLower(path[i+1:])
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Width < 0 || o.Height < 0 || o.Width > MaxCanvas || o.Height > MaxCanvas {
		return errors.New(errors.ErrCodeInvalidInput, "canvas %gx%g out of range (max %g)", o.Width, o.Height, MaxCanvas)
	}
	if o.Width == 0 {
		o.Width = render.DefaultCanvas.Width
	}
	if o.Height == 0 {
		o.Height = render.DefaultCanvas.Height
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Padding <= 0 {
		o.Padding = sink.DefaultPadding
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Canvas returns the compile canvas.
func (o *Options) Canvas() render.Canvas {
	return render.Canvas{Width: o.Width, Height: o.Height}
}

// CompileOptions returns options for render.Compile.
func (o *Options) CompileOptions() render.Options {
	return render.Options{Canvas: o.Canvas(), ShowAnchors: o.ShowAnchors}
}

// SVGOptions returns the sink options for document export.
func (o *Options) SVGOptions() []sink.SVGOption {
	var opts []sink.SVGOption
	if o.Clip {
		opts = append(opts, sink.WithClip(o.Padding))
	}
	if o.Background != "" {
		opts = append(opts, sink.WithBackground(o.Background))
	}
	return opts
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:      format,
		Width:       o.Width,
		Height:      o.Height,
		ShowAnchors: o.ShowAnchors,
		Clip:        o.Clip,
		Background:  o.Background,
	}
	if o.Clip {
		k.Padding = o.Padding
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
