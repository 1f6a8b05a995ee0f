package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/isostack/pkg/cache"
	"github.com/matzehuels/isostack/pkg/diagram"
	"github.com/matzehuels/isostack/pkg/errors"
	"github.com/matzehuels/isostack/pkg/observability"
	"github.com/matzehuels/isostack/pkg/render"
	"github.com/matzehuels/isostack/pkg/shapes"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, library and logger.
// Multiple goroutines can safely use the same Runner with different
// options.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Library *shapes.Library
	Logger  *log.Logger
}

// NewRunner creates a runner.
// If keyer is nil, a DefaultKeyer is used. Keys are always scoped by the
// library's fingerprint.
// If c is nil, a NullCache is used (caching disabled).
// If lib is nil, the embedded default library is used.
func NewRunner(c cache.Cache, keyer cache.Keyer, lib *shapes.Library, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if lib == nil {
		lib = shapes.Default()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   cache.NewScopedKeyer(keyer, "lib:"+Fingerprint(lib)[:16]+":"),
		Library: lib,
		Logger:  logger,
	}
}

// Fingerprint hashes every definition of lib, markup included.
func Fingerprint(lib *shapes.Library) string {
	data, _ := json.Marshal(lib.Shapes())
	return cache.Hash(data)
}

// Compile runs render.Compile, reports it to the pipeline hooks and logs
// every diagnostic.
func (r *Runner) Compile(ctx context.Context, list []diagram.Component, opts render.Options) render.Result {
	return r.compile(ctx, list, opts, r.Logger)
}

func (r *Runner) compile(ctx context.Context, list []diagram.Component, opts render.Options, logger *log.Logger) render.Result {
	start := time.Now()
	observability.Pipeline().OnCompileStart(ctx, len(list))
	res := render.Compile(list, r.Library, opts)
	observability.Pipeline().OnCompileComplete(ctx, res.Placed(), len(res.Diagnostics), time.Since(start))

	for _, d := range res.Diagnostics {
		logDiagnostic(logger, d)
	}
	return res
}

func logDiagnostic(logger *log.Logger, d diagram.Diagnostic) {
	switch d.Level {
	case diagram.LevelInfo:
		logger.Debug(d.Message, "component", d.ComponentID)
	case diagram.LevelError:
		logger.Error(d.Message, "component", d.ComponentID)
	default:
		logger.Warn(d.Message, "component", d.ComponentID)
	}
}

// Execute compiles list and renders every requested format with caching.
func (r *Runner) Execute(ctx context.Context, list []diagram.Component, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	data, err := diagram.Serialize(list)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash diagram")
	}

	result := &Result{
		DiagramHash: cache.Hash(data),
		Artifacts:   make(map[string][]byte),
	}

	// Stage 1: Compile
	compileStart := time.Now()
	result.Compiled = r.compile(ctx, list, opts.CompileOptions(), logger)
	result.Stats = Stats{
		Components:  len(list),
		Placed:      result.Compiled.Placed(),
		Diagnostics: len(result.Compiled.Diagnostics),
		CompileTime: time.Since(compileStart),
	}
	logger.Debug("compiled diagram",
		"components", result.Stats.Components,
		"placed", result.Stats.Placed,
		"diagnostics", result.Stats.Diagnostics,
		"duration", result.Stats.CompileTime)

	// Stage 2: Export
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	hits := 0
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(result.DiagramHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				result.Artifacts[format] = data
				hits++
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}

		data, err := Render(result.Compiled, format, opts)
		if err != nil {
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInternal
			}
			return nil, errors.Wrap(code, err, "render %s", format)
		}
		result.Artifacts[format] = data
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hits == len(opts.Formats)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, nil)

	logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"cached", result.CacheInfo.RenderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Tree renders the component hierarchy of list with caching.
func (r *Runner) Tree(ctx context.Context, list []diagram.Component, format string, detailed bool) ([]byte, error) {
	if err := ValidateTreeFormat(format); err != nil {
		return nil, err
	}
	data, err := diagram.Serialize(list)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash diagram")
	}
	key := r.Keyer.TreeKey(cache.Hash(data), format, detailed)
	if out, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "tree")
		return out, nil
	}
	observability.Cache().OnCacheMiss(ctx, "tree")

	out, err := RenderTree(list, format, detailed)
	if err != nil {
		return nil, err
	}
	if err := r.Cache.Set(ctx, key, out, cache.TTLArtifact); err == nil {
		observability.Cache().OnCacheSet(ctx, "tree", len(out))
	}
	return out, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
