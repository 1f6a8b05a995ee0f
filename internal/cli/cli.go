// Package cli implements the isostack command-line interface.
//
// Diagrams are edited as JSON files on disk: every editing command loads the
// file, applies one composition operation, recompiles so stored positions
// and anchors stay current, and writes the file back. Compile and tree
// commands export documents; save and load move diagrams between files and
// a store backend; serve exposes the same operations over HTTP.
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// carried in the command's context.Context.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/isostack/pkg/buildinfo"
	"github.com/matzehuels/isostack/pkg/cache"
	"github.com/matzehuels/isostack/pkg/errors"
	"github.com/matzehuels/isostack/pkg/pipeline"
	"github.com/matzehuels/isostack/pkg/settings"
	"github.com/matzehuels/isostack/pkg/shapes"
	"github.com/matzehuels/isostack/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "isostack"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Persistent flags.
	libraryPath  string
	storeBackend string
	storeDSN     string
	settingsPath string
	noCache      bool

	library *shapes.Library
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "isostack composes isometric architecture diagrams",
		Long: `isostack builds isometric diagrams out of 3D shapes stacked on each other's
faces and 2D decorations welded onto those faces, and exports them as SVG,
PNG, PDF or JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(withLogger(ctx, c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.libraryPath, "library", "", "shape library manifest (default: last used, else built-in)")
	pf.StringVar(&c.storeBackend, "store", "", "store backend: file, memory, sqlite, redis, mongo, postgres")
	pf.StringVar(&c.storeDSN, "store-dsn", "", "store location: directory, database path or connection URL")
	pf.StringVar(&c.settingsPath, "settings", "", "settings file (default ~/.config/isostack/settings.toml)")
	pf.BoolVar(&c.noCache, "no-cache", false, "disable the artifact cache")

	root.AddCommand(c.newCommand())
	root.AddCommand(c.addCommand())
	root.AddCommand(c.decorateCommand())
	root.AddCommand(c.removeCommand())
	root.AddCommand(c.undecorateCommand())
	root.AddCommand(c.cutCommand())
	root.AddCommand(c.cancelCommand())
	root.AddCommand(c.pasteCommand())
	root.AddCommand(c.compileCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.anchorsCommand())
	root.AddCommand(c.shapesCommand())
	root.AddCommand(c.saveCommand())
	root.AddCommand(c.loadCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Resources
// =============================================================================

// loadSettings reads the settings file, falling back to defaults.
func (c *CLI) loadSettings() (settings.Settings, string, error) {
	path := c.settingsPath
	if path == "" {
		var err error
		if path, err = settings.DefaultPath(); err != nil {
			return settings.Defaults(), "", err
		}
	}
	s, err := settings.Load(path)
	return s, path, err
}

// shapeLibrary loads the library named by --library, else the last
// manifest recorded in settings, else the embedded default. An explicit
// --library is remembered for later runs.
func (c *CLI) shapeLibrary() (*shapes.Library, error) {
	if c.library != nil {
		return c.library, nil
	}
	s, path, err := c.loadSettings()
	if err != nil {
		c.Logger.Warn("ignoring settings", "error", err)
	}

	manifest := c.libraryPath
	if manifest == "" {
		manifest = s.Library
	}
	if manifest == "" {
		c.library = shapes.Default()
		return c.library, nil
	}

	lib, err := shapes.LoadManifest(manifest)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded shape library", "manifest", manifest, "shapes", lib.Len())

	if c.libraryPath != "" && path != "" {
		if abs, err := filepath.Abs(manifest); err == nil && abs != s.Library {
			s.Library = abs
			if err := settings.Save(path, s); err != nil {
				c.Logger.Debug("could not remember library", "error", err)
			}
		}
	}
	c.library = lib
	return lib, nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() (*pipeline.Runner, error) {
	lib, err := c.shapeLibrary()
	if err != nil {
		return nil, err
	}
	ch, err := newCache(c.noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, nil, lib, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// openStore opens the backend named by --store/--store-dsn, falling back to
// settings and then to the file store.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	s, _, err := c.loadSettings()
	if err != nil {
		c.Logger.Warn("ignoring settings", "error", err)
	}
	cfg := store.Config{Backend: c.storeBackend, DSN: c.storeDSN}
	if cfg.Backend == "" {
		cfg.Backend, cfg.DSN = s.Store, s.StoreDSN
		if c.storeDSN != "" {
			cfg.DSN = c.storeDSN
		}
	}
	if cfg.Backend == "" {
		cfg.Backend = store.BackendFile
	}
	if cfg.Backend == store.BackendMemory {
		return nil, errors.New(errors.ErrCodeInvalidInput, "the memory store does not persist between commands")
	}
	st, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("opened store", "backend", cfg.Backend)
	return store.Observed(st, cfg.Backend), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/isostack/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
