package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/isostack/internal/server"
	"github.com/matzehuels/isostack/pkg/cache"
	"github.com/matzehuels/isostack/pkg/pipeline"
	"github.com/matzehuels/isostack/pkg/shapes"
	"github.com/matzehuels/isostack/pkg/store"
)

// serveCommand starts the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the diagram engine over HTTP.

Configuration comes from ISOSTACK_* environment variables (ISOSTACK_ADDR,
ISOSTACK_STORE, ISOSTACK_STORE_DSN, ISOSTACK_LIBRARY, ISOSTACK_WIDTH,
ISOSTACK_HEIGHT). --addr, --store, --store-dsn and --library override them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := server.LoadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if c.storeBackend != "" {
				cfg.Store = c.storeBackend
			}
			if c.storeDSN != "" {
				cfg.StoreDSN = c.storeDSN
			}

			lib, err := c.serverLibrary(cfg)
			if err != nil {
				return err
			}

			st, err := store.Open(ctx, store.Config{Backend: cfg.Store, DSN: cfg.StoreDSN, Database: cfg.StoreDatabase})
			if err != nil {
				return err
			}
			st = store.Observed(st, cfg.Store)
			defer st.Close()

			runner := pipeline.NewRunner(cache.NewMemoryCache(cfg.CacheEntries), nil, lib, logger)
			defer runner.Close()

			printInfo("Serving on %s", StyleHighlight.Render(cfg.Addr))
			printDetail("store: %s, shapes: %d", cfg.Store, lib.Len())
			return server.New(cfg, st, runner, logger).ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default $ISOSTACK_ADDR or :8080)")
	return cmd
}

// serverLibrary prefers --library, then ISOSTACK_LIBRARY, then the CLI's
// usual resolution.
func (c *CLI) serverLibrary(cfg server.Config) (*shapes.Library, error) {
	if c.libraryPath == "" && cfg.Library != "" {
		return shapes.LoadManifest(cfg.Library)
	}
	return c.shapeLibrary()
}
