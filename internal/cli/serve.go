package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matcluck/drawgen/internal/api"
	"github.com/matcluck/drawgen/pkg/cache"
	"github.com/matcluck/drawgen/pkg/pipeline"
)

const (
	defaultServeAddr = ":8080"

	// shutdownTimeout bounds graceful shutdown after SIGINT/SIGTERM.
	shutdownTimeout = 10 * time.Second
)

// serveCommand creates the serve command, which exposes the generator
// over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		redisAddr  string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the diagram generator over HTTP",
		Long: `Serve the diagram generator over HTTP.

POST a JSON descriptor to /v1/diagram and receive the positioned .drawio
XML back. With --redis the render cache is shared across instances;
otherwise the local file cache is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisAddr, configPath)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultServeAddr, "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for a shared cache (host:port)")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML style config overriding the built-in defaults")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, redisAddr, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	store, err := serveCache(ctx, redisAddr)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(cfg, store, c.Logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.NewServer(runner, c.Logger).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	c.Logger.Infof("listening on %s", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// serveCache picks the shared redis cache when an address is given and
// falls back to the local file cache otherwise.
func serveCache(ctx context.Context, redisAddr string) (cache.Cache, error) {
	if redisAddr != "" {
		return cache.NewRedisCache(ctx, redisAddr)
	}
	return newCache(false), nil
}
