package cli

import (
	"context"
	"errors"
	"net/http"
	_ "net/http/pprof"
	"time"

	"hierview/ui"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func (c *CLI) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Build the hierarchy cache and serve it over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.config.ValidateSource(); err != nil {
				return err
			}

			// the cache must exist before the first request is accepted
			if _, err := c.hierarchyService().Build(cmd.Context()); err != nil {
				return err
			}

			server, err := ui.NewServer(ui.ServerConfig{
				GinMode: c.config.Server.GinMode,
				Title:   c.config.Server.Title,
			}, c.store(), c.logger)
			if err != nil {
				return err
			}

			return c.runServers(cmd.Context(), server)
		},
	}
}

// runServers runs the web server and, when enabled, the pprof listener. Either
// failing stops both.
func (c *CLI) runServers(ctx context.Context, server *ui.Server) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Run(ctx, ":"+c.config.Server.Port)
	})

	if c.config.Profiling.Enabled {
		pprofServer := &http.Server{
			Addr:              ":" + c.config.Profiling.Port,
			Handler:           http.DefaultServeMux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		g.Go(func() error {
			c.logger.Info("Performance profiling server starting on :%s", c.config.Profiling.Port)
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return pprofServer.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}
