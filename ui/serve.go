package ui

import (
	"context"
	"errors"
	"net/http"
	"time"

	"hierview/internal"
)

const shutdownTimeout = 5 * time.Second

// serve runs srv until it fails or ctx is cancelled, then shuts it down gracefully
func serve(ctx context.Context, srv *http.Server, logger *internal.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logger.Info("Listening on %s", srv.Addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
