package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/dren-arifi/isrcfind/internal/server"
)

// Serve runs the HTTP bridge that browser clients post lookup messages to.
// The server shuts down gracefully when the context is cancelled.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	s, err := r.openStores()
	if err != nil {
		return err
	}
	defer s.Close()

	host := cmd.String("host")
	if host == "" {
		host = r.config.Server.Host
	}
	port := cmd.Int("port")
	if port == 0 {
		port = r.config.Server.Port
	}

	bridge := server.NewBridgeHandler(s.creds, s.tokens, s.catalog, s.engine, r.logger)
	router := server.NewBasicRouter()
	router.Use(server.LoggingMiddleware(r.logger), server.CORSMiddleware())
	router.Handler(bridge)

	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("bridge listening at %v", addr)
		r.writePlain("→ Bridge listening at http://%s\n", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	return nil
}
