package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielledeleo/createpage/internal/server"
	"github.com/gorilla/handlers"
	"golang.org/x/sync/errgroup"
)

func main() {
	app, err := server.Setup()
	if err != nil {
		slog.Error("setup failed", "error", err)
		os.Exit(1)
	}
	defer app.DB.Close()

	router := server.NewRouter(app)

	handler := handlers.ProxyHeaders(
		server.SlogLoggingMiddleware(
			handlers.RecoveryHandler(handlers.RecoveryLogger(server.RecoveryLogger{}))(router),
		),
	)

	srv := &http.Server{
		Addr:              app.Config.Host,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("server starting", "url", app.URLs.SpecialURL("CreatePage"), "listen", app.Config.Host)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server error", "error", err)
		app.DB.Close()
		os.Exit(1)
	}

	slog.Info("server stopped")
}
