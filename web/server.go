package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dasdy/flaykeys/logging"
	"github.com/dasdy/flaykeys/web/routes"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func disableCacheInDevMode(dev bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !dev {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "no-store")
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger logs every request through slog with the request id attached.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		ctx := logging.AppendCtx(r.Context(), slog.String("requestID", middleware.GetReqID(r.Context())))
		slog.DebugContext(ctx, "Request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

func BuildServer(handler *routes.ServerHandler, dev bool) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(disableCacheInDevMode(dev))

	r.Get("/", handler.StatsHandle)
	r.Get("/layout", handler.LayoutHandle)
	r.Get("/key", handler.KeyHandle)
	r.Get("/transitions", handler.TransitionsHandle)

	return r
}

// StartServer serves until ctx is cancelled.
func StartServer(ctx context.Context, port int, handler *routes.ServerHandler, dev bool) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           BuildServer(handler, dev),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Could not shut down server", "error", err)
		}
	}()

	slog.Info("Running interface", "port", port)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not run server: %w", err)
	}

	return nil
}
