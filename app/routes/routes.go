package routes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"firstblog/app/config"
	"firstblog/app/controllers"
	"firstblog/app/middleware"
	"firstblog/app/views"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// New builds the router of the configured personality.
func New(cfg *config.Config, postService controllers.PostService) (*mux.Router, error) {
	limiter := cfg.RateLimit.Limiter()
	switch cfg.Personality {
	case config.PersonalityJSON:
		return SetupAPIRoutes(postService, limiter), nil
	case config.PersonalityHTML:
		v, err := views.Load(cfg.ViewsDir)
		if err != nil {
			return nil, err
		}
		return SetupMVCRoutes(postService, v, cfg.StaticDir, limiter), nil
	}
	return nil, fmt.Errorf("unknown personality %q", cfg.Personality)
}

// SetupAPIRoutes defines the JSON personality's routes.
func SetupAPIRoutes(postService controllers.PostService, limiter *rate.Limiter) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RateLimit(limiter))
	router.Use(middleware.ContentTypeJSON)

	// mux bypasses router.Use for unmatched requests.
	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Not found"})
	})
	router.NotFoundHandler = withMiddleware(middleware.ContentTypeJSON(notFound), limiter)

	controllers.NewAPIPostController(postService).RegisterRoutes(router)
	return router
}

// SetupMVCRoutes defines the HTML personality's routes, serving static files
// from staticDir.
func SetupMVCRoutes(postService controllers.PostService, v *views.Views, staticDir string, limiter *rate.Limiter) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RateLimit(limiter))

	// Serve static files
	if staticDir != "" {
		router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	}

	controllers.NewWebPostController(postService, v).RegisterRoutes(router)
	router.NotFoundHandler = withMiddleware(http.NotFoundHandler(), limiter)
	return router
}

// withMiddleware wraps h in the chain the routers apply with Use.
func withMiddleware(h http.Handler, limiter *rate.Limiter) http.Handler {
	return middleware.Logger(middleware.Recoverer(middleware.RateLimit(limiter)(h)))
}

// StartServer listens on addr and serves handler until ctx is cancelled.
func StartServer(ctx context.Context, addr string, handler http.Handler, grace time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return Serve(ctx, ln, handler, grace)
}

// Serve serves handler on ln until ctx is cancelled, then gives in-flight
// requests up to grace to finish.
func Serve(ctx context.Context, ln net.Listener, handler http.Handler, grace time.Duration) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()
	log.WithField("addr", ln.Addr().String()).Info("Listening")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("could not shut down the server cleanly: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
