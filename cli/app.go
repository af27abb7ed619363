package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"firstblog/app/repositories"
	"firstblog/app/routes"
	"firstblog/app/services"

	"github.com/google/gops/agent"
	log "github.com/sirupsen/logrus"
)

// serve runs the blog service until SIGINT or SIGTERM.
func (r *Runner) serve() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return r.RunAppServer(ctx)
}

// RunAppServer opens the store, mounts the configured personality and serves
// it until ctx is done.
func (r *Runner) RunAppServer(ctx context.Context) int {
	cfg := r.Config

	if cfg.Diagnostics {
		if err := agent.Listen(agent.Options{}); err != nil {
			log.WithField("err", err).Warn("Could not start gops agent")
		} else {
			defer agent.Close()
		}
	}

	store, err := repositories.Open(ctx, cfg.Storage)
	if err != nil {
		log.WithField("err", err).Error("Could not open storage")
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.WithField("err", err).Warn("Could not close storage cleanly")
		}
	}()

	router, err := routes.New(cfg, services.NewPostService(store.Posts))
	if err != nil {
		log.WithField("err", err).Error("Could not set up routes")
		return 1
	}

	log.WithFields(log.Fields{
		"addr":        cfg.Addr,
		"personality": cfg.Personality,
		"driver":      store.Driver(),
	}).Info("Starting blog service")
	if err := routes.StartServer(ctx, cfg.Addr, router, cfg.ShutdownGrace()); err != nil {
		log.WithField("err", err).Error("Server error")
		return 1
	}
	return 0
}
