// Command local-server runs the emoji lookup function as a plain http server
// for local development.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/sirupsen/logrus"

	"github.com/prognoshealth/emojiproxy/config"
	"github.com/prognoshealth/emojiproxy/lambdautils"
	"github.com/prognoshealth/emojiproxy/lookup"
	"github.com/prognoshealth/emojiproxy/proxy"
)

type args struct {
	Addr string `arg:"-a,--addr,env:ADDR" default:"127.0.0.1:8888" help:"address to listen on"`
}

func (args) Description() string {
	return "\nserve the emoji lookup function over http, e.g. curl 'localhost:8888/?query=smile'\n"
}

func main() {
	var a args
	arg.MustParse(&a)

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed loading configuration")
	}

	logger, err := lambdautils.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.WithError(err).Fatal("failed building logger")
	}

	if err := cfg.ResolveAccessKey(context.Background()); err != nil {
		logger.WithError(err).Fatal("failed resolving emoji api access key")
	}

	router := lookup.NewRouter(lookup.NewHandler(cfg.Client(), logger))
	server := &http.Server{
		Addr:              a.Addr,
		Handler:           proxy.LocalHandler(router.Route, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()

		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdown); err != nil {
			logger.WithError(err).Warn("failed shutting down")
		}
	}()

	logger.WithField("addr", a.Addr).Info("listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.WithError(err).Fatal("failed serving")
	}
}
