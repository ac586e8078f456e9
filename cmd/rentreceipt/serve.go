package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rentreceipt/internal/db"
	"rentreceipt/internal/receipt"
	"rentreceipt/internal/server"
	"rentreceipt/internal/store"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, err := loadConfig(cCtx.String("env-prefix"))
	if err != nil {
		return err
	}

	err = validateServeConfig(config)
	if err != nil {
		return err
	}

	logger, err := newLogger(config.LogLevel)
	if err != nil {
		return err
	}

	awsConfig, err := loadAWSConfig(ctx, config)
	if err != nil {
		return err
	}

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	verifier, err := newVerifier(ctx, config, awsConfig)
	if err != nil {
		return err
	}

	renderer, err := newRenderer(config)
	if err != nil {
		return err
	}

	documents, err := newDocuments(config, awsConfig)
	if err != nil {
		return err
	}

	receipts := receipt.NewService(
		store.NewAccommodationRepository(pool),
		store.NewLeaseRepository(pool),
		config.CurrencyName,
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv := server.New(config, logger, registry, verifier, receipts, renderer, documents)

	go func() {
		logger.WithField("port", config.ServerPort).
			WithField("auth_mode", config.AuthMode).
			WithField("url_policy", config.URLPolicy).
			Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
