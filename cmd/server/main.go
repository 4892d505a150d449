package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-microblog/internal/adapter"
	"github.com/MKhiriev/go-microblog/internal/config"
	"github.com/MKhiriev/go-microblog/internal/handler"
	"github.com/MKhiriev/go-microblog/internal/logger"
	"github.com/MKhiriev/go-microblog/internal/server"
	"github.com/MKhiriev/go-microblog/internal/service"
	"github.com/MKhiriev/go-microblog/internal/store"
	"github.com/MKhiriev/go-microblog/internal/workers"
	"github.com/MKhiriev/go-microblog/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo()

	log := logger.NewLogger("microblog-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services, err := service.NewServices(storages, cfg.App, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	relay, err := adapter.NewMailer(cfg.Adapter.Mail, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating mailer")
	}
	mailWorker := workers.NewMailWorker(relay, cfg.Adapter.Mail, log)

	handlers, err := handler.NewHandlers(services, mailWorker, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	workers.NewWorkers(mailWorker).Run(ctx)

	if err = srv.Run(ctx); err != nil {
		log.Err(err).Msg("server stopped with error")
	}

	// the server is down, so no new messages can be queued
	stop()
	mailWorker.Wait()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
