//	@title			Eigen 3 API Test
//	@version		1.5
//	@description	Eigen 3 Api Test. Book & Member Features.
//	@BasePath		/api
//	@accept			json
//	@produce		json

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/eigen-library/internal/config"
	"github.com/MKhiriev/eigen-library/internal/handler"
	"github.com/MKhiriev/eigen-library/internal/logger"
	"github.com/MKhiriev/eigen-library/internal/server"
	"github.com/MKhiriev/eigen-library/internal/service"
	"github.com/MKhiriev/eigen-library/internal/store"
	"github.com/MKhiriev/eigen-library/internal/workers"
	"github.com/MKhiriev/eigen-library/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	fmt.Print(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	log := logger.NewLogger("eigen-api")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log = log.WithMode(cfg.Server.Mode)
	bootstrap := log.Named("bootstrap")
	bootstrap.Debug().
		Str("address", cfg.Server.Address()).
		Bool("https", bool(cfg.Server.HTTPSMode)).
		Str("app_version", cfg.App.Version).
		Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		bootstrap.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			bootstrap.Err(err).Msg("error closing storages")
		}
	}()

	services, err := service.NewServices(storages, cfg.App, log)
	if err != nil {
		bootstrap.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		bootstrap.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		bootstrap.Fatal().Err(err).Msg("error creating server")
	}

	workers.NewWorkers(services, cfg.Workers, log).Run(ctx)

	if err = srv.RunServer(); err != nil {
		bootstrap.Err(err).Msg("error running server")
	}
}
