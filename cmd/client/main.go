package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/MKhiriev/eigen-library/internal/adapter"
	"github.com/MKhiriev/eigen-library/internal/client"
	"github.com/MKhiriev/eigen-library/internal/config"
	"github.com/MKhiriev/eigen-library/internal/logger"
	"github.com/MKhiriev/eigen-library/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	os.Exit(run())
}

func run() int {
	log := logger.NewLogger("eigen-client").WithMode(os.Getenv("MODE"))

	if len(os.Args) > 1 && os.Args[1] == "build-info" {
		fmt.Print(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
		return 0
	}

	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Error().Err(err).Msg("error getting configs")
		return 1
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Error().Err(err).Msg("create server adapter")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := client.NewApp(serverAdapter, os.Stdout, os.Stderr, log)
	if err = app.Run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", client.HumanizeError(err))
		return 1
	}

	return 0
}
