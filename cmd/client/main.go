package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/live-collection/internal/adapter"
	"github.com/MKhiriev/live-collection/internal/client"
	"github.com/MKhiriev/live-collection/internal/config"
	"github.com/MKhiriev/live-collection/internal/logger"
	"github.com/MKhiriev/live-collection/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	log := logger.NewClientLogger("live-collection-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.Log.Level); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	transport := adapter.NewHTTPTransport(cfg.Adapter, log)
	dialer := adapter.NewWebsocketDialer(cfg.Adapter, log)

	app, err := client.NewApp(cfg, transport, dialer, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}
