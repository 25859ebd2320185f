package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/live-collection/internal/adapter"
	"github.com/MKhiriev/live-collection/internal/collection"
	"github.com/MKhiriev/live-collection/internal/config"
	"github.com/MKhiriev/live-collection/internal/logger"
	"github.com/MKhiriev/live-collection/internal/workers"
	"github.com/MKhiriev/live-collection/models"
)

// App follows one remote collection until its run context is cancelled.
type App struct {
	cfg       *config.ClientConfig
	transport adapter.Transport
	dialer    adapter.Dialer
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

// NewApp validates the query settings up front so a bad filter fails before
// any connection is opened.
func NewApp(cfg *config.ClientConfig, transport adapter.Transport, dialer adapter.Dialer, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("client config is required")
	}
	if _, err := cfg.Query.FindOptions(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}

	return &App{
		cfg:       cfg,
		transport: transport,
		dialer:    dialer,
		buildInfo: buildInfo,
		logger:    log,
	}, nil
}

// Run implements Client. It opens the collection, performs the initial
// fetch, starts the refresh worker and blocks until ctx is done. The
// collection is closed before Run returns.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info().
		Object("build", a.buildInfo).
		Msg("starting live collection client")

	opts, err := a.cfg.Query.FindOptions()
	if err != nil {
		return err
	}
	ctx = a.logger.WithContext(ctx)

	c, err := collection.New(ctx, collection.Options{
		Host:      a.cfg.Collection.Host,
		Path:      a.cfg.Collection.Path,
		Type:      a.cfg.Collection.Type,
		Realtime:  a.cfg.Collection.Realtime,
		Inclusive: a.cfg.Collection.Inclusive,
	}, a.transport, a.logger,
		collection.WithDialer(a.dialer),
		collection.WithAsyncErrorHandler(func(ctx context.Context, err error) {
			logger.FromContext(ctx).Warn().Err(err).Msg("live event dropped")
		}),
	)
	if err != nil {
		return fmt.Errorf("open collection: %w", err)
	}
	defer func() {
		if closeErr := c.Close(); closeErr != nil {
			a.logger.Warn().Err(closeErr).Msg("close collection")
		}
	}()

	if _, err = c.Fetch(ctx, opts); err != nil {
		return fmt.Errorf("initial fetch: %w", err)
	}
	a.logSnapshot(c)

	bg := workers.NewWorkers(
		workers.NewRefreshWorker(c, opts, a.cfg.Workers.RefreshInterval, a.logger),
	)
	bg.Start(ctx)
	defer bg.Stop()

	<-ctx.Done()
	a.logSnapshot(c)
	a.logger.Info().Msg("live collection client stopped")
	return nil
}

func (a *App) logSnapshot(c *collection.Collection) {
	meta := c.Meta()
	event := a.logger.Info().
		Str("uri", c.URI()).
		Int("entities", c.Len()).
		Int("offset", meta.Offset).
		Int("limit", meta.Limit).
		Int("total", meta.Total).
		Bool("realtime", c.Realtime())

	if n := c.Errored(); n > 0 {
		errs := c.Errors()
		msgs := make([]string, 0, n)
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		event = event.Strs("server_errors", msgs)
	}
	event.Msg("collection snapshot")
}
