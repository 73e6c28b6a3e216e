package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/niksmo/productlist/config"
	"github.com/niksmo/productlist/internal/adapter"
	"github.com/niksmo/productlist/internal/adapter/catalog"
	"github.com/niksmo/productlist/internal/adapter/httphandler"
	"github.com/niksmo/productlist/internal/adapter/kafka"
	"github.com/niksmo/productlist/internal/adapter/metrics"
	"github.com/niksmo/productlist/internal/adapter/navigation"
	"github.com/niksmo/productlist/internal/core/port"
	"github.com/niksmo/productlist/internal/core/service"
	"github.com/niksmo/productlist/pkg/schema"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/twmb/franz-go/pkg/sr"
)

type App struct {
	ctx         context.Context
	cfg         config.Config
	registry    *prometheus.Registry
	events      port.ClientEventsProducer
	productList *service.ProductList
	httpServer  httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg, registry: prometheus.NewRegistry()}

	app.initLogger()
	app.initOutboundAdapters()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	if !app.cfg.Broker.Enabled() {
		slog.Info("client events are disabled, no seed brokers", "op", op)
		return
	}

	brokerCfg := app.cfg.Broker

	srClient, err := sr.NewClient(sr.URLs(brokerCfg.SchemaRegistryURLs...))
	if err != nil {
		app.fallDown(op, err)
	}

	eventsSerde, err := schema.NewSerdeClientEventV1(
		app.ctx,
		schema.SubjectOpt(brokerCfg.ClientEventsTopic+"-value"),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	tlsConfig, err := adapter.MakeTLSConfig(
		brokerCfg.TLS.CA, brokerCfg.TLS.Cert, brokerCfg.TLS.Key,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	events, err := kafka.NewClientEventsProducer(
		kafka.ProducerClientOpt(
			app.ctx, brokerCfg.SeedBrokers, brokerCfg.ClientEventsTopic, tlsConfig,
		),
		kafka.ProducerEncoderOpt(eventsSerde),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.events = events
}

func (app *App) initCoreService() {
	const op = "App.initCoreService"

	catalogCfg := app.cfg.Catalog
	fetcher := catalog.New(
		catalogCfg.URL,
		catalog.TimeoutOpt(catalogCfg.RequestTimeout),
		catalog.RetryOpt(catalogCfg.MaxAttempts, catalogCfg.RetryDelay),
	)

	loadMetrics, err := metrics.NewLoadMetrics(app.registry)
	if err != nil {
		app.fallDown(op, err)
	}

	opts := []service.Opt{
		service.NavigatorOpt(navigation.New(app.events)),
		service.LoadObserverOpt(loadMetrics),
	}
	if app.events != nil {
		opts = append(opts, service.ClientEventsOpt(app.events))
	}

	app.productList = service.New(fetcher, opts...)
}

func (app *App) initInboundAdapters() {
	mux := http.NewServeMux()
	httphandler.RegisterProducts(mux, app.productList)
	mux.Handle("GET /metrics", promhttp.HandlerFor(
		app.registry, promhttp.HandlerOpts{},
	))

	var handler http.Handler = httphandler.AllowJSON(mux)
	handler = httphandler.AllowOrigins(handler, app.cfg.AllowedOrigins)

	app.httpServer = httphandler.NewHTTPServer(
		app.cfg.HTTPServerAddr, handler, app.cfg.HTTPHandlerTimeout,
	)
}

// Run starts the http server and performs the initial product list load
// in the background.
func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)
	go app.productList.Load(app.ctx)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	if app.events != nil {
		app.events.Close()
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
