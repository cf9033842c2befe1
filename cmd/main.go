package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hamjambo/hare-report-mailer/env"
	"github.com/hamjambo/hare-report-mailer/options"
	"github.com/hamjambo/hare-report-mailer/pkg/config"
	log "github.com/hamjambo/hare-report-mailer/pkg/logger"
	"github.com/hamjambo/hare-report-mailer/pkg/mailer"
	hareotel "github.com/hamjambo/hare-report-mailer/pkg/otel"
	"github.com/hamjambo/hare-report-mailer/pkg/render"
	"github.com/hamjambo/hare-report-mailer/pkg/reporting"
	"github.com/hamjambo/hare-report-mailer/pkg/service"
)

const (
	metricsPath       = "/metrics"
	healthzPath       = "/healthz"
	reportsPath       = "/api/reports"
	reportPreviewPath = "/api/reports/preview"
)

func main() {
	opts := options.ParseArgs()
	logger := log.NewLogger(opts.LogLevel)
	logger.Infof("Starting application with options: %v", opts.String())

	cfg := new(env.Config)
	if err := envconfig.Process("", cfg); err != nil {
		logger.With(log.KeyResult, log.ValueFail).With(log.KeyError, err.Error()).Fatal("Load env config")
	}

	profile, err := config.LoadProfile(cfg)
	if err != nil {
		logger.With(log.KeyResult, log.ValueFail).With(log.KeyError, err.Error()).Fatal("Load mailing profile")
	}

	logger.Debugf("mailing profile: %+v", profile)

	mailerConfig := new(mailer.Config)
	if err := envconfig.Process("", mailerConfig); err != nil {
		logger.With(log.KeyResult, log.ValueFail).With(log.KeyError, err.Error()).Fatal("Load mailer config")
	}

	logger.Debugf("mailer config: %v", mailerConfig)

	mailClient, err := mailer.NewClient(mailerConfig, logger)
	if err != nil {
		logger.With(log.KeyResult, log.ValueFail).With(log.KeyError, err.Error()).Fatal("Create SMTP client")
	}

	renderer, err := render.NewRenderer(profile)
	if err != nil {
		logger.With(log.KeyResult, log.ValueFail).With(log.KeyError, err.Error()).Fatal("Parse report templates")
	}

	dispatcher := &reporting.Dispatcher{
		Renderer: renderer,
		Sender:   mailClient,
		Profile:  profile,
		Logger:   logger,
	}

	// deferred cleanups start here, keep every Fatal above this point.
	if opts.EnableTracing {
		logger.Info("Setting up OTel SDK")

		otelShutdown, err := hareotel.SetupSDK(context.Background())
		if err != nil {
			logger.With(log.KeyResult, log.ValueFail).With(log.KeyError, err.Error()).Fatal("Set up OTel SDK")
		}

		defer func() {
			if err := otelShutdown(context.Background()); err != nil {
				logger.Errorf("Failed to shutdown OTel SDK: %v", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// add debug service.
	if opts.DebugPort > 0 {
		enableDebugging(ctx, opts.DebugPort, logger)
	}

	router := newRouter(dispatcher, opts.EnablePreview, logger)

	hareSvr := service.Server{
		Addr:   fmt.Sprintf(":%d", opts.ListenAddr),
		Logger: logger,
		Router: router,
	}

	// Serve reports, metrics and healthz until a shutdown signal arrives
	if err := hareSvr.Start(ctx); err != nil {
		logger.With(log.KeyResult, log.ValueFail).With(log.KeyError, err.Error()).Error("Server stopped")
	}
}

// newRouter serves reports, metrics and healthz; the preview endpoint only when enabled.
func newRouter(dispatcher *reporting.Dispatcher, enablePreview bool, logger *zap.SugaredLogger) *mux.Router {
	router := mux.NewRouter()
	router.Path(healthzPath).HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})
	router.Path(metricsPath).Handler(promhttp.Handler())
	router.Path(reportsPath).Methods(http.MethodPost).Handler(&reporting.Handler{
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	if enablePreview {
		router.Path(reportPreviewPath).Methods(http.MethodPost).Handler(&reporting.PreviewHandler{
			Dispatcher: dispatcher,
			Logger:     logger,
		})
	}

	return router
}

func enableDebugging(ctx context.Context, debugPort int, log *zap.SugaredLogger) {
	debugRouter := mux.NewRouter()
	// for security reason we always listen on localhost
	debugSvc := service.Server{
		Addr:   fmt.Sprintf("127.0.0.1:%d", debugPort),
		Logger: log,
		Router: debugRouter,
	}

	debugRouter.HandleFunc("/debug/pprof/", pprof.Index)
	debugRouter.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	debugRouter.HandleFunc("/debug/pprof/profile", pprof.Profile)
	debugRouter.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	debugRouter.HandleFunc("/debug/pprof/trace", pprof.Trace)
	debugRouter.Handle("/debug/pprof/block", pprof.Handler("block"))
	debugRouter.Handle("/debug/pprof/goroutine", pprof.Handler("goroutine"))
	debugRouter.Handle("/debug/pprof/heap", pprof.Handler("heap"))
	debugRouter.Handle("/debug/pprof/threadcreate", pprof.Handler("threadcreate"))

	go func() {
		if err := debugSvc.Start(ctx); err != nil {
			log.Errorf("debug server stopped: %v", err)
		}
	}()
}
