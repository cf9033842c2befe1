package options

import (
	"flag"
	"fmt"
	"log"

	"go.uber.org/zap/zapcore"
)

const (
	DefaultDebugPort     = 0
	DefaultListenAddr    = 8080
	DefaultLogLevel      = zapcore.InfoLevel
	DefaultEnableTracing = false
	DefaultEnablePreview = false
)

type Options struct {
	DebugPort     int
	ListenAddr    int
	LogLevel      zapcore.Level
	EnableTracing bool
	EnablePreview bool
}

func ParseArgs() *Options {
	var logLevel zapcore.Level

	logLevelStr := flag.String("log-level", DefaultLogLevel.String(), "The log-level of the application. E.g. fatal, error, info, debug etc")
	listenAddr := flag.Int("listen-addr", DefaultListenAddr, "The application starts server in this port to serve the report, metrics and healthz endpoints")
	debugPort := flag.Int("debug-port", DefaultDebugPort, "The custom port to debug when needed")
	enableTracing := flag.Bool("enable-tracing", DefaultEnableTracing, "Export traces over OTLP/gRPC, configured by the OTEL_EXPORTER_OTLP_* env vars")
	enablePreview := flag.Bool("enable-preview", DefaultEnablePreview, "Serve /api/reports/preview which renders a report without sending mail")
	flag.Parse()

	err := logLevel.Set(*logLevelStr)
	if err != nil {
		log.Fatalf("failed to parse log level: %v", *logLevelStr)
	}

	return &Options{
		DebugPort:     *debugPort,
		LogLevel:      logLevel,
		ListenAddr:    *listenAddr,
		EnableTracing: *enableTracing,
		EnablePreview: *enablePreview,
	}
}

func (o *Options) String() string {
	return fmt.Sprintf("--log-level=%s --listen-addr=%d --debug-port=%d --enable-tracing=%t --enable-preview=%t",
		o.LogLevel, o.ListenAddr, o.DebugPort, o.EnableTracing, o.EnablePreview)
}
