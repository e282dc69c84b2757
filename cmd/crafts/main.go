package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/craft-calculator/internal/application"
	"github.com/eugenenazirov/craft-calculator/internal/batch"
	"github.com/eugenenazirov/craft-calculator/internal/config"
	"github.com/eugenenazirov/craft-calculator/internal/logging"
)

var (
	signalNotify = signal.Notify
	signalStop   = signal.Stop
)

func main() {
	kingpinApp := kingpin.New("crafts", "Craft Calculator - fewest and most 4/6-unit crafts that spend a resource target exactly")
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").String()

	solveCmd := kingpinApp.Command("solve", "Answer test cases read from stdin or a file").Default()
	inputFile := solveCmd.Flag("input", "Read cases from this file instead of stdin").ExistingFile()

	serveCmd := kingpinApp.Command("serve", "Serve the calculator over HTTP")
	configFile := serveCmd.Flag("config", "Path to YAML configuration file").String()
	port := serveCmd.Flag("port", "HTTP port exposed by the service").String()
	historySize := serveCmd.Flag("history-size", "Number of solved targets kept in history").Default("0").Int()
	maxBatch := serveCmd.Flag("max-batch", "Maximum targets accepted per batch request").Default("0").Int()
	rateLimitRPSFlag := serveCmd.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	rateLimitBurstFlag := serveCmd.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	switch kingpin.MustParse(kingpinApp.Parse(os.Args[1:])) {
	case solveCmd.FullCommand():
		level := *logLevel
		if level == "" {
			level = "warn"
		}
		logger, err := logging.NewWithLevel(level)
		if err != nil {
			kingpinApp.Fatalf("failed to initialize logger: %v", err)
		}
		defer func() {
			_ = logger.Sync()
		}()

		if err := solveFromFlags(*inputFile, logger); err != nil {
			logger.Error("solve failed", zap.Error(err))
			_ = logger.Sync()
			kingpinApp.Fatalf("%v", err)
		}

	case serveCmd.FullCommand():
		overrides := &config.CLIOverrides{
			ConfigFile: *configFile,
		}
		if *port != "" {
			overrides.Port = port
		}
		if *logLevel != "" {
			overrides.LogLevel = logLevel
		}
		if *historySize > 0 {
			overrides.HistorySize = historySize
		}
		if *maxBatch > 0 {
			overrides.MaxBatchSize = maxBatch
		}
		if *rateLimitRPSFlag >= 0 {
			overrides.RateLimitRPS = rateLimitRPSFlag
		}
		if *rateLimitBurstFlag >= 0 {
			overrides.RateLimitBurst = rateLimitBurstFlag
		}

		serve(overrides)
	}
}

func solveFromFlags(inputFile string, logger *zap.Logger) error {
	var in io.Reader = os.Stdin
	if inputFile != "" {
		f, err := os.Open(inputFile)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	ctx, stop := interruptContext(context.Background(), logger)
	defer stop()

	return runSolve(ctx, in, os.Stdout, logger)
}

func runSolve(ctx context.Context, in io.Reader, out io.Writer, logger *zap.Logger) error {
	summary, err := batch.Run(ctx, in, out, batch.WithLogger(logger))
	if err != nil {
		if ctx.Err() != nil {
			logger.Warn("batch interrupted", zap.Int("answered", summary.Cases))
		}
		return fmt.Errorf("after %d cases: %w", summary.Cases, err)
	}
	return nil
}

func serve(overrides *config.CLIOverrides) {
	cfg, err := config.Load(overrides)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.NewWithLevel(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	if err := app.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	ctx, stop := interruptContext(context.Background(), logger)
	defer stop()

	drainOnCancel(ctx, app.Server(), cfg.ShutdownGracePeriod, logger)
}

// interruptContext is cancelled on SIGINT or SIGTERM. Both commands share it:
// solve stops between cases, serve drains connections.
func interruptContext(parent context.Context, logger *zap.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signalStop(quit)
		select {
		case sig := <-quit:
			logger.Info("signal received", zap.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// drainOnCancel blocks until ctx is done, then gives in-flight requests up to
// grace to finish before closing the server outright.
func drainOnCancel(ctx context.Context, server *http.Server, grace time.Duration, logger *zap.Logger) {
	<-ctx.Done()
	logger.Info("draining server", zap.String("addr", server.Addr), zap.Duration("grace", grace))

	drainCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	if err := server.Shutdown(drainCtx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
