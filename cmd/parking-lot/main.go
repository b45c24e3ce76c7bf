package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parking-engine/internal/config"
	"parking-engine/internal/logging"
	"parking-engine/internal/parking"
	"parking-engine/internal/server"
)

var mode = flag.String("mode", "server", "Mode to run: cli, server, or both")

func main() {
	flag.Parse()

	cfg := config.Load()
	logging.Init(cfg.IsDevelopment())
	log := logging.Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	telemetryProvider, err := parking.NewTelemetryProvider(cfg.OTelServiceName, cfg.OTelEndpoint)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}

	pricing := parking.NewPricing(
		map[parking.SizeClass]int64{
			parking.SizeSmall:  cfg.HourlyRateSmall,
			parking.SizeMedium: cfg.HourlyRateMedium,
			parking.SizeLarge:  cfg.HourlyRateLarge,
		},
		cfg.MinimumCharge,
		map[parking.SizeClass]int64{
			parking.SizeSmall:  1050,
			parking.SizeMedium: 2100,
			parking.SizeLarge:  3150,
		},
	)

	engine := parking.NewEngine(parking.DefaultTopology(), pricing)
	instrumented, err := parking.NewInstrumentedEngine(engine, telemetryProvider)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to instrument engine")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	switch *mode {
	case "cli":
		runCLI(ctx, cancel, instrumented, telemetryProvider, sigChan)
	case "server":
		runServer(ctx, cancel, cfg, instrumented, pricing, telemetryProvider, sigChan)
	case "both":
		runBoth(ctx, cancel, cfg, instrumented, pricing, telemetryProvider, sigChan)
	default:
		log.Fatal().Str("mode", *mode).Msg("invalid mode, must be cli, server, or both")
	}
}

func runCLI(ctx context.Context, cancel context.CancelFunc, engine *parking.InstrumentedEngine, telemetryProvider *parking.TelemetryProvider, sigChan chan os.Signal) {
	go func() {
		<-sigChan
		logging.Logger().Info().Msg("shutting down")
		cancel()
	}()

	shell := parking.NewShell(engine)
	shell.Run(ctx)

	shutdownTelemetry(telemetryProvider)
}

func runServer(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, engine *parking.InstrumentedEngine, pricing *parking.Pricing, telemetryProvider *parking.TelemetryProvider, sigChan chan os.Signal) {
	srv := server.NewServer(cfg.Port, engine, pricing)

	go func() {
		<-sigChan
		logging.Logger().Info().Msg("received shutdown signal")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Logger().Error().Err(err).Msg("server shutdown error")
		}

		cancel()
	}()

	logging.Logger().Info().Str("port", cfg.Port).Msg("starting server mode")
	if err := srv.Start(); err != nil && err != context.Canceled {
		logging.Logger().Error().Err(err).Msg("server error")
	}

	shutdownTelemetry(telemetryProvider)
}

func runBoth(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, engine *parking.InstrumentedEngine, pricing *parking.Pricing, telemetryProvider *parking.TelemetryProvider, sigChan chan os.Signal) {
	srv := server.NewServer(cfg.Port, engine, pricing)

	serverDone := make(chan error, 1)
	go func() {
		logging.Logger().Info().Str("port", cfg.Port).Msg("starting HTTP server")
		serverDone <- srv.Start()
	}()

	cliDone := make(chan bool, 1)
	go func() {
		shell := parking.NewShell(engine)
		shell.Run(ctx)
		cliDone <- true
	}()

	go func() {
		<-sigChan
		logging.Logger().Info().Msg("received shutdown signal")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Logger().Error().Err(err).Msg("server shutdown error")
		}

		cancel()
	}()

	select {
	case err := <-serverDone:
		if err != nil && err != context.Canceled {
			logging.Logger().Error().Err(err).Msg("server error")
		}
	case <-cliDone:
		logging.Logger().Info().Msg("CLI exited")
	case <-ctx.Done():
		logging.Logger().Info().Msg("context cancelled")
	}

	shutdownTelemetry(telemetryProvider)
}

func shutdownTelemetry(telemetryProvider *parking.TelemetryProvider) {
	logging.Logger().Info().Msg("shutting down telemetry")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := telemetryProvider.Shutdown(shutdownCtx); err != nil {
		logging.Logger().Error().Err(err).Msg("error shutting down telemetry")
	}
}
