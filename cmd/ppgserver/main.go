// Command ppgserver ingests PPG samples and sensor readings over HTTP,
// logs readings to CSV and serves a live heart rate dashboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ppg-monitor/internal/log"
	"ppg-monitor/pkg/bpm"
	"ppg-monitor/pkg/config"
	"ppg-monitor/pkg/hub"
	"ppg-monitor/pkg/ingest"
	"ppg-monitor/pkg/monitor"
	"ppg-monitor/pkg/storage"
	"ppg-monitor/pkg/stream"
	"ppg-monitor/pkg/web"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "path to YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "ppgserver:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.NewLoader(configPath).Load()
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if cfg.Server.Debug {
		level = "debug"
	}
	log.Init(level)
	logger := log.L()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	buffer, err := storage.NewSignalBuffer(cfg.Buffer.Capacity)
	if err != nil {
		return err
	}
	estimator := bpm.NewEstimator(cfg.Estimator.MinSamples, cfg.ThresholdFactor())

	store := storage.NewCSVStore(cfg.CSV.File)
	if err := store.EnsureHeader(); err != nil {
		return err
	}
	recorder := ingest.NewRecorder(context.Background(), store, log.With("component", "recorder"))
	recorder.Start()
	defer recorder.Stop()

	bpmHub := hub.New("bpm", logger)
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go bpmHub.Run(hubCtx)

	sinks := []monitor.Sink{monitor.JSONSink(bpmHub)}
	if cfg.NATS.URL != "" {
		nc, err := stream.Connect(cfg.NATS.URL)
		if err != nil {
			return err
		}
		defer func() {
			if err := nc.Drain(); err != nil {
				logger.Warn("nats drain failed", "url", cfg.NATS.URL, "error", err)
			}
		}()
		sinks = append(sinks, monitor.JSONSink(stream.NewPublisher(nc, cfg.NATS.Subject)))
		logger.Info("publishing estimates to nats", "url", cfg.NATS.URL, "subject", cfg.NATS.Subject)
	}

	broadcaster := monitor.NewBroadcaster(buffer, estimator, cfg.PublishInterval(),
		log.With("component", "broadcaster"), sinks...)
	if err := broadcaster.Start(); err != nil {
		return err
	}
	defer broadcaster.Stop()

	server := web.NewServer(web.Options{
		Buffer:      buffer,
		Store:       store,
		Recorder:    recorder,
		Estimator:   estimator,
		Hub:         bpmHub,
		DisplaySize: cfg.Buffer.DisplaySize,
		Debug:       cfg.Server.Debug,
		Logger:      log.With("component", "web"),
	})

	logger.Info("server starting",
		"port", cfg.Server.Port,
		"csv_file", store.Path(),
		"buffer_capacity", buffer.Cap(),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Listen(cfg.Addr())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
