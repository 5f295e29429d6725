package main

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/aleister1102/webwatch/internal/config"
	"github.com/aleister1102/webwatch/internal/datastore"
	"github.com/aleister1102/webwatch/internal/logger"
	"github.com/aleister1102/webwatch/internal/monitor"
	"github.com/aleister1102/webwatch/internal/reporter"
)

func main() {
	flags := ParseFlags()

	gCfg, err := loadConfig(flags)
	if err != nil {
		log.Fatalf("[FATAL] Could not load configuration: %v", err)
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Could not initialize logger: %v", err)
	}
	zLogger.Info().Msg("Logger initialized successfully")

	if err := config.ValidateConfig(gCfg); err != nil {
		zLogger.Fatal().Err(err).Msg("Configuration validation failed")
	}
	zLogger.Info().Int("targets", len(gCfg.MonitorConfig.Targets)).Msg("Configuration validated successfully")

	httpClient := buildHTTPClient(&gCfg.MonitorConfig)

	hashStore := datastore.NewHashStore(gCfg.StorageConfig.HashFile, zLogger)
	fetcher := monitor.NewFetcher(httpClient, zLogger, &gCfg.MonitorConfig)
	processor := monitor.NewContentProcessor(zLogger)
	checker := monitor.NewTargetChecker(zLogger, fetcher, processor)
	printer := reporter.NewConsolePrinter(os.Stdout)

	service := monitor.NewMonitoringService(&gCfg.MonitorConfig, hashStore, checker, printer, zLogger)

	cycleResult, err := service.RunCycle(context.Background())
	if err != nil {
		// Per-target fetch failures never reach here; this is a state-save
		// failure or cancellation and nothing downstream can proceed.
		zLogger.Fatal().Err(err).Msg("Monitoring cycle failed")
	}

	xmlReporter := reporter.NewXMLReporter(zLogger)
	if err := xmlReporter.Generate(cycleResult.Events, gCfg.ReporterConfig.OutputFile); err != nil {
		zLogger.Fatal().Err(err).Str("path", gCfg.ReporterConfig.OutputFile).Msg("Failed to write monitoring report")
	}

	if err := printer.PrintSummary(cycleResult.Results); err != nil {
		zLogger.Warn().Err(err).Msg("Failed to render summary table")
	}

	zLogger.Info().Str("report", gCfg.ReporterConfig.OutputFile).Msg("Monitoring run complete")
}

// loadConfig loads the global configuration and applies flag overrides.
func loadConfig(flags AppFlags) (*config.GlobalConfig, error) {
	// The bootstrap logger only covers config loading; the real logger needs
	// the loaded config.
	bootstrapLogger, err := logger.New(config.NewDefaultLogConfig())
	if err != nil {
		return nil, err
	}

	gCfg, err := config.LoadGlobalConfig(flags.GlobalConfigFile, bootstrapLogger)
	if err != nil {
		return nil, err
	}

	if flags.HashFile != "" {
		gCfg.StorageConfig.HashFile = flags.HashFile
	}
	if flags.OutputFile != "" {
		gCfg.ReporterConfig.OutputFile = flags.OutputFile
	}
	if flags.LogLevel != "" {
		gCfg.LogConfig.LogLevel = flags.LogLevel
	}

	return gCfg, nil
}

// buildHTTPClient builds the client used for all target fetches. The timeout
// bounds the whole request including body read.
func buildHTTPClient(cfg *config.MonitorConfig) *http.Client {
	timeout := time.Duration(cfg.HTTPTimeoutSeconds) * time.Second
	if cfg.HTTPTimeoutSeconds <= 0 {
		timeout = config.DefaultMonitorHTTPTimeoutSecs * time.Second
	}

	client := &http.Client{Timeout: timeout}
	if cfg.InsecureSkipVerify {
		client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	return client
}
