package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"filesentry/internal/config"
	"filesentry/internal/logger"
	"filesentry/internal/monitor"
	"filesentry/internal/notifier"
	"filesentry/internal/watcher"
)

func main() {
	flags := parseFlags()

	if flags.encodePassword != "" {
		fmt.Println(config.EncodePassword(flags.encodePassword))
		return
	}

	bootstrapLogger := newConsoleLogger(config.DefaultLogLevel)

	cfg, err := config.LoadGlobalConfig(flags.configFile, bootstrapLogger)
	if err != nil {
		bootstrapLogger.Fatal().Err(err).Msg("Could not load configuration")
	}

	if cfg.MonitorConfig.CreateMissingDir && cfg.MonitorConfig.MonitorFolder != "" {
		if err := os.MkdirAll(cfg.MonitorConfig.MonitorFolder, 0755); err != nil {
			bootstrapLogger.Fatal().Err(err).Str("folder", cfg.MonitorConfig.MonitorFolder).Msg("Could not create monitored folder")
		}
	}

	if err := config.ValidateConfig(cfg); err != nil {
		bootstrapLogger.Fatal().Err(err).Msg("Configuration validation failed")
	}

	zLogger := newConsoleLogger(cfg.LogConfig.LogLevel)
	zLogger.Info().Str("version", config.AppVersion).Msg("filesentry starting")

	sink, err := logger.NewFileSink(cfg.LogConfig.LogFile, cfg.LogConfig.MaxLogSizeBytes, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Could not open monitor log")
	}
	bridge := logger.NewBridge(sink)
	bridge.TraceInfo("%s v%s starting, folder=%s", config.AppName, config.AppVersion, cfg.MonitorConfig.MonitorFolder)

	fsWatcher, err := watcher.NewFsWatcher(zLogger)
	if err != nil {
		_ = sink.Close()
		zLogger.Fatal().Err(err).Msg("Could not create filesystem watcher")
	}

	clock := monitor.SystemClock()
	state := monitor.NewActivityState(clock.Now())

	tracker := monitor.NewFileActivityTracker(fsWatcher, state, clock, bridge.WithSource("tracker"))

	hostInfo := notifier.CollectHostInfo(zLogger)
	sender := notifier.NewSMTPSender(cfg.MailConfig, zLogger)
	dispatcher := notifier.NewAlertDispatcher(sender, cfg.MailConfig.Subject, hostInfo, bridge.WithSource("dispatcher"))

	stalenessMonitor, err := monitor.NewStalenessMonitor(&cfg.MonitorConfig, state, clock, dispatcher, bridge.WithSource("monitor"))
	if err != nil {
		_ = sink.Close()
		zLogger.Fatal().Err(err).Msg("Could not build staleness monitor")
	}

	if err := tracker.Start(cfg.MonitorConfig.MonitorFolder); err != nil {
		_ = sink.Close()
		zLogger.Fatal().Err(err).Str("folder", cfg.MonitorConfig.MonitorFolder).Msg("Could not start folder watch")
	}

	stalenessMonitor.Start()
	zLogger.Info().
		Str("folder", cfg.MonitorConfig.MonitorFolder).
		Float64("threshold_minutes", cfg.MonitorConfig.AlertIntervalMinutes).
		Str("window", cfg.MonitorConfig.MonitorStartTime+"-"+cfg.MonitorConfig.MonitorEndTime).
		Msg("Monitoring started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	zLogger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")

	// Shutdown order: disable the watch, stop the timer, flush the sink.
	tracker.Stop()
	stalenessMonitor.Stop()
	bridge.TraceInfo("%s shutting down", config.AppName)
	if err := sink.Close(); err != nil {
		zLogger.Error().Err(err).Msg("Could not close monitor log cleanly")
	}

	zLogger.Info().Msg("filesentry stopped")
}

func newConsoleLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}

	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(consoleWriter).Level(parsed).With().Timestamp().Logger()
}
