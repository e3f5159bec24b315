// Command pulse-monitor is an interactive console for exercising the
// PULSE status-event layer.
//
// It creates one subscription and one publication on a topic, simulates
// the transport raising status changes against them, and lets you drive
// both consumption modes from a prompt:
//   - polling with HasEvent/TakeEvent, optionally blocking in a wait set
//   - callback delivery with backlog flush on registration
//
// Usage:
//
//	pulse-monitor [flags]
//
// Flags:
//
//	-config string     Configuration file path (YAML)
//	-topic string      Topic name (default "sensor/temperature")
//	-log-file string   Write a CBOR event log to this path
//	-log-level string  Log level: debug, info, warn, error (default "info")
//	-version           Print version and exit
//
// Examples:
//
//	# Default topic, console logging only
//	pulse-monitor
//
//	# Capture a machine-readable event trace
//	pulse-monitor -topic robot/odom -log-file /tmp/pulse.plog
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/pulse-protocol/pulse-go/pkg/log"
	"github.com/pulse-protocol/pulse-go/pkg/publication"
	"github.com/pulse-protocol/pulse-go/pkg/subscription"
	"github.com/pulse-protocol/pulse-go/pkg/version"
)

func main() {
	var (
		configFile  string
		topic       string
		logFile     string
		logLevel    string
		showVersion bool
	)
	flag.StringVar(&configFile, "config", "", "Configuration file path (YAML)")
	flag.StringVar(&topic, "topic", "", "Topic name")
	flag.StringVar(&logFile, "log-file", "", "Write a CBOR event log to this path")
	flag.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("pulse-monitor %s\n", version.Current)
		return
	}

	cfg := DefaultConfig()
	if configFile != "" {
		loaded, err := LoadConfig(configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	// Flags override config file values
	if topic != "" {
		cfg.Topic = topic
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	setupLogging(cfg.LogLevel)

	logger, closeLogger, err := buildEventLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up event logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLogger()

	subs := subscription.NewManager()
	pubs := publication.NewManager()

	sub, err := subs.Subscribe(cfg.Topic)
	if err != nil {
		fmt.Fprintf(os.Stderr, "subscribe failed: %v\n", err)
		os.Exit(1)
	}
	pub, err := pubs.Publish(cfg.Topic)
	if err != nil {
		fmt.Fprintf(os.Stderr, "publish failed: %v\n", err)
		os.Exit(1)
	}

	sub.Listener().SetLogger(logger, sub.GUID.String(), log.RoleSubscriber, cfg.Topic)
	pub.Listener().SetLogger(logger, pub.GUID.String(), log.RolePublisher, cfg.Topic)

	// Tear the endpoints down on exit so the trace records their
	// lifecycle transitions.
	defer func() {
		subs.Unsubscribe(sub.ID)
		pubs.Unpublish(pub.ID)
	}()

	slog.Info("pulse-monitor ready",
		"version", version.Current,
		"topic", cfg.Topic,
		"subscription", sub.GUID.String(),
		"publication", pub.GUID.String(),
	)

	m, err := NewMonitor(cfg, subs, pubs, sub, pub)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start console: %v\n", err)
		os.Exit(1)
	}
	m.Run()
}

// setupLogging configures slog output at the requested level.
func setupLogging(level string) {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}

// buildEventLogger assembles the diagnostics logger from the config:
// an slog adapter always, plus a CBOR file sink when configured.
func buildEventLogger(cfg Config) (log.Logger, func(), error) {
	console := log.NewSlogAdapter(slog.Default())
	if cfg.LogFile == "" {
		return console, func() {}, nil
	}

	fl, err := log.NewFileLogger(cfg.LogFile)
	if err != nil {
		return nil, nil, err
	}
	return log.NewMultiLogger(console, fl), func() { fl.Close() }, nil
}
