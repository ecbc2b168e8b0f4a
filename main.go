package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"actorrank/internal/actors"
	"actorrank/internal/config"
	"actorrank/internal/eventbus"
	"actorrank/internal/logging"
	"actorrank/internal/metrics"
	"actorrank/internal/ui"
)

// CLI is the command line of actorrank
type CLI struct {
	Config      string `short:"c" type:"path" help:"Path to the config file (default: user config dir)."`
	APIURL      string `name:"api-url" env:"ACTORRANK_API_URL" help:"Base URL of the actor API."`
	LogFile     string `name:"log-file" type:"path" help:"File to write logs to."`
	LogLevel    string `name:"log-level" help:"Log level: trace, debug, info, warn or error."`
	MetricsAddr string `name:"metrics-addr" help:"Serve Prometheus metrics on this address, e.g. :9090."`
	WriteConfig bool   `name:"write-config" help:"Write the effective configuration to the config file and exit."`

	Query string `arg:"" optional:"" help:"Search to run on start."`
}

// Apply overrides config values with the flags that were given
func (c *CLI) Apply(cfg *config.Config) {
	if c.APIURL != "" {
		cfg.API.URL = c.APIURL
	}
	if c.LogFile != "" {
		cfg.Log.File = c.LogFile
	}
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
	if c.MetricsAddr != "" {
		cfg.Metrics.Addr = c.MetricsAddr
	}
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("actorrank"),
		kong.Description("Search an actor ranking API from the terminal."),
		kong.UsageOnError(),
	)

	if err := run(&cli); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cli *CLI) error {
	// Load configuration before logging so the log settings can come from it
	configSvc := config.NewConfigServiceAt(cli.Config)
	cfg, cfgErr := configSvc.Load()
	if cfgErr != nil {
		cfg = config.DefaultConfig()
	}
	cli.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Set up logging
	log, logCloser, err := logging.New(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
		log = logging.Discard()
	} else {
		defer logCloser.Close()
	}
	if cfgErr != nil {
		log.WithError(cfgErr).Warn("Error loading config, using defaults")
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	bus := eventbus.New(log)
	defer bus.Close()

	if cli.WriteConfig {
		if err := config.NewConfigServiceWithBus(bus, configSvc.Path()).Save(cfg); err != nil {
			return err
		}
		fmt.Printf("Config written to %s\n", configSvc.Path())
		return nil
	}

	metrics.Init()

	// Initialize services
	client := actors.NewClient(cfg.API.URL, cfg.API.Timeout.Duration, log)
	fetcher := actors.NewCachedClient(client, cfg.Cache.Size, cfg.Cache.TTL.Duration, log)
	actorSvc := actors.NewService(ctx, bus, fetcher, cfg.API.Timeout.Duration, log)
	defer actorSvc.Close()

	uiModel := ui.NewModel(bus, cfg, log)
	if cli.Query != "" {
		uiModel.SetInitialQuery(cli.Query)
	}

	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithContext(ctx))
	uiModel.SetProgram(p)

	forwardEvents(bus, p, log)
	bus.Publish(eventbus.ConfigLoadedEvent{Path: configSvc.Path()})
	if cfgErr != nil {
		bus.Publish(eventbus.ErrorEvent{Message: "Config not loaded, using defaults", Err: cfgErr})
	}

	if cfg.Metrics.Addr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Addr, log); err != nil {
				bus.Publish(eventbus.ErrorEvent{Message: "Metrics unavailable", Err: err})
			}
		}()
	}

	log.WithFields(logrus.Fields{"api": cfg.API.URL, "config": configSvc.Path()}).Info("Starting UI")
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		log.WithError(err).Error("Error running program")
		return fmt.Errorf("error running program: %w", err)
	}
	log.Info("UI exited normally")
	return nil
}

// forwardEvents hands the events the UI cares about to the program
func forwardEvents(bus eventbus.EventBus, p *tea.Program, log logrus.FieldLogger) {
	forward := func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	}
	for _, t := range []eventbus.EventType{
		eventbus.EventSearchCompleted,
		eventbus.EventSearchFailed,
		eventbus.EventError,
		eventbus.EventConfigLoaded,
	} {
		bus.Subscribe(t, forward)
	}
	log.Debug("forwarding bus events to the UI")
}
