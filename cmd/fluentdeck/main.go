package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"fluentdeck/internal/catalog"
	"fluentdeck/internal/collections"
	"fluentdeck/internal/config"
	"fluentdeck/internal/eventbus"
	"fluentdeck/internal/export"
	"fluentdeck/internal/notify"
	"fluentdeck/internal/selection"
	"fluentdeck/internal/store"
	"fluentdeck/internal/ui"
)

func main() {
	// Set up logging to a file; the terminal belongs to the TUI
	logCfg := zap.NewProductionConfig()
	logCfg.OutputPaths = []string{"fluentdeck.log"}
	logCfg.ErrorOutputPaths = []string{"fluentdeck.log"}
	zapLogger, err := logCfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not set up logging: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zapLogger.Sync() }()
	logger := zapLogger.Sugar()

	// Load configuration
	configSvc := config.NewService()
	cfg, err := configSvc.Load()
	if err != nil {
		logger.Warnw("error loading config, using defaults", "error", err)
	}

	// Persistent key-value store with debounced writes
	st, err := store.New(cfg.DataDir, time.Duration(cfg.DebounceMillis)*time.Millisecond, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not open data store: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = st.Close() }() // flushes pending writes best-effort

	// Create event bus
	bus := eventbus.New(logger)

	// Initialize services
	notifier := notify.NewBusNotifier(bus)
	cols := collections.NewManager(st, bus, notifier, logger)
	sel := selection.NewService(bus)
	cache := store.NewCache(st, time.Duration(cfg.CacheValidityHours)*time.Hour)
	cat := catalog.New(catalog.Sources{
		Apps:  cfg.Sources.Apps,
		Icons: cfg.Sources.Icons,
		Emoji: cfg.Sources.Emoji,
	}, cache, bus, logger)
	exporter := export.NewService(catalog.NewResolver(), bus, logger, cfg.ExportWorkers)

	// Forward events the UI cares about into its channel
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			// Channel full, drop event
			logger.Warnw("ui event channel full, dropping event", "type", e.Type())
		}
	}
	for _, eventType := range []eventbus.EventType{
		eventbus.EventNotification,
		eventbus.EventExportProgress,
		eventbus.EventCollectionsReloaded,
		eventbus.EventError,
	} {
		bus.Subscribe(eventType, forward)
	}

	// Create UI model and run the program
	uiModel := ui.NewModel(bus, cfg, st, sel, cols, exporter, cat, eventChan)
	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
