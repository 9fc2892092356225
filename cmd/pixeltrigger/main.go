package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fyne.io/fyne/v2/app"
	"golang.org/x/sync/errgroup"

	"jordanella.com/pixel-trigger-go/internal/config"
	"jordanella.com/pixel-trigger-go/internal/cv"
	"jordanella.com/pixel-trigger-go/internal/events"
	"jordanella.com/pixel-trigger-go/internal/gui"
	"jordanella.com/pixel-trigger-go/internal/input"
	"jordanella.com/pixel-trigger-go/internal/logging"
	"jordanella.com/pixel-trigger-go/internal/trigger"
)

const eventBufferSize = 256

// ErrInitialization wraps every failure that happens before the worker runs
var ErrInitialization = errors.New("initialization failed")

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "pixeltrigger:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts *options, s settings) error {
	cfg := s.config

	// Logging
	logger := logging.NewLogger("Main")
	if level, err := logging.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetMinLevel(level)
	} else {
		logger.Warn(fmt.Sprintf("Unknown log level %q, using INFO", cfg.LogLevel))
	}

	logFile, err := logging.NewRotatingFile(cfg.LogDir, "pixeltrigger.log", logging.DefaultRotationConfig())
	if err != nil {
		logger.Error("Log file unavailable, logging to stdout only", err)
	} else {
		logger.AddOutput(logFile)
		defer logFile.Close()
	}

	if !s.configFound {
		logger.InfoWithContext("Settings file not found, using defaults", map[string]interface{}{"path": opts.configPath})
	}

	// Events
	bus := events.NewEventBus(eventBufferSize, logger.Named("EventBus"))
	eventLogger, err := logging.NewEventLogger(bus, cfg.LogDir)
	if err != nil {
		logger.Error("Event log unavailable", err)
	}
	// Drain the bus before the event log goes away
	defer func() {
		bus.Stop()
		if eventLogger != nil {
			eventLogger.Close()
		}
	}()

	// Detector
	sampler, err := cv.NewScreenSampler()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInitialization, err)
	}

	shared := config.NewShared(cfg)
	clicker := &input.CountingSynthesizer{Next: input.NewSynthesizer(logger.Named("Input"))}
	detector := trigger.New(shared, sampler, clicker,
		input.NewKeyState(),
		trigger.WithEventBus(bus),
		trigger.WithLogger(logger.Named("Detector")),
	)
	hotkeys := trigger.NewHotkeyWatcher(detector)

	logger.InfoWithContext("Starting", map[string]interface{}{
		"radius":    cfg.Radius,
		"tolerance": cfg.Tolerance,
		"target":    cfg.TargetColor.Hex(),
		"hold_key":  cfg.HoldKey.String(),
		"enabled":   shared.DetectionEnabled(),
		"headless":  opts.headless,
	})

	if opts.headless {
		err = runHeadless(ctx, detector, hotkeys)
	} else {
		err = runWindow(ctx, shared, detector, hotkeys, s.presets, bus, logger)
	}

	logger.InfoWithContext("Shutdown complete", map[string]interface{}{
		"clicks":      detector.Stats().Clicks,
		"synthesized": clicker.Count(),
	})
	return err
}

// runHeadless runs the worker and hotkey watcher until SIGINT or SIGTERM
func runHeadless(ctx context.Context, detector *trigger.Detector, hotkeys *trigger.HotkeyWatcher) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := detector.Run(gctx); err != nil {
			return fmt.Errorf("%w: %w", ErrInitialization, err)
		}
		return nil
	})
	g.Go(func() error {
		return hotkeys.Run(gctx)
	})

	return g.Wait()
}

// runWindow shows the control panel. Closing it stops the worker and waits for it.
func runWindow(ctx context.Context, shared *config.Shared, detector *trigger.Detector, hotkeys *trigger.HotkeyWatcher,
	presets *config.Presets, bus events.EventBus, logger *logging.Logger) error {
	if err := detector.Start(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrInitialization, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return hotkeys.Run(gctx)
	})

	myApp := app.NewWithID("com.jordanella.pixel-trigger-go")
	myApp.Settings().SetTheme(&gui.PanelTheme{})

	window := myApp.NewWindow("Pixel Trigger")
	window.Resize(gui.DefaultWindowSize)

	controller := gui.NewController(myApp, window, shared, detector, presets, bus, logger.Named("GUI"))
	window.SetContent(controller.BuildUI())
	window.SetMaster()
	window.ShowAndRun()

	// Window closed
	controller.Shutdown()
	cancel()
	detector.Stop()
	return g.Wait()
}
