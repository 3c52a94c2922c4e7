package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/dreamspinner/internal/colorscheme"
	"github.com/jmylchreest/dreamspinner/internal/config"
	"github.com/jmylchreest/dreamspinner/internal/dbus"
	"github.com/jmylchreest/dreamspinner/internal/display"
	"github.com/jmylchreest/dreamspinner/internal/dream"
	"github.com/jmylchreest/dreamspinner/internal/dreams"
	"github.com/jmylchreest/dreamspinner/internal/gtkui"
	"github.com/jmylchreest/dreamspinner/internal/input"
	"github.com/jmylchreest/dreamspinner/internal/render"
)

const (
	previewWidth  = 640
	previewHeight = 400
)

// runShow runs one screensaver session and returns once every viewport has
// closed.
func runShow(store *config.Store, env config.Env, preview bool) error {
	sessionLog := logger.With("session", ulid.Make().String())
	sessionLog.Info("starting dreamspinner", "version", version, "preview", preview, "settings", store.Path())

	registry := dream.NewRegistry(dreams.Catalog(), dream.Deps{Settings: store, Logger: sessionLog})
	bus := input.NewBus(16, sessionLog)

	app := adw.NewApplication(appID, gio.ApplicationNonUnique)

	// Owned by the GTK main loop
	var (
		runErr    error
		windowing *gtkui.Windowing
		orch      *render.Orchestrator
		watcher   *config.Watcher
		saver     *dbus.ScreenSaverMonitor
	)

	fail := func(err error) {
		if runErr == nil {
			runErr = err
		}
		if orch != nil {
			orch.Close()
		}
		app.Quit()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		sig := <-sigCh
		sessionLog.Info("received signal, shutting down", "signal", sig)
		glib.IdleAdd(func() {
			if windowing == nil {
				app.Quit()
				return
			}
			windowing.Notify(input.EventInterrupt)
		})
	}()

	app.ConnectActivate(func() {
		if orch != nil {
			sessionLog.Warn("application already running")
			return
		}

		var (
			multiscreen bool
			schemeName  string
		)
		if err := store.Read(func(s *config.Settings) {
			multiscreen = s.AttemptMultiscreen
			schemeName = s.ColorScheme
		}); err != nil {
			fail(err)
			return
		}
		gtkui.ApplyStyle(colorscheme.Resolve(schemeName), sessionLog)

		monitors := gtkui.NewMonitorSource()
		topology, err := display.Resolve(monitors, multiscreen && !preview, sessionLog)
		if err != nil {
			fail(err)
			return
		}

		windowing = gtkui.NewWindowing(&app.Application, monitors, bus, sessionLog)
		primary := windowing.Primary(topology.Primary, preview, previewWidth, previewHeight, func(s dream.Surface) {
			if orch == nil {
				return
			}
			if err := orch.Tick(s); err != nil {
				sessionLog.Error("failed to render frame", "error", err)
				fail(err)
			}
		})

		orch = render.New(render.Options{
			Registry:   registry,
			Settings:   store,
			Topology:   topology,
			Primary:    primary,
			Windowing:  windowing,
			Bus:        bus,
			FPSSamples: env.FPSSamples,
			Windowed:   preview,
			Logger:     sessionLog,
		})
		if err := orch.Start(); err != nil {
			fail(err)
			return
		}

		watcher, err = config.NewWatcher(store, func() {
			glib.IdleAdd(func() {
				if err := orch.Reload(); err != nil {
					sessionLog.Error("failed to prepare dream after reload", "error", err)
					fail(err)
					return
				}
				primary.Invalidate()
			})
		}, sessionLog)
		if err != nil {
			sessionLog.Warn("failed to create settings watcher", "error", err)
		} else if err := watcher.Start(); err != nil {
			sessionLog.Warn("failed to start settings watcher", "error", err)
		}

		if !preview {
			saver = dbus.NewScreenSaverMonitor(sessionLog)
			saver.SetInactiveHandler(func() {
				glib.IdleAdd(func() {
					windowing.Notify(input.EventScreenSaverInactive)
				})
			})
			if err := saver.Start(); err != nil {
				sessionLog.Warn("failed to watch the session screensaver", "error", err)
			}
		}
	})

	app.ConnectShutdown(func() {
		if watcher != nil {
			if err := watcher.Stop(); err != nil {
				sessionLog.Warn("error stopping settings watcher", "error", err)
			}
		}
		if saver != nil {
			saver.Stop()
		}
		if orch != nil {
			orch.Close()
		}
		bus.Close()
		sessionLog.Info("dreamspinner stopped")
	})

	// The screensaver switches are not GApplication options
	if code := app.Run(os.Args[:1]); code != 0 && runErr == nil {
		return fmt.Errorf("application exited with status %d", code)
	}
	return runErr
}
