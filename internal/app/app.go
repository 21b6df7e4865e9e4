// Package app wires the launcher's components together and manages
// their lifecycle: settings, logging, the persistence store, the
// navigation engine, and the dispatch runner, constructed in
// dependency order and torn down cleanly.
package app

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/dshills/leaderkey/internal/keymatch"
	"github.com/dshills/leaderkey/internal/launch"
	"github.com/dshills/leaderkey/internal/logging"
	"github.com/dshills/leaderkey/internal/nav"
	"github.com/dshills/leaderkey/internal/settings"
	"github.com/dshills/leaderkey/internal/store"
)

// Options configures the application.
type Options struct {
	// ConfigDir overrides the configuration directory. Empty means the
	// settings file and LEADERKEY_CONFIG_DIR decide.
	ConfigDir string

	// ConfigFile overrides the tree document filename.
	ConfigFile string

	// LogLevel overrides the settings file's log level when non-empty.
	LogLevel string

	// LogOutput overrides where log lines go. Defaults to stderr.
	LogOutput io.Writer

	// Debounce overrides the save quiescence window when positive.
	Debounce time.Duration

	// DryRun records dispatches instead of performing them.
	DryRun bool

	// Prompt resolves save conflicts. Without one, conflicts cancel.
	Prompt store.ConflictPrompt

	// SkipLoad leaves the store empty instead of running EnsureAndLoad,
	// for commands that bootstrap or import before any read.
	SkipLoad bool
}

// Application owns the launcher's component graph.
type Application struct {
	opts     Options
	settings settings.Settings
	logger   *logging.Logger
	store    *store.Store
	engine   *nav.Engine
	runner   nav.Runner

	closed atomic.Bool
}

// New builds an application from opts, loading settings and the tree
// document. The returned application is ready to serve navigation;
// call Shutdown when done so pending edits reach the disk.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts}
	if err := app.bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Settings decide where everything else lives.
	cfg, err := settings.Load(app.opts.ConfigDir)
	if err != nil {
		return &InitError{Component: "settings", Err: err}
	}
	if app.opts.ConfigDir != "" {
		cfg.ConfigDir = app.opts.ConfigDir
	}
	if app.opts.ConfigFile != "" {
		cfg.ConfigFile = app.opts.ConfigFile
	}
	if app.opts.LogLevel != "" {
		cfg.LogLevel = app.opts.LogLevel
	}
	app.settings = cfg

	// 2. Logging, shared by everything below.
	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Level()
	if app.opts.LogOutput != nil {
		logCfg.Output = app.opts.LogOutput
	}
	app.logger = logging.New(logCfg)
	logging.Set(app.logger)

	scheme, known := cfg.Scheme()
	if !known {
		app.logger.Warn("unknown modifier scheme %q, using %q", cfg.ModifierScheme, scheme)
	}

	// 3. Persistence store over the tree document.
	storeOpts := []store.Option{
		store.WithFilename(cfg.ConfigFile),
		store.WithLogger(app.logger.WithComponent("store")),
		store.WithDebounce(cfg.Debounce()),
	}
	if app.opts.Debounce > 0 {
		storeOpts = append(storeOpts, store.WithDebounce(app.opts.Debounce))
	}
	if app.opts.Prompt != nil {
		storeOpts = append(storeOpts, store.WithPrompt(app.opts.Prompt))
	}
	app.store = store.New(cfg.ConfigDir, storeOpts...)
	if !app.opts.SkipLoad {
		if err := app.store.EnsureAndLoad(); err != nil {
			return &InitError{Component: "store", Err: err}
		}
	}

	// 4. Dispatch runner.
	if app.opts.DryRun {
		app.runner = &launch.DryRunner{}
	} else {
		app.runner = launch.New(launch.WithLogger(app.logger.WithComponent("launch")))
	}

	// 5. Navigation engine over the store.
	app.engine = nav.New(app.store,
		nav.WithScheme(scheme),
		nav.WithRunner(app.runner),
		nav.WithLogger(app.logger.WithComponent("nav")),
	)

	return nil
}

// Settings returns the effective settings.
func (app *Application) Settings() settings.Settings {
	return app.settings
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.logger
}

// Store returns the persistence store.
func (app *Application) Store() *store.Store {
	return app.store
}

// Engine returns the navigation engine.
func (app *Application) Engine() *nav.Engine {
	return app.engine
}

// Runner returns the dispatch runner the engine was wired with.
func (app *Application) Runner() nav.Runner {
	return app.runner
}

// Scheme returns the effective modifier scheme.
func (app *Application) Scheme() keymatch.Scheme {
	s, _ := app.settings.Scheme()
	return s
}

// Shutdown flushes pending edits and releases the store. Safe to call
// more than once; only the first call does work.
func (app *Application) Shutdown() error {
	if !app.closed.CompareAndSwap(false, true) {
		return nil
	}
	if err := app.store.Close(); err != nil {
		return fmt.Errorf("flushing unsaved edits: %w", err)
	}
	return nil
}
