package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"rgb-controller/internal/adapters/input/desktop"
	httpin "rgb-controller/internal/adapters/input/http"
	"rgb-controller/internal/adapters/input/watcher"
	"rgb-controller/internal/adapters/output/browser"
	"rgb-controller/internal/adapters/output/metrics"
	"rgb-controller/internal/adapters/output/openrazer"
	"rgb-controller/internal/adapters/output/persistence"
	"rgb-controller/internal/adapters/output/view"
	"rgb-controller/internal/domain/model"
	"rgb-controller/internal/domain/service"
	"rgb-controller/internal/ports"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"
	"github.com/wailsapp/wails/v2"
	wailsoptions "github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
)

//go:embed all:frontend
var assets embed.FS

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// controller holds what both modes share.
type controller struct {
	cfg      *model.Config
	logger   *slog.Logger
	backend  *openrazer.Client
	prefs    *service.PreferencesService
	repo     *persistence.JSONPreferencesRepository
	icons    ports.AssetSource
	messages model.Messages
	registry *prometheus.Registry
	recorder *metrics.Recorder
	ui       fs.FS
}

func run() error {
	opts, err := loadConfig(os.Args[1:], os.Getenv)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	if opts.version {
		fmt.Println("rgb-controller " + version)
		return nil
	}
	cfg := opts.cfg

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	logger.Info("starting rgb-controller", "version", version, "mode", cfg.Mode)

	messages, err := persistence.LoadMessages(cfg.LocalePath)
	if err != nil {
		logger.Warn("could not load translations, using English", "error", err)
	}

	backend, err := openrazer.Dial(cfg.DBusTimeout, logger.With("component", "openrazer"))
	if err != nil {
		return err
	}
	defer backend.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder, err := metrics.New(registry)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	ui, err := uiFS(cfg)
	if err != nil {
		return err
	}

	repo := persistence.NewJSONPreferencesRepository(cfg.PreferencesPath, cfg.ColoursPath)
	c := &controller{
		cfg:      cfg,
		logger:   logger,
		backend:  backend,
		prefs:    service.NewPreferencesService(repo),
		repo:     repo,
		icons:    persistence.NewDirAssetSource(cfg.IconsDir),
		messages: messages,
		registry: registry,
		recorder: recorder,
		ui:       ui,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Mode == model.ModeServer {
		return c.runServer(ctx)
	}
	return c.runDesktop(ctx)
}

func (c *controller) router(v ports.ViewPort, b ports.BrowserPort) *service.Router {
	return service.NewRouter(service.RouterOptions{
		Backend:           c.backend,
		View:              v,
		Browser:           b,
		Recorder:          c.recorder,
		Messages:          c.messages,
		BrightnessFormula: c.cfg.BrightnessFormula,
		HelpURL:           c.cfg.HelpURL,
		Logger:            c.logger.With("component", "router"),
	})
}

func (c *controller) watchColours(v ports.ViewPort) *watcher.ColoursWatcher {
	if !c.cfg.WatchColours || c.repo.ColoursPath() == "" {
		return nil
	}
	w, err := watcher.New(c.repo.ColoursPath(), c.repo, v, c.logger.With("component", "watcher"))
	if err != nil {
		c.logger.Warn("not watching colours", "error", err)
		return nil
	}
	w.Start()
	return w
}

// runServer serves the UI to any browser; every connected page is a view.
func (c *controller) runServer(ctx context.Context) error {
	hub := view.NewHub(c.logger.With("component", "view"))
	defer hub.Close()
	opener := browser.New(c.logger)
	router := c.router(hub, opener)

	if w := c.watchColours(hub); w != nil {
		defer w.Stop()
	}

	srv := httpin.NewServer(router, hub, c.ui, c.registry, c.logger.With("component", "http"))
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(ctx, c.cfg.Listen)
	}()

	window := browser.NewWindow("http://"+c.cfg.Listen+"/", opener)
	service.NewStartupService(c.backend, hub, window, c.prefs, c.icons, c.messages, c.logger).Run(ctx, version)

	return <-errCh
}

// runDesktop shows the UI in a native webview. Metrics are still served on
// the listen address.
func (c *controller) runDesktop(ctx context.Context) error {
	desktopView := view.NewDesktop(c.logger.With("component", "view"))
	router := c.router(desktopView, desktopView)
	startup := service.NewStartupService(c.backend, desktopView, desktopView, c.prefs, c.icons, c.messages, c.logger)

	if c.cfg.Listen != "" {
		srv := httpin.NewServer(router, nil, nil, c.registry, c.logger.With("component", "http"))
		go func() {
			if err := srv.ListenAndServe(ctx, c.cfg.Listen); err != nil {
				c.logger.Warn("metrics server stopped", "error", err)
			}
		}()
	}

	var (
		watchOnce sync.Once
		w         *watcher.ColoursWatcher
	)
	app := desktop.NewApp(router, desktop.Hooks{
		Startup: desktopView.Bind,
		Ready: func(ctx context.Context) {
			startup.Run(ctx, version)
			watchOnce.Do(func() { w = c.watchColours(desktopView) })
		},
		Close: func() {
			if w != nil {
				w.Stop()
			}
		},
	}, c.logger.With("component", "desktop"))

	return wails.Run(&wailsoptions.App{
		Title:       "RGB Controller",
		Width:       1000,
		Height:      650,
		MinWidth:    800,
		MinHeight:   500,
		StartHidden: true,
		AssetServer: &assetserver.Options{Assets: c.ui},
		OnStartup:   app.Startup,
		OnDomReady:  app.DomReady,
		OnShutdown:  app.Shutdown,
		Bind:        []interface{}{app},
	})
}

func uiFS(cfg *model.Config) (fs.FS, error) {
	if cfg.UIDir != "" {
		return os.DirFS(cfg.UIDir), nil
	}
	ui, err := fs.Sub(assets, "frontend")
	if err != nil {
		return nil, fmt.Errorf("embedded UI: %w", err)
	}
	return ui, nil
}
