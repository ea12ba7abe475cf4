package desktop

import (
	"context"
	"log/slog"
	"rgb-controller/internal/domain/model"
	"rgb-controller/internal/ports"
)

// Hooks are run at points of the window's life. Any may be nil.
type Hooks struct {
	Startup func(ctx context.Context) // runtime context available
	Ready   func(ctx context.Context) // page loaded
	Close   func()
}

// App is bound into the Wails webview. The view calls Dispatch for every
// request.
type App struct {
	dispatcher ports.Dispatcher
	hooks      Hooks
	logger     *slog.Logger

	ctx context.Context
}

func NewApp(dispatcher ports.Dispatcher, hooks Hooks, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		dispatcher: dispatcher,
		hooks:      hooks,
		logger:     logger,
		ctx:        context.Background(),
	}
}

// Startup is passed to Wails as OnStartup.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx
	if a.hooks.Startup != nil {
		a.hooks.Startup(ctx)
	}
}

// DomReady is passed to Wails as OnDomReady.
func (a *App) DomReady(ctx context.Context) {
	if a.hooks.Ready != nil {
		a.hooks.Ready(ctx)
	}
}

// Shutdown is passed to Wails as OnShutdown.
func (a *App) Shutdown(ctx context.Context) {
	a.logger.Info("window closed")
	if a.hooks.Close != nil {
		a.hooks.Close()
	}
}

// Dispatch handles one request from the view.
func (a *App) Dispatch(name string, data map[string]interface{}) {
	if data == nil {
		data = map[string]interface{}{}
	}
	a.dispatcher.Dispatch(a.ctx, name, model.Payload(data))
}
