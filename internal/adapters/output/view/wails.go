package view

import (
	"context"
	"log/slog"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// Event names emitted to the desktop webview.
const (
	EventInvoke   = "view:invoke"
	EventVariable = "view:variable"
)

// Desktop drives the Wails webview. It is the ViewPort, WindowPort and
// BrowserPort in desktop mode. Nothing is emitted before Bind is called with
// the context Wails passes to OnStartup.
type Desktop struct {
	mu     sync.RWMutex
	ctx    context.Context
	logger *slog.Logger

	emit func(ctx context.Context, event string, data ...interface{})
	show func(ctx context.Context)
	open func(ctx context.Context, url string)
}

func NewDesktop(logger *slog.Logger) *Desktop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Desktop{
		logger: logger,
		emit:   runtime.EventsEmit,
		show:   runtime.WindowShow,
		open:   runtime.BrowserOpenURL,
	}
}

// Bind attaches the Wails runtime context.
func (d *Desktop) Bind(ctx context.Context) {
	d.mu.Lock()
	d.ctx = ctx
	d.mu.Unlock()
}

func (d *Desktop) context() context.Context {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.ctx
}

func (d *Desktop) Invoke(function string, data interface{}) {
	ctx := d.context()
	if ctx == nil {
		d.logger.Warn("webview not ready, dropping invocation", "function", function)
		return
	}
	d.emit(ctx, EventInvoke, invokeFrame(function, data))
}

func (d *Desktop) SetVariable(name string, value interface{}) {
	ctx := d.context()
	if ctx == nil {
		d.logger.Warn("webview not ready, dropping variable", "name", name)
		return
	}
	d.emit(ctx, EventVariable, variableFrame(name, value))
}

func (d *Desktop) Show() {
	if ctx := d.context(); ctx != nil {
		d.show(ctx)
	}
}

func (d *Desktop) Open(url string) error {
	ctx := d.context()
	if ctx == nil {
		return errNotBound
	}
	d.open(ctx, url)
	return nil
}
