package service

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"rgb-controller/internal/domain/model"
	"rgb-controller/internal/domain/translator"
	"rgb-controller/internal/ports"
	"runtime/debug"
	"sync"
	"time"
)

// Outcomes reported to the Recorder.
const (
	OutcomeOK             = "ok"
	OutcomeNotImplemented = "not_implemented"
	OutcomeFailed         = "failed"
)

type handlerFunc func(ctx context.Context, payload model.Payload) error

// Router receives requests from the view and turns them into backend calls.
// Dispatches are serialised; a slow daemon call blocks the next request.
type Router struct {
	backend  ports.BackendPort
	view     ports.ViewPort
	browser  ports.BrowserPort
	recorder ports.Recorder
	messages model.Messages
	factory  *translator.Factory
	helpURL  string
	logger   *slog.Logger

	handlers map[model.RequestKind]handlerFunc
	mu       sync.Mutex
}

type RouterOptions struct {
	Backend           ports.BackendPort
	View              ports.ViewPort
	Browser           ports.BrowserPort
	Recorder          ports.Recorder // optional
	Messages          model.Messages // defaults to model.DefaultMessages
	BrightnessFormula string
	HelpURL           string // defaults to model.DefaultHelpURL
	Logger            *slog.Logger
}

func NewRouter(opts RouterOptions) *Router {
	r := &Router{
		backend:  opts.Backend,
		view:     opts.View,
		browser:  opts.Browser,
		recorder: opts.Recorder,
		messages: opts.Messages,
		factory:  translator.NewFactory(opts.BrightnessFormula),
		helpURL:  opts.HelpURL,
		logger:   opts.Logger,
	}
	if r.messages == nil {
		r.messages = model.DefaultMessages()
	}
	if r.helpURL == "" {
		r.helpURL = model.DefaultHelpURL
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	r.handlers = map[model.RequestKind]handlerFunc{
		model.RequestUpdateDeviceList: r.updateDeviceList,
		model.RequestOpenDevice:       r.openDevice,
		model.RequestApplyToAll:       r.applyToAll,
		model.RequestSetDeviceState:   r.setDeviceState,
		model.RequestDebugMatrix:      r.debugMatrix,
		model.RequestOpenHelp:         r.openHelp,
		model.RequestTroubleshoot:     r.troubleshoot,
	}
	return r
}

// Dispatch runs the handler for name. It never panics and never returns a
// failure to the caller: every problem ends as a log line and a dialog.
func (r *Router) Dispatch(ctx context.Context, name string, payload model.Payload) {
	r.mu.Lock()
	defer r.mu.Unlock()
	start := time.Now()

	kind, ok := model.ParseRequestKind(name)
	if !ok {
		r.logger.Error("unknown request", "request", name, "data", payload)
		r.openDialog("Internal Error", fmt.Sprintf("<code>%s</code> is not implemented.", html.EscapeString(name)), model.SeveritySerious)
		r.observe(name, OutcomeNotImplemented, start)
		return
	}

	if trace, failed := r.protect(ctx, r.handlers[kind], payload); failed {
		r.logger.Error("failed to execute request", "request", name, "data", payload)
		r.logger.Error(trace)
		r.openDialog(
			r.messages.Get("error_generic_title"),
			r.messages.Get("error_generic_text")+"<br><br><code>"+html.EscapeString(trace)+"</code>",
			model.SeveritySerious,
		)
		r.observe(name, OutcomeFailed, start)
		return
	}
	r.observe(name, OutcomeOK, start)
}

// protect runs h, converting a returned error or a panic into a trace.
func (r *Router) protect(ctx context.Context, h handlerFunc, payload model.Payload) (trace string, failed bool) {
	defer func() {
		if rec := recover(); rec != nil {
			trace = fmt.Sprintf("panic: %v\n\n%s", rec, debug.Stack())
			failed = true
		}
	}()
	if err := h(ctx, payload); err != nil {
		return err.Error(), true
	}
	return "", false
}

func (r *Router) openDialog(title, message string, severity model.Severity) {
	r.view.Invoke("open_dialog", model.NewDialog(title, message, severity))
}

func (r *Router) observe(request, outcome string, start time.Time) {
	if r.recorder == nil {
		return
	}
	r.recorder.ObserveRequest(request, outcome, time.Since(start))
}
