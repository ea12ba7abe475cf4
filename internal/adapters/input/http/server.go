package http

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"rgb-controller/internal/ports"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Views attaches websocket connections as views.
type Views interface {
	Serve(ctx context.Context, conn *websocket.Conn, dispatcher ports.Dispatcher)
}

type Server struct {
	dispatcher ports.Dispatcher
	views      Views
	ui         fs.FS
	gatherer   prometheus.Gatherer
	logger     *slog.Logger
	upgrader   websocket.Upgrader
}

// NewServer serves the web UI from ui, the request channel on /ws and
// metrics on /metrics. Routes whose dependency is nil are not registered.
func NewServer(dispatcher ports.Dispatcher, views Views, ui fs.FS, gatherer prometheus.Gatherer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		dispatcher: dispatcher,
		views:      views,
		ui:         ui,
		gatherer:   gatherer,
		logger:     logger,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	if s.views != nil {
		mux.HandleFunc("/ws", s.handleWS)
	}
	if s.gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	if s.ui != nil {
		mux.Handle("/", http.FileServer(http.FS(s.ui)))
	}
	return mux
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("HTTP server listening on " + addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	s.views.Serve(r.Context(), conn, s.dispatcher)
}
