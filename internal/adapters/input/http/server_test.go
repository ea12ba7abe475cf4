package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"rgb-controller/internal/adapters/output/view"
	"rgb-controller/internal/domain/model"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoDispatcher answers every request by invoking a view function named
// after it.
type echoDispatcher struct {
	view *view.Hub
}

func (d echoDispatcher) Dispatch(ctx context.Context, name string, payload model.Payload) {
	d.view.Invoke("_"+name, payload)
}

func newTestServer(t *testing.T) (*httptest.Server, *view.Hub, *prometheus.Registry) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := view.NewHub(logger)
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "rgbctl_test_total", Help: "test"}))
	ui := fstest.MapFS{"index.html": {Data: []byte("<html>controller</html>")}}

	srv := httptest.NewServer(NewServer(echoDispatcher{hub}, hub, ui, reg, logger).Handler())
	t.Cleanup(srv.Close)
	return srv, hub, reg
}

func TestServer_UI(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "controller")
}

func TestServer_Metrics(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "rgbctl_test_total 0")
}

func TestServer_WebsocketRoundTrip(t *testing.T) {
	srv, _, _ := newTestServer(t)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"request": "debug_matrix",
		"data":    map[string]interface{}{"uid": 1, "position": []int{2, 3}},
	}))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var frame view.InvokeFrame
	require.NoError(t, json.Unmarshal(data, &frame))
	assert.Equal(t, "invoke", frame.Type)
	assert.Equal(t, "_debug_matrix", frame.Function)
	assert.Equal(t, map[string]interface{}{"uid": 1.0, "position": []interface{}{2.0, 3.0}}, frame.Data)
}

func TestServer_RejectsPlainRequestOnWS(t *testing.T) {
	srv, hub, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/ws")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, hub.Clients())
}

func TestServer_ListenAndServeStops(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := view.NewHub(logger)
	s := NewServer(echoDispatcher{hub}, hub, nil, nil, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
