package view

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"rgb-controller/internal/domain/model"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dispatched struct {
	name    string
	payload model.Payload
}

type chanDispatcher chan dispatched

func (d chanDispatcher) Dispatch(ctx context.Context, name string, payload model.Payload) {
	d <- dispatched{name, payload}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func serveHub(t *testing.T, h *Hub, d chanDispatcher) *websocket.Conn {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		h.Serve(r.Context(), conn, d)
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var frame map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &frame))
	return frame
}

func TestHub_ReplaysStateToNewView(t *testing.T) {
	h := NewHub(quietLogger())
	h.SetVariable("OPENRAZER_READY", false)
	h.SetVariable("CACHE_DEVICES", -1)
	h.SetVariable("OPENRAZER_READY", true)
	h.Invoke("build_view", nil)

	conn := serveHub(t, h, make(chanDispatcher, 1))

	assert.Equal(t, map[string]interface{}{"type": "variable", "name": "OPENRAZER_READY", "value": true}, readFrame(t, conn))
	assert.Equal(t, map[string]interface{}{"type": "variable", "name": "CACHE_DEVICES", "value": -1.0}, readFrame(t, conn))
	assert.Equal(t, map[string]interface{}{"type": "invoke", "function": "build_view", "data": map[string]interface{}{}}, readFrame(t, conn))
}

func TestHub_BroadcastsToConnectedView(t *testing.T) {
	h := NewHub(quietLogger())
	conn := serveHub(t, h, make(chanDispatcher, 1))
	require.Eventually(t, func() bool { return h.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	h.Invoke("_open_device", map[string]interface{}{"uid": 3})

	frame := readFrame(t, conn)
	assert.Equal(t, "invoke", frame["type"])
	assert.Equal(t, "_open_device", frame["function"])
	assert.Equal(t, map[string]interface{}{"uid": 3.0}, frame["data"])
}

func TestHub_ForwardsRequests(t *testing.T) {
	h := NewHub(quietLogger())
	d := make(chanDispatcher, 2)
	conn := serveHub(t, h, d)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`not json`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"request":"open_device","data":{"uid":2}}`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"request":"update_device_list"}`)))

	select {
	case got := <-d:
		assert.Equal(t, "open_device", got.name)
		assert.Equal(t, model.Payload{"uid": 2.0}, got.payload)
	case <-time.After(2 * time.Second):
		t.Fatal("request not dispatched")
	}
	select {
	case got := <-d:
		assert.Equal(t, "update_device_list", got.name)
		assert.Equal(t, model.Payload{}, got.payload)
	case <-time.After(2 * time.Second):
		t.Fatal("request not dispatched")
	}
}

func TestHub_ThrottlesFloodingView(t *testing.T) {
	h := NewHub(quietLogger())
	d := make(chanDispatcher, 300)
	conn := serveHub(t, h, d)

	for i := 0; i < 300; i++ {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"request":"update_device_list"}`)))
	}
	require.Eventually(t, func() bool { return len(d) >= requestBurst }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Less(t, len(d), 300)
}

func TestHub_Detach(t *testing.T) {
	h := NewHub(quietLogger())
	conn := serveHub(t, h, make(chanDispatcher, 1))
	require.Eventually(t, func() bool { return h.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return h.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)

	h.Invoke("build_view", nil)
	h.Close()
	assert.Equal(t, 0, h.Clients())
}

type emitted struct {
	event string
	data  interface{}
}

func TestDesktop(t *testing.T) {
	var events []emitted
	var shown int
	var opened []string
	d := NewDesktop(quietLogger())
	d.emit = func(ctx context.Context, event string, data ...interface{}) {
		events = append(events, emitted{event, data[0]})
	}
	d.show = func(ctx context.Context) { shown++ }
	d.open = func(ctx context.Context, url string) { opened = append(opened, url) }

	d.Invoke("build_view", nil)
	d.Show()
	assert.ErrorIs(t, d.Open("https://example.org"), errNotBound)
	assert.Empty(t, events)
	assert.Zero(t, shown)

	d.Bind(context.Background())
	d.Invoke("build_view", nil)
	d.SetVariable("OPENRAZER_READY", true)
	d.Show()
	require.NoError(t, d.Open("https://example.org"))

	assert.Equal(t, []emitted{
		{EventInvoke, InvokeFrame{Type: "invoke", Function: "build_view", Data: struct{}{}}},
		{EventVariable, VariableFrame{Type: "variable", Name: "OPENRAZER_READY", Value: true}},
	}, events)
	assert.Equal(t, 1, shown)
	assert.Equal(t, []string{"https://example.org"}, opened)
}
