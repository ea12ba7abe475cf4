package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := New(reg)
	require.NoError(t, err)

	r.ObserveRequest("open_device", "ok", 20*time.Millisecond)
	r.ObserveRequest("open_device", "ok", 30*time.Millisecond)
	r.ObserveRequest("open_device", "failed", time.Millisecond)
	r.ObserveRequest("save_everything", "not_implemented", 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.requests.WithLabelValues("open_device", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.requests.WithLabelValues("open_device", "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.requests.WithLabelValues("save_everything", "not_implemented")))
	assert.Equal(t, 2, testutil.CollectAndCount(r.duration))

	expected := `
# HELP rgbctl_requests_total Requests received from the view, by outcome.
# TYPE rgbctl_requests_total counter
rgbctl_requests_total{outcome="failed",request="open_device"} 1
rgbctl_requests_total{outcome="not_implemented",request="save_everything"} 1
rgbctl_requests_total{outcome="ok",request="open_device"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "rgbctl_requests_total"))
}

func TestNew_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)
	_, err = New(reg)
	assert.Error(t, err)
}
