package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder counts dispatched requests by outcome and times them.
type Recorder struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rgbctl_requests_total",
			Help: "Requests received from the view, by outcome.",
		}, []string{"request", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rgbctl_request_duration_seconds",
			Help:    "Time spent handling a request.",
			Buckets: []float64{0.001, 0.005, 0.025, 0.1, 0.5, 2, 10},
		}, []string{"request"}),
	}
	for _, c := range []prometheus.Collector{r.requests, r.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Recorder) ObserveRequest(request, outcome string, elapsed time.Duration) {
	r.requests.WithLabelValues(request, outcome).Inc()
	r.duration.WithLabelValues(request).Observe(elapsed.Seconds())
}
