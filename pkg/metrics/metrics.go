// Package metrics contains the Prometheus collectors of the segmentation
// pipeline. All the methods are safe to call on a nil *Metrics.
package metrics

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "vadsplit"

type Metrics struct {
	FramesProcessed    prometheus.Counter
	VoicedFrames       prometheus.Counter
	FramesEmitted      prometheus.Counter
	Triggers           prometheus.Counter
	Releases           prometheus.Counter
	ClassifierFailures prometheus.Counter
	InvalidFrames      prometheus.Counter

	UtterancesCollected prometheus.Counter
	UtteranceDuration   prometheus.Histogram

	registerer prometheus.Registerer
	watchOnce  sync.Once
	pending    atomic.Pointer[func() int]
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FramesProcessed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "segmenter",
			Name:      "frames_processed_total",
			Help:      "Frames classified by the segmenter",
		}),
		VoicedFrames: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "segmenter",
			Name:      "voiced_frames_total",
			Help:      "Frames classified as speech",
		}),
		FramesEmitted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "segmenter",
			Name:      "frames_emitted_total",
			Help:      "Frames emitted as a part of an utterance",
		}),
		Triggers: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "segmenter",
			Name:      "triggers_total",
			Help:      "Transitions from idle to triggered (utterance starts)",
		}),
		Releases: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "segmenter",
			Name:      "releases_total",
			Help:      "Transitions from triggered to idle (utterance ends)",
		}),
		ClassifierFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "segmenter",
			Name:      "classifier_failures_total",
			Help:      "Frames the classifier failed to judge",
		}),
		InvalidFrames: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "segmenter",
			Name:      "invalid_frames_total",
			Help:      "Frames rejected because of their shape",
		}),
		UtterancesCollected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "utterance",
			Name:      "collected_total",
			Help:      "Complete utterances assembled",
		}),
		UtteranceDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "utterance",
			Name:      "duration_seconds",
			Help:      "Duration of assembled utterances",
			Buckets:   []float64{0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34},
		}),
		registerer: reg,
	}
}

func (m *Metrics) ObserveFrame(isSpeech bool) {
	if m == nil {
		return
	}
	m.FramesProcessed.Inc()
	if isSpeech {
		m.VoicedFrames.Inc()
	}
}

func (m *Metrics) ObserveEmitted(count int) {
	if m == nil || count == 0 {
		return
	}
	m.FramesEmitted.Add(float64(count))
}

func (m *Metrics) ObserveTrigger() {
	if m == nil {
		return
	}
	m.Triggers.Inc()
}

func (m *Metrics) ObserveRelease() {
	if m == nil {
		return
	}
	m.Releases.Inc()
}

func (m *Metrics) ObserveClassifierFailure() {
	if m == nil {
		return
	}
	m.ClassifierFailures.Inc()
}

func (m *Metrics) ObserveInvalidFrame() {
	if m == nil {
		return
	}
	m.InvalidFrames.Inc()
}

func (m *Metrics) ObserveUtterance(duration time.Duration) {
	if m == nil {
		return
	}
	m.UtterancesCollected.Inc()
	m.UtteranceDuration.Observe(duration.Seconds())
}

// WatchQueue exports the amount of captured frames waiting to be read.
// A later call replaces the watched queue, so a new capture session could
// be watched with the same Metrics.
func (m *Metrics) WatchQueue(pending func() int) {
	if m == nil {
		return
	}
	m.pending.Store(&pending)
	m.watchOnce.Do(func() {
		promauto.With(m.registerer).NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "source",
			Name:      "pending_frames",
			Help:      "Captured frames waiting to be read by the segmenter",
		}, func() float64 {
			fn := m.pending.Load()
			if fn == nil {
				return 0
			}
			return float64((*fn)())
		})
	})
}

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
