// Package metrics records realtime fetch outcomes in a Prometheus registry.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bbcrealtime"

// Metrics holds the collectors for one CLI run.
type Metrics struct {
	registry *prometheus.Registry

	FetchesTotal   *prometheus.CounterVec
	FetchDuration  *prometheus.HistogramVec
	NowPlaying     *prometheus.GaugeVec
	SpotifyLookups *prometheus.CounterVec
	LastRun        prometheus.Gauge
}

// New creates metrics backed by a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		FetchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fetches_total",
				Help:      "Total number of realtime fetches by outcome",
			},
			[]string{"station", "outcome"},
		),
		FetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "fetch_duration_seconds",
				Help:      "Time spent fetching realtime records",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"station"},
		),
		NowPlaying: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "now_playing",
				Help:      "1 if a track was airing for the station at the time of the run",
			},
			[]string{"station"},
		),
		SpotifyLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "spotify_lookups_total",
				Help:      "Total number of Spotify track lookups by status",
			},
			[]string{"status"},
		),
		LastRun: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix time of the last completed run",
			},
		),
	}

	m.registry.MustRegister(
		m.FetchesTotal,
		m.FetchDuration,
		m.NowPlaying,
		m.SpotifyLookups,
		m.LastRun,
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveFetch implements realtime.Observer.
func (m *Metrics) ObserveFetch(station, outcome string, elapsed time.Duration) {
	m.FetchesTotal.WithLabelValues(station, outcome).Inc()
	m.FetchDuration.WithLabelValues(station).Observe(elapsed.Seconds())
}

// SetNowPlaying records whether a track was airing for the station.
func (m *Metrics) SetNowPlaying(station string, airing bool) {
	value := 0.0
	if airing {
		value = 1
	}
	m.NowPlaying.WithLabelValues(station).Set(value)
}

// RecordSpotifyLookup counts a Spotify lookup.
func (m *Metrics) RecordSpotifyLookup(status string) {
	m.SpotifyLookups.WithLabelValues(status).Inc()
}

// WriteTextfile stamps the run time and writes all metrics in the text exposition format,
// suitable for node_exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string, now time.Time) error {
	m.LastRun.Set(float64(now.Unix()))
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
