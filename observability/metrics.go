package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"comfort_calc/comfort"
)

const namespace = "comfort"

// Metrics holds the Prometheus counters, histograms, and gauges for a comfort run.
type Metrics struct {
	SnapshotsProcessed prometheus.Counter
	CellsSolved        prometheus.Counter
	NonConvergedCells  prometheus.Counter
	SnapshotErrors     prometheus.Counter

	// Per-snapshot metrics.
	Iterations       prometheus.Histogram
	SnapshotDuration prometheus.Histogram
	MeanPMV          prometheus.Gauge
	MeanPPD          prometheus.Gauge
	LastCategory     *prometheus.GaugeVec // labels: category={A,B,C,none}

	gatherer prometheus.Gatherer
}

// NewMetrics creates the run metrics and registers them with reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		SnapshotsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_processed_total",
			Help:      "Total snapshots solved.",
		}),
		CellsSolved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cells_solved_total",
			Help:      "Total cells solved.",
		}),
		NonConvergedCells: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "non_converged_cells_total",
			Help:      "Cells whose clothing temperature loop stopped at the iteration cap.",
		}),
		SnapshotErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_errors_total",
			Help:      "Snapshots that failed to read, solve or store.",
		}),
		Iterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "clothing_iterations",
			Help:      "Iterations spent in the clothing temperature loop per cell.",
			Buckets:   []float64{2, 4, 6, 8, 10, 15, 20, 50, 100, float64(comfort.MaxIterations)},
		}),
		SnapshotDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "snapshot_duration_seconds",
			Help:      "Duration of reading, solving and writing one snapshot.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		MeanPMV: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mean_pmv",
			Help:      "Volume weighted PMV of the last snapshot.",
		}),
		MeanPPD: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mean_ppd_percent",
			Help:      "Volume weighted PPD of the last snapshot.",
		}),
		LastCategory: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_category",
			Help:      "1 for the comfort category of the last snapshot.",
		}, []string{"category"}),
		gatherer: reg,
	}

	reg.MustRegister(
		m.SnapshotsProcessed,
		m.CellsSolved,
		m.NonConvergedCells,
		m.SnapshotErrors,
		m.Iterations,
		m.SnapshotDuration,
		m.MeanPMV,
		m.MeanPPD,
		m.LastCategory,
	)

	return m
}

/*
Record a solved snapshot.

	Args:
		res: snapshot result
		elapsed: time spent on the snapshot
*/
func (m *Metrics) ObserveSnapshot(res *comfort.SnapshotResult, elapsed time.Duration) {
	agg := res.Aggregate

	m.SnapshotsProcessed.Inc()
	m.CellsSolved.Add(float64(len(res.Cells)))
	m.NonConvergedCells.Add(float64(agg.NonConverged))
	for _, c := range res.Cells {
		m.Iterations.Observe(float64(c.Iterations))
	}
	m.SnapshotDuration.Observe(elapsed.Seconds())

	m.MeanPMV.Set(agg.PMV)
	m.MeanPPD.Set(agg.PPD)
	m.LastCategory.Reset()
	m.LastCategory.WithLabelValues(agg.Category.String()).Set(1)
}

// ObserveError counts a failed snapshot.
func (m *Metrics) ObserveError() {
	m.SnapshotErrors.Inc()
}

// WriteTextfile writes all gathered metrics to path in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.gatherer); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}
