package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var FilesScannedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "cv_scanner_files_scanned_total",
	Help: "Number of uploaded files processed, labelled by outcome",
}, []string{"status"})

var StageFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "cv_scanner_stage_failures_total",
	Help: "Per-file failures labelled by pipeline stage",
}, []string{"stage"})

var stageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "cv_scanner_stage_duration_seconds",
	Help:    "Time spent in each pipeline stage.",
	Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2, 5},
}, []string{"stage"})

var pagesExtracted = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "cv_scanner_pdf_pages",
	Help:    "Page count of extracted documents.",
	Buckets: []float64{1, 2, 3, 5, 10, 20, 50},
})

var compatibilityScore = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "cv_scanner_compatibility_score",
	Help:    "Keyword compatibility percentage of completed scans.",
	Buckets: []float64{0, 10, 25, 50, 75, 90, 100},
})

func RecordFileOutcome(status string) {
	FilesScannedTotal.WithLabelValues(status).Inc()
}

func RecordStageFailure(stage string) {
	StageFailuresTotal.WithLabelValues(stage).Inc()
}

func CaptureStageMetrics(stage string, timeElapsed time.Duration) {
	stageDuration.WithLabelValues(stage).Observe(timeElapsed.Seconds())
}

func ObservePages(count int) {
	pagesExtracted.Observe(float64(count))
}

func ObserveCompatibility(score float64) {
	compatibilityScore.Observe(score)
}
