package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/feral-file/ff-rental-indexer/internal/health"
	"github.com/feral-file/ff-rental-indexer/internal/logger"
)

const collectTimeout = 5 * time.Second

// Collector exports the health report as Prometheus gauges. Values are read
// on every scrape, so nothing in the pipeline has to update counters.
type Collector struct {
	reporter health.Reporter

	PendingEntries     *prometheus.Desc
	ProcessedEntries   *prometheus.Desc
	FailedEntries      *prometheus.Desc
	DeadLetters        *prometheus.Desc
	LastProcessedBlock *prometheus.Desc
	CheckpointBlock    *prometheus.Desc
	SafeHeadBlock      *prometheus.Desc
	ComponentPhase     *prometheus.Desc
	Healthy            *prometheus.Desc
	UptimeSeconds      *prometheus.Desc
	ScrapeError        *prometheus.Desc
}

// NewCollector creates a collector labelled with the serving binary
func NewCollector(app string, reporter health.Reporter) *Collector {
	labels := prometheus.Labels{
		"app": app,
	}

	return &Collector{
		reporter:           reporter,
		PendingEntries:     prometheus.NewDesc("rental_ledger_entries_pending", "Ledger entries waiting for projection", nil, labels),
		ProcessedEntries:   prometheus.NewDesc("rental_ledger_entries_processed", "Ledger entries applied to the read models", nil, labels),
		FailedEntries:      prometheus.NewDesc("rental_ledger_entries_failed", "Ledger entries that exhausted their retries", nil, labels),
		DeadLetters:        prometheus.NewDesc("rental_dead_letters", "Logs that could not be decoded", nil, labels),
		LastProcessedBlock: prometheus.NewDesc("rental_last_processed_block", "Highest block among processed entries", nil, labels),
		CheckpointBlock:    prometheus.NewDesc("rental_checkpoint_block", "Last fully ingested block", nil, labels),
		SafeHeadBlock:      prometheus.NewDesc("rental_safe_head_block", "Ledger head minus the confirmation depth", nil, labels),
		ComponentPhase:     prometheus.NewDesc("rental_component_phase", "1 for the current phase of the loop", []string{"component", "phase"}, labels),
		Healthy:            prometheus.NewDesc("rental_healthy", "1 unless the listener is stuck", nil, labels),
		UptimeSeconds:      prometheus.NewDesc("rental_uptime_seconds", "Seconds since the process started", nil, labels),
		ScrapeError:        prometheus.NewDesc("rental_scrape_error", "1 if the health report could not be built", nil, labels),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.PendingEntries
	ch <- c.ProcessedEntries
	ch <- c.FailedEntries
	ch <- c.DeadLetters
	ch <- c.LastProcessedBlock
	ch <- c.CheckpointBlock
	ch <- c.SafeHeadBlock
	ch <- c.ComponentPhase
	ch <- c.Healthy
	ch <- c.UptimeSeconds
	ch <- c.ScrapeError
}

// Collect implements prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
	defer cancel()

	status, err := c.reporter.Report(ctx)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to build health report for metrics", zap.Error(err))
		ch <- prometheus.MustNewConstMetric(c.ScrapeError, prometheus.GaugeValue, 1)
		return
	}
	ch <- prometheus.MustNewConstMetric(c.ScrapeError, prometheus.GaugeValue, 0)

	ch <- prometheus.MustNewConstMetric(c.PendingEntries, prometheus.GaugeValue, float64(status.PendingEntries))
	ch <- prometheus.MustNewConstMetric(c.ProcessedEntries, prometheus.GaugeValue, float64(status.ProcessedEntries))
	ch <- prometheus.MustNewConstMetric(c.FailedEntries, prometheus.GaugeValue, float64(status.FailedEntries))
	ch <- prometheus.MustNewConstMetric(c.DeadLetters, prometheus.GaugeValue, float64(status.DeadLetters))
	ch <- prometheus.MustNewConstMetric(c.UptimeSeconds, prometheus.GaugeValue, status.UptimeSeconds)
	ch <- prometheus.MustNewConstMetric(c.Healthy, prometheus.GaugeValue, boolValue(status.Healthy))

	if status.LastProcessedBlock != nil {
		ch <- prometheus.MustNewConstMetric(c.LastProcessedBlock, prometheus.GaugeValue, float64(*status.LastProcessedBlock))
	}
	if status.Checkpoint != nil {
		ch <- prometheus.MustNewConstMetric(c.CheckpointBlock, prometheus.GaugeValue, float64(*status.Checkpoint))
	}
	if status.Component.SafeHead != nil {
		ch <- prometheus.MustNewConstMetric(c.SafeHeadBlock, prometheus.GaugeValue, float64(*status.Component.SafeHead))
	}

	for _, phase := range health.Phases {
		ch <- prometheus.MustNewConstMetric(c.ComponentPhase, prometheus.GaugeValue,
			boolValue(status.Component.Phase == phase), status.Component.Name, string(phase))
	}
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
