package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	resumeIngestedTotal     atomic.Uint64
	resumeIngestFailedTotal atomic.Uint64
	talentPromotedTotal     atomic.Uint64
	promotionConflictTotal  atomic.Uint64

	ingestDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncResumeIngested increments the ingested-resume counter.
func IncResumeIngested() {
	resumeIngestedTotal.Add(1)
}

// IncResumeIngestFailed increments the failed-ingestion counter.
func IncResumeIngestFailed() {
	resumeIngestFailedTotal.Add(1)
}

// IncTalentPromoted increments the promotion counter.
func IncTalentPromoted() {
	talentPromotedTotal.Add(1)
}

// IncPromotionConflict increments the duplicate-promotion counter.
func IncPromotionConflict() {
	promotionConflictTotal.Add(1)
}

// ObserveIngestDurationMs records an ingestion duration in milliseconds.
func ObserveIngestDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	ingestDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "resume_ingested_total", "Total resumes ingested", resumeIngestedTotal.Load())
	writeCounter(&buf, "resume_ingest_failed_total", "Total resume ingestions failed", resumeIngestFailedTotal.Load())
	writeCounter(&buf, "talent_promoted_total", "Total resumes promoted to talents", talentPromotedTotal.Load())
	writeCounter(&buf, "promotion_conflict_total", "Total duplicate promotion attempts rejected", promotionConflictTotal.Load())
	writeHistogram(&buf, "resume_ingest_duration_ms", "Resume ingestion duration in milliseconds", ingestDuration.Snapshot())
	return buf.String()
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

type histogram struct {
	mu      sync.Mutex
	bounds  []float64
	counts  []uint64
	sum     float64
	samples uint64
}

type histogramSnapshot struct {
	bounds  []float64
	counts  []uint64
	sum     float64
	samples uint64
}

func newHistogram(bounds []float64) *histogram {
	return &histogram{
		bounds: bounds,
		counts: make([]uint64, len(bounds)+1),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	idx := len(h.bounds)
	for i, bound := range h.bounds {
		if value <= bound {
			idx = i
			break
		}
	}
	h.counts[idx]++
	h.sum += value
	h.samples++
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	counts := make([]uint64, len(h.counts))
	copy(counts, h.counts)
	return histogramSnapshot{
		bounds:  h.bounds,
		counts:  counts,
		sum:     h.sum,
		samples: h.samples,
	}
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	cumulative := uint64(0)
	for i, bound := range snap.bounds {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=%q} %d\n", name, strconv.FormatFloat(bound, 'f', -1, 64), cumulative)
	}
	cumulative += snap.counts[len(snap.counts)-1]
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, cumulative)
	fmt.Fprintf(buf, "%s_sum %s\n", name, strconv.FormatFloat(snap.sum, 'f', -1, 64))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.samples)
}
