// Package metrics summarizes the latency of repeated, independent requests.
package metrics

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

const (
	histogramMin     = 1                  // 1µs
	histogramMax     = 10 * 60 * 1000_000 // 10 minutes in microseconds
	histogramSigFigs = 3
)

// Summary is a point-in-time view of the recorded latencies.
type Summary struct {
	Count  int64 `json:"count" yaml:"count"`
	Errors int64 `json:"errors" yaml:"errors"`
	Bytes  int64 `json:"bytes" yaml:"bytes"`

	Min  time.Duration `json:"min" yaml:"min"`
	Mean time.Duration `json:"mean" yaml:"mean"`
	Max  time.Duration `json:"max" yaml:"max"`
	P50  time.Duration `json:"p50" yaml:"p50"`
	P90  time.Duration `json:"p90" yaml:"p90"`
	P95  time.Duration `json:"p95" yaml:"p95"`
	P99  time.Duration `json:"p99" yaml:"p99"`
}

// ErrorRate returns the share of failed requests between 0 and 1.
func (s Summary) ErrorRate() float64 {
	if s.Count == 0 {
		return 0
	}
	return float64(s.Errors) / float64(s.Count)
}

// Recorder collects request latencies. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	hist   *hdrhistogram.Histogram
	count  int64
	errors int64
	bytes  int64
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		hist: hdrhistogram.New(histogramMin, histogramMax, histogramSigFigs),
	}
}

// Record adds one request. Failed requests are counted but their latency
// is only recorded when a response was received.
func (r *Recorder) Record(duration time.Duration, bytes int, failed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.count++
	r.bytes += int64(bytes)
	if failed {
		r.errors++
		if duration <= 0 {
			return
		}
	}

	micros := duration.Microseconds()
	if micros < histogramMin {
		micros = histogramMin
	}
	if micros > histogramMax {
		micros = histogramMax
	}
	// HDR histograms are not thread-safe; r.mu guards it.
	_ = r.hist.RecordValue(micros)
}

// Summary returns the current statistics.
func (r *Recorder) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Summary{Count: r.count, Errors: r.errors, Bytes: r.bytes}
	if r.hist.TotalCount() == 0 {
		return s
	}

	us := func(v int64) time.Duration { return time.Duration(v) * time.Microsecond }
	s.Min = us(r.hist.Min())
	s.Max = us(r.hist.Max())
	s.Mean = time.Duration(r.hist.Mean() * float64(time.Microsecond))
	s.P50 = us(r.hist.ValueAtQuantile(50))
	s.P90 = us(r.hist.ValueAtQuantile(90))
	s.P95 = us(r.hist.ValueAtQuantile(95))
	s.P99 = us(r.hist.ValueAtQuantile(99))
	return s
}
