package http

import (
	"crypto/tls"
	"net/http/httptrace"
	"sync"
	"time"
)

// TimingInfo holds the phases of a single request
type TimingInfo struct {
	StartTime           time.Time
	DNSLookupTime       time.Duration
	TCPConnectTime      time.Duration
	TLSHandshakeTime    time.Duration
	TimeToFirstByte     time.Duration
	ContentTransferTime time.Duration
	TotalTime           time.Duration
}

// phaseRecorder collects connection phases from httptrace callbacks. The
// transport may fire them from several goroutines (parallel dials, dials
// that finish after the request picked another connection), so every field
// is guarded by mu and only the first completed phase of each kind counts.
type phaseRecorder struct {
	mu sync.Mutex

	dnsStart, connectStart, tlsStart time.Time
	lastPhaseEnd                     time.Time

	dns, connect, tls, ttfb time.Duration
	dnsDone, connectDone    bool
	tlsDone, firstByte      bool
}

func newPhaseRecorder(start time.Time) *phaseRecorder {
	return &phaseRecorder{lastPhaseEnd: start}
}

// trace returns a ClientTrace feeding r. Time to first byte is measured
// from the end of the last completed phase.
func (r *phaseRecorder) trace() *httptrace.ClientTrace {
	return &httptrace.ClientTrace{
		DNSStart: func(httptrace.DNSStartInfo) {
			r.mu.Lock()
			defer r.mu.Unlock()
			if r.dnsStart.IsZero() {
				r.dnsStart = time.Now()
			}
		},
		DNSDone: func(httptrace.DNSDoneInfo) {
			r.mu.Lock()
			defer r.mu.Unlock()
			if r.dnsDone || r.dnsStart.IsZero() {
				return
			}
			end := time.Now()
			r.dns = end.Sub(r.dnsStart)
			r.dnsDone = true
			r.lastPhaseEnd = end
		},
		ConnectStart: func(network, addr string) {
			r.mu.Lock()
			defer r.mu.Unlock()
			if r.connectStart.IsZero() {
				r.connectStart = time.Now()
			}
		},
		ConnectDone: func(network, addr string, err error) {
			r.mu.Lock()
			defer r.mu.Unlock()
			if err != nil || r.connectDone || r.connectStart.IsZero() {
				return
			}
			end := time.Now()
			r.connect = end.Sub(r.connectStart)
			r.connectDone = true
			r.lastPhaseEnd = end
		},
		TLSHandshakeStart: func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			if r.connectDone && r.tlsStart.IsZero() {
				r.tlsStart = time.Now()
			}
		},
		TLSHandshakeDone: func(state tls.ConnectionState, err error) {
			r.mu.Lock()
			defer r.mu.Unlock()
			if err != nil || r.tlsDone || r.tlsStart.IsZero() {
				return
			}
			end := time.Now()
			r.tls = end.Sub(r.tlsStart)
			r.tlsDone = true
			r.lastPhaseEnd = end
		},
		GotFirstResponseByte: func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			if r.firstByte {
				return
			}
			r.ttfb = time.Since(r.lastPhaseEnd)
			r.firstByte = true
		},
	}
}

// fill copies the recorded phases into t.
func (r *phaseRecorder) fill(t *TimingInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.DNSLookupTime = r.dns
	t.TCPConnectTime = r.connect
	t.TLSHandshakeTime = r.tls
	t.TimeToFirstByte = r.ttfb
}

// GetDNSLookupTimeMillis returns the DNS lookup time in milliseconds
func (r *Response) GetDNSLookupTimeMillis() int64 {
	return r.Timing.DNSLookupTime.Milliseconds()
}

// GetTCPConnectTimeMillis returns the TCP connect time in milliseconds
func (r *Response) GetTCPConnectTimeMillis() int64 {
	return r.Timing.TCPConnectTime.Milliseconds()
}

// GetTLSHandshakeTimeMillis returns the TLS handshake time in milliseconds
func (r *Response) GetTLSHandshakeTimeMillis() int64 {
	return r.Timing.TLSHandshakeTime.Milliseconds()
}

// GetTimeToFirstByteMillis returns the time to first byte in milliseconds
func (r *Response) GetTimeToFirstByteMillis() int64 {
	return r.Timing.TimeToFirstByte.Milliseconds()
}

// GetContentTransferTimeMillis returns the body transfer time in milliseconds
func (r *Response) GetContentTransferTimeMillis() int64 {
	return r.Timing.ContentTransferTime.Milliseconds()
}

// GetTotalTimeMillis returns the total request time in milliseconds
func (r *Response) GetTotalTimeMillis() int64 {
	return r.Timing.TotalTime.Milliseconds()
}
