package output

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/jobboard/internal/http"
	"github.com/wesleyorama2/jobboard/internal/jobs"
	"github.com/wesleyorama2/jobboard/internal/metrics"
)

// OutputFormat represents the available output formats
type OutputFormat string

const (
	// FormatText is the default human-readable text format
	FormatText OutputFormat = "text"
	// FormatJSON outputs in JSON format
	FormatJSON OutputFormat = "json"
	// FormatYAML outputs in YAML format
	FormatYAML OutputFormat = "yaml"
)

// ParseFormat maps a flag or config value to an OutputFormat. The empty
// string selects FormatText.
func ParseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
}

// FormatProvider is an interface for different output formatters
type FormatProvider interface {
	FormatRequest(opts *http.RequestOptions) string
	FormatResponse(resp *http.Response) string
	FormatSummary(summary metrics.Summary) string
	FormatPositions(positions []jobs.Position) string
}

// RequestData represents the structured data of an HTTP request
type RequestData struct {
	Method     string            `json:"method" yaml:"method"`
	URL        string            `json:"url" yaml:"url"`
	Encoding   string            `json:"encoding" yaml:"encoding"`
	Headers    map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Parameters map[string]string `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Timestamp  string            `json:"timestamp" yaml:"timestamp"`
}

// TimingData represents detailed timing information for an HTTP request
type TimingData struct {
	DNSLookup       int64 `json:"dnsLookupMs,omitempty" yaml:"dnsLookupMs,omitempty"`
	TCPConnection   int64 `json:"tcpConnectionMs,omitempty" yaml:"tcpConnectionMs,omitempty"`
	TLSHandshake    int64 `json:"tlsHandshakeMs,omitempty" yaml:"tlsHandshakeMs,omitempty"`
	TimeToFirstByte int64 `json:"timeToFirstByteMs,omitempty" yaml:"timeToFirstByteMs,omitempty"`
	ContentTransfer int64 `json:"contentTransferMs,omitempty" yaml:"contentTransferMs,omitempty"`
	Total           int64 `json:"totalMs" yaml:"totalMs"`
}

// ResponseData represents the structured data of an HTTP response
type ResponseData struct {
	StatusCode   int               `json:"statusCode" yaml:"statusCode"`
	Status       string            `json:"status" yaml:"status"`
	Headers      map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body         any               `json:"body,omitempty" yaml:"body,omitempty"`
	ResponseTime int64             `json:"responseTimeMs" yaml:"responseTimeMs"`
	Timing       *TimingData       `json:"timing,omitempty" yaml:"timing,omitempty"`
	Timestamp    string            `json:"timestamp" yaml:"timestamp"`
}

// SummaryData is the serialized form of a latency summary, in milliseconds.
type SummaryData struct {
	Requests  int64   `json:"requests" yaml:"requests"`
	Errors    int64   `json:"errors" yaml:"errors"`
	ErrorRate float64 `json:"errorRate" yaml:"errorRate"`
	Bytes     int64   `json:"bytes" yaml:"bytes"`
	MinMs     float64 `json:"minMs" yaml:"minMs"`
	MeanMs    float64 `json:"meanMs" yaml:"meanMs"`
	MaxMs     float64 `json:"maxMs" yaml:"maxMs"`
	P50Ms     float64 `json:"p50Ms" yaml:"p50Ms"`
	P90Ms     float64 `json:"p90Ms" yaml:"p90Ms"`
	P95Ms     float64 `json:"p95Ms" yaml:"p95Ms"`
	P99Ms     float64 `json:"p99Ms" yaml:"p99Ms"`
}

func requestData(opts *http.RequestOptions) RequestData {
	return RequestData{
		Method:     string(opts.Method()),
		URL:        displayURL(opts),
		Encoding:   opts.Encoding().String(),
		Headers:    opts.Headers(),
		Parameters: opts.Parameters(),
		Timestamp:  time.Now().Format(time.RFC3339),
	}
}

func responseData(resp *http.Response, verbose bool) ResponseData {
	headers := make(map[string]string)
	for key, values := range resp.Headers {
		if len(values) > 0 {
			headers[key] = values[0]
		}
	}

	// Bodies that are not JSON are kept as text
	var body any
	if v, ok := resp.JSON(); ok {
		body = v
	} else if s, ok := resp.Body(); ok {
		body = s
	}

	data := ResponseData{
		StatusCode:   resp.StatusCode,
		Status:       resp.Status,
		Headers:      headers,
		Body:         body,
		ResponseTime: resp.GetResponseTimeMillis(),
		Timestamp:    time.Now().Format(time.RFC3339),
	}
	if verbose {
		data.Timing = &TimingData{
			DNSLookup:       resp.GetDNSLookupTimeMillis(),
			TCPConnection:   resp.GetTCPConnectTimeMillis(),
			TLSHandshake:    resp.GetTLSHandshakeTimeMillis(),
			TimeToFirstByte: resp.GetTimeToFirstByteMillis(),
			ContentTransfer: resp.GetContentTransferTimeMillis(),
			Total:           resp.GetTotalTimeMillis(),
		}
	}
	return data
}

func summaryData(s metrics.Summary) SummaryData {
	return SummaryData{
		Requests:  s.Count,
		Errors:    s.Errors,
		ErrorRate: s.ErrorRate(),
		Bytes:     s.Bytes,
		MinMs:     millis(s.Min),
		MeanMs:    millis(s.Mean),
		MaxMs:     millis(s.Max),
		P50Ms:     millis(s.P50),
		P90Ms:     millis(s.P90),
		P95Ms:     millis(s.P95),
		P99Ms:     millis(s.P99),
	}
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// displayURL renders the final request URL, or target and path joined when
// the options do not form a valid URL.
func displayURL(opts *http.RequestOptions) string {
	if u, err := opts.URL(); err == nil {
		return u.String()
	}
	target := opts.Target()
	if !strings.HasSuffix(target, "/") && !strings.HasPrefix(opts.Path(), "/") {
		target += "/"
	}
	return target + opts.Path()
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	Verbose bool
	Pretty  bool
}

func (f *JSONFormatter) marshal(kind string, v any) string {
	var out []byte
	var err error
	if f.Pretty {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Sprintf(`{"error":"Failed to marshal %s: %s"}`, kind, err)
	}
	return string(out)
}

// FormatRequest formats a request as JSON
func (f *JSONFormatter) FormatRequest(opts *http.RequestOptions) string {
	return f.marshal("request", requestData(opts))
}

// FormatResponse formats a response as JSON
func (f *JSONFormatter) FormatResponse(resp *http.Response) string {
	return f.marshal("response", responseData(resp, f.Verbose))
}

// FormatSummary formats a latency summary as JSON
func (f *JSONFormatter) FormatSummary(summary metrics.Summary) string {
	return f.marshal("summary", summaryData(summary))
}

// FormatPositions formats job positions as JSON
func (f *JSONFormatter) FormatPositions(positions []jobs.Position) string {
	if positions == nil {
		positions = []jobs.Position{}
	}
	return f.marshal("positions", positions)
}

// YAMLFormatter formats output as YAML
type YAMLFormatter struct {
	Verbose bool
}

func (f *YAMLFormatter) marshal(kind string, v any) string {
	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: Failed to marshal %s: %s", kind, err)
	}
	return string(out)
}

// FormatRequest formats a request as YAML
func (f *YAMLFormatter) FormatRequest(opts *http.RequestOptions) string {
	return f.marshal("request", requestData(opts))
}

// FormatResponse formats a response as YAML
func (f *YAMLFormatter) FormatResponse(resp *http.Response) string {
	return f.marshal("response", responseData(resp, f.Verbose))
}

// FormatSummary formats a latency summary as YAML
func (f *YAMLFormatter) FormatSummary(summary metrics.Summary) string {
	return f.marshal("summary", summaryData(summary))
}

// FormatPositions formats job positions as YAML. Positions reuse their JSON
// field names.
func (f *YAMLFormatter) FormatPositions(positions []jobs.Position) string {
	raw, err := json.Marshal(positions)
	if err != nil {
		return fmt.Sprintf("error: Failed to marshal positions: %s", err)
	}
	var generic []any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return fmt.Sprintf("error: Failed to marshal positions: %s", err)
	}
	if generic == nil {
		generic = []any{}
	}
	return f.marshal("positions", generic)
}

// GetFormatter returns the FormatProvider for format. Unknown formats fall
// back to text.
func GetFormatter(format OutputFormat, verbose bool, noColor bool) FormatProvider {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Verbose: verbose, Pretty: true}
	case FormatYAML:
		return &YAMLFormatter{Verbose: verbose}
	default:
		return NewFormatter(verbose, noColor)
	}
}
