// Package output renders requests, responses and summaries for the terminal.
package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/wesleyorama2/jobboard/internal/http"
	"github.com/wesleyorama2/jobboard/internal/jobs"
	"github.com/wesleyorama2/jobboard/internal/metrics"
)

// Formatter is responsible for formatting HTTP requests and responses in text format
type Formatter struct {
	Verbose bool
	NoColor bool
	colors  *ColorScheme
}

// NewFormatter creates a new formatter with the given options
func NewFormatter(verbose, noColor bool) *Formatter {
	colors := DefaultColorScheme()
	if noColor {
		colors = NoColorScheme()
	} else {
		// fatih/color turns itself off when stdout is not a terminal;
		// the caller already decided.
		for _, c := range []*color.Color{
			colors.Method, colors.URL,
			colors.StatusOK, colors.StatusWarn, colors.StatusError,
			colors.HeaderKey, colors.Success, colors.Error, colors.Highlight,
		} {
			c.EnableColor()
		}
	}
	return &Formatter{Verbose: verbose, NoColor: noColor, colors: colors}
}

// FormatRequest formats a request for display
func (f *Formatter) FormatRequest(opts *http.RequestOptions) string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "▶ REQUEST: %s %s\n",
		f.colors.Method.Sprint(opts.Method()),
		f.colors.URL.Sprint(displayURL(opts)))

	headers := opts.Headers()
	if f.Verbose || len(headers) > 0 {
		buf.WriteString("  Headers:\n")
		for _, key := range sortedKeys(headers) {
			fmt.Fprintf(&buf, "    %s: %s\n", f.colors.HeaderKey.Sprint(key), headers[key])
		}
	}

	params := opts.Parameters()
	if len(params) > 0 && opts.Encoding() != http.EncodingQueryString {
		fmt.Fprintf(&buf, "  Body (%s):\n", opts.Encoding())
		for _, key := range sortedKeys(params) {
			fmt.Fprintf(&buf, "    %s = %s\n", key, params[key])
		}
	}

	return buf.String()
}

// FormatResponse formats a response for display
func (f *Formatter) FormatResponse(resp *http.Response) string {
	var buf strings.Builder

	statusColor := f.colors.StatusError
	switch {
	case resp.IsSuccess():
		statusColor = f.colors.StatusOK
	case resp.IsRedirect():
		statusColor = f.colors.StatusWarn
	}

	status := resp.Status
	if status == "" {
		status = fmt.Sprintf("%d", resp.StatusCode)
	}
	fmt.Fprintf(&buf, "◀ RESPONSE: %s (%dms)\n", statusColor.Sprint(status), resp.GetResponseTimeMillis())

	if f.Verbose {
		buf.WriteString("  Timing:\n")
		fmt.Fprintf(&buf, "    DNS Lookup:         %dms\n", resp.GetDNSLookupTimeMillis())
		fmt.Fprintf(&buf, "    TCP Connection:     %dms\n", resp.GetTCPConnectTimeMillis())
		fmt.Fprintf(&buf, "    TLS Handshake:      %dms\n", resp.GetTLSHandshakeTimeMillis())
		fmt.Fprintf(&buf, "    Time to First Byte: %dms\n", resp.GetTimeToFirstByteMillis())
		fmt.Fprintf(&buf, "    Content Transfer:   %dms\n", resp.GetContentTransferTimeMillis())
		fmt.Fprintf(&buf, "    Total:              %dms\n", resp.GetTotalTimeMillis())

		buf.WriteString("  Headers:\n")
		for _, key := range sortedKeys(resp.Headers) {
			for _, value := range resp.Headers[key] {
				fmt.Fprintf(&buf, "    %s: %s\n", f.colors.HeaderKey.Sprint(key), value)
			}
		}
	}

	if body, ok := resp.Body(); ok && body != "" {
		buf.WriteString("  Body:\n")
		buf.WriteString(formatJSONString(body))
		buf.WriteString("\n")
	} else if resp.Data != nil {
		fmt.Fprintf(&buf, "  Body: <%d bytes of binary data>\n", len(resp.Data))
	}

	return buf.String()
}

// FormatSummary formats latency statistics for repeated requests
func (f *Formatter) FormatSummary(s metrics.Summary) string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "%s\n", f.colors.Highlight.Sprint("Latency summary"))
	fmt.Fprintf(&buf, "  Requests: %d\n", s.Count)

	errColor := f.colors.Success
	if s.Errors > 0 {
		errColor = f.colors.Error
	}
	fmt.Fprintf(&buf, "  Errors:   %s\n", errColor.Sprintf("%d (%.1f%%)", s.Errors, s.ErrorRate()*100))
	fmt.Fprintf(&buf, "  Bytes:    %d\n", s.Bytes)

	if s.Count > s.Errors || s.Max > 0 {
		fmt.Fprintf(&buf, "  Min: %s  Mean: %s  Max: %s\n", formatDuration(s.Min), formatDuration(s.Mean), formatDuration(s.Max))
		fmt.Fprintf(&buf, "  P50: %s  P90: %s  P95: %s  P99: %s\n",
			formatDuration(s.P50), formatDuration(s.P90), formatDuration(s.P95), formatDuration(s.P99))
	}

	return buf.String()
}

// FormatPositions formats job positions as a list
func (f *Formatter) FormatPositions(positions []jobs.Position) string {
	if len(positions) == 0 {
		return "No positions found.\n"
	}

	var buf strings.Builder
	for i, p := range positions {
		fmt.Fprintf(&buf, "%d. %s\n", i+1, f.colors.Highlight.Sprint(p.Title))
		fmt.Fprintf(&buf, "   %s", p.Company)
		if p.Location != "" {
			fmt.Fprintf(&buf, " · %s", p.Location)
		}
		if p.Type != "" {
			fmt.Fprintf(&buf, " · %s", p.Type)
		}
		buf.WriteString("\n")
		if p.URL != "" {
			fmt.Fprintf(&buf, "   %s\n", f.colors.URL.Sprint(p.URL))
		}
		if f.Verbose && p.CreatedAt != "" {
			fmt.Fprintf(&buf, "   posted %s\n", p.CreatedAt)
		}
	}
	fmt.Fprintf(&buf, "\n%d position(s)\n", len(positions))
	return buf.String()
}

// FormatError renders err for stderr. Cancellation is rendered as a notice.
func FormatError(err error, noColor bool) string {
	if http.IsCancelled(err) {
		return fmt.Sprintf("%s Request cancelled\n", WarningIcon(noColor))
	}

	var apiErr *http.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Kind {
		case http.KindUnauthorized:
			return fmt.Sprintf("%s Error: %v\n  The server rejected the credentials; check the Authorization header.\n", ErrorIcon(noColor), err)
		case http.KindForbidden:
			return fmt.Sprintf("%s Error: %v\n  The credentials are not allowed to access this resource.\n", ErrorIcon(noColor), err)
		}
	}
	return fmt.Sprintf("%s Error: %v\n", ErrorIcon(noColor), err)
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.2fms", millis(d))
}

// formatJSONString attempts to pretty-print a JSON string
func formatJSONString(s string) string {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, []byte(s), "  ", "  "); err != nil {
		return s
	}
	return "  " + prettyJSON.String()
}
