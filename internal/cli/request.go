package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/spf13/cobra"

	"github.com/wesleyorama2/jobboard/internal/http"
	"github.com/wesleyorama2/jobboard/internal/metrics"
	"github.com/wesleyorama2/jobboard/internal/output"
	"github.com/wesleyorama2/jobboard/internal/schema"
)

// requestFlags are the flags shared by get, post, put and delete.
type requestFlags struct {
	headers  []string
	params   []string
	encoding string
	extract  []string
	schema   string
	repeat   int
}

func (f *requestFlags) register(cmd *cobra.Command, defaultEncoding string) {
	flags := cmd.Flags()
	flags.StringArrayVarP(&f.headers, "header", "H", nil, "HTTP headers to include as key:value (can be used multiple times)")
	flags.StringArrayVarP(&f.params, "param", "p", nil, "Parameters to send as key=value (can be used multiple times)")
	flags.StringVarP(&f.encoding, "encoding", "e", defaultEncoding, "Parameter encoding: query, json or form")
	flags.StringArrayVar(&f.extract, "extract", nil, "Print a value from the response as name=$.json.path (can be used multiple times)")
	flags.StringVar(&f.schema, "schema", "", "Validate the response body against a JSON schema file")
	flags.IntVar(&f.repeat, "repeat", 1, "Send the request N times and print a latency summary")
}

// newRequestCmd returns the command for method. Body methods default to
// JSON encoding.
func (a *app) newRequestCmd(method http.Method, before func() error) *cobra.Command {
	f := &requestFlags{}
	name := strings.ToLower(string(method))

	defaultEncoding := http.EncodingQueryString.String()
	if method == http.MethodPost || method == http.MethodPut {
		defaultEncoding = http.EncodingJSON.String()
	}

	cmd := &cobra.Command{
		Use:   name + " URL",
		Short: fmt.Sprintf("Make a %s request to the specified URL", method),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.requestOptions(method, args[0], f)
			if err != nil {
				return err
			}
			if before != nil {
				if err := before(); err != nil {
					return err
				}
			}
			return a.runRequest(cmd.Context(), opts, f)
		},
	}
	f.register(cmd, defaultEncoding)
	return cmd
}

// requestOptions turns the URL argument and flags into RequestOptions.
func (a *app) requestOptions(method http.Method, rawURL string, f *requestFlags) (*http.RequestOptions, error) {
	encoding, err := http.ParseEncoding(f.encoding)
	if err != nil {
		return nil, err
	}
	headers, err := parseHeaders(f.headers)
	if err != nil {
		return nil, err
	}
	params, err := parseParams(f.params)
	if err != nil {
		return nil, err
	}

	target, path, query, err := splitURL(rawURL, a.cfg.Target)
	if err != nil {
		return nil, err
	}

	// Query items in the URL become parameters for query encoding and
	// stay on the URL otherwise.
	if len(query) > 0 {
		if encoding == http.EncodingQueryString {
			merged := make(http.Parameters, len(query)+len(params))
			for key, values := range query {
				// Parameters hold one value per key
				if len(values) > 1 {
					log.WithFields(log.Fields{
						"parameter": key,
						"kept":      values[0],
						"dropped":   strings.Join(values[1:], ","),
					}).Warn("repeated query parameter, keeping the first value")
				}
				merged[key] = query.Get(key)
			}
			for key, value := range params {
				merged[key] = value
			}
			params = merged
		} else {
			target += "?" + query.Encode()
		}
	}

	options := []http.RequestOption{
		http.WithHeaders(headers),
		http.WithEncoding(encoding),
	}
	if len(params) > 0 {
		options = append(options, http.WithParameters(params))
	}
	return http.NewRequestOptions(method, target, path, options...), nil
}

// runRequest sends opts once, or f.repeat times, and prints the results.
func (a *app) runRequest(ctx context.Context, opts *http.RequestOptions, f *requestFlags) error {
	formatter, err := a.formatter()
	if err != nil {
		return err
	}

	var validator *schema.Schema
	if f.schema != "" {
		if validator, err = schema.Load(f.schema); err != nil {
			return err
		}
	}

	client := a.newClient()
	fmt.Fprint(a.stdout, formatter.FormatRequest(opts))

	if f.repeat > 1 {
		return a.repeatRequest(ctx, client, opts, f.repeat, formatter)
	}

	result := <-client.Execute(ctx, opts)
	if result.Err != nil {
		return result.Err
	}

	fmt.Fprint(a.stdout, formatter.FormatResponse(result.Response))
	return a.inspect(result.Response, f.extract, validator)
}

// repeatRequest sends opts n times in sequence. It fails only when every
// request failed.
func (a *app) repeatRequest(ctx context.Context, client *http.Client, opts *http.RequestOptions, n int, formatter output.FormatProvider) error {
	recorder := metrics.NewRecorder()

	var lastErr error
	for i := 0; i < n; i++ {
		start := time.Now()
		resp, err := client.Do(ctx, opts)
		elapsed := time.Since(start)

		if err != nil {
			if http.IsCancelled(err) {
				lastErr = err
				break
			}
			log.WithError(err).WithField("attempt", i+1).Warn("request failed")
			recorder.Record(elapsed, 0, true)
			lastErr = err
			continue
		}
		recorder.Record(elapsed, len(resp.Data), false)
	}

	summary := recorder.Summary()
	fmt.Fprint(a.stdout, formatter.FormatSummary(summary))

	if summary.Count == 0 || summary.Errors == summary.Count {
		if lastErr == nil {
			lastErr = errors.New("no requests completed")
		}
		return lastErr
	}
	return nil
}

// splitURL splits rawURL into the target (scheme and host), the path and
// the query. A URL without a host is resolved against defaultTarget; a
// URL without a scheme gets http.
func splitURL(rawURL, defaultTarget string) (target, path string, query url.Values, err error) {
	if strings.HasPrefix(rawURL, "/") && defaultTarget != "" {
		rawURL = strings.TrimRight(defaultTarget, "/") + rawURL
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		rawURL = "http://" + rawURL
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", "", nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	if parsed.Host == "" {
		return "", "", nil, fmt.Errorf("invalid URL %q: missing host", rawURL)
	}

	target = fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host)
	if parsed.User != nil {
		target = fmt.Sprintf("%s://%s@%s", parsed.Scheme, parsed.User.String(), parsed.Host)
	}

	path = parsed.Path
	if path == "" {
		path = "/"
	}
	return target, path, parsed.Query(), nil
}

// parseHeaders parses "key: value" pairs.
func parseHeaders(raw []string) (http.Headers, error) {
	headers := make(http.Headers, len(raw))
	for _, header := range raw {
		key, value, found := strings.Cut(header, ":")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return nil, fmt.Errorf("invalid header %q: expected key:value", header)
		}
		headers[key] = strings.TrimSpace(value)
	}
	return headers, nil
}

// parseParams parses "key=value" pairs. The value may be empty.
func parseParams(raw []string) (http.Parameters, error) {
	params := make(http.Parameters, len(raw))
	for _, param := range raw {
		key, value, found := strings.Cut(param, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid parameter %q: expected key=value", param)
		}
		params[key] = value
	}
	return params, nil
}
