package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptrace"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"
)

// Client executes RequestOptions and classifies the outcome
type Client struct {
	httpClient *http.Client
	headers    Headers
	userAgent  string
	logger     log.Interface
}

// ClientOption is a function that configures a Client
type ClientOption func(*Client)

// NewClient creates a new HTTP client with the given options. Unless
// configured otherwise it sends DefaultHeaders and DefaultUserAgent.
func NewClient(options ...ClientOption) *Client {
	client := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		headers:   DefaultHeaders(),
		userAgent: DefaultUserAgent(),
		logger:    log.Log,
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// WithTimeout sets the timeout for the client
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying *http.Client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithDefaultHeaders replaces the headers sent with every request. Pass an
// empty map to send none.
func WithDefaultHeaders(headers Headers) ClientOption {
	return func(c *Client) {
		c.headers = make(Headers, len(headers))
		for key, value := range headers {
			c.headers[key] = value
		}
	}
}

// WithDefaultHeader adds a header sent with every request
func WithDefaultHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithUserAgent sets the User-Agent used when a request does not carry one
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithLogger sets the logger
func WithLogger(logger log.Interface) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Result is the outcome of Execute: exactly one of Response and Err is set.
type Result struct {
	Response *Response
	Err      error
}

// Execute runs the request on its own goroutine. The returned channel
// receives exactly one Result and is then closed.
func (c *Client) Execute(ctx context.Context, opts *RequestOptions) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		resp, err := c.Do(ctx, opts)
		ch <- Result{Response: resp, Err: err}
	}()
	return ch
}

// Get issues a GET with query string encoded parameters and the client's
// default headers.
func (c *Client) Get(ctx context.Context, target, path string, params Parameters) (*Response, error) {
	opts := NewRequestOptions(MethodGet, target, path,
		WithParameters(params),
		WithEncoding(EncodingQueryString),
	)
	return c.Do(ctx, opts)
}

// Do executes the request and returns the response with detailed timing
// information. Only 2xx responses are returned; every other outcome is an
// *Error.
func (c *Client) Do(ctx context.Context, opts *RequestOptions) (*Response, error) {
	if opts == nil {
		return nil, newError(KindRequestFailed, errors.New("nil request options"))
	}

	httpReq, err := opts.build(ctx, c.headers, c.userAgent)
	if err != nil {
		return nil, err
	}

	logger := c.logger.WithFields(log.Fields{
		"method":     httpReq.Method,
		"url":        httpReq.URL.String(),
		"request_id": uuid.NewString(),
	})
	logger.Debug("sending request")

	timing := TimingInfo{StartTime: time.Now()}
	phases := newPhaseRecorder(timing.StartTime)
	httpReq = httpReq.WithContext(httptrace.WithClientTrace(httpReq.Context(), phases.trace()))

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Debug("request cancelled")
			return nil, newError(KindCancelled, err)
		}
		logger.WithError(err).Warn("request failed")
		return nil, newError(KindInvalidResponse, err)
	}
	defer httpResp.Body.Close()

	timing.TotalTime = time.Since(timing.StartTime)
	phases.fill(&timing)

	transferStart := time.Now()
	body, err := io.ReadAll(httpResp.Body)
	timing.ContentTransferTime = time.Since(transferStart)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, newError(KindCancelled, err)
		}
		logger.WithError(err).Warn("reading response body failed")
		return nil, newError(KindRequestFailed, err)
	}
	if len(body) == 0 {
		body = nil
	}

	resp := &Response{
		StatusCode:   httpResp.StatusCode,
		Status:       httpResp.Status,
		Headers:      httpResp.Header,
		Data:         body,
		ResponseTime: time.Since(timing.StartTime),
		Timing:       timing,
	}

	logger.WithFields(log.Fields{
		"status":   resp.StatusCode,
		"bytes":    len(body),
		"duration": resp.ResponseTime.String(),
	}).Debug("received response")

	if err := classify(resp); err != nil {
		return nil, err
	}
	return resp, nil
}
