package http

import (
	"fmt"
	"strings"
)

// Method is the HTTP method of a request.
type Method string

const (
	// MethodGet requests a representation of the specified resource.
	MethodGet Method = "GET"
	// MethodPost submits an entity to the specified resource.
	MethodPost Method = "POST"
	// MethodPut replaces the target resource with the request payload.
	MethodPut Method = "PUT"
	// MethodDelete deletes the specified resource.
	MethodDelete Method = "DELETE"
)

// ParseMethod converts a case-insensitive method name into a Method
func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToUpper(strings.TrimSpace(s))); m {
	case MethodGet, MethodPost, MethodPut, MethodDelete:
		return m, nil
	}
	return "", fmt.Errorf("unsupported method: %q", s)
}

// ParameterEncoding defines how parameters are attached to a request.
type ParameterEncoding int

const (
	// EncodingQueryString puts the parameters in the URL query.
	EncodingQueryString ParameterEncoding = iota
	// EncodingJSON sends the parameters as a JSON object body.
	EncodingJSON
	// EncodingHTTPBody sends the parameters as a form encoded body.
	EncodingHTTPBody
)

func (e ParameterEncoding) String() string {
	switch e {
	case EncodingQueryString:
		return "query"
	case EncodingJSON:
		return "json"
	case EncodingHTTPBody:
		return "form"
	}
	return fmt.Sprintf("ParameterEncoding(%d)", int(e))
}

// ParseEncoding accepts "query", "json" or "form".
func ParseEncoding(s string) (ParameterEncoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "query", "querystring", "":
		return EncodingQueryString, nil
	case "json":
		return EncodingJSON, nil
	case "form", "body", "httpbody":
		return EncodingHTTPBody, nil
	}
	return 0, fmt.Errorf("unknown parameter encoding: %q", s)
}

// Headers maps header names to values.
type Headers map[string]string

// Parameters maps parameter names to values.
type Parameters map[string]string

// DefaultHeaders returns the headers sent with every request unless the
// caller overrides them. A new map is returned on every call.
func DefaultHeaders() Headers {
	return Headers{
		"Accept":           "application/json",
		"Content-Type":     "application/json",
		"Accept-Language":  "en",
		"Content-Language": "en",
	}
}

// RequestOptions describes a single outbound call. It cannot be changed
// once built; the accessors return copies.
type RequestOptions struct {
	method     Method
	target     string
	path       string
	headers    Headers
	parameters Parameters
	encoding   ParameterEncoding
}

// RequestOption configures RequestOptions during construction
type RequestOption func(*RequestOptions)

// NewRequestOptions describes a request to path on target. target holds the
// scheme and host, e.g. "https://jobs.example.com".
func NewRequestOptions(method Method, target, path string, opts ...RequestOption) *RequestOptions {
	o := &RequestOptions{
		method:   method,
		target:   target,
		path:     path,
		headers:  make(Headers),
		encoding: EncodingQueryString,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithHeader adds a header to the request
func WithHeader(key, value string) RequestOption {
	return func(o *RequestOptions) {
		o.headers[key] = value
	}
}

// WithHeaders adds multiple headers to the request
func WithHeaders(headers Headers) RequestOption {
	return func(o *RequestOptions) {
		for key, value := range headers {
			o.headers[key] = value
		}
	}
}

// WithParameter adds a parameter to the request
func WithParameter(key, value string) RequestOption {
	return func(o *RequestOptions) {
		if o.parameters == nil {
			o.parameters = make(Parameters)
		}
		o.parameters[key] = value
	}
}

// WithParameters adds multiple parameters to the request. A nil map leaves
// the parameters absent.
func WithParameters(params Parameters) RequestOption {
	return func(o *RequestOptions) {
		if params == nil {
			return
		}
		if o.parameters == nil {
			o.parameters = make(Parameters, len(params))
		}
		for key, value := range params {
			o.parameters[key] = value
		}
	}
}

// WithEncoding sets the parameter encoding
func WithEncoding(encoding ParameterEncoding) RequestOption {
	return func(o *RequestOptions) {
		o.encoding = encoding
	}
}

// Method returns the HTTP method
func (o *RequestOptions) Method() Method { return o.method }

// Target returns the scheme and host the request is sent to
func (o *RequestOptions) Target() string { return o.target }

// Path returns the request path
func (o *RequestOptions) Path() string { return o.path }

// Encoding returns the parameter encoding
func (o *RequestOptions) Encoding() ParameterEncoding { return o.encoding }

// Headers returns a copy of the request headers
func (o *RequestOptions) Headers() Headers {
	out := make(Headers, len(o.headers))
	for key, value := range o.headers {
		out[key] = value
	}
	return out
}

// Parameters returns a copy of the parameters, or nil if none were set
func (o *RequestOptions) Parameters() Parameters {
	if o.parameters == nil {
		return nil
	}
	out := make(Parameters, len(o.parameters))
	for key, value := range o.parameters {
		out[key] = value
	}
	return out
}
