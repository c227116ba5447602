package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// URL combines the target, the path and, for query string encoding, the
// parameters. It fails with KindInvalidURL unless the result is an
// absolute URL with a host.
func (o *RequestOptions) URL() (*url.URL, error) {
	reqURL, err := url.Parse(o.target)
	if err != nil {
		return nil, newError(KindInvalidURL, err)
	}
	if reqURL.Scheme == "" || reqURL.Host == "" {
		return nil, newError(KindInvalidURL, errors.New("target must include scheme and host: "+o.target))
	}

	// Join the target path with the request path
	if o.path != "" {
		if reqURL.Path == "" {
			reqURL.Path = "/" + strings.TrimLeft(o.path, "/")
		} else {
			reqURL.Path = strings.TrimRight(reqURL.Path, "/") + "/" + strings.TrimLeft(o.path, "/")
		}
		reqURL.RawPath = ""
	}

	if o.parameters != nil && o.encoding == EncodingQueryString {
		reqURL.RawQuery = encodeQuery(o.parameters)
	}

	// Round trip so that anything net/http would reject is caught here
	final, err := url.Parse(reqURL.String())
	if err != nil || !final.IsAbs() {
		if err == nil {
			err = errors.New("not an absolute URL: " + reqURL.String())
		}
		return nil, newError(KindInvalidURL, err)
	}
	return final, nil
}

// build constructs the *http.Request for the options. defaults are applied
// first and overridden by the request's own headers; userAgent is only set
// when no User-Agent header is present after that.
func (o *RequestOptions) build(ctx context.Context, defaults Headers, userAgent string) (*http.Request, error) {
	reqURL, err := o.URL()
	if err != nil {
		return nil, err
	}

	body, err := encodeBody(o.encoding, o.parameters)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	// The URL was validated above, so a failure here is an invalid method.
	req, err := http.NewRequestWithContext(ctx, string(o.method), reqURL.String(), bodyReader)
	if err != nil {
		return nil, newError(KindRequestFailed, err)
	}

	for key, value := range defaults {
		req.Header.Set(key, value)
	}
	for key, value := range o.headers {
		req.Header.Set(key, value)
	}
	if req.Header.Get("User-Agent") == "" && userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	return req, nil
}
