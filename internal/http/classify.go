package http

import "net/http"

// classify resolves a received response into success (nil) or exactly one
// error kind. Every status code maps to one outcome.
func classify(resp *Response) error {
	if resp.IsSuccess() {
		return nil
	}

	kind := KindInvalidResponse
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		kind = KindUnauthorized
	case http.StatusForbidden:
		kind = KindForbidden
	case http.StatusBadRequest:
		inspectBadRequest(resp)
	}

	return &Error{Kind: kind, StatusCode: resp.StatusCode}
}

// inspectBadRequest is the hook for telling 400 responses apart by their
// JSON error body. No payload is recognised yet, so every 400 stays
// KindInvalidResponse.
func inspectBadRequest(resp *Response) {
	if _, ok := resp.JSON(); !ok {
		return
	}
	// TODO: map known 400 error payloads to their own kinds once the jobs API documents them.
}
