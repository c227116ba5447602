package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

// Response is a successful (2xx) HTTP response with its body fully read.
type Response struct {
	StatusCode int
	Status     string
	Headers    http.Header

	// Data is the body received from the server, nil when there was none.
	Data []byte

	ResponseTime time.Duration
	Timing       TimingInfo
}

// StatusClass returns the semantic class of the status code
func (r *Response) StatusClass() StatusClass {
	return ClassifyStatus(r.StatusCode)
}

// JSON parses the body as JSON. The value is a map[string]any, []any or a
// scalar. ok is false when there is no body or it is not valid JSON.
func (r *Response) JSON() (v any, ok bool) {
	if r.Data == nil {
		return nil, false
	}
	if err := json.Unmarshal(r.Data, &v); err != nil {
		return nil, false
	}
	return v, true
}

// Body returns the body as text. ok is false when there is no body or it is
// not valid UTF-8.
func (r *Response) Body() (string, bool) {
	if r.Data == nil || !utf8.Valid(r.Data) {
		return "", false
	}
	return string(r.Data), true
}

// DecodeInto unmarshals the JSON body into v.
func (r *Response) DecodeInto(v any) error {
	if r.Data == nil {
		return newError(KindInvalidResponse, errors.New("response has no body"))
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return newError(KindDecodingFailure, err)
	}
	return nil
}

// Decoded unmarshals the JSON body of r into a new T.
func Decoded[T any](r *Response) (T, error) {
	var out T
	if err := r.DecodeInto(&out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// GetHeader returns the value of the specified header
func (r *Response) GetHeader(key string) string {
	return r.Headers.Get(key)
}

// IsSuccess returns true if the response status code is in the 2xx range
func (r *Response) IsSuccess() bool {
	return r.StatusClass() == StatusSuccess
}

// IsRedirect returns true if the response status code is in the 3xx range
func (r *Response) IsRedirect() bool {
	return r.StatusClass() == StatusRedirection
}

// IsClientError returns true if the response status code is in the 4xx range
func (r *Response) IsClientError() bool {
	return r.StatusClass() == StatusClientError
}

// IsServerError returns true if the response status code is in the 5xx range
func (r *Response) IsServerError() bool {
	return r.StatusClass() == StatusServerError
}

// GetResponseTimeMillis returns the response time in milliseconds
func (r *Response) GetResponseTimeMillis() int64 {
	return r.ResponseTime.Milliseconds()
}

// Lookup extracts a value from the JSON body using a JSONPath expression
// such as "$.users[0].name". Null values are returned as "null".
func (r *Response) Lookup(path string) (string, error) {
	if r.Data == nil {
		return "", newError(KindInvalidResponse, errors.New("response has no body"))
	}
	if path == "" {
		return "", fmt.Errorf("empty JSONPath expression")
	}
	if !gjson.ValidBytes(r.Data) {
		return "", newError(KindDecodingFailure, errors.New("body is not valid JSON"))
	}

	result := gjson.GetBytes(r.Data, toGjsonPath(path))
	if !result.Exists() {
		return "", fmt.Errorf("path not found: %s", path)
	}
	if result.Type == gjson.Null {
		return "null", nil
	}
	return result.String(), nil
}

// LookupAll runs Lookup for every named path. Values that were found are
// returned even when some lookups fail.
func (r *Response) LookupAll(paths map[string]string) (map[string]string, error) {
	names := make([]string, 0, len(paths))
	for name := range paths {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make(map[string]string, len(paths))
	var failed []string
	for _, name := range names {
		value, err := r.Lookup(paths[name])
		if err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		results[name] = value
	}
	if len(failed) > 0 {
		return results, fmt.Errorf("extraction errors: %s", strings.Join(failed, "; "))
	}
	return results, nil
}

// toGjsonPath converts "$.users[0]['name']" into "users.0.name".
func toGjsonPath(path string) string {
	path = strings.TrimPrefix(path, "$")
	path = strings.TrimPrefix(path, ".")
	if path == "" {
		return "@this"
	}

	replacer := strings.NewReplacer("['", ".", "']", "", `["`, ".", `"]`, "", "[", ".", "]", "")
	path = replacer.Replace(path)
	return strings.TrimPrefix(path, ".")
}
