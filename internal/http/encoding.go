package http

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"unicode/utf8"
)

const upperhex = "0123456789ABCDEF"

// PercentEscape escapes s for a form encoded body. ASCII letters, digits
// and "-._*" are kept, a space becomes "+" and every other byte is written
// as %XX.
func PercentEscape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isUnreserved(c):
			b.WriteByte(c)
		case c == ' ':
			b.WriteByte('+')
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])
		}
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '*':
		return true
	}
	return false
}

func sortedKeys(params Parameters) []string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// encodeQuery builds a query component with one item per parameter. Spaces
// are written as %20.
func encodeQuery(params Parameters) string {
	items := make([]string, 0, len(params))
	for _, key := range sortedKeys(params) {
		items = append(items, queryEscape(key)+"="+queryEscape(params[key]))
	}
	return strings.Join(items, "&")
}

func queryEscape(s string) string {
	// QueryEscape turns a literal "+" into %2B, so the only "+" left are spaces.
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// encodeForm joins the parameters as key=value pairs separated by "&".
// Keys are escaped like values so that "&", "=" and spaces survive.
func encodeForm(params Parameters) []byte {
	pairs := make([]string, 0, len(params))
	for _, key := range sortedKeys(params) {
		pairs = append(pairs, PercentEscape(key)+"="+PercentEscape(params[key]))
	}
	return []byte(strings.Join(pairs, "&"))
}

// encodeBody returns the request body for the encoding, or nil when the
// parameters travel in the URL.
func encodeBody(encoding ParameterEncoding, params Parameters) ([]byte, error) {
	if params == nil {
		return nil, nil
	}
	switch encoding {
	case EncodingJSON:
		// json.Marshal replaces invalid UTF-8 with U+FFFD instead of failing.
		if err := validUTF8(params); err != nil {
			return nil, newError(KindSerializationError, err)
		}
		data, err := json.Marshal(params)
		if err != nil {
			return nil, newError(KindSerializationError, err)
		}
		return data, nil
	case EncodingHTTPBody:
		return encodeForm(params), nil
	}
	return nil, nil
}

// validUTF8 reports the first key or value that is not valid UTF-8.
func validUTF8(params Parameters) error {
	for _, key := range sortedKeys(params) {
		if !utf8.ValidString(key) {
			return fmt.Errorf("parameter name %q is not valid UTF-8", key)
		}
		if !utf8.ValidString(params[key]) {
			return fmt.Errorf("parameter %q: value is not valid UTF-8", key)
		}
	}
	return nil
}
